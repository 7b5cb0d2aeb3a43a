package services

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
	"github.com/landchain-vn/landchain/modules/registry/domain/ledger"
	"github.com/landchain-vn/landchain/pkg/serrors"
)

// ErrResolution marks a failed legacy transaction-ID lookup. It is logged and
// degrades the creation response; it never fails the request, because the
// write has already committed by the time resolution runs.
var ErrResolution = serrors.NewError(
	"RESOLUTION_FAILURE",
	"could not resolve the created transaction id",
	"Transactions.Errors.Resolution",
)

// resolveCreatedTxID recovers a freshly created transaction's ID by querying
// the requester's transactions and picking the most recent record matching
// the request's type and key fields. Kept behind a flag for chaincode builds
// that return no payload from their create functions; the gateway-minted ID
// is the primary source.
func resolveCreatedTxID(ctx context.Context, c ledger.Client, ownerID string, req transaction.ChangeRequest) (string, error) {
	raw, err := c.Evaluate(ctx, "QueryTransactionsByOwner", ownerID)
	if err != nil {
		return "", ErrResolution.WithMessage(err.Error())
	}

	var txs []*transaction.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return "", ErrResolution.WithMessage(err.Error())
	}

	var best *transaction.Transaction
	for _, tx := range txs {
		if tx.Type != req.Type() || !matchesRequest(tx, req) {
			continue
		}
		if best == nil || tx.CreatedAt.After(best.CreatedAt) {
			best = tx
		}
	}
	if best == nil {
		return "", ErrResolution
	}
	return best.TxID, nil
}

// matchesRequest compares the record against the request's identifying
// fields. Timestamps alone are not enough: concurrent creations by the same
// owner must not steal each other's IDs.
func matchesRequest(tx *transaction.Transaction, req transaction.ChangeRequest) bool {
	switch r := req.(type) {
	case transaction.TransferRequest:
		return tx.LandParcelID == r.LandParcelID && tx.ToOwnerID == r.ToOwnerID
	case transaction.MergeRequest:
		return slices.Equal(tx.ParcelIDs, r.ParcelIDs)
	case transaction.SplitRequest:
		return tx.LandParcelID == r.LandParcelID
	case transaction.ChangePurposeRequest:
		return tx.LandParcelID == r.LandParcelID
	case transaction.ReissueRequest:
		return tx.LandParcelID == r.LandParcelID
	}
	return false
}
