package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ipfs/go-cid"

	"github.com/landchain-vn/landchain/modules/registry/domain/entities/landparcel"
	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
	"github.com/landchain-vn/landchain/modules/registry/domain/ledger"
	"github.com/landchain-vn/landchain/pkg/composables"
)

// Per-type approval entry points for the land authority. Each one verifies
// the caller's organization, the transaction's kind and its current status
// before submitting, then re-reads the settled record and raises the domain
// event. The chaincode re-runs the same checks authoritatively.

func (s *TransactionService) ApproveTransfer(ctx context.Context, txID string) (*transaction.Transaction, error) {
	tx, err := s.approvable(ctx, txID, transaction.TypeTransfer)
	if err != nil {
		return nil, err
	}
	return s.submitApproval(ctx, tx, "ApproveTransferTransaction", []string{txID})
}

// ApproveSplit closes a split by sending the derived parcel layout. The
// caller supplies IDs and areas; ownership, location and purpose are
// inherited from the transaction and the original parcel.
func (s *TransactionService) ApproveSplit(ctx context.Context, txID string, specs []landparcel.NewParcelSpec) (*transaction.Transaction, error) {
	tx, err := s.approvable(ctx, txID, transaction.TypeSplit)
	if err != nil {
		return nil, err
	}

	original, err := s.getParcel(ctx, tx.LandParcelID)
	if err != nil {
		return nil, err
	}
	derived, updatesOriginal, err := DeriveSplitParcels(original, tx, specs)
	if err != nil {
		return nil, err
	}
	if !updatesOriginal {
		composables.UseLogger(ctx).WithField("txId", txID).
			WithField("landParcelId", tx.LandParcelID).
			Warn("split layout retires the original parcel entirely")
	}

	parcelsJSON, err := json.Marshal(derived)
	if err != nil {
		return nil, transaction.NewValidationError(err.Error())
	}
	args := []string{txID, tx.LandParcelID, string(parcelsJSON)}
	return s.submitApproval(ctx, tx, "ApproveSplitTransaction", args)
}

// ApproveMerge closes a merge. The surviving parcel ID must be one of the
// merged source parcels.
func (s *TransactionService) ApproveMerge(ctx context.Context, txID, selectedLandID string, spec landparcel.NewParcelSpec) (*transaction.Transaction, error) {
	tx, err := s.approvable(ctx, txID, transaction.TypeMerge)
	if err != nil {
		return nil, err
	}
	if err := ValidateMergeSelection(tx.ParcelIDs, selectedLandID); err != nil {
		return nil, err
	}

	surviving, err := s.getParcel(ctx, selectedLandID)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).
			WithField("landParcelId", selectedLandID).
			Warn("surviving parcel could not be read, merged spec keeps caller values")
		surviving = nil
	}
	merged := EnrichMergedParcel(spec, tx, surviving, selectedLandID)

	idsJSON, err := json.Marshal(tx.ParcelIDs)
	if err != nil {
		return nil, transaction.NewValidationError(err.Error())
	}
	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return nil, transaction.NewValidationError(err.Error())
	}
	args := []string{txID, string(idsJSON), selectedLandID, string(mergedJSON)}
	return s.submitApproval(ctx, tx, "ApproveMergeTransaction", args)
}

func (s *TransactionService) ApproveChangePurpose(ctx context.Context, txID string) (*transaction.Transaction, error) {
	tx, err := s.approvable(ctx, txID, transaction.TypeChangePurpose)
	if err != nil {
		return nil, err
	}
	return s.submitApproval(ctx, tx, "ApproveChangePurposeTransaction", []string{txID})
}

// ApproveReissue closes a certificate reissue. The new certificate is an
// IPFS content identifier and must parse as one.
func (s *TransactionService) ApproveReissue(ctx context.Context, txID, newCertificateID string) (*transaction.Transaction, error) {
	if newCertificateID == "" {
		return nil, transaction.NewValidationError("newCertificateId is required")
	}
	if _, err := cid.Decode(newCertificateID); err != nil {
		return nil, transaction.NewValidationError(
			fmt.Sprintf("newCertificateId is not a valid content identifier: %v", err))
	}

	tx, err := s.approvable(ctx, txID, transaction.TypeReissue)
	if err != nil {
		return nil, err
	}
	return s.submitApproval(ctx, tx, "ApproveReissueTransaction", []string{txID, newCertificateID})
}

// Reject closes any non-terminal transaction with a mandatory reason.
func (s *TransactionService) Reject(ctx context.Context, txID, reason string) (*transaction.Transaction, error) {
	if _, err := s.identity(ctx, transaction.ActionReject); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, transaction.NewValidationError("a rejection requires a reason")
	}

	tx, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(tx, transaction.ActionReject); err != nil {
		return nil, err
	}

	if _, err := s.ledger.Submit(ctx, "RejectTransaction", []string{txID, reason},
		ledger.WithEndorsingOrgs(tx.EndorsingOrgs(s.memberOrgs)...)); err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(transaction.RejectedEvent{
		TxID:        txID,
		Type:        updated.Type,
		FromOwnerID: updated.FromOwnerID,
		ToOwnerID:   updated.ToOwnerID,
		Reason:      reason,
	})
	return updated, nil
}

// approvable loads the transaction and runs the shared approval guards.
func (s *TransactionService) approvable(ctx context.Context, txID string, typ transaction.Type) (*transaction.Transaction, error) {
	if _, err := s.identity(ctx, transaction.ActionApprove); err != nil {
		return nil, err
	}
	tx, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Type != typ {
		return nil, transaction.NewValidationError(
			fmt.Sprintf("transaction %s is a %s, not a %s", txID, tx.Type, typ))
	}
	if err := s.checkTransition(tx, transaction.ActionApprove); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *TransactionService) submitApproval(ctx context.Context, tx *transaction.Transaction, fn string, args []string) (*transaction.Transaction, error) {
	if _, err := s.ledger.Submit(ctx, fn, args,
		ledger.WithEndorsingOrgs(tx.EndorsingOrgs(s.memberOrgs)...)); err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, tx.TxID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(transaction.ApprovedEvent{
		TxID:        tx.TxID,
		Type:        tx.Type,
		FromOwnerID: updated.FromOwnerID,
		ToOwnerID:   updated.ToOwnerID,
	})
	return updated, nil
}

func (s *TransactionService) getParcel(ctx context.Context, landID string) (*landparcel.LandParcel, error) {
	raw, err := s.ledger.Evaluate(ctx, "QueryLandByID", landID)
	if err != nil {
		return nil, err
	}
	var parcel landparcel.LandParcel
	if err := json.Unmarshal(raw, &parcel); err != nil {
		return nil, ledger.ErrRejected.WithMessage(fmt.Sprintf("malformed parcel record: %v", err))
	}
	return &parcel, nil
}
