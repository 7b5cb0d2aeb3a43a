package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
	"github.com/landchain-vn/landchain/modules/registry/domain/ledger"
	"github.com/landchain-vn/landchain/pkg/composables"
	"github.com/landchain-vn/landchain/pkg/configuration"
	"github.com/landchain-vn/landchain/pkg/eventbus"
)

// TransactionService orchestrates the land-change transaction lifecycle
// against the ledger. It owns no state of its own: every mutation is a
// chaincode submission, every read an evaluation, and each settled write is
// followed by a re-read of the authoritative record before an event is
// published.
type TransactionService struct {
	ledger     ledger.Client
	publisher  eventbus.EventBus
	memberOrgs []string
	legacyTxID bool
}

func NewTransactionService(c ledger.Client, publisher eventbus.EventBus, conf *configuration.Configuration) *TransactionService {
	return &TransactionService{
		ledger:     c,
		publisher:  publisher,
		memberOrgs: conf.Endorsement.OrgList(),
		legacyTxID: conf.Ledger.LegacyTxIDResolution,
	}
}

// CreateResult carries the outcome of a creation. TxID may be empty when the
// gateway returned no ID and legacy resolution failed; Transaction is nil in
// that degraded case and the caller answers with a generic acknowledgement.
type CreateResult struct {
	TxID        string
	Transaction *transaction.Transaction
}

func (s *TransactionService) identity(ctx context.Context, action transaction.Action) (composables.Identity, error) {
	id, ok := composables.UseIdentity(ctx)
	if !ok {
		return composables.Identity{}, transaction.ErrUnauthorizedOrg.WithMessage("caller identity is missing")
	}
	if id.OrgMSP != transaction.ActorOrg(action) {
		return composables.Identity{}, transaction.ErrUnauthorizedOrg.WithMessage(
			fmt.Sprintf("action %s requires organization %s, caller belongs to %s",
				action, transaction.ActorOrg(action), id.OrgMSP))
	}
	return id, nil
}

// citizen authorizes a creation. Requests originate from citizens only.
func (s *TransactionService) citizen(ctx context.Context) (composables.Identity, error) {
	id, ok := composables.UseIdentity(ctx)
	if !ok {
		return composables.Identity{}, transaction.ErrUnauthorizedOrg.WithMessage("caller identity is missing")
	}
	if id.OrgMSP != transaction.OrgCitizenMSP {
		return composables.Identity{}, transaction.ErrUnauthorizedOrg.WithMessage(
			fmt.Sprintf("transaction requests require organization %s, caller belongs to %s",
				transaction.OrgCitizenMSP, id.OrgMSP))
	}
	return id, nil
}

// Create submits any of the five typed creation requests. The transaction ID
// comes from the gateway proposal; when absent, the legacy owner-query
// resolution runs if enabled. A resolution failure degrades the result, it
// never fails the creation: the write is already committed.
func (s *TransactionService) Create(ctx context.Context, req transaction.ChangeRequest) (*CreateResult, error) {
	id, err := s.citizen(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	args, err := req.Args()
	if err != nil {
		return nil, transaction.NewValidationError(err.Error())
	}

	res, err := s.ledger.Submit(ctx, req.FunctionName(), args)
	if err != nil {
		return nil, err
	}

	txID := res.TxID
	if txID == "" && s.legacyTxID {
		resolved, resolveErr := resolveCreatedTxID(ctx, s.ledger, id.UserID, req)
		if resolveErr != nil {
			composables.UseLogger(ctx).WithError(resolveErr).
				WithField("function", req.FunctionName()).
				Warn("created transaction id could not be resolved")
		}
		txID = resolved
	}
	if txID == "" {
		return &CreateResult{}, nil
	}

	tx, err := s.GetByID(ctx, txID)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).
			WithField("txId", txID).
			Warn("re-read of created transaction failed")
		s.publishCreated(id, req, txID)
		return &CreateResult{TxID: txID}, nil
	}

	s.publishCreated(id, req, txID)
	return &CreateResult{TxID: txID, Transaction: tx}, nil
}

// publishCreated raises the creation event from the request's own fields, so
// the fanout still runs when the post-create re-read failed.
func (s *TransactionService) publishCreated(id composables.Identity, req transaction.ChangeRequest, txID string) {
	if r, ok := req.(transaction.TransferRequest); ok {
		s.publisher.Publish(transaction.TransferRequestedEvent{
			TxID:         txID,
			LandParcelID: r.LandParcelID,
			FromOwnerID:  id.UserID,
			ToOwnerID:    r.ToOwnerID,
		})
		return
	}
	s.publisher.Publish(transaction.RequestCreatedEvent{
		TxID:         txID,
		Type:         req.Type(),
		LandParcelID: requestLandParcelID(req),
		OwnerID:      id.UserID,
	})
}

// requestLandParcelID extracts the single-parcel key; MERGE has none.
func requestLandParcelID(req transaction.ChangeRequest) string {
	switch r := req.(type) {
	case transaction.SplitRequest:
		return r.LandParcelID
	case transaction.ChangePurposeRequest:
		return r.LandParcelID
	case transaction.ReissueRequest:
		return r.LandParcelID
	}
	return ""
}

// Confirm records the transfer recipient's acceptance or refusal. Only the
// named recipient may confirm, and only while the transfer is pending.
func (s *TransactionService) Confirm(ctx context.Context, txID string, accepted bool) (*transaction.Transaction, error) {
	id, err := s.identity(ctx, transaction.ActionConfirm)
	if err != nil {
		return nil, err
	}

	tx, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Type != transaction.TypeTransfer {
		return nil, transaction.NewValidationError("only transfer transactions can be confirmed")
	}
	if tx.ToOwnerID != id.UserID {
		return nil, transaction.ErrUnauthorizedOrg.WithMessage("only the transfer recipient may confirm")
	}
	if err := s.checkTransition(tx, transaction.ActionConfirm); err != nil {
		return nil, err
	}

	args := []string{txID, strconv.FormatBool(accepted)}
	if _, err := s.ledger.Submit(ctx, "ConfirmTransfer", args,
		ledger.WithEndorsingOrgs(tx.EndorsingOrgs(s.memberOrgs)...)); err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(transaction.TransferConfirmedEvent{
		TxID:         txID,
		LandParcelID: updated.LandParcelID,
		FromOwnerID:  updated.FromOwnerID,
		ToOwnerID:    updated.ToOwnerID,
		Accepted:     accepted,
	})
	return updated, nil
}

// Process records the commune office's verification decision. A rejection
// demands a reason; approval and supplement requests may omit it.
func (s *TransactionService) Process(ctx context.Context, txID string, decision transaction.Decision, reason string) (*transaction.Transaction, error) {
	if _, err := s.identity(ctx, transaction.ActionProcess); err != nil {
		return nil, err
	}
	if !decision.Valid() {
		return nil, transaction.NewValidationError(fmt.Sprintf("unknown decision %q", decision))
	}
	if decision == transaction.DecisionReject && reason == "" {
		return nil, transaction.NewValidationError("a rejection requires a reason")
	}

	tx, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(tx, transaction.ActionProcess); err != nil {
		return nil, err
	}

	args := []string{txID, string(decision), reason}
	if _, err := s.ledger.Submit(ctx, "ProcessTransaction", args,
		ledger.WithEndorsingOrgs(tx.EndorsingOrgs(s.memberOrgs)...)); err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(transaction.ProcessedEvent{
		TxID:     txID,
		OwnerID:  updated.FromOwnerID,
		Decision: decision,
	})
	return updated, nil
}

// Forward hands a verified or confirmed transaction over to the land
// authority for the closing decision.
func (s *TransactionService) Forward(ctx context.Context, txID string) (*transaction.Transaction, error) {
	if _, err := s.identity(ctx, transaction.ActionForward); err != nil {
		return nil, err
	}

	tx, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(tx, transaction.ActionForward); err != nil {
		return nil, err
	}

	if _, err := s.ledger.Submit(ctx, "ForwardTransaction", []string{txID},
		ledger.WithEndorsingOrgs(tx.EndorsingOrgs(s.memberOrgs)...)); err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(transaction.ForwardedEvent{
		TxID:    txID,
		OwnerID: updated.FromOwnerID,
	})
	return updated, nil
}

func (s *TransactionService) checkTransition(tx *transaction.Transaction, action transaction.Action) error {
	if tx.Status.Terminal() {
		return transaction.ErrInvalidState.WithMessage(
			fmt.Sprintf("transaction %s is already %s", tx.TxID, tx.Status))
	}
	if !transaction.CanApply(action, tx.Status) {
		return transaction.ErrInvalidState.WithMessage(
			fmt.Sprintf("cannot %s a transaction in status %s", action, tx.Status))
	}
	return nil
}

// GetByID fetches one transaction record from the ledger.
func (s *TransactionService) GetByID(ctx context.Context, txID string) (*transaction.Transaction, error) {
	if txID == "" {
		return nil, transaction.NewValidationError("txId is required")
	}
	raw, err := s.ledger.Evaluate(ctx, "QueryTransactionByID", txID)
	if err != nil {
		return nil, err
	}
	var tx transaction.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, ledger.ErrRejected.WithMessage(fmt.Sprintf("malformed transaction record: %v", err))
	}
	return &tx, nil
}

// ListByOwner returns every transaction the owner participates in.
func (s *TransactionService) ListByOwner(ctx context.Context, ownerID string) ([]*transaction.Transaction, error) {
	if ownerID == "" {
		return nil, transaction.NewValidationError("ownerId is required")
	}
	raw, err := s.ledger.Evaluate(ctx, "QueryTransactionsByOwner", ownerID)
	if err != nil {
		return nil, err
	}
	return decodeTransactions(raw)
}

// ListByStatus returns every transaction in the given workflow status.
// Reserved for the reviewing organizations.
func (s *TransactionService) ListByStatus(ctx context.Context, status transaction.Status) ([]*transaction.Transaction, error) {
	if err := s.reviewer(ctx); err != nil {
		return nil, err
	}
	raw, err := s.ledger.Evaluate(ctx, "QueryTransactionsByStatus", string(status))
	if err != nil {
		return nil, err
	}
	return decodeTransactions(raw)
}

// ListAll returns the full transaction ledger. Reserved for the reviewing
// organizations.
func (s *TransactionService) ListAll(ctx context.Context) ([]*transaction.Transaction, error) {
	if err := s.reviewer(ctx); err != nil {
		return nil, err
	}
	raw, err := s.ledger.Evaluate(ctx, "QueryAllTransactions")
	if err != nil {
		return nil, err
	}
	return decodeTransactions(raw)
}

// History returns the ledger's modification history for one transaction key,
// decoded loosely because the record shape varies across chaincode versions.
func (s *TransactionService) History(ctx context.Context, txID string) ([]map[string]any, error) {
	if txID == "" {
		return nil, transaction.NewValidationError("txId is required")
	}
	raw, err := s.ledger.Evaluate(ctx, "GetTransactionHistory", txID)
	if err != nil {
		return nil, err
	}
	var history []map[string]any
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, ledger.ErrRejected.WithMessage(fmt.Sprintf("malformed history record: %v", err))
	}
	return history, nil
}

func (s *TransactionService) reviewer(ctx context.Context) error {
	id, ok := composables.UseIdentity(ctx)
	if !ok {
		return transaction.ErrUnauthorizedOrg.WithMessage("caller identity is missing")
	}
	if id.OrgMSP != transaction.OrgAuthorityMSP && id.OrgMSP != transaction.OrgOfficeMSP {
		return transaction.ErrUnauthorizedOrg.WithMessage("listing is reserved for reviewing organizations")
	}
	return nil
}

func decodeTransactions(raw []byte) ([]*transaction.Transaction, error) {
	var txs []*transaction.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, ledger.ErrRejected.WithMessage(fmt.Sprintf("malformed transaction list: %v", err))
	}
	if txs == nil {
		txs = []*transaction.Transaction{}
	}
	return txs, nil
}
