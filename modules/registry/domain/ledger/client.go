package ledger

import (
	"context"

	"github.com/landchain-vn/landchain/pkg/serrors"
)

var (
	// ErrUnavailable marks timeouts and connectivity failures, as opposed to
	// a transaction the ledger actively rejected.
	ErrUnavailable = serrors.NewError("LEDGER_UNAVAILABLE", "ledger did not respond in time", "Ledger.Errors.Unavailable")

	// ErrRejected marks submissions or evaluations the ledger rejected,
	// including chaincode state-machine violations. The chaincode message is
	// passed through verbatim.
	ErrRejected = serrors.NewError("LEDGER_ERROR", "ledger rejected the transaction", "Ledger.Errors.Rejected")
)

// SubmitResult carries the outcome of a settled write. TxID is the
// gateway-minted transaction identifier, available even when the chaincode
// function returns no payload.
type SubmitResult struct {
	TxID    string
	Payload []byte
}

type SubmitOptions struct {
	EndorsingOrgs []string
}

type SubmitOption func(*SubmitOptions)

// WithEndorsingOrgs restricts endorsement collection to the given
// organizations instead of letting the gateway pick from the policy.
func WithEndorsingOrgs(orgs ...string) SubmitOption {
	return func(o *SubmitOptions) {
		o.EndorsingOrgs = orgs
	}
}

// Client is the orchestration layer's only path to the ledger. Submit writes
// and waits for commit; Evaluate reads without ordering. Implementations
// bound every call with the configured timeouts and may retry Evaluate, but
// never Submit.
type Client interface {
	Submit(ctx context.Context, fn string, args []string, opts ...SubmitOption) (*SubmitResult, error)
	Evaluate(ctx context.Context, fn string, args ...string) ([]byte, error)
}
