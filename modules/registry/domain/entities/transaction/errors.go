package transaction

import "github.com/landchain-vn/landchain/pkg/serrors"

var (
	// ErrValidation covers missing or malformed request fields.
	ErrValidation = serrors.NewError("VALIDATION_ERROR", "invalid request", "Transactions.Errors.Validation")

	// ErrUnauthorizedOrg covers callers whose organization may not take the action.
	ErrUnauthorizedOrg = serrors.NewError("AUTHORIZATION_ERROR", "organization not permitted for this action", "Transactions.Errors.Authorization")

	// ErrInvalidState covers actions attempted from a status the transition
	// graph does not allow, including terminal transactions.
	ErrInvalidState = serrors.NewError("INVALID_STATE", "transaction is not in a valid state for this action", "Transactions.Errors.InvalidState")
)

func NewValidationError(message string) error {
	return ErrValidation.WithMessage(message)
}
