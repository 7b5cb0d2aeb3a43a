package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/landchain-vn/landchain/pkg/composables"
	"github.com/landchain-vn/landchain/pkg/constants"
	"github.com/landchain-vn/landchain/pkg/serrors"
)

// Every route answers the same envelope: {success, message, data} on
// success, {success, code, message} on failure. The chaincode's own error
// message passes through verbatim under the LEDGER_ERROR code.

var statusByCode = map[string]int{
	"VALIDATION_ERROR":    http.StatusBadRequest,
	"AUTHORIZATION_ERROR": http.StatusForbidden,
	"INVALID_STATE":       http.StatusConflict,
	"LEDGER_UNAVAILABLE":  http.StatusServiceUnavailable,
	"LEDGER_ERROR":        http.StatusBadGateway,
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := "INTERNAL_ERROR"
	message := "internal server error"

	var base *serrors.BaseError
	if errors.As(err, &base) {
		code = base.Code
		message = base.Message
	}

	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
		composables.UseLogger(r.Context()).WithError(err).Error("unhandled service error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"code":    code,
		"message": message,
	})
}

// decode parses and validates a JSON body. Validation failures name the
// offending field so clients can fix the payload without guessing.
func decode(r *http.Request, dto any) error {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		return serrors.NewError("VALIDATION_ERROR", "malformed JSON body", "Validation.MalformedBody")
	}
	if err := constants.Validate.Struct(dto); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return serrors.NewError(
				"VALIDATION_ERROR",
				"field "+first.Field()+" failed validation on "+first.Tag(),
				"Validation.FieldFailed",
			)
		}
		return serrors.NewError("VALIDATION_ERROR", err.Error(), "Validation.Failed")
	}
	return nil
}
