package serrors

import "fmt"

// BaseError is a coded error that can be surfaced to API clients and,
// when a locale key is present, localized by the presentation layer.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	clone := *e
	clone.TemplateData = data
	return &clone
}

// WithMessage returns a copy carrying a more specific message while
// preserving the code, so errors.Is on the sentinel still matches by code.
func (e *BaseError) WithMessage(message string) *BaseError {
	clone := *e
	clone.Message = message
	return &clone
}

// Is matches errors by code so sentinel comparisons survive WithMessage
// and WithTemplateData copies.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return other.Code == e.Code
}
