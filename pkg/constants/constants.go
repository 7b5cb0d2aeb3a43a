package constants

import (
	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	RequestStart ContextKey = "requestStart"
	IdentityKey  ContextKey = "identity"
	AppKey       ContextKey = "app"
)
