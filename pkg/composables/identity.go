package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/landchain-vn/landchain/pkg/constants"
)

// Identity is the caller principal installed by the external authentication
// layer. UserID is the citizen identity number; OrgMSP is the caller's
// membership domain on the ledger (Org1MSP, Org2MSP or Org3MSP).
type Identity struct {
	UserID string
	OrgMSP string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, constants.IdentityKey, id)
}

func UseIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(constants.IdentityKey).(Identity)
	return id, ok
}

// UseLogger returns the request-scoped logger entry, falling back to the
// standard logger when the middleware did not run (tests, background tasks).
func UseLogger(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
