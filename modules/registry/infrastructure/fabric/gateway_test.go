package fabric

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/landchain-vn/landchain/modules/registry/domain/ledger"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	err := classify(grpcstatus.Error(codes.Unavailable, "connection refused"))
	assert.ErrorIs(t, err, ledger.ErrUnavailable)

	err = classify(grpcstatus.Error(codes.DeadlineExceeded, "timed out"))
	assert.ErrorIs(t, err, ledger.ErrUnavailable)

	err = classify(context.DeadlineExceeded)
	assert.ErrorIs(t, err, ledger.ErrUnavailable)

	err = classify(errors.New("chaincode: transaction tx-1 does not exist"))
	require.ErrorIs(t, err, ledger.ErrRejected)
	assert.Contains(t, err.Error(), "transaction tx-1 does not exist",
		"the chaincode message passes through verbatim")
}

func TestEvaluateRetriesConnectivityFailuresOnly(t *testing.T) {
	calls := 0
	_, err := evaluateWithRetry(context.Background(), 2, time.Second, func(context.Context) ([]byte, error) {
		calls++
		return nil, grpcstatus.Error(codes.Unavailable, "connection refused")
	})
	assert.ErrorIs(t, err, ledger.ErrUnavailable)
	assert.Equal(t, 3, calls, "connectivity failures use the full retry budget")

	calls = 0
	_, err = evaluateWithRetry(context.Background(), 2, time.Second, func(context.Context) ([]byte, error) {
		calls++
		return nil, errors.New("chaincode: transaction tx-1 does not exist")
	})
	assert.ErrorIs(t, err, ledger.ErrRejected)
	assert.Equal(t, 1, calls, "a deterministic rejection is never retried")
}

func TestEvaluateRecoversAfterTransientFailure(t *testing.T) {
	calls := 0
	raw, err := evaluateWithRetry(context.Background(), 2, time.Second, func(context.Context) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, grpcstatus.Error(codes.Unavailable, "connection refused")
		}
		return []byte(`{"txId":"tx-1"}`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, `{"txId":"tx-1"}`, string(raw))
}

func TestEvaluateStopsWhenParentContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := evaluateWithRetry(ctx, 5, time.Second, func(context.Context) ([]byte, error) {
		calls++
		cancel()
		return nil, grpcstatus.Error(codes.Unavailable, "connection refused")
	})
	assert.ErrorIs(t, err, ledger.ErrUnavailable)
	assert.Equal(t, 1, calls, "a cancelled caller must not keep burning retries")
}
