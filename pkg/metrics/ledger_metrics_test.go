package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLedgerCall(t *testing.T) {
	before := testutil.ToFloat64(ledgerCalls.WithLabelValues("submit", "CreateTransferRequest", "ok"))

	ObserveLedgerCall("submit", "CreateTransferRequest", "ok", 20*time.Millisecond)
	ObserveLedgerCall("submit", "CreateTransferRequest", "ok", 35*time.Millisecond)
	ObserveLedgerCall("evaluate", "QueryTransactionByID", "unavailable", time.Second)

	assert.Equal(t, before+2, testutil.ToFloat64(ledgerCalls.WithLabelValues("submit", "CreateTransferRequest", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ledgerCalls.WithLabelValues("evaluate", "QueryTransactionByID", "unavailable")))
}
