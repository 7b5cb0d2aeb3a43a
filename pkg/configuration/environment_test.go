package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndorsementOptions_OrgList(t *testing.T) {
	opts := &EndorsementOptions{MemberOrgs: "Org1MSP, Org2MSP ,Org3MSP"}
	assert.Equal(t, []string{"Org1MSP", "Org2MSP", "Org3MSP"}, opts.OrgList())

	opts = &EndorsementOptions{MemberOrgs: " , "}
	assert.Empty(t, opts.OrgList())
	require.Error(t, opts.Validate())
}

func TestLedgerOptions_Validate(t *testing.T) {
	opts := &LedgerOptions{SubmitTimeout: 1, EvaluateTimeout: 1, EvaluateRetries: 0}
	require.NoError(t, opts.Validate())

	opts.EvaluateRetries = -1
	require.Error(t, opts.Validate())

	opts = &LedgerOptions{SubmitTimeout: 0, EvaluateTimeout: 1}
	require.Error(t, opts.Validate())
}

func TestConfiguration_LogrusLogLevel(t *testing.T) {
	cases := map[string]string{
		"silent":  "panic",
		"error":   "error",
		"warn":    "warning",
		"info":    "info",
		"debug":   "debug",
		"unknown": "info",
	}
	for input, expected := range cases {
		c := &Configuration{LogLevel: input}
		assert.Equal(t, expected, c.LogrusLogLevel().String(), "LOG_LEVEL=%s", input)
	}
}
