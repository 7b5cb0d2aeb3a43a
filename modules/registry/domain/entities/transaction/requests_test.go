package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsEncodeEmptyListsAsJSONArrays(t *testing.T) {
	args, err := TransferRequest{LandParcelID: "LAND-1", ToOwnerID: "CIT-002"}.Args()
	require.NoError(t, err)
	assert.Equal(t, []string{"LAND-1", "CIT-002", "[]", ""}, args,
		"empty document lists are sent as [], never omitted")

	args, err = MergeRequest{ParcelIDs: []string{"LAND-1", "LAND-2"}}.Args()
	require.NoError(t, err)
	assert.Equal(t, []string{`["LAND-1","LAND-2"]`, "[]", ""}, args)
}

func TestArgsCarryDocumentsAndReason(t *testing.T) {
	args, err := ChangePurposeRequest{
		LandParcelID: "LAND-1",
		NewPurpose:   "residential",
		DocumentIDs:  []string{"doc-1", "doc-2"},
		Reason:       "rezoning",
	}.Args()
	require.NoError(t, err)
	assert.Equal(t, []string{"LAND-1", "residential", `["doc-1","doc-2"]`, "rezoning"}, args)
}

func TestRequestValidation(t *testing.T) {
	cases := []struct {
		name string
		req  ChangeRequest
		ok   bool
	}{
		{"transfer ok", TransferRequest{LandParcelID: "L", ToOwnerID: "U"}, true},
		{"transfer missing recipient", TransferRequest{LandParcelID: "L"}, false},
		{"split ok", SplitRequest{LandParcelID: "L"}, true},
		{"split missing parcel", SplitRequest{}, false},
		{"merge ok", MergeRequest{ParcelIDs: []string{"L1", "L2"}}, true},
		{"merge single parcel", MergeRequest{ParcelIDs: []string{"L1"}}, false},
		{"change purpose missing purpose", ChangePurposeRequest{LandParcelID: "L"}, false},
		{"reissue ok", ReissueRequest{LandParcelID: "L"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestFunctionNames(t *testing.T) {
	assert.Equal(t, "CreateTransferRequest", TransferRequest{}.FunctionName())
	assert.Equal(t, "CreateSplitRequest", SplitRequest{}.FunctionName())
	assert.Equal(t, "CreateMergeRequest", MergeRequest{}.FunctionName())
	assert.Equal(t, "CreateChangePurposeRequest", ChangePurposeRequest{}.FunctionName())
	assert.Equal(t, "CreateReissueRequest", ReissueRequest{}.FunctionName())
}
