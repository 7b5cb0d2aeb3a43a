package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landchain-vn/landchain/modules/registry/domain/entities/landparcel"
	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
)

var splitOriginal = &landparcel.LandParcel{
	ID:             "LAND-1",
	OwnerID:        "CIT-001",
	Area:           500,
	Location:       "Tan Phu commune",
	LandUsePurpose: "agricultural",
	LegalStatus:    "clean",
}

var splitTx = &transaction.Transaction{
	TxID:         "tx-1",
	Type:         transaction.TypeSplit,
	LandParcelID: "LAND-1",
	FromOwnerID:  "CIT-001",
}

func TestDeriveSplitParcelsInheritance(t *testing.T) {
	derived, updatesOriginal, err := DeriveSplitParcels(splitOriginal, splitTx, []landparcel.NewParcelSpec{
		{ID: "LAND-2", Area: 200, LegalStatus: "clean"},
		{ID: "LAND-3", Area: 300, OwnerID: "CIT-999"},
	})
	require.NoError(t, err)
	assert.False(t, updatesOriginal)
	require.Len(t, derived, 2)

	for _, spec := range derived {
		assert.Equal(t, "CIT-001", spec.OwnerID, "owner comes from the requester, caller input is overridden")
		assert.Equal(t, "Tan Phu commune", spec.Location)
		assert.Equal(t, "agricultural", spec.LandUsePurpose)
		assert.Empty(t, spec.LegalStatus, "legal status is cleared pending re-assessment")
	}
}

func TestDeriveSplitParcelsUpdatesPrecedeCreates(t *testing.T) {
	derived, updatesOriginal, err := DeriveSplitParcels(splitOriginal, splitTx, []landparcel.NewParcelSpec{
		{ID: "LAND-2", Area: 100},
		{ID: "LAND-1", Area: 250},
		{ID: "LAND-3", Area: 150},
	})
	require.NoError(t, err)
	assert.True(t, updatesOriginal)

	require.Len(t, derived, 3)
	assert.Equal(t, "LAND-1", derived[0].ID)
	assert.Equal(t, "LAND-2", derived[1].ID, "creation order is preserved")
	assert.Equal(t, "LAND-3", derived[2].ID)
}

func TestDeriveSplitParcelsRejectsBadInput(t *testing.T) {
	_, _, err := DeriveSplitParcels(splitOriginal, splitTx, nil)
	require.ErrorIs(t, err, transaction.ErrValidation)

	_, _, err = DeriveSplitParcels(splitOriginal, splitTx, []landparcel.NewParcelSpec{
		{ID: "LAND-2", Area: 100},
		{ID: "LAND-2", Area: 200},
	})
	require.ErrorIs(t, err, transaction.ErrValidation)

	_, _, err = DeriveSplitParcels(splitOriginal, splitTx, []landparcel.NewParcelSpec{
		{Area: 100},
	})
	require.ErrorIs(t, err, transaction.ErrValidation)
}

func TestValidateMergeSelection(t *testing.T) {
	parcels := []string{"LAND-1", "LAND-2", "LAND-3"}

	require.NoError(t, ValidateMergeSelection(parcels, "LAND-2"))
	require.ErrorIs(t, ValidateMergeSelection(parcels, "LAND-9"), transaction.ErrValidation)
	require.ErrorIs(t, ValidateMergeSelection(parcels, ""), transaction.ErrValidation)
}

func TestEnrichMergedParcel(t *testing.T) {
	tx := &transaction.Transaction{FromOwnerID: "CIT-001", ParcelIDs: []string{"LAND-1", "LAND-2"}}
	surviving := &landparcel.LandParcel{
		ID:             "LAND-1",
		Location:       "Tan Phu commune",
		LandUsePurpose: "agricultural",
	}

	merged := EnrichMergedParcel(landparcel.NewParcelSpec{ID: "other", Area: 900, LegalStatus: "clean"}, tx, surviving, "LAND-1")
	assert.Equal(t, "LAND-1", merged.ID)
	assert.Equal(t, "CIT-001", merged.OwnerID)
	assert.Equal(t, "Tan Phu commune", merged.Location)
	assert.Equal(t, "agricultural", merged.LandUsePurpose)
	assert.Empty(t, merged.LegalStatus)

	withoutRecord := EnrichMergedParcel(landparcel.NewParcelSpec{Area: 900, Location: "caller location"}, tx, nil, "LAND-2")
	assert.Equal(t, "LAND-2", withoutRecord.ID)
	assert.Equal(t, "caller location", withoutRecord.Location, "caller values stand when the record is unavailable")
}
