package services

import (
	"fmt"

	"github.com/landchain-vn/landchain/modules/registry/domain/entities/landparcel"
	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
)

// DeriveSplitParcels enriches caller-supplied parcel specs for a SPLIT
// approval. Each spec inherits the owner from the transaction's requester and
// location and land-use purpose from the original parcel; legal status is
// cleared pending re-assessment. Specs updating the original parcel (same ID)
// are emitted before creations because the ledger applies the update-in-place
// first; input order is preserved within each partition.
//
// The second return value reports whether the original parcel is among the
// emitted updates. Omitting it is permitted but unusual, so callers log it.
func DeriveSplitParcels(
	original *landparcel.LandParcel,
	tx *transaction.Transaction,
	specs []landparcel.NewParcelSpec,
) ([]landparcel.NewParcelSpec, bool, error) {
	if len(specs) == 0 {
		return nil, false, transaction.NewValidationError("split approval requires at least one new parcel")
	}

	seen := make(map[string]struct{}, len(specs))
	updates := make([]landparcel.NewParcelSpec, 0, 1)
	creates := make([]landparcel.NewParcelSpec, 0, len(specs))
	for _, spec := range specs {
		if spec.ID == "" {
			return nil, false, transaction.NewValidationError("new parcel id must not be empty")
		}
		if _, dup := seen[spec.ID]; dup {
			return nil, false, transaction.NewValidationError(fmt.Sprintf("duplicate new parcel id %s", spec.ID))
		}
		seen[spec.ID] = struct{}{}

		spec.OwnerID = tx.FromOwnerID
		spec.Location = original.Location
		spec.LandUsePurpose = original.LandUsePurpose
		spec.LegalStatus = ""

		if spec.ID == original.ID {
			updates = append(updates, spec)
		} else {
			creates = append(creates, spec)
		}
	}

	return append(updates, creates...), len(updates) > 0, nil
}

// ValidateMergeSelection rejects a MERGE approval whose surviving parcel ID
// is not one of the source parcels.
func ValidateMergeSelection(parcelIDs []string, selectedLandID string) error {
	if selectedLandID == "" {
		return transaction.NewValidationError("selectedLandID is required")
	}
	for _, id := range parcelIDs {
		if id == selectedLandID {
			return nil
		}
	}
	return transaction.NewValidationError(
		fmt.Sprintf("selectedLandID %s is not among the merged parcels", selectedLandID))
}

// EnrichMergedParcel pins the merged spec to the surviving parcel's ID and
// fills inherited fields. The surviving parcel record may be nil when the
// re-read failed; caller-supplied values then stand.
func EnrichMergedParcel(
	spec landparcel.NewParcelSpec,
	tx *transaction.Transaction,
	surviving *landparcel.LandParcel,
	selectedLandID string,
) landparcel.NewParcelSpec {
	spec.ID = selectedLandID
	spec.OwnerID = tx.FromOwnerID
	spec.LegalStatus = ""
	if surviving != nil {
		if spec.Location == "" {
			spec.Location = surviving.Location
		}
		if spec.LandUsePurpose == "" {
			spec.LandUsePurpose = surviving.LandUsePurpose
		}
	}
	return spec
}
