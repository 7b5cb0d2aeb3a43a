package landparcel

import "time"

// LandParcel mirrors the ledger record for a registered parcel.
type LandParcel struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	Area           float64   `json:"area"`
	Location       string    `json:"location"`
	LandUsePurpose string    `json:"landUsePurpose"`
	LegalStatus    string    `json:"legalStatus"`
	CertificateID  string    `json:"certificateId,omitempty"`
	DocumentIDs    []string  `json:"documentIds,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewParcelSpec describes a parcel resulting from a SPLIT or MERGE approval.
// It is ephemeral: enriched with inherited fields at approval time and sent
// to the ledger, never persisted by this layer. A spec whose ID equals the
// original parcel's ID is an update-in-place; any other ID creates a parcel.
type NewParcelSpec struct {
	ID             string  `json:"id"`
	Area           float64 `json:"area"`
	OwnerID        string  `json:"ownerId,omitempty"`
	Location       string  `json:"location,omitempty"`
	LandUsePurpose string  `json:"landUsePurpose,omitempty"`
	LegalStatus    string  `json:"legalStatus"`
}
