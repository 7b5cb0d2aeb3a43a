package dtos

import (
	"github.com/landchain-vn/landchain/modules/registry/domain/entities/landparcel"
	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
)

// Request bodies for the transaction routes. Validation tags catch shape
// errors; business rules live in the domain and the chaincode.

type CreateTransferDTO struct {
	LandParcelID string   `json:"landParcelId" validate:"required"`
	ToOwnerID    string   `json:"toOwnerId" validate:"required"`
	DocumentIDs  []string `json:"documentIds"`
	Reason       string   `json:"reason"`
}

func (d *CreateTransferDTO) ToRequest() transaction.TransferRequest {
	return transaction.TransferRequest{
		LandParcelID: d.LandParcelID,
		ToOwnerID:    d.ToOwnerID,
		DocumentIDs:  d.DocumentIDs,
		Reason:       d.Reason,
	}
}

// ConfirmTransferDTO carries the recipient's decision. IsAccepted is a
// pointer so an omitted field fails validation instead of silently declining.
type ConfirmTransferDTO struct {
	TxID       string `json:"txId" validate:"required"`
	IsAccepted *bool  `json:"isAccepted" validate:"required"`
}

type CreateSplitDTO struct {
	LandParcelID string   `json:"landParcelId" validate:"required"`
	DocumentIDs  []string `json:"documentIds"`
	Reason       string   `json:"reason"`
}

func (d *CreateSplitDTO) ToRequest() transaction.SplitRequest {
	return transaction.SplitRequest{
		LandParcelID: d.LandParcelID,
		DocumentIDs:  d.DocumentIDs,
		Reason:       d.Reason,
	}
}

type CreateMergeDTO struct {
	ParcelIDs   []string `json:"parcelIds" validate:"required,min=2"`
	DocumentIDs []string `json:"documentIds"`
	Reason      string   `json:"reason"`
}

func (d *CreateMergeDTO) ToRequest() transaction.MergeRequest {
	return transaction.MergeRequest{
		ParcelIDs:   d.ParcelIDs,
		DocumentIDs: d.DocumentIDs,
		Reason:      d.Reason,
	}
}

type CreateChangePurposeDTO struct {
	LandParcelID string   `json:"landParcelId" validate:"required"`
	NewPurpose   string   `json:"newPurpose" validate:"required"`
	DocumentIDs  []string `json:"documentIds"`
	Reason       string   `json:"reason"`
}

func (d *CreateChangePurposeDTO) ToRequest() transaction.ChangePurposeRequest {
	return transaction.ChangePurposeRequest{
		LandParcelID: d.LandParcelID,
		NewPurpose:   d.NewPurpose,
		DocumentIDs:  d.DocumentIDs,
		Reason:       d.Reason,
	}
}

type CreateReissueDTO struct {
	LandParcelID string   `json:"landParcelId" validate:"required"`
	DocumentIDs  []string `json:"documentIds"`
	Reason       string   `json:"reason"`
}

func (d *CreateReissueDTO) ToRequest() transaction.ReissueRequest {
	return transaction.ReissueRequest{
		LandParcelID: d.LandParcelID,
		DocumentIDs:  d.DocumentIDs,
		Reason:       d.Reason,
	}
}

type ProcessDTO struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVE SUPPLEMENT REJECT"`
	Reason   string `json:"reason"`
}

type NewParcelDTO struct {
	ID          string  `json:"id" validate:"required"`
	Area        float64 `json:"area" validate:"required,gt=0"`
	Location    string  `json:"location"`
	Purpose     string  `json:"landUsePurpose"`
	LegalStatus string  `json:"legalStatus"`
}

func (d *NewParcelDTO) ToSpec() landparcel.NewParcelSpec {
	return landparcel.NewParcelSpec{
		ID:             d.ID,
		Area:           d.Area,
		Location:       d.Location,
		LandUsePurpose: d.Purpose,
		LegalStatus:    d.LegalStatus,
	}
}

type ApproveSplitDTO struct {
	NewParcels []NewParcelDTO `json:"newParcels" validate:"required,min=1,dive"`
}

func (d *ApproveSplitDTO) ToSpecs() []landparcel.NewParcelSpec {
	specs := make([]landparcel.NewParcelSpec, 0, len(d.NewParcels))
	for i := range d.NewParcels {
		specs = append(specs, d.NewParcels[i].ToSpec())
	}
	return specs
}

// ApproveMergeDTO names the surviving parcel and describes the merged result.
// The merged spec's ID is ignored; the surviving parcel's ID wins.
type ApproveMergeDTO struct {
	SelectedLandID string       `json:"selectedLandId" validate:"required"`
	NewParcel      NewParcelDTO `json:"newParcel" validate:"required"`
}

type ApproveReissueDTO struct {
	NewCertificateID string `json:"newCertificateId" validate:"required"`
}

type RejectDTO struct {
	Reason string `json:"reason" validate:"required"`
}
