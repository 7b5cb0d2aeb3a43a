package transaction

import "encoding/json"

// ChangeRequest is the sealed set of typed creation payloads, one per
// transaction kind. Each request knows the chaincode function it targets and
// serializes its own ordered argument list; list-valued fields are always
// sent as JSON arrays, never omitted.
type ChangeRequest interface {
	Type() Type
	FunctionName() string
	Validate() error
	Args() ([]string, error)

	sealed()
}

func marshalList(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// TransferRequest asks the ledger to start an ownership transfer.
type TransferRequest struct {
	LandParcelID string
	ToOwnerID    string
	DocumentIDs  []string
	Reason       string
}

func (r TransferRequest) Type() Type           { return TypeTransfer }
func (r TransferRequest) FunctionName() string { return "CreateTransferRequest" }
func (r TransferRequest) sealed()              {}

func (r TransferRequest) Validate() error {
	if r.LandParcelID == "" {
		return NewValidationError("landParcelId is required")
	}
	if r.ToOwnerID == "" {
		return NewValidationError("toOwnerId is required")
	}
	return nil
}

func (r TransferRequest) Args() ([]string, error) {
	docs, err := marshalList(r.DocumentIDs)
	if err != nil {
		return nil, err
	}
	return []string{r.LandParcelID, r.ToOwnerID, docs, r.Reason}, nil
}

// SplitRequest asks the ledger to start splitting one parcel. The new parcel
// layout is supplied at approval time, not here.
type SplitRequest struct {
	LandParcelID string
	DocumentIDs  []string
	Reason       string
}

func (r SplitRequest) Type() Type           { return TypeSplit }
func (r SplitRequest) FunctionName() string { return "CreateSplitRequest" }
func (r SplitRequest) sealed()              {}

func (r SplitRequest) Validate() error {
	if r.LandParcelID == "" {
		return NewValidationError("landParcelId is required")
	}
	return nil
}

func (r SplitRequest) Args() ([]string, error) {
	docs, err := marshalList(r.DocumentIDs)
	if err != nil {
		return nil, err
	}
	return []string{r.LandParcelID, docs, r.Reason}, nil
}

// MergeRequest asks the ledger to start merging two or more parcels.
type MergeRequest struct {
	ParcelIDs   []string
	DocumentIDs []string
	Reason      string
}

func (r MergeRequest) Type() Type           { return TypeMerge }
func (r MergeRequest) FunctionName() string { return "CreateMergeRequest" }
func (r MergeRequest) sealed()              {}

func (r MergeRequest) Validate() error {
	if len(r.ParcelIDs) < 2 {
		return NewValidationError("merge requires at least two parcel ids")
	}
	return nil
}

func (r MergeRequest) Args() ([]string, error) {
	parcels, err := marshalList(r.ParcelIDs)
	if err != nil {
		return nil, err
	}
	docs, err := marshalList(r.DocumentIDs)
	if err != nil {
		return nil, err
	}
	return []string{parcels, docs, r.Reason}, nil
}

// ChangePurposeRequest asks the ledger to change a parcel's land-use purpose.
type ChangePurposeRequest struct {
	LandParcelID string
	NewPurpose   string
	DocumentIDs  []string
	Reason       string
}

func (r ChangePurposeRequest) Type() Type           { return TypeChangePurpose }
func (r ChangePurposeRequest) FunctionName() string { return "CreateChangePurposeRequest" }
func (r ChangePurposeRequest) sealed()              {}

func (r ChangePurposeRequest) Validate() error {
	if r.LandParcelID == "" {
		return NewValidationError("landParcelId is required")
	}
	if r.NewPurpose == "" {
		return NewValidationError("newPurpose is required")
	}
	return nil
}

func (r ChangePurposeRequest) Args() ([]string, error) {
	docs, err := marshalList(r.DocumentIDs)
	if err != nil {
		return nil, err
	}
	return []string{r.LandParcelID, r.NewPurpose, docs, r.Reason}, nil
}

// ReissueRequest asks the ledger to reissue a parcel's certificate.
type ReissueRequest struct {
	LandParcelID string
	DocumentIDs  []string
	Reason       string
}

func (r ReissueRequest) Type() Type           { return TypeReissue }
func (r ReissueRequest) FunctionName() string { return "CreateReissueRequest" }
func (r ReissueRequest) sealed()              {}

func (r ReissueRequest) Validate() error {
	if r.LandParcelID == "" {
		return NewValidationError("landParcelId is required")
	}
	return nil
}

func (r ReissueRequest) Args() ([]string, error) {
	docs, err := marshalList(r.DocumentIDs)
	if err != nil {
		return nil, err
	}
	return []string{r.LandParcelID, docs, r.Reason}, nil
}
