package transaction

import "time"

// Organization MSP identifiers of the three channel members. The land
// authority reviews and closes transactions, the commune administrative
// office verifies and forwards them, and citizens originate them.
const (
	OrgAuthorityMSP = "Org1MSP"
	OrgOfficeMSP    = "Org2MSP"
	OrgCitizenMSP   = "Org3MSP"
)

// Type enumerates the five land-change transaction kinds.
type Type string

const (
	TypeTransfer      Type = "TRANSFER"
	TypeSplit         Type = "SPLIT"
	TypeMerge         Type = "MERGE"
	TypeChangePurpose Type = "CHANGE_PURPOSE"
	TypeReissue       Type = "REISSUE"
)

// Types returns every transaction kind in a stable order.
func Types() []Type {
	return []Type{TypeTransfer, TypeSplit, TypeMerge, TypeChangePurpose, TypeReissue}
}

func (t Type) Valid() bool {
	switch t {
	case TypeTransfer, TypeSplit, TypeMerge, TypeChangePurpose, TypeReissue:
		return true
	}
	return false
}

// Status enumerates the workflow states. Status only moves forward along the
// transition graph; APPROVED and REJECTED are terminal.
type Status string

const (
	StatusPending             Status = "PENDING"
	StatusConfirmed           Status = "CONFIRMED"
	StatusForwarded           Status = "FORWARDED"
	StatusVerified            Status = "VERIFIED"
	StatusSupplementRequested Status = "SUPPLEMENT_REQUESTED"
	StatusApproved            Status = "APPROVED"
	StatusRejected            Status = "REJECTED"
)

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Action is an organization-specific step on a transaction.
type Action string

const (
	ActionConfirm Action = "CONFIRM"
	ActionProcess Action = "PROCESS"
	ActionForward Action = "FORWARD"
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

// actorOrg maps each action to the single organization allowed to take it.
var actorOrg = map[Action]string{
	ActionConfirm: OrgCitizenMSP,
	ActionProcess: OrgOfficeMSP,
	ActionForward: OrgOfficeMSP,
	ActionApprove: OrgAuthorityMSP,
	ActionReject:  OrgAuthorityMSP,
}

// allowedFrom is the local copy of the ledger's transition graph, used to
// fail fast with precise client errors. The chaincode remains authoritative.
var allowedFrom = map[Action][]Status{
	ActionConfirm: {StatusPending},
	ActionProcess: {StatusPending, StatusConfirmed, StatusSupplementRequested},
	ActionForward: {StatusConfirmed, StatusVerified},
	ActionApprove: {StatusVerified, StatusForwarded},
	ActionReject:  {StatusPending, StatusConfirmed, StatusForwarded, StatusVerified, StatusSupplementRequested},
}

// ActorOrg returns the MSP identifier permitted to perform the action.
func ActorOrg(action Action) string {
	return actorOrg[action]
}

// CanApply reports whether the action is legal from the given status.
func CanApply(action Action, from Status) bool {
	for _, s := range allowedFrom[action] {
		if s == from {
			return true
		}
	}
	return false
}

// Decision is the commune office's processing outcome.
type Decision string

const (
	DecisionApprove    Decision = "APPROVE"
	DecisionSupplement Decision = "SUPPLEMENT"
	DecisionReject     Decision = "REJECT"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionSupplement, DecisionReject:
		return true
	}
	return false
}

// Transaction mirrors the ledger record. The orchestration layer never
// mutates it directly; every change goes through a ledger call.
type Transaction struct {
	TxID          string    `json:"txId"`
	Type          Type      `json:"type"`
	LandParcelID  string    `json:"landParcelId"`
	ParcelIDs     []string  `json:"parcelIds,omitempty"`
	FromOwnerID   string    `json:"fromOwnerId"`
	ToOwnerID     string    `json:"toOwnerId,omitempty"`
	Status        Status    `json:"status"`
	DocumentIDs   []string  `json:"documentIds,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Organizations []string  `json:"organizations,omitempty"`
	UserID        string    `json:"userId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EndorsingOrgs returns the transaction's explicit organization list, or the
// full member set when the record carries none. The result is never empty for
// a non-empty member set.
func (t *Transaction) EndorsingOrgs(memberOrgs []string) []string {
	if len(t.Organizations) > 0 {
		return t.Organizations
	}
	return memberOrgs
}
