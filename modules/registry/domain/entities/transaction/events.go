package transaction

// Domain events published after a ledger write settles. Subscribers (the
// notification fanout) run best-effort; publishing happens only once the
// primary result is committed.

type TransferRequestedEvent struct {
	TxID         string
	LandParcelID string
	FromOwnerID  string
	ToOwnerID    string
}

type TransferConfirmedEvent struct {
	TxID         string
	LandParcelID string
	FromOwnerID  string
	ToOwnerID    string
	Accepted     bool
}

type RequestCreatedEvent struct {
	TxID         string
	Type         Type
	LandParcelID string
	OwnerID      string
}

type ProcessedEvent struct {
	TxID     string
	OwnerID  string
	Decision Decision
}

type ForwardedEvent struct {
	TxID    string
	OwnerID string
}

type ApprovedEvent struct {
	TxID        string
	Type        Type
	FromOwnerID string
	ToOwnerID   string
}

type RejectedEvent struct {
	TxID        string
	Type        Type
	FromOwnerID string
	ToOwnerID   string
	Reason      string
}
