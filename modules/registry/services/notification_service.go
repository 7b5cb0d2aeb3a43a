package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
	"github.com/landchain-vn/landchain/pkg/eventbus"
)

// notifyTimeout bounds a single delivery attempt. A stuck channel must not
// hold a worker goroutine forever.
const notifyTimeout = 5 * time.Second

// Notification is one delivery attempt to one recipient.
type Notification struct {
	ID          uuid.UUID
	RecipientID string
	Kind        string
	Message     string
	TxID        string
	CreatedAt   time.Time
}

// Notifier delivers notifications to recipients. Delivery is at-most-once:
// the fanout never retries and never blocks the workflow on a failure.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the application log. It stands in for
// an external push or mail channel and never fails.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, notification Notification) error {
	n.log.WithFields(logrus.Fields{
		"notificationId": notification.ID,
		"recipientId":    notification.RecipientID,
		"kind":           notification.Kind,
		"txId":           notification.TxID,
	}).Info(notification.Message)
	return nil
}

// NotificationService subscribes to transaction lifecycle events and fans
// role-specific notifications out to the affected parties. Each attempt runs
// on its own goroutine so a slow channel never delays the caller's response;
// failures are logged and swallowed, since the ledger write that raised the
// event has already settled and must not appear to fail.
type NotificationService struct {
	notifier Notifier
	log      *logrus.Logger
	inflight sync.WaitGroup
}

func NewNotificationService(notifier Notifier, log *logrus.Logger) *NotificationService {
	return &NotificationService{notifier: notifier, log: log}
}

// Register subscribes the fanout handlers on the bus.
func (s *NotificationService) Register(bus eventbus.EventBus) {
	bus.Subscribe(s.onTransferRequested)
	bus.Subscribe(s.onTransferConfirmed)
	bus.Subscribe(s.onRequestCreated)
	bus.Subscribe(s.onProcessed)
	bus.Subscribe(s.onForwarded)
	bus.Subscribe(s.onApproved)
	bus.Subscribe(s.onRejected)
}

// Drain waits for in-flight deliveries. Called on shutdown and by tests;
// request handling never waits on it.
func (s *NotificationService) Drain() {
	s.inflight.Wait()
}

func (s *NotificationService) send(recipientID, kind, txID, message string) {
	if recipientID == "" {
		return
	}
	n := Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Kind:        kind,
		Message:     message,
		TxID:        txID,
		CreatedAt:   time.Now(),
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"recipientId": recipientID,
				"kind":        kind,
				"txId":        txID,
			}).Warn("notification delivery failed")
		}
	}()
}

// onTransferRequested notifies both sides of a new transfer: the requester
// gets a receipt, the recipient a call to confirm. Exactly one attempt each.
func (s *NotificationService) onTransferRequested(e transaction.TransferRequestedEvent) {
	s.send(e.FromOwnerID, "TRANSFER_REQUESTED", e.TxID,
		fmt.Sprintf("Your transfer request for parcel %s has been recorded.", e.LandParcelID))
	s.send(e.ToOwnerID, "TRANSFER_OFFERED", e.TxID,
		fmt.Sprintf("Parcel %s has been offered to you. Please confirm or decline the transfer.", e.LandParcelID))
}

func (s *NotificationService) onTransferConfirmed(e transaction.TransferConfirmedEvent) {
	if e.Accepted {
		s.send(e.FromOwnerID, "TRANSFER_ACCEPTED", e.TxID,
			fmt.Sprintf("The recipient accepted the transfer of parcel %s. The request moves to verification.", e.LandParcelID))
		s.send(e.ToOwnerID, "TRANSFER_ACCEPTED", e.TxID,
			fmt.Sprintf("You accepted the transfer of parcel %s. The request moves to verification.", e.LandParcelID))
		return
	}
	s.send(e.FromOwnerID, "TRANSFER_DECLINED", e.TxID,
		fmt.Sprintf("The recipient declined the transfer of parcel %s. The request is closed.", e.LandParcelID))
	s.send(e.ToOwnerID, "TRANSFER_DECLINED", e.TxID,
		fmt.Sprintf("You declined the transfer of parcel %s. The request is closed.", e.LandParcelID))
}

func (s *NotificationService) onRequestCreated(e transaction.RequestCreatedEvent) {
	s.send(e.OwnerID, "REQUEST_CREATED", e.TxID,
		fmt.Sprintf("Your %s request for parcel %s has been recorded.", e.Type, e.LandParcelID))
}

func (s *NotificationService) onProcessed(e transaction.ProcessedEvent) {
	var message string
	switch e.Decision {
	case transaction.DecisionApprove:
		message = "The commune office verified your request."
	case transaction.DecisionSupplement:
		message = "The commune office needs additional documents for your request."
	case transaction.DecisionReject:
		message = "The commune office rejected your request."
	}
	s.send(e.OwnerID, "REQUEST_PROCESSED", e.TxID, message)
}

func (s *NotificationService) onForwarded(e transaction.ForwardedEvent) {
	s.send(e.OwnerID, "REQUEST_FORWARDED", e.TxID,
		"Your request has been forwarded to the land registration authority.")
}

func (s *NotificationService) onApproved(e transaction.ApprovedEvent) {
	s.send(e.FromOwnerID, "REQUEST_APPROVED", e.TxID,
		fmt.Sprintf("The land registration authority approved your %s request.", e.Type))
	if e.Type == transaction.TypeTransfer {
		s.send(e.ToOwnerID, "REQUEST_APPROVED", e.TxID,
			"The land registration authority approved the transfer. The parcel is now registered to you.")
	}
}

func (s *NotificationService) onRejected(e transaction.RejectedEvent) {
	s.send(e.FromOwnerID, "REQUEST_REJECTED", e.TxID,
		fmt.Sprintf("The land registration authority rejected your %s request: %s", e.Type, e.Reason))
	if e.Type == transaction.TypeTransfer {
		s.send(e.ToOwnerID, "REQUEST_REJECTED", e.TxID,
			fmt.Sprintf("The transfer offered to you was rejected: %s", e.Reason))
	}
}
