package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landchain-vn/landchain/modules/registry/domain/entities/transaction"
	"github.com/landchain-vn/landchain/pkg/eventbus"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, notification Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return n.err
}

func (n *recordingNotifier) notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}

func (n *recordingNotifier) recipients() map[string]bool {
	out := map[string]bool{}
	for _, sent := range n.notifications() {
		out[sent.RecipientID] = true
	}
	return out
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}

func newFanout(t *testing.T, notifier Notifier) (eventbus.EventBus, *NotificationService) {
	t.Helper()
	log := logrus.New()
	bus := eventbus.NewEventPublisher(log)
	svc := NewNotificationService(notifier, log)
	svc.Register(bus)
	return bus, svc
}

func TestTransferRequestedNotifiesBothParties(t *testing.T) {
	notifier := &recordingNotifier{}
	bus, svc := newFanout(t, notifier)

	bus.Publish(transaction.TransferRequestedEvent{
		TxID:         "tx-1",
		LandParcelID: "LAND-1",
		FromOwnerID:  "CIT-001",
		ToOwnerID:    "CIT-002",
	})
	svc.Drain()

	sent := notifier.notifications()
	require.Len(t, sent, 2)
	assert.True(t, notifier.recipients()["CIT-001"])
	assert.True(t, notifier.recipients()["CIT-002"])
	assert.NotEqual(t, sent[0].Message, sent[1].Message,
		"each side gets role-specific copy")
}

func TestTransferRequestedAttemptsBothDespiteFailures(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("push channel down")}
	bus, svc := newFanout(t, notifier)

	bus.Publish(transaction.TransferRequestedEvent{
		TxID:        "tx-1",
		FromOwnerID: "CIT-001",
		ToOwnerID:   "CIT-002",
	})
	svc.Drain()

	assert.Len(t, notifier.notifications(), 2, "a failed attempt must not suppress the next one")
}

type blockingNotifier struct {
	release chan struct{}
	calls   chan Notification
}

func (n *blockingNotifier) Notify(_ context.Context, notification Notification) error {
	n.calls <- notification
	<-n.release
	return nil
}

func TestFanoutDoesNotBlockPublisher(t *testing.T) {
	notifier := &blockingNotifier{
		release: make(chan struct{}),
		calls:   make(chan Notification, 2),
	}
	bus, svc := newFanout(t, notifier)

	published := make(chan struct{})
	go func() {
		bus.Publish(transaction.TransferRequestedEvent{
			TxID:        "tx-1",
			FromOwnerID: "CIT-001",
			ToOwnerID:   "CIT-002",
		})
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("publish must return while deliveries are still in flight")
	}

	for i := 0; i < 2; i++ {
		select {
		case <-notifier.calls:
		case <-time.After(time.Second):
			t.Fatal("both delivery attempts must still happen")
		}
	}
	close(notifier.release)
	svc.Drain()
}

func TestTransferDeclinedNotifiesBothParties(t *testing.T) {
	notifier := &recordingNotifier{}
	bus, svc := newFanout(t, notifier)

	bus.Publish(transaction.TransferConfirmedEvent{
		TxID:         "tx-1",
		LandParcelID: "LAND-1",
		FromOwnerID:  "CIT-001",
		ToOwnerID:    "CIT-002",
		Accepted:     false,
	})
	svc.Drain()

	sent := notifier.notifications()
	require.Len(t, sent, 2)
	for _, n := range sent {
		assert.Equal(t, "TRANSFER_DECLINED", n.Kind)
	}
}

func TestProcessedDecisionCopy(t *testing.T) {
	notifier := &recordingNotifier{}
	bus, svc := newFanout(t, notifier)

	bus.Publish(transaction.ProcessedEvent{TxID: "tx-1", OwnerID: "CIT-001", Decision: transaction.DecisionSupplement})
	svc.Drain()

	sent := notifier.notifications()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Message, "additional documents")
}

func TestApprovedTransferNotifiesRecipientToo(t *testing.T) {
	notifier := &recordingNotifier{}
	bus, svc := newFanout(t, notifier)

	bus.Publish(transaction.ApprovedEvent{
		TxID:        "tx-1",
		Type:        transaction.TypeTransfer,
		FromOwnerID: "CIT-001",
		ToOwnerID:   "CIT-002",
	})
	svc.Drain()
	require.Len(t, notifier.notifications(), 2)

	notifier.reset()
	bus.Publish(transaction.ApprovedEvent{
		TxID:        "tx-2",
		Type:        transaction.TypeSplit,
		FromOwnerID: "CIT-001",
	})
	svc.Drain()
	require.Len(t, notifier.notifications(), 1, "non-transfer approvals notify the requester only")
}

func TestRejectedCarriesReason(t *testing.T) {
	notifier := &recordingNotifier{}
	bus, svc := newFanout(t, notifier)

	bus.Publish(transaction.RejectedEvent{
		TxID:        "tx-1",
		Type:        transaction.TypeChangePurpose,
		FromOwnerID: "CIT-001",
		Reason:      "zoning conflict",
	})
	svc.Drain()

	sent := notifier.notifications()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Message, "zoning conflict")
}
