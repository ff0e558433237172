package sync

import (
	"context"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/models"
)

// notifier delivers EventSink notifications on detached goroutines so a
// slow or panicking sink can never stall or fail a sync pass. Delivery is
// best-effort; a lost notification is acceptable, a blocked pass is not.
type notifier struct {
	sink   EventSink
	logger *logger.Logger
}

func newNotifier(sink EventSink, logger *logger.Logger) *notifier {
	return &notifier{sink: sink, logger: logger}
}

func (n *notifier) syncCompleted(ctx context.Context, result models.SyncResult) {
	if n.sink == nil {
		return
	}

	// Detached from the pass context: cancelling a sync must not cancel
	// the completion notification already owed.
	bg := context.WithoutCancel(ctx)
	go func() {
		defer n.recoverPanic("SyncCompleted")
		n.sink.SyncCompleted(bg, result)
	}()
}

func (n *notifier) mutationExhausted(ctx context.Context, mutation models.QueuedMutation) {
	if n.sink == nil {
		return
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		defer n.recoverPanic("MutationExhausted")
		n.sink.MutationExhausted(bg, mutation)
	}()
}

func (n *notifier) recoverPanic(event string) {
	if r := recover(); r != nil {
		n.logger.Debug().
			Str("func", "notifier."+event).
			Any("panic", r).
			Msg("event sink panicked, notification dropped")
	}
}
