package notifications

import (
	"context"
	"log/slog"
	"time"

	"craveconnect/internal/middleware"
	"craveconnect/internal/models"
	"craveconnect/internal/observability"
	"craveconnect/internal/repository"
)

const (
	outboxBatchSize   = 50
	outboxMaxAttempts = 5
	// Upper bound on back-to-back batches per wakeup.
	outboxMaxBatches = 10
)

// Publisher pushes a delivered notification to live sessions.
type Publisher interface {
	PublishNotification(ctx context.Context, n *models.Notification) error
}

// OutboxDispatcher turns committed outbox rows into notifications. It polls on an interval
// and can be woken early after a commit.
type OutboxDispatcher struct {
	repo      repository.NotificationRepository
	publisher Publisher
	interval  time.Duration
	wake      chan struct{}
}

// NewOutboxDispatcher returns a dispatcher. publisher may be nil.
func NewOutboxDispatcher(repo repository.NotificationRepository, publisher Publisher, interval time.Duration) *OutboxDispatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &OutboxDispatcher{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		wake:      make(chan struct{}, 1),
	}
}

// Wake schedules a drain without waiting for the next tick.
func (d *OutboxDispatcher) Wake() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run drains the outbox until ctx is cancelled.
func (d *OutboxDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	middleware.Logger.Info("outbox dispatcher started", slog.Duration("interval", d.interval))
	for {
		select {
		case <-ctx.Done():
			middleware.Logger.Info("outbox dispatcher stopped")
			return
		case <-ticker.C:
		case <-d.wake:
		}
		for i := 0; i < outboxMaxBatches; i++ {
			n, err := d.DrainOnce(ctx)
			if err != nil {
				middleware.Logger.Error("outbox drain failed", slog.String("error", err.Error()))
				break
			}
			if n < outboxBatchSize || ctx.Err() != nil {
				break
			}
		}
	}
}

// DrainOnce processes one batch of pending rows and returns how many it attempted.
func (d *OutboxDispatcher) DrainOnce(ctx context.Context) (int, error) {
	pending, err := d.repo.PendingOutbox(ctx, outboxBatchSize)
	if err != nil {
		return 0, err
	}
	for i := range pending {
		d.deliver(ctx, &pending[i])
	}
	return len(pending), nil
}

func (d *OutboxDispatcher) deliver(ctx context.Context, entry *models.NotificationOutbox) {
	notification, err := d.repo.DeliverOutbox(ctx, entry)
	if err != nil {
		dead := entry.Attempts+1 >= outboxMaxAttempts
		if ferr := d.repo.FailOutbox(ctx, entry.ID, err, dead); ferr != nil {
			middleware.Logger.Error("outbox failure not recorded",
				slog.Uint64("outbox_id", uint64(entry.ID)),
				slog.String("error", ferr.Error()),
			)
		}
		result := "failed"
		if dead {
			result = "dead"
		}
		observability.OutboxProcessed.WithLabelValues(result).Inc()
		middleware.Logger.Warn("outbox delivery failed",
			slog.Uint64("outbox_id", uint64(entry.ID)),
			slog.Int("attempts", entry.Attempts+1),
			slog.Bool("dead", dead),
			slog.String("error", err.Error()),
		)
		return
	}
	if notification == nil {
		// Another dispatcher got there first.
		observability.OutboxProcessed.WithLabelValues("skipped").Inc()
		return
	}

	observability.OutboxProcessed.WithLabelValues("delivered").Inc()
	observability.OutboxLag.Observe(time.Since(entry.CreatedAt).Seconds())

	if d.publisher == nil {
		return
	}
	if err := d.publisher.PublishNotification(ctx, notification); err != nil {
		middleware.Logger.Warn("live notification push failed",
			slog.Uint64("notification_id", uint64(notification.ID)),
			slog.String("error", err.Error()),
		)
	}
}
