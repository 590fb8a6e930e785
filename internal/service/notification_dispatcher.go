package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

// DispatcherConfig holds settings for the notification dispatcher.
type DispatcherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	Backoff      time.Duration
	Lease        time.Duration
}

// NotificationDispatcher drains the outbox and hands events to a publisher.
// Delivery is at-least-once: an entry whose lease expires before it is
// marked is claimed again.
type NotificationDispatcher struct {
	outbox    port.OutboxRepository
	publisher port.NotificationPublisher
	cfg       DispatcherConfig
	log       *zap.Logger
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewNotificationDispatcher creates a new NotificationDispatcher.
func NewNotificationDispatcher(outbox port.OutboxRepository, publisher port.NotificationPublisher, cfg DispatcherConfig, log *zap.Logger) *NotificationDispatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 5 * time.Second
	}
	if cfg.Lease <= 0 {
		cfg.Lease = time.Minute
	}
	return &NotificationDispatcher{
		outbox:    outbox,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until the
// batch in flight has been marked.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	d.log.Info("notification dispatcher started",
		zap.Duration("poll", d.cfg.PollInterval),
		zap.Int("batch", d.cfg.BatchSize),
		zap.Int("max_attempts", d.cfg.MaxAttempts))

	for {
		select {
		case <-ctx.Done():
			d.log.Info("notification dispatcher shutting down")
			d.wg.Wait()
			return
		case <-ticker.C:
			if _, err := d.RunOnce(ctx); err != nil && ctx.Err() == nil {
				d.log.Error("outbox claim failed", zap.Error(err))
			}
		}
	}
}

// RunOnce claims one batch and attempts delivery of each entry. It returns
// the number of entries delivered.
func (d *NotificationDispatcher) RunOnce(ctx context.Context) (int, error) {
	entries, err := d.outbox.ClaimBatch(ctx, d.cfg.BatchSize, d.cfg.Lease)
	if err != nil {
		return 0, err
	}
	d.wg.Add(1)
	defer d.wg.Done()

	// Marking uses a detached context so a shutdown mid-batch still records
	// the outcome of deliveries that went out.
	markCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sent := 0
	for i := range entries {
		if d.deliver(markCtx, &entries[i]) {
			sent++
		}
	}
	return sent, nil
}

func (d *NotificationDispatcher) deliver(ctx context.Context, e *domain.OutboxEntry) bool {
	log := d.log.With(zap.String("outbox_id", e.ID.String()),
		zap.String("kind", string(e.Kind)), zap.Int("attempt", e.Attempts))

	ev, err := e.Decode()
	if err != nil {
		log.Error("undecodable outbox entry", zap.Error(err))
		if mErr := d.outbox.MarkDead(ctx, e.ID, err.Error()); mErr != nil {
			log.Error("mark dead failed", zap.Error(mErr))
		}
		return false
	}

	if err := d.publisher.Publish(ctx, ev); err != nil {
		if e.Attempts >= d.cfg.MaxAttempts {
			log.Error("notification dead-lettered", zap.Error(err))
			if mErr := d.outbox.MarkDead(ctx, e.ID, err.Error()); mErr != nil {
				log.Error("mark dead failed", zap.Error(mErr))
			}
			return false
		}
		next := d.now().Add(d.backoff(e.Attempts))
		log.Warn("notification delivery failed", zap.Error(err), zap.Time("next_attempt", next))
		if mErr := d.outbox.MarkFailed(ctx, e.ID, err.Error(), next); mErr != nil {
			log.Error("mark failed failed", zap.Error(mErr))
		}
		return false
	}

	if err := d.outbox.MarkSent(ctx, e.ID); err != nil {
		log.Error("mark sent failed", zap.Error(err))
	}
	return true
}

// backoff doubles per attempt, capped at an hour.
func (d *NotificationDispatcher) backoff(attempt int) time.Duration {
	delay := d.cfg.Backoff
	for i := 1; i < attempt && delay < time.Hour; i++ {
		delay *= 2
	}
	if delay > time.Hour {
		delay = time.Hour
	}
	return delay
}
