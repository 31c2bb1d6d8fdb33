package runtime

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"post-notify/domain/post"
	"post-notify/errors"
	"post-notify/notifier"
	"post-notify/repositories"
)

type DeliveryConfig struct {
	// Timeout bounds a single delivery attempt.
	Timeout time.Duration
	// MaxAttempts is the total attempt budget before the record is marked
	// terminally failed.
	MaxAttempts int
	Backoff     Backoff
}

func DefaultDeliveryConfig() DeliveryConfig {
	return DeliveryConfig{
		Timeout:     5 * time.Second,
		MaxAttempts: 3,
		Backoff:     DefaultBackoff(),
	}
}

// DeliveryWorker drains the dispatch queue. For each record it resolves the
// page's endpoint, attempts the webhook push under a bounded timeout and
// retries with backoff. A record that exhausts its attempt budget is marked
// failed, never sent: "gave up" and "delivered" stay distinguishable.
//
// A worker owns an id for the whole attempt loop, so a given record has at
// most one in-flight attempt at a time.
type DeliveryWorker struct {
	log      *slog.Logger
	queue    <-chan int64
	repo     repositories.IPostRepository
	pages    notifier.IPageDirectory
	notifier notifier.INotifier
	cfg      DeliveryConfig
	rng      *rand.Rand

	// now is injectable for tests.
	now func() time.Time
}

func NewDeliveryWorker(
	log *slog.Logger,
	queue <-chan int64,
	repo repositories.IPostRepository,
	pages notifier.IPageDirectory,
	n notifier.INotifier,
	cfg DeliveryConfig,
) *DeliveryWorker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &DeliveryWorker{
		log:      log,
		queue:    queue,
		repo:     repo,
		pages:    pages,
		notifier: n,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run consumes ids until the context is canceled.
func (w *DeliveryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case id := <-w.queue:
			w.deliver(ctx, id)
		}
	}
}

func (w *DeliveryWorker) deliver(ctx context.Context, id int64) {
	p, found, err := w.repo.FindByID(id)
	if err != nil {
		w.log.Error("delivery aborted, record unreadable", "id", id, "error", err)
		return
	}
	if !found {
		w.log.Warn("delivery aborted, record missing", "id", id)
		return
	}
	if p.Delivery.Status != post.DeliveryPending {
		// Already settled by an earlier run; nothing to redo.
		return
	}

	endpoint, ok := w.pages.EndpointFor(p.PageID)
	if !ok {
		w.settleFailure(id, errors.ErrNoEndpoint.Error())
		return
	}

	payload := p.Payload()
	var lastErr error

	for attempt := 1; attempt <= w.cfg.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
		err := w.notifier.Send(attemptCtx, endpoint, payload)
		cancel()

		if err == nil {
			sentAt := w.now()
			if _, uerr := w.repo.Update(id, func(p *post.Post) error {
				return p.MarkDispatched(sentAt)
			}); uerr != nil {
				w.log.Error("delivered but failed to record outcome", "id", id, "error", uerr)
				return
			}
			w.log.Info("notification sent", "id", id, "page", p.PageID, "attempt", attempt)
			return
		}

		lastErr = err
		w.log.Warn("delivery attempt failed", "id", id, "attempt", attempt, "error", err)
		if _, uerr := w.repo.Update(id, func(p *post.Post) error {
			p.RecordAttempt(err)
			return nil
		}); uerr != nil {
			w.log.Error("failed to record delivery attempt", "id", id, "error", uerr)
		}

		if attempt < w.cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				// Shutdown mid-retry: the record stays pending with its
				// attempts recorded.
				return
			case <-time.After(w.cfg.Backoff.NextDelay(attempt, w.rng)):
			}
		}
	}

	w.settleFailure(id, lastErr.Error())
}

func (w *DeliveryWorker) settleFailure(id int64, reason string) {
	if _, err := w.repo.Update(id, func(p *post.Post) error {
		return p.MarkDeliveryFailed(reason)
	}); err != nil {
		w.log.Error("failed to record terminal delivery failure", "id", id, "error", err)
		return
	}
	w.log.Error("notification terminally failed", "id", id, "reason", reason)
}
