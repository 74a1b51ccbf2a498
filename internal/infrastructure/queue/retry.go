package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/orderdispatcher/auth-service/internal/api/metrics"
	"github.com/orderdispatcher/auth-service/internal/core/domain"
	"github.com/orderdispatcher/auth-service/internal/core/ports"
)

const (
	defaultWorkers  = 4
	defaultAttempts = 5
	defaultDelay    = 5 * time.Second
	channelBuffer   = 256
)

// RetryingPublisher wraps a publisher with a bounded asynchronous retry
// policy. A failed publish is reported to the caller and the event is handed
// to a background worker that re-attempts delivery; events for the same user
// always land on the same worker, preserving per-account ordering.
//
// Delivery is at-least-once while the process lives. There is no durable
// outbox: events still in flight when the process exits are lost, which the
// caller accepts by treating registration as complete regardless.
type RetryingPublisher struct {
	inner    ports.ProfilePublisher
	workers  []chan domain.ProfileCreatedEvent
	attempts int
	delay    time.Duration
	log      zerolog.Logger
}

// NewRetryingPublisher wraps inner with numWorkers retry workers. Zero or
// negative tuning values fall back to defaults.
func NewRetryingPublisher(inner ports.ProfilePublisher, numWorkers, attempts int, delay time.Duration, log zerolog.Logger) *RetryingPublisher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if delay <= 0 {
		delay = defaultDelay
	}
	p := &RetryingPublisher{
		inner:    inner,
		workers:  make([]chan domain.ProfileCreatedEvent, numWorkers),
		attempts: attempts,
		delay:    delay,
		log:      log,
	}
	for i := range p.workers {
		p.workers[i] = make(chan domain.ProfileCreatedEvent, channelBuffer)
	}
	return p
}

// Start launches the retry workers. Workers stop when ctx is cancelled.
func (p *RetryingPublisher) Start(ctx context.Context) {
	for i, ch := range p.workers {
		go p.runWorker(ctx, i, ch)
	}
}

// PublishProfileCreated attempts an inline publish. On failure the event is
// queued for background retries and the error is returned so the caller can
// record the miss.
func (p *RetryingPublisher) PublishProfileCreated(ctx context.Context, event domain.ProfileCreatedEvent) error {
	err := p.inner.PublishProfileCreated(ctx, event)
	if err == nil {
		metrics.EventsPublishedTotal.WithLabelValues("ok").Inc()
		return nil
	}
	metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
	p.enqueue(event)
	return err
}

// enqueue hands the event to its worker without blocking; when the worker's
// buffer is full the event is dropped with an error log.
func (p *RetryingPublisher) enqueue(event domain.ProfileCreatedEvent) {
	select {
	case p.workers[p.shardIndex(event.UserID)] <- event:
	default:
		metrics.EventsDroppedTotal.Inc()
		p.log.Error().
			Str("user_id", event.UserID).
			Msg("retry queue full, profile created event dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (p *RetryingPublisher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(p.workers)
}

func (p *RetryingPublisher) runWorker(ctx context.Context, id int, ch <-chan domain.ProfileCreatedEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			p.retry(ctx, id, event)
		}
	}
}

// retry re-attempts delivery with a fixed delay between attempts, giving up
// after the configured attempt budget.
func (p *RetryingPublisher) retry(ctx context.Context, workerID int, event domain.ProfileCreatedEvent) {
	for attempt := 1; attempt <= p.attempts; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.delay):
		}

		if err := p.inner.PublishProfileCreated(ctx, event); err != nil {
			p.log.Warn().Err(err).
				Str("user_id", event.UserID).
				Int("worker_id", workerID).
				Int("attempt", attempt).
				Msg("profile created event republish failed")
			continue
		}

		metrics.EventsPublishedTotal.WithLabelValues("retried").Inc()
		p.log.Info().
			Str("user_id", event.UserID).
			Int("attempt", attempt).
			Msg("profile created event delivered on retry")
		return
	}

	metrics.EventsDroppedTotal.Inc()
	p.log.Error().
		Str("user_id", event.UserID).
		Int("attempts", p.attempts).
		Msg("profile created event dropped after retry budget")
}
