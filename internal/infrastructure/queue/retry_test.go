package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

// flakyPublisher fails the first failures calls, then succeeds.
type flakyPublisher struct {
	mu        sync.Mutex
	failures  int
	calls     int
	delivered []domain.ProfileCreatedEvent
}

func (p *flakyPublisher) PublishProfileCreated(_ context.Context, event domain.ProfileCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.failures {
		return errors.New("broker unavailable")
	}
	p.delivered = append(p.delivered, event)
	return nil
}

func (p *flakyPublisher) deliveredCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.delivered)
}

func TestRetryingPublisher_InlineSuccess(t *testing.T) {
	inner := &flakyPublisher{}
	p := NewRetryingPublisher(inner, 2, 3, time.Millisecond, zerolog.Nop())

	if err := p.PublishProfileCreated(context.Background(), domain.ProfileCreatedEvent{UserID: "u1"}); err != nil {
		t.Fatalf("expected inline success, got %v", err)
	}
	if inner.deliveredCount() != 1 {
		t.Fatalf("expected one delivery, got %d", inner.deliveredCount())
	}
}

func TestRetryingPublisher_RedeliversAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inner := &flakyPublisher{failures: 2}
	p := NewRetryingPublisher(inner, 2, 5, time.Millisecond, zerolog.Nop())
	p.Start(ctx)

	// Inline attempt fails and the event moves to the retry path.
	if err := p.PublishProfileCreated(ctx, domain.ProfileCreatedEvent{UserID: "u1"}); err == nil {
		t.Fatalf("expected inline failure to surface")
	}

	deadline := time.After(2 * time.Second)
	for inner.deliveredCount() == 0 {
		select {
		case <-deadline:
			t.Fatalf("event was not redelivered")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRetryingPublisher_GivesUpAfterBudget(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inner := &flakyPublisher{failures: 100}
	p := NewRetryingPublisher(inner, 1, 2, time.Millisecond, zerolog.Nop())
	p.Start(ctx)

	_ = p.PublishProfileCreated(ctx, domain.ProfileCreatedEvent{UserID: "u1"})

	// 1 inline + 2 retries, then the budget is spent.
	deadline := time.After(2 * time.Second)
	for {
		inner.mu.Lock()
		calls := inner.calls
		inner.mu.Unlock()
		if calls >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("retries never ran, calls=%d", calls)
		case <-time.After(5 * time.Millisecond):
		}
	}

	time.Sleep(50 * time.Millisecond)
	inner.mu.Lock()
	defer inner.mu.Unlock()
	if inner.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", inner.calls)
	}
}

func TestRetryingPublisher_ShardIsStablePerUser(t *testing.T) {
	p := NewRetryingPublisher(&flakyPublisher{}, 8, 1, time.Millisecond, zerolog.Nop())

	first := p.shardIndex("acct-42")
	for i := 0; i < 10; i++ {
		if p.shardIndex("acct-42") != first {
			t.Fatalf("shard index not stable")
		}
	}
}
