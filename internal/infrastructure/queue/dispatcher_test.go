package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexaa/auth-service/internal/core/domain"
)

type stubAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *stubAuditRepo) ListRecent(context.Context, int64) ([]domain.AuthEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *stubAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &stubAuditRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Enqueue(domain.AuthEvent{
			Kind:      domain.AuthEventSignIn,
			Email:     "alice@example.com",
			Timestamp: time.Now().UTC(),
		})
	}

	waitFor(t, func() bool { return repo.count() == 5 })
}

func TestDispatcher_ShardIsStablePerEmail(t *testing.T) {
	d := NewDispatcher(4, &stubAuditRepo{}, zerolog.Nop())

	first := d.shardIndex("alice@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice@example.com") != first {
			t.Fatalf("shard index must be deterministic per email")
		}
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Workers are not started, so channels fill up; Enqueue must drop
	// instead of stalling the caller.
	d := NewDispatcher(1, &stubAuditRepo{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(domain.AuthEvent{Kind: domain.AuthEventSignUp, Email: "a@example.com"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	repo := &stubAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(domain.AuthEvent{Kind: domain.AuthEventSignUp, Email: "a@example.com"})
	waitFor(t, func() bool { return repo.count() == 1 })

	cancel()
	// After cancellation enqueued events are no longer drained.
	time.Sleep(20 * time.Millisecond)
	d.Enqueue(domain.AuthEvent{Kind: domain.AuthEventSignUp, Email: "a@example.com"})
	time.Sleep(50 * time.Millisecond)
	if repo.count() != 1 {
		t.Fatalf("expected no processing after cancel, got %d events", repo.count())
	}
}
