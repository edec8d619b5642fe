package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/nexaa/auth-service/internal/core/domain"
)

type stubAuditRepo struct {
	events    []domain.AuthEvent
	lastLimit int64
}

func (r *stubAuditRepo) InsertEvent(context.Context, *domain.AuthEvent) error {
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, limit int64) ([]domain.AuthEvent, error) {
	r.lastLimit = limit
	if int64(len(r.events)) > limit {
		return r.events[:limit], nil
	}
	return r.events, nil
}

func TestAdminHandler_ListEvents(t *testing.T) {
	repo := &stubAuditRepo{events: []domain.AuthEvent{
		{Kind: domain.AuthEventSignIn, UserID: "1", Email: "a@example.com", Timestamp: time.Now().UTC()},
		{Kind: domain.AuthEventSignInDenied, Email: "b@example.com", Timestamp: time.Now().UTC()},
	}}
	h := NewAdminHandler(repo)

	c, rec := newTestContext(t, http.MethodGet, "/auth/admin/events", "")
	if err := h.ListEvents(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.lastLimit != defaultEventLimit {
		t.Fatalf("expected default limit %d, got %d", defaultEventLimit, repo.lastLimit)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("expected 2 events, got %v", resp["data"])
	}
}

func TestAdminHandler_ListEvents_LimitClamped(t *testing.T) {
	repo := &stubAuditRepo{}
	h := NewAdminHandler(repo)

	c, rec := newTestContext(t, http.MethodGet, "/auth/admin/events?limit=9999", "")
	if err := h.ListEvents(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.lastLimit != maxEventLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxEventLimit, repo.lastLimit)
	}
}

func TestAdminHandler_ListEvents_BadLimit(t *testing.T) {
	h := NewAdminHandler(&stubAuditRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/auth/admin/events?limit=-1", "")
	_ = h.ListEvents(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
