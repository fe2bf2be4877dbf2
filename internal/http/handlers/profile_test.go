package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"server/internal/access"
	"server/internal/adapter/repo"
	"server/internal/middleware"
	"server/internal/sqlinline"
)

type profileTestSQL struct {
	plan    string
	credits int
}

func (p *profileTestSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (p *profileTestSQL) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	if query != sqlinline.QSelectProfileByID {
		return NewSimpleRow(nil)
	}
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	return NewSimpleRow(func(dest ...any) error {
		*(dest[0].(*string)) = "user-1"
		*(dest[1].(*string)) = "user@example.com"
		*(dest[2].(*string)) = "Test User"
		*(dest[3].(*string)) = p.plan
		*(dest[4].(*int)) = p.credits
		*(dest[5].(*int)) = 5
		*(dest[6].(*time.Time)) = now.Add(20 * 24 * time.Hour)
		*(dest[7].(*string)) = ""
		*(dest[8].(*time.Time)) = now.Add(-30 * 24 * time.Hour)
		*(dest[9].(*time.Time)) = now
		return nil
	})
}

func (p *profileTestSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func newProfileTestApp(t *testing.T, fsql *profileTestSQL) *App {
	t.Helper()
	logger := zerolog.Nop()
	profiles := repo.NewProfileRepository(fsql)
	usage := repo.NewUsageRepository(fsql)
	provider := access.NewProvider(profiles, time.Minute, logger)
	outbox := access.NewOutbox(8, logger)
	t.Cleanup(outbox.Close)
	return &App{
		Logger:   logger,
		Provider: provider,
		Gate:     access.NewGate(provider, usage, outbox, time.Second, logger),
		Profiles: profiles,
		Usage:    usage,
	}
}

func TestMe_RendersProfile(t *testing.T) {
	app := newProfileTestApp(t, &profileTestSQL{plan: "pro", credits: 420})

	req := httptest.NewRequest("GET", "/v1/me", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))
	rr := httptest.NewRecorder()

	app.Me(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["plan"] != "pro" {
		t.Fatalf("plan = %v", payload["plan"])
	}
	if payload["credits_remaining"] != float64(420) {
		t.Fatalf("credits_remaining = %v", payload["credits_remaining"])
	}
	if payload["unlimited"] != false {
		t.Fatalf("pro must be metered: %#v", payload)
	}
	if payload["max_file_bytes"] != float64(200<<20) {
		t.Fatalf("max_file_bytes = %v", payload["max_file_bytes"])
	}
}

func TestMe_EnterpriseUnlimited(t *testing.T) {
	app := newProfileTestApp(t, &profileTestSQL{plan: "enterprise", credits: 0})

	req := httptest.NewRequest("GET", "/v1/me", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))
	rr := httptest.NewRecorder()

	app.Me(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["unlimited"] != true {
		t.Fatalf("enterprise must render unlimited: %#v", payload)
	}
}

func TestMe_RequiresUser(t *testing.T) {
	app := newProfileTestApp(t, &profileTestSQL{plan: "free", credits: 25})

	req := httptest.NewRequest("GET", "/v1/me", nil)
	rr := httptest.NewRecorder()

	app.Me(rr, req)

	if rr.Code != 401 {
		t.Fatalf("unexpected status code: got %d, want 401", rr.Code)
	}
}
