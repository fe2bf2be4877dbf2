package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/sqlinline"
)

type statsTestSQL struct {
	totals [5]int64
}

func (s *statsTestSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (s *statsTestSQL) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	if query != sqlinline.QStatsSummary {
		return NewSimpleRow(nil)
	}
	return NewSimpleRow(func(dest ...any) error {
		for i := range s.totals {
			*(dest[i].(*int64)) = s.totals[i]
		}
		return nil
	})
}

func (s *statsTestSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func TestStatsSummary(t *testing.T) {
	app := &App{SQL: &statsTestSQL{totals: [5]int64{120, 900, 30, 45, 870}}}

	req := httptest.NewRequest("GET", "/v1/stats/summary", nil)
	rr := httptest.NewRecorder()

	app.StatsSummary(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload map[string]int64
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["total_users"] != 120 {
		t.Fatalf("total_users = %d", payload["total_users"])
	}
	if payload["operations_succeeded"] != 900 || payload["operations_failed"] != 30 {
		t.Fatalf("unexpected operation counts: %#v", payload)
	}
	if payload["credits_consumed"] != 870 {
		t.Fatalf("credits_consumed = %d", payload["credits_consumed"])
	}
}

func TestStatsSummary_ScanFailure(t *testing.T) {
	app := &App{SQL: &failingSQL{}}

	req := httptest.NewRequest("GET", "/v1/stats/summary", nil)
	rr := httptest.NewRecorder()

	app.StatsSummary(rr, req)

	if rr.Code != 500 {
		t.Fatalf("unexpected status code: got %d, want 500", rr.Code)
	}
}

type failingSQL struct{}

func (failingSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, pgx.ErrNoRows
}

func (failingSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return NewSimpleRow(nil)
}

func (failingSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}
