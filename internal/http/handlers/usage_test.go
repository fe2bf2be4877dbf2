package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/adapter/repo"
	"server/internal/middleware"
	"server/internal/sqlinline"
)

type usageRow struct {
	id       string
	toolName string
	size     int64
	success  bool
	errMsg   string
	country  string
	created  time.Time
}

type usageTestSQL struct {
	rows []usageRow
}

func (u *usageTestSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (u *usageTestSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return NewSimpleRow(nil)
}

func (u *usageTestSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if query != sqlinline.QListUsageByUser {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("unexpected args count: %d", len(args))
	}
	return &usageRowsIterator{rows: u.rows}, nil
}

type usageRowsIterator struct {
	TestRowsBase
	rows []usageRow
	idx  int
}

func (u *usageRowsIterator) Next() bool {
	if u.idx >= len(u.rows) {
		return false
	}
	u.idx++
	return true
}

func (u *usageRowsIterator) Scan(dest ...any) error {
	if u.idx == 0 || u.idx > len(u.rows) {
		return pgx.ErrNoRows
	}
	row := u.rows[u.idx-1]
	if len(dest) != 7 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	*(dest[0].(*string)) = row.id
	*(dest[1].(*string)) = row.toolName
	*(dest[2].(*int64)) = row.size
	*(dest[3].(*bool)) = row.success
	*(dest[4].(*string)) = row.errMsg
	*(dest[5].(*string)) = row.country
	*(dest[6].(*time.Time)) = row.created
	return nil
}

func (u *usageRowsIterator) Close() {}

func (u *usageRowsIterator) Err() error { return nil }

func TestUsageList_ReturnsHistory(t *testing.T) {
	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	fsql := &usageTestSQL{rows: []usageRow{
		{id: "log-1", toolName: "Merge PDF", size: 1 << 20, success: true, country: "ID", created: created},
		{id: "log-2", toolName: "Compress PDF", size: 2 << 20, success: false, errMsg: "corrupt xref table", created: created.Add(-time.Hour)},
	}}
	app := &App{Usage: repo.NewUsageRepository(fsql)}

	req := httptest.NewRequest("GET", "/v1/usage", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))
	rr := httptest.NewRecorder()

	app.UsageList(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(payload.Items))
	}
	if payload.Items[0]["tool_name"] != "Merge PDF" {
		t.Fatalf("unexpected first entry: %#v", payload.Items[0])
	}
	if payload.Items[1]["error_message"] != "corrupt xref table" {
		t.Fatalf("expected error message on the failed entry: %#v", payload.Items[1])
	}
}

func TestUsageList_RequiresUser(t *testing.T) {
	app := &App{Usage: repo.NewUsageRepository(&usageTestSQL{})}

	req := httptest.NewRequest("GET", "/v1/usage", nil)
	rr := httptest.NewRecorder()

	app.UsageList(rr, req)

	if rr.Code != 401 {
		t.Fatalf("unexpected status code: got %d, want 401", rr.Code)
	}
}
