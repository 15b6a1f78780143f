package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/api/option"

	"reout/internal/models/db_models"
	sm "reout/internal/models/session_models"
	"reout/pkg/utils"
)

type sheetsCall struct {
	Method string
	Path   string
	Body   map[string]any
}

type fakeSheets struct {
	mu    sync.Mutex
	calls []sheetsCall
	get   string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	call := sheetsCall{Method: r.Method, Path: r.URL.Path}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1","updates":{"updatedRange":"Feedback!A7:D7","updatedRows":1}}`))
	case r.Method == http.MethodPut:
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1","updatedCells":1}`))
	case r.Method == http.MethodGet:
		_, _ = w.Write([]byte(f.get))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestSheetsRepo(t *testing.T, f *fakeSheets) *SheetsFeedbackRepository {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	repo, err := NewSheetsFeedbackRepository(context.Background(), "sheet-1", "Feedback",
		option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestSheetsRepository_AppendUsesReturnedRange(t *testing.T) {
	f := &fakeSheets{}
	repo := newTestSheetsRepo(t, f)

	handle, err := repo.AppendRow(context.Background(), &db_models.LedgerRow{
		SubmittedAt: time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC),
		City:        "Austin",
		Rating:      4,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if handle != "Feedback!A7:D7" {
		t.Fatalf("handle: want=%q got=%q", "Feedback!A7:D7", handle)
	}

	values := f.calls[0].Body["values"].([]any)[0].([]any)
	if values[0] != "2026-05-01T18:30:00Z" || values[1] != "Austin" || values[2] != float64(4) || values[3] != "" {
		t.Fatalf("unexpected appended values: %v", values)
	}
}

func TestSheetsRepository_UpdatesTargetSingleCell(t *testing.T) {
	f := &fakeSheets{}
	repo := newTestSheetsRepo(t, f)
	ctx := context.Background()

	if err := repo.UpdateRating(ctx, "Feedback!A7:D7", 2); err != nil {
		t.Fatalf("update rating: %v", err)
	}
	if err := repo.UpdateComment(ctx, "Feedback!A7:D7", "Great!"); err != nil {
		t.Fatalf("update comment: %v", err)
	}

	if len(f.calls) != 2 {
		t.Fatalf("calls: want=2 got=%d", len(f.calls))
	}
	if !strings.HasSuffix(f.calls[0].Path, "/values/Feedback!C7") {
		t.Fatalf("rating path: %s", f.calls[0].Path)
	}
	if !strings.HasSuffix(f.calls[1].Path, "/values/Feedback!D7") {
		t.Fatalf("comment path: %s", f.calls[1].Path)
	}
}

func TestSheetsRepository_BadHandle(t *testing.T) {
	f := &fakeSheets{}
	repo := newTestSheetsRepo(t, f)

	err := repo.UpdateComment(context.Background(), "row seven", "x")
	if !errors.Is(err, utils.ErrLedgerRowNotFound) {
		t.Fatalf("expected ErrLedgerRowNotFound, got=%v", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("no request expected, got=%d", len(f.calls))
	}
}

func TestSheetsRepository_ListSkipsHeaderAndSortsNewestFirst(t *testing.T) {
	f := &fakeSheets{get: `{"range":"Feedback!A1:D4","values":[
		["timestamp","city","rating","comment"],
		["2026-01-01T10:00:00Z","Oslo","3"],
		["2026-01-03T10:00:00Z","Lima","5","loved it"],
		["2026-01-02T10:00:00Z","Kyiv","4",""]
	]}`}
	repo := newTestSheetsRepo(t, f)

	rows, err := repo.ListFeedback(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: want=3 got=%d", len(rows))
	}
	if rows[0].City != "Lima" || rows[0].Comment != "loved it" || rows[0].Handle != "Feedback!A3:D3" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[2].City != "Oslo" || rows[2].Comment != "" {
		t.Fatalf("unexpected last row: %+v", rows[2])
	}
}

func TestRowNumber(t *testing.T) {
	cases := map[sm.RowHandle]int{
		"Feedback!A7:D7":      7,
		"'My Tab'!A12:D12":    12,
		"Feedback!A120":       120,
	}
	for handle, want := range cases {
		got, err := rowNumber(handle)
		if err != nil {
			t.Fatalf("rowNumber(%q): %v", handle, err)
		}
		if got != want {
			t.Fatalf("rowNumber(%q): want=%d got=%d", handle, want, got)
		}
	}
}
