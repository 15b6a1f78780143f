package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"reout/internal/models/db_models"
	sm "reout/internal/models/session_models"
	"reout/pkg/utils"
)

// fakeLedger is an in-memory ledger that records every call.
type fakeLedger struct {
	mu      sync.Mutex
	rows    []db_models.LedgerRow
	appends int
	writes  int

	appendErr error
	updateErr error
}

func (f *fakeLedger) AppendRow(ctx context.Context, row *db_models.LedgerRow) (sm.RowHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.appendErr != nil {
		return "", f.appendErr
	}
	f.appends++
	f.rows = append(f.rows, *row)
	return sm.RowHandle(fmt.Sprintf("row-%d", len(f.rows))), nil
}

func (f *fakeLedger) row(handle sm.RowHandle) (*db_models.LedgerRow, error) {
	var idx int
	if _, err := fmt.Sscanf(string(handle), "row-%d", &idx); err != nil || idx < 1 || idx > len(f.rows) {
		return nil, utils.ErrLedgerRowNotFound
	}
	return &f.rows[idx-1], nil
}

func (f *fakeLedger) UpdateRating(ctx context.Context, handle sm.RowHandle, rating int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.updateErr != nil {
		return f.updateErr
	}
	r, err := f.row(handle)
	if err != nil {
		return err
	}
	r.Rating = rating
	return nil
}

func (f *fakeLedger) UpdateComment(ctx context.Context, handle sm.RowHandle, comment string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.updateErr != nil {
		return f.updateErr
	}
	r, err := f.row(handle)
	if err != nil {
		return err
	}
	r.Comment = comment
	return nil
}

func (f *fakeLedger) ListFeedback(ctx context.Context, page, pageSize int) ([]db_models.LedgerRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db_models.LedgerRow, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

// fakeGenerator returns canned plans and counts calls.
type fakeGenerator struct {
	mu      sync.Mutex
	plans   []string
	err     error
	calls   int
	prompts []string
	models  []string
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, model string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	if f.err != nil {
		return "", f.err
	}
	if len(f.plans) == 0 {
		return "", errors.New("fakeGenerator: no plan queued")
	}
	plan := f.plans[0]
	f.plans = f.plans[1:]
	return plan, nil
}

func (f *fakeGenerator) ListModels(ctx context.Context) ([]string, error) {
	return []string{"gpt-4o-mini", "gpt-4o"}, nil
}
