package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"reout/internal/models/db_models"
	sm "reout/internal/models/session_models"
	"reout/pkg/utils"
)

const (
	ratingColumn  = "C"
	commentColumn = "D"
)

// rowRangePattern pulls the first row number out of an A1 range such as Feedback!A7:D7.
var rowRangePattern = regexp.MustCompile(`![A-Z]+(\d+)(?::[A-Z]+\d+)?$`)

// SheetsFeedbackRepository keeps the ledger in a Google Sheets tab with columns A..D =
// timestamp, city, rating, comment. The handle of a row is the range reported by the
// append call, which the Sheets API computes atomically on the server.
type SheetsFeedbackRepository struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	tab           string
}

func NewSheetsFeedbackRepository(ctx context.Context, spreadsheetID, tab string, opts ...option.ClientOption) (*SheetsFeedbackRepository, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id required")
	}
	if tab == "" {
		tab = "Feedback"
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}
	return &SheetsFeedbackRepository{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		tab:           tab,
	}, nil
}

func (r *SheetsFeedbackRepository) AppendRow(ctx context.Context, row *db_models.LedgerRow) (sm.RowHandle, error) {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{{
			db_models.FormatLedgerTime(row.SubmittedAt),
			row.City,
			row.Rating,
			row.Comment,
		}},
	}
	resp, err := r.values.Append(r.spreadsheetID, r.a1("A:D"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if resp.Updates == nil || resp.Updates.UpdatedRange == "" {
		return "", errors.New("sheets append returned no updated range")
	}
	if _, err := rowNumber(sm.RowHandle(resp.Updates.UpdatedRange)); err != nil {
		return "", err
	}
	return sm.RowHandle(resp.Updates.UpdatedRange), nil
}

func (r *SheetsFeedbackRepository) UpdateRating(ctx context.Context, handle sm.RowHandle, rating int) error {
	return r.updateCell(ctx, handle, ratingColumn, rating)
}

func (r *SheetsFeedbackRepository) UpdateComment(ctx context.Context, handle sm.RowHandle, comment string) error {
	return r.updateCell(ctx, handle, commentColumn, comment)
}

func (r *SheetsFeedbackRepository) updateCell(ctx context.Context, handle sm.RowHandle, column string, value interface{}) error {
	row, err := rowNumber(handle)
	if err != nil {
		return err
	}
	cell := r.a1(fmt.Sprintf("%s%d", column, row))
	_, err = r.values.Update(r.spreadsheetID, cell, &sheets.ValueRange{Values: [][]interface{}{{value}}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// ListFeedback returns rows newest first. Rows that do not parse (a header row, say) are skipped.
func (r *SheetsFeedbackRepository) ListFeedback(ctx context.Context, page, pageSize int) ([]db_models.LedgerRow, error) {
	resp, err := r.values.Get(r.spreadsheetID, r.a1("A:D")).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	rows := make([]db_models.LedgerRow, 0, len(resp.Values))
	for i, raw := range resp.Values {
		row, ok := parseSheetRow(raw)
		if !ok {
			continue
		}
		row.Handle = fmt.Sprintf("%s!A%d:D%d", r.quotedTab(), i+1, i+1)
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SubmittedAt.After(rows[j].SubmittedAt)
	})

	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []db_models.LedgerRow{}, nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], nil
}

func (r *SheetsFeedbackRepository) quotedTab() string {
	if strings.ContainsAny(r.tab, " '!") {
		return "'" + strings.ReplaceAll(r.tab, "'", "''") + "'"
	}
	return r.tab
}

func (r *SheetsFeedbackRepository) a1(cells string) string {
	return r.quotedTab() + "!" + cells
}

func rowNumber(handle sm.RowHandle) (int, error) {
	m := rowRangePattern.FindStringSubmatch(string(handle))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", utils.ErrLedgerRowNotFound, handle)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", utils.ErrLedgerRowNotFound, handle)
	}
	return n, nil
}

func parseSheetRow(raw []interface{}) (db_models.LedgerRow, bool) {
	if len(raw) < 3 {
		return db_models.LedgerRow{}, false
	}
	ts, err := time.Parse(db_models.LedgerTimeLayout, fmt.Sprint(raw[0]))
	if err != nil {
		return db_models.LedgerRow{}, false
	}
	rating, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(raw[2])))
	if err != nil {
		return db_models.LedgerRow{}, false
	}
	row := db_models.LedgerRow{
		SubmittedAt: ts,
		City:        fmt.Sprint(raw[1]),
		Rating:      rating,
	}
	if len(raw) > 3 {
		row.Comment = fmt.Sprint(raw[3])
	}
	return row, true
}
