package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reout/internal/models/db_models"
	sm "reout/internal/models/session_models"
	"reout/pkg/utils"
)

// FeedbackRepositoryInterface is the external feedback ledger.
// AppendRow must hand back the handle of the row it created in the same call;
// handles are never derived from row counts.
type FeedbackRepositoryInterface interface {
	AppendRow(ctx context.Context, row *db_models.LedgerRow) (sm.RowHandle, error)
	UpdateRating(ctx context.Context, handle sm.RowHandle, rating int) error
	UpdateComment(ctx context.Context, handle sm.RowHandle, comment string) error
	ListFeedback(ctx context.Context, page, pageSize int) ([]db_models.LedgerRow, error)
}

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Migrate creates or updates the ledger table.
func (r *FeedbackRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&db_models.LedgerRow{})
}

func (r *FeedbackRepository) AppendRow(ctx context.Context, row *db_models.LedgerRow) (sm.RowHandle, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", err
	}
	return sm.RowHandle(row.ID.String()), nil
}

func (r *FeedbackRepository) UpdateRating(ctx context.Context, handle sm.RowHandle, rating int) error {
	return r.updateColumn(ctx, handle, "rating", rating)
}

func (r *FeedbackRepository) UpdateComment(ctx context.Context, handle sm.RowHandle, comment string) error {
	return r.updateColumn(ctx, handle, "comment", comment)
}

func (r *FeedbackRepository) updateColumn(ctx context.Context, handle sm.RowHandle, column string, value any) error {
	id, err := uuid.Parse(string(handle))
	if err != nil {
		return fmt.Errorf("%w: %q", utils.ErrLedgerRowNotFound, handle)
	}
	res := r.db.WithContext(ctx).
		Model(&db_models.LedgerRow{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", utils.ErrLedgerRowNotFound, id)
	}
	return nil
}

func (r *FeedbackRepository) ListFeedback(ctx context.Context, page, pageSize int) ([]db_models.LedgerRow, error) {
	var rows []db_models.LedgerRow
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("submitted_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Handle = rows[i].ID.String()
	}
	return rows, nil
}
