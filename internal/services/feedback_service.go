package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reout/internal/models/db_models"
	sm "reout/internal/models/session_models"
	"reout/internal/repositories"
	"reout/pkg/logger"
	"reout/pkg/utils"
)

type FeedbackServiceInterface interface {
	// UpsertRating creates the session's ledger row on first call and only rewrites its rating afterwards.
	UpsertRating(ctx context.Context, session *sm.PlanningSession, rating int) (sm.RowHandle, error)
	// UpdateComment rewrites the comment of the session's existing row.
	UpdateComment(ctx context.Context, session *sm.PlanningSession, comment string) error
	GetFeedback(ctx context.Context, page, pageSize int) ([]db_models.LedgerRow, error)
}

type FeedbackService struct {
	log          *logger.Logger
	feedbackRepo repositories.FeedbackRepositoryInterface
	timeout      time.Duration
	now          func() time.Time
}

func NewFeedbackService(log *logger.Logger, feedbackRepo repositories.FeedbackRepositoryInterface, timeout time.Duration) *FeedbackService {
	return &FeedbackService{
		log:          log.With("service", "FeedbackService"),
		feedbackRepo: feedbackRepo,
		timeout:      timeout,
		now:          time.Now,
	}
}

func (s *FeedbackService) UpsertRating(ctx context.Context, session *sm.PlanningSession, rating int) (sm.RowHandle, error) {
	if rating < 1 || rating > 5 {
		return "", utils.ErrInvalidRating
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if session.FeedbackRowHandle != nil {
		handle := *session.FeedbackRowHandle
		if err := s.feedbackRepo.UpdateRating(ctx, handle, rating); err != nil {
			return "", s.ledgerError("update rating", err)
		}
		return handle, nil
	}

	row := &db_models.LedgerRow{
		SubmittedAt: s.now().UTC().Truncate(time.Second),
		City:        session.City,
		Rating:      rating,
		Comment:     "",
	}
	handle, err := s.feedbackRepo.AppendRow(ctx, row)
	if err != nil {
		// handle stays unset so the next attempt appends again
		return "", s.ledgerError("append row", err)
	}
	session.FeedbackRowHandle = &handle
	s.log.Info("feedback row created", "session_id", session.ID, "city", session.City)
	return handle, nil
}

func (s *FeedbackService) UpdateComment(ctx context.Context, session *sm.PlanningSession, comment string) error {
	if session.FeedbackRowHandle == nil {
		return utils.ErrCommentBeforeRating
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.feedbackRepo.UpdateComment(ctx, *session.FeedbackRowHandle, comment); err != nil {
		return s.ledgerError("update comment", err)
	}
	return nil
}

func (s *FeedbackService) GetFeedback(ctx context.Context, page, pageSize int) ([]db_models.LedgerRow, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.feedbackRepo.ListFeedback(ctx, page, pageSize)
	if err != nil {
		return nil, s.ledgerError("list feedback", err)
	}
	return rows, nil
}

func (s *FeedbackService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *FeedbackService) ledgerError(op string, err error) error {
	s.log.Error("ledger call failed", "op", op, "error", err.Error())
	if errors.Is(err, utils.ErrLedgerRowNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", utils.ErrLedgerTransport, op, err)
}
