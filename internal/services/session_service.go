package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	sm "reout/internal/models/session_models"
	"reout/pkg/logger"
	mem "reout/pkg/memcache"
	"reout/pkg/utils"
)

type SessionServiceInterface interface {
	CreateSession(ctx context.Context) (*sm.PlanningSession, error)
	GetSession(ctx context.Context, id string) (*sm.PlanningSession, error)
	EndSession(ctx context.Context, id string) error
	AddParticipant(ctx context.Context, id string, record sm.PreferenceRecord) (*sm.PlanningSession, error)
	ClearParticipants(ctx context.Context, id string) (*sm.PlanningSession, error)
	SetCity(ctx context.Context, id string, city string) (*sm.PlanningSession, error)
	Generate(ctx context.Context, id string, model string) (*sm.PlanningSession, error)
	SubmitRating(ctx context.Context, id string, rating int) (*sm.PlanningSession, error)
	SubmitComment(ctx context.Context, id string, comment string) (*sm.PlanningSession, error)
	ListModels(ctx context.Context) ([]string, error)
	ProviderName() string
	DefaultModel() string
}

type SessionOptions struct {
	DefaultModel    string
	ProviderTimeout time.Duration
	Prompt          PromptOptions
}

type SessionService struct {
	log             *logger.Logger
	store           mem.SessionStore
	generator       utils.PlanGeneratorInterface
	feedbackService FeedbackServiceInterface
	opts            SessionOptions
	now             func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is held only while some action on the session is running or waiting.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionService(
	log *logger.Logger,
	store mem.SessionStore,
	generator utils.PlanGeneratorInterface,
	feedbackService FeedbackServiceInterface,
	opts SessionOptions,
) *SessionService {
	return &SessionService{
		log:             log.With("service", "SessionService"),
		store:           store,
		generator:       generator,
		feedbackService: feedbackService,
		opts:            opts,
		now:             time.Now,
		locks:           make(map[string]*sessionLock),
	}
}

func (s *SessionService) CreateSession(ctx context.Context) (*sm.PlanningSession, error) {
	now := s.now().UTC()
	session := &sm.PlanningSession{
		ID:           uuid.NewString(),
		Participants: []sm.PreferenceRecord{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.Info("session created", "session_id", session.ID)
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, id string) (*sm.PlanningSession, error) {
	unlock := s.lock(id)
	defer unlock()
	return s.store.Get(ctx, id)
}

func (s *SessionService) EndSession(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("session ended", "session_id", id)
	return nil
}

func (s *SessionService) AddParticipant(ctx context.Context, id string, record sm.PreferenceRecord) (*sm.PlanningSession, error) {
	return s.mutate(ctx, id, func(session *sm.PlanningSession) error {
		p := record.Normalize()
		if p.Name == "" {
			return utils.ErrEmptyName
		}
		if err := p.CheckVocabulary(); err != nil {
			return fmt.Errorf("%w: %v", utils.ErrInvalidPreference, err)
		}
		session.Participants = append(session.Participants, p)
		return nil
	})
}

func (s *SessionService) ClearParticipants(ctx context.Context, id string) (*sm.PlanningSession, error) {
	return s.mutate(ctx, id, func(session *sm.PlanningSession) error {
		session.Participants = []sm.PreferenceRecord{}
		return nil
	})
}

func (s *SessionService) SetCity(ctx context.Context, id string, city string) (*sm.PlanningSession, error) {
	return s.mutate(ctx, id, func(session *sm.PlanningSession) error {
		session.City = strings.TrimSpace(city)
		return nil
	})
}

// Generate compiles the session into a prompt and stores the provider's plan.
// A previous plan is replaced; the feedback row handle is kept.
func (s *SessionService) Generate(ctx context.Context, id string, model string) (*sm.PlanningSession, error) {
	return s.mutate(ctx, id, func(session *sm.PlanningSession) error {
		if session.City == "" {
			return utils.ErrEmptyCity
		}
		if len(session.Participants) == 0 {
			return utils.ErrNoParticipants
		}

		model = strings.TrimSpace(model)
		if model == "" {
			model = s.opts.DefaultModel
		}
		prompt := BuildPrompt(session.City, session.Participants, s.opts.Prompt)

		callCtx, cancel := s.providerContext(ctx)
		defer cancel()

		start := s.now()
		plan, err := s.generator.Generate(callCtx, prompt, model)
		if err != nil {
			return err
		}
		s.log.Info("plan generated",
			"session_id", session.ID,
			"provider", s.generator.Name(),
			"model", model,
			"participants", len(session.Participants),
			"elapsed", s.now().Sub(start).String(),
		)

		session.LastPlan = &plan
		session.LastModel = model
		return nil
	})
}

func (s *SessionService) SubmitRating(ctx context.Context, id string, rating int) (*sm.PlanningSession, error) {
	return s.mutate(ctx, id, func(session *sm.PlanningSession) error {
		if !session.HasPlan() {
			return utils.ErrNoPlan
		}
		_, err := s.feedbackService.UpsertRating(ctx, session, rating)
		return err
	})
}

func (s *SessionService) SubmitComment(ctx context.Context, id string, comment string) (*sm.PlanningSession, error) {
	return s.mutate(ctx, id, func(session *sm.PlanningSession) error {
		return s.feedbackService.UpdateComment(ctx, session, comment)
	})
}

func (s *SessionService) ListModels(ctx context.Context) ([]string, error) {
	callCtx, cancel := s.providerContext(ctx)
	defer cancel()
	return s.generator.ListModels(callCtx)
}

func (s *SessionService) ProviderName() string { return s.generator.Name() }

func (s *SessionService) DefaultModel() string { return s.opts.DefaultModel }

// mutate runs fn on a copy of the session under the session lock. On success the copy is
// saved; on failure only the error message is recorded on the stored session.
func (s *SessionService) mutate(ctx context.Context, id string, fn func(session *sm.PlanningSession) error) (*sm.PlanningSession, error) {
	unlock := s.lock(id)
	defer unlock()

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		s.recordError(ctx, current, err)
		return nil, err
	}

	working.LastError = ""
	working.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, working); err != nil {
		if current.FeedbackRowHandle == nil && working.FeedbackRowHandle != nil {
			// the ledger row exists but the session lost its handle; a later rating appends again
			s.log.Error("feedback row orphaned",
				"session_id", id,
				"row_handle", string(*working.FeedbackRowHandle),
				"error", err.Error(),
			)
		}
		return nil, err
	}
	return working, nil
}

func (s *SessionService) recordError(ctx context.Context, session *sm.PlanningSession, cause error) {
	if utils.IsValidationError(cause) {
		s.log.Debug("session action rejected", "session_id", session.ID, "error", cause.Error())
	} else {
		s.log.Warn("session action failed", "session_id", session.ID, "error", cause.Error())
	}

	session.LastError = userMessage(cause)
	if err := s.store.Save(ctx, session); err != nil {
		s.log.Error("failed to record session error", "session_id", session.ID, "error", err.Error())
	}
}

func (s *SessionService) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func (s *SessionService) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.ProviderTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.ProviderTimeout)
}

// userMessage is the text shown next to the session; provider messages pass through verbatim.
func userMessage(err error) string {
	var providerErr *utils.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Error()
	}
	return err.Error()
}
