package session_models

import "time"

type SessionState string

const (
	StateEmpty      SessionState = "empty"
	StateCollecting SessionState = "collecting"
	StatePlanned    SessionState = "planned"
	StateRatedOnce  SessionState = "rated_once"
)

// RowHandle is an opaque reference to one ledger row, as returned by the ledger's append.
// Only the store that issued it can interpret it.
type RowHandle string

// PlanningSession is the working set of one user session.
type PlanningSession struct {
	ID                string             `json:"id"`
	City              string             `json:"city"`
	Participants      []PreferenceRecord `json:"participants"`
	LastPlan          *string            `json:"last_plan,omitempty"`
	LastModel         string             `json:"last_model,omitempty"`
	LastError         string             `json:"last_error,omitempty"`
	FeedbackRowHandle *RowHandle         `json:"feedback_row_handle,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// State derives the coordinator state from the session contents.
func (s *PlanningSession) State() SessionState {
	switch {
	case s.FeedbackRowHandle != nil:
		return StateRatedOnce
	case s.LastPlan != nil:
		return StatePlanned
	case len(s.Participants) > 0:
		return StateCollecting
	default:
		return StateEmpty
	}
}

func (s *PlanningSession) HasPlan() bool {
	return s.LastPlan != nil
}

// Clone returns a deep copy so stored sessions never alias caller state.
func (s *PlanningSession) Clone() *PlanningSession {
	out := *s
	if s.Participants != nil {
		out.Participants = make([]PreferenceRecord, len(s.Participants))
		for i, p := range s.Participants {
			out.Participants[i] = p.Clone()
		}
	}
	if s.LastPlan != nil {
		plan := *s.LastPlan
		out.LastPlan = &plan
	}
	if s.FeedbackRowHandle != nil {
		handle := *s.FeedbackRowHandle
		out.FeedbackRowHandle = &handle
	}
	return &out
}
