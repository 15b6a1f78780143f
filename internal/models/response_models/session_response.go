package response_models

import (
	"time"

	sm "reout/internal/models/session_models"
)

type SessionResponse struct {
	ID           string                `json:"id"`
	State        sm.SessionState       `json:"state"`
	City         string                `json:"city"`
	Participants []sm.PreferenceRecord `json:"participants"`
	Summary      []string              `json:"summary"`
	LastPlan     *string               `json:"last_plan,omitempty"`
	LastModel    string                `json:"last_model,omitempty"`
	LastError    string                `json:"last_error,omitempty"`
	Rated        bool                  `json:"rated"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type FeedbackRowResponse struct {
	Handle      string `json:"handle"`
	SubmittedAt string `json:"submitted_at"`
	City        string `json:"city"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

type ModelsResponse struct {
	Provider string   `json:"provider"`
	Default  string   `json:"default"`
	Models   []string `json:"models"`
}
