package request_models

import sm "reout/internal/models/session_models"

type AddParticipantRequest struct {
	Name          string   `json:"name"`
	Budget        *int     `json:"budget"`
	Days          []string `json:"days"`
	Times         []string `json:"times"`
	ActivityLevel string   `json:"activity_level"`
	Setting       string   `json:"setting"`
	Interests     []string `json:"interests"`
	Cuisines      []string `json:"cuisines"`
	Dietary       []string `json:"dietary"`
	Transport     string   `json:"transport"`
}

// ToRecord applies the form default budget when none was sent.
func (r AddParticipantRequest) ToRecord() sm.PreferenceRecord {
	budget := sm.DefaultBudget
	if r.Budget != nil {
		budget = *r.Budget
	}
	return sm.PreferenceRecord{
		Name:          r.Name,
		Budget:        budget,
		Days:          r.Days,
		Times:         r.Times,
		ActivityLevel: r.ActivityLevel,
		Setting:       r.Setting,
		Interests:     r.Interests,
		Cuisines:      r.Cuisines,
		Dietary:       r.Dietary,
		Transport:     r.Transport,
	}
}

type SetCityRequest struct {
	City string `json:"city"`
}

type GenerateRequest struct {
	Model string `json:"model"`
}

type RatingRequest struct {
	Rating int `json:"rating"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}
