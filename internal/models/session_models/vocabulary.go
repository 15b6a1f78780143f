package session_models

import (
	"fmt"
	"strings"
)

const (
	MinBudget     = 0
	MaxBudget     = 200
	BudgetStep    = 5
	DefaultBudget = 30

	DefaultActivityLevel = "Moderate"
)

var (
	Weekdays       = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	DayParts       = []string{"Morning", "Afternoon", "Evening", "Late night"}
	ActivityLevels = []string{"Very relaxed", "Relaxed", "Moderate", "Active", "Very active"}
	Settings       = []string{"Indoors", "Outdoors", "Both"}
	Interests      = []string{
		"Food", "Museums", "Parks", "Night-life", "Shopping", "Art", "Music",
		"Sports", "Escape rooms", "Movies", "Hiking", "Boating", "Photography",
	}
	Cuisines = []string{
		"Mediterranean", "Italian", "Asian", "American", "Mexican", "Indian", "Thai",
		"Chinese", "French", "Greek", "Japanese", "Korean", "Middle Eastern", "Vegan",
	}
	DietaryRestrictions = []string{"Vegetarian", "Vegan", "Gluten-free", "Halal", "Kosher"}
	TransportModes      = []string{"Walking", "Subway", "Taxi/Ride-share", "Bike", "Car"}
)

// VocabularyError names the first field of a PreferenceRecord that fell outside its vocabulary.
type VocabularyError struct {
	Field string
	Value string
}

func (e *VocabularyError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// Normalize trims the name and fills the form defaults for omitted scalar fields.
func (p PreferenceRecord) Normalize() PreferenceRecord {
	out := p.Clone()
	out.Name = strings.TrimSpace(out.Name)
	if out.ActivityLevel == "" {
		out.ActivityLevel = DefaultActivityLevel
	}
	return out
}

// CheckVocabulary reports a *VocabularyError when any field holds a token outside the fixed form options.
// Name emptiness is checked by the caller.
func (p PreferenceRecord) CheckVocabulary() error {
	if p.Budget < MinBudget || p.Budget > MaxBudget || p.Budget%BudgetStep != 0 {
		return &VocabularyError{Field: "budget", Value: fmt.Sprint(p.Budget)}
	}
	checks := []struct {
		field  string
		values []string
		vocab  []string
	}{
		{"days", p.Days, Weekdays},
		{"times", p.Times, DayParts},
		{"activity", []string{p.ActivityLevel}, ActivityLevels},
		{"setting", []string{p.Setting}, Settings},
		{"interests", p.Interests, Interests},
		{"cuisines", p.Cuisines, Cuisines},
		{"dietary", p.Dietary, DietaryRestrictions},
		{"transport", []string{p.Transport}, TransportModes},
	}
	for _, c := range checks {
		for _, v := range c.values {
			if !contains(c.vocab, v) {
				return &VocabularyError{Field: c.field, Value: v}
			}
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
