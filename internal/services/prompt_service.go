package services

import (
	"fmt"
	"strings"

	sm "reout/internal/models/session_models"
)

const (
	anyToken     = "any"
	generalToken = "general"
	noneToken    = "none"
)

// PromptOptions tunes the footer of the compiled prompt.
type PromptOptions struct {
	// VerifyVenues asks the provider to confirm each venue with a live search before listing it.
	VerifyVenues bool
}

// BuildPrompt compiles the city and the participants, in order, into the planning request.
// Callers check that city and participants are non-empty.
func BuildPrompt(city string, participants []sm.PreferenceRecord, opts PromptOptions) string {
	header := fmt.Sprintf(
		"You are an expert event planner. Draft a detailed step-by-step outing in **%s**.\n\n"+
			"You should consider all preferences of the Participants:", city)

	lines := make([]string, 0, len(participants)+2)
	lines = append(lines, header)
	for _, p := range participants {
		lines = append(lines, participantLine(p))
	}

	footer := "\nReturn step-by-step plan with 2–5 places to go. At the beginning, suggest when the " +
		"hangout should be and how long it should take. For each place give address, estimated " +
		"time, one-sentence description, and cost estimate. Ensure all venues are real and form " +
		"a coherent plan for the group."
	if opts.VerifyVenues {
		footer += " Before including a venue, verify with a live web search that it exists and is currently open."
	}
	lines = append(lines, footer)

	return strings.Join(lines, "\n")
}

func participantLine(p sm.PreferenceRecord) string {
	return fmt.Sprintf(
		"- %s: budget $%d, days %s, times %s, activity %s, setting %s, interests %s, cuisines %s, dietary %s, transport %s.",
		p.Name,
		p.Budget,
		joinOr(p.Days, anyToken),
		joinOr(p.Times, anyToken),
		p.ActivityLevel,
		p.Setting,
		joinOr(p.Interests, generalToken),
		joinOr(p.Cuisines, anyToken),
		joinOr(p.Dietary, noneToken),
		p.Transport,
	)
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

// GroupSummary renders the short one-line-per-member overview shown while collecting.
func GroupSummary(participants []sm.PreferenceRecord) []string {
	out := make([]string, 0, len(participants))
	for _, p := range participants {
		cuisines := joinOr(p.Cuisines, "any cuisine")
		out = append(out, fmt.Sprintf("- **%s** · $%d · %s · %s", p.Name, p.Budget, p.ActivityLevel, cuisines))
	}
	return out
}
