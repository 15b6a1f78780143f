package utils

import "errors"

// validation errors: reported to the user, no state change
var (
	ErrEmptyName         = errors.New("name can't be empty")
	ErrEmptyCity         = errors.New("choose or enter a city first")
	ErrNoParticipants    = errors.New("add at least one member to start planning")
	ErrInvalidPreference = errors.New("invalid participant preferences")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrNoPlan            = errors.New("generate a plan before rating it")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
)

var (
	ErrSessionNotFound = errors.New("session not found")

	ErrProviderTransport = errors.New("provider request failed")
	ErrProviderMalformed = errors.New("provider returned an unusable response")

	ErrCommentBeforeRating = errors.New("submit a rating before leaving a comment")
	ErrLedgerTransport     = errors.New("feedback ledger unavailable")
	ErrLedgerRowNotFound   = errors.New("feedback row not found")
)

// IsValidationError reports whether err is a user input problem.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrEmptyName, ErrEmptyCity, ErrNoParticipants, ErrInvalidPreference,
		ErrInvalidRating, ErrNoPlan, ErrInvalidPage, ErrInvalidPageSize,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
