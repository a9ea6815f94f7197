package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHomeLocation means no home country was selected.
	ErrMissingHomeLocation = errors.New("no home country selected")

	// ErrNoCandidates means filtering left zero eligible destinations.
	// Callers should suggest loosening duration or interest constraints.
	ErrNoCandidates = errors.New("no countries match the current criteria")

	ErrTravelerNotFound = errors.New("traveler not found")
	ErrCountryNotFound  = errors.New("country not found")

	// ErrVerbVocabularyExhausted means a verb batch was requested that is
	// larger than the verb vocabulary. Verbs are never silently reused.
	ErrVerbVocabularyExhausted = errors.New("verb vocabulary exhausted")
)

// UnknownHomeCoordinatesError means a home country was selected but has no
// coordinate entry. It carries the offending code so the UI can explain the
// limitation and suggest an alternative.
type UnknownHomeCoordinatesError struct {
	CountryCode string
}

func (e *UnknownHomeCoordinatesError) Error() string {
	return fmt.Sprintf("no coordinate data for home country %s", e.CountryCode)
}

func IsUnknownHomeCoordinates(err error) bool {
	var target *UnknownHomeCoordinatesError
	return errors.As(err, &target)
}
