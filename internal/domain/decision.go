package domain

import "fmt"

// Decision is a user's swipe outcome on the current candidate.
type Decision string

const (
	// DecisionLike records a right swipe.
	DecisionLike Decision = "like"
	// DecisionDislike records a left swipe.
	DecisionDislike Decision = "dislike"
)

// ParseDecision validates a wire-format decision string.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionLike:
		return DecisionLike, nil
	case DecisionDislike:
		return DecisionDislike, nil
	default:
		return "", fmt.Errorf("decision must be %q or %q, got %q: %w",
			DecisionLike, DecisionDislike, s, ErrInvalidInput)
	}
}
