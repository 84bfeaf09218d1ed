package domain

import (
	"errors"
	"testing"
)

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("like")
	if err != nil || d != DecisionLike {
		t.Errorf("expected like, got %v err=%v", d, err)
	}

	d, err = ParseDecision("dislike")
	if err != nil || d != DecisionDislike {
		t.Errorf("expected dislike, got %v err=%v", d, err)
	}
}

func TestParseDecision_Invalid(t *testing.T) {
	for _, s := range []string{"", "LIKE", "superlike", "maybe"} {
		_, err := ParseDecision(s)
		if err == nil {
			t.Errorf("expected error for %q", s)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %q, got %v", s, err)
		}
	}
}
