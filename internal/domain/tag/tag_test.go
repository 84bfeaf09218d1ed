package tag

import (
	"errors"
	"testing"

	"github.com/vuzz-app/vuzz/internal/domain"
)

func TestValid(t *testing.T) {
	if !Valid("BeachCleanup") {
		t.Error("BeachCleanup should be valid")
	}
	if Valid("Snowboarding") {
		t.Error("Snowboarding is not in the vocabulary")
	}
	if Valid("beachcleanup") {
		t.Error("tags are case-sensitive")
	}
	if Valid("") {
		t.Error("empty tag should not be valid")
	}
}

func TestValidateAll(t *testing.T) {
	if err := ValidateAll([]string{"TreePlanting", "PetRescue"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateAll(nil); err != nil {
		t.Errorf("empty list should pass, got %v", err)
	}

	err := ValidateAll([]string{"TreePlanting", "Karaoke"})
	if err == nil {
		t.Fatal("expected error for unknown tag")
	}
	if !errors.Is(err, domain.ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
}

func TestIntersects(t *testing.T) {
	a := []string{"BeachCleanup", "Tutoring"}

	if !Intersects(a, []string{"Tutoring", "PetRescue"}) {
		t.Error("shared tag should intersect")
	}
	if Intersects(a, []string{"PetRescue"}) {
		t.Error("disjoint sets should not intersect")
	}
}

func TestIntersects_EmptySide(t *testing.T) {
	// An untagged event or user never matches, even against another
	// empty set.
	if Intersects(nil, []string{"BeachCleanup"}) {
		t.Error("empty left side should not intersect")
	}
	if Intersects([]string{"BeachCleanup"}, nil) {
		t.Error("empty right side should not intersect")
	}
	if Intersects(nil, nil) {
		t.Error("two empty sets should not intersect")
	}
}
