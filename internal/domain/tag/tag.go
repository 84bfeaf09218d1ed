// Package tag defines the fixed interest-tag vocabulary.
package tag

import (
	"fmt"

	"github.com/vuzz-app/vuzz/internal/domain"
)

// Vocabulary is the closed set of interest tags users and events draw from.
var Vocabulary = []string{
	"FundraiserHelper",
	"EventVolunteer",
	"Tutoring",
	"BeachCleanup",
	"TreePlanting",
	"DisasterRelief",
	"MentalHealthSupport",
	"PetRescue",
	"SocialMediaForChange",
}

var known = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Vocabulary))
	for _, t := range Vocabulary {
		m[t] = struct{}{}
	}
	return m
}()

// Valid reports whether t belongs to the vocabulary.
func Valid(t string) bool {
	_, ok := known[t]
	return ok
}

// ValidateAll checks every tag against the vocabulary.
func ValidateAll(tags []string) error {
	for _, t := range tags {
		if !Valid(t) {
			return fmt.Errorf("tag %q: %w", t, domain.ErrUnknownTag)
		}
	}
	return nil
}

// Intersects reports whether the two tag sets share at least one tag.
// An empty side never intersects.
func Intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}
