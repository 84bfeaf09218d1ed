package event

import (
	"errors"
	"strings"
	"testing"

	"github.com/vuzz-app/vuzz/internal/domain"
)

func TestNew_Success(t *testing.T) {
	ev, err := New(
		"e1", "Beach Cleanup", "Bring gloves", "2026-09-12", "09:00",
		Location{City: "Santa Monica", State: "CA", Latitude: 34.0, Longitude: -118.5},
		[]string{"BeachCleanup"}, "https://img.example/e1.jpg", "u1", 1700000000000,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.ID() != "e1" || ev.Title() != "Beach Cleanup" {
		t.Errorf("unexpected event: %s %s", ev.ID(), ev.Title())
	}
	if ev.Location().City != "Santa Monica" {
		t.Errorf("unexpected location: %+v", ev.Location())
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name     string
		id       string
		title    string
		imageURL string
		tags     []string
		sentinel error
	}{
		{"missing id", "", "Title", "", nil, domain.ErrInvalidInput},
		{"missing title", "e1", "", "", nil, domain.ErrInvalidInput},
		{"title too long", "e1", strings.Repeat("x", MaxTitleLen+1), "", nil, domain.ErrInvalidInput},
		{"bad image url", "e1", "Title", "ftp://img", nil, domain.ErrInvalidInput},
		{"unknown tag", "e1", "Title", "", []string{"Skydiving"}, domain.ErrUnknownTag},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, tc.title, "", "", "", Location{}, tc.tags, tc.imageURL, "u1", 0)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tc.sentinel) {
				t.Errorf("expected %v, got %v", tc.sentinel, err)
			}
		})
	}
}

func TestNew_CopiesTags(t *testing.T) {
	tags := []string{"Tutoring"}
	ev, err := New("e1", "Title", "", "", "", Location{}, tags, "", "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags[0] = "PetRescue"
	if ev.Tags()[0] != "Tutoring" {
		t.Error("event must not alias the caller's tag slice")
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	// Hydration must accept whatever is already stored.
	ev := Reconstruct("e1", "", "", "", "", Location{}, nil, "not-a-url", "", 0)
	if ev.ID() != "e1" {
		t.Errorf("expected id e1, got %q", ev.ID())
	}
}
