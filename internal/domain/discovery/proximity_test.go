package discovery

import "testing"

func TestWithinProximity_SameSpot(t *testing.T) {
	if !WithinProximity(34.0, -118.0, 34.0, -118.0) {
		t.Error("identical coordinates should be within proximity")
	}
}

func TestWithinProximity_ExactThreshold(t *testing.T) {
	// The bound is inclusive on both axes.
	if !WithinProximity(34.0, -118.0, 34.0+DegreeThreshold, -118.0) {
		t.Error("latitude delta exactly at threshold should pass")
	}
	if !WithinProximity(34.0, -118.0, 34.0, -118.0-DegreeThreshold) {
		t.Error("longitude delta exactly at threshold should pass")
	}
}

func TestWithinProximity_JustOutside(t *testing.T) {
	if WithinProximity(34.0, -118.0, 34.73, -118.0) {
		t.Error("latitude delta 0.73 should fail")
	}
	if WithinProximity(34.0, -118.0, 34.0, -117.2) {
		t.Error("longitude delta 0.8 should fail")
	}
}

func TestWithinProximity_PerAxis(t *testing.T) {
	// Both axes must independently be within the threshold; a corner
	// point passes even though its straight-line distance is larger.
	if !WithinProximity(0, 0, 0.7, 0.7) {
		t.Error("corner point within box should pass")
	}
	if WithinProximity(0, 0, 0.7, 0.8) {
		t.Error("one axis out of range should fail")
	}
}

func TestWithinProximity_ZeroCoordinates(t *testing.T) {
	// Missing coordinates read as (0,0); only candidates near the
	// null island box match such a user.
	if !WithinProximity(0, 0, 0.5, -0.5) {
		t.Error("candidate near (0,0) should match a zero-coordinate user")
	}
	if WithinProximity(0, 0, 34.0, -118.0) {
		t.Error("distant candidate should not match a zero-coordinate user")
	}
}

func TestWithinProximity_NegativeDeltas(t *testing.T) {
	if !WithinProximity(-33.9, 151.2, -34.2, 150.9) {
		t.Error("absolute deltas within threshold should pass regardless of sign")
	}
}
