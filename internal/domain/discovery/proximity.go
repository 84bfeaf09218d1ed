package discovery

import "math"

// DegreeThreshold is the per-axis proximity bound in degrees, roughly a
// 50-mile box. The filter is an axis-aligned absolute-difference box on
// raw coordinates, deliberately not a geodesic distance.
const DegreeThreshold = 0.72

// WithinProximity reports whether the candidate coordinate falls inside
// the degree box around the user coordinate. Callers pass (0,0) for a
// candidate with no coordinates.
func WithinProximity(userLat, userLon, candLat, candLon float64) bool {
	return math.Abs(candLat-userLat) <= DegreeThreshold &&
		math.Abs(candLon-userLon) <= DegreeThreshold
}
