package world

import "math"

// Collides reports whether a and b overlap: the center distance on each axis
// must be strictly below half the summed extents on that axis.
func Collides(a, b Entity) bool {
	return math.Abs(a.X-b.X) < (a.Width+b.Width)/2 &&
		math.Abs(a.Y-b.Y) < (a.Height+b.Height)/2
}
