package world

// Entity is the axis-aligned box every spatial object is built on. X and Y
// are the box center.
type Entity struct {
	X, Y          float64
	Width, Height float64
	Alive         bool
}

// Point is a bare position exposed to snapshot readers.
type Point struct {
	X float64
	Y float64
}

// Pos returns the entity center.
func (e Entity) Pos() Point {
	return Point{X: e.X, Y: e.Y}
}
