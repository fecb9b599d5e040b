package world

import "testing"

func TestCollidesOverlap(t *testing.T) {
	a := Entity{X: 100, Y: 100, Width: 30, Height: 40}
	b := Entity{X: 120, Y: 130, Width: 20, Height: 30}
	if !Collides(a, b) || !Collides(b, a) {
		t.Fatalf("expected overlapping boxes to collide in both orders")
	}
}

func TestCollidesTouchingEdgesDoNotCollide(t *testing.T) {
	a := Entity{X: 0, Y: 0, Width: 10, Height: 10}
	b := Entity{X: 10, Y: 0, Width: 10, Height: 10}
	if Collides(a, b) {
		t.Fatalf("expected boxes sharing an edge to be apart")
	}
	b.X = 9.5
	if !Collides(a, b) {
		t.Fatalf("expected boxes overlapping by half a unit to collide")
	}
}

func TestCollidesRequiresBothAxes(t *testing.T) {
	a := Entity{X: 0, Y: 0, Width: 10, Height: 10}
	b := Entity{X: 0, Y: 50, Width: 10, Height: 10}
	if Collides(a, b) {
		t.Fatalf("expected vertical separation to prevent a collision")
	}
}
