package world

import "math"

// Profile holds the per-kind constants of an enemy.
type Profile struct {
	Width, Height float64
	Points        int
	// Speed is the drift speed of river enemies and the sweep speed of jets.
	Speed              float64
	ActivationDistance float64
	WallClearance      float64
	// Sweeps marks enemies that are always moving, bounce off the screen
	// edges and ignore the river walls.
	Sweeps bool
}

var profiles = map[Kind]Profile{
	KindHelicopter: {Width: 30, Height: 25, Points: 60, Speed: 1.5, ActivationDistance: 300, WallClearance: 30},
	KindTanker:     {Width: 40, Height: 20, Points: 30, Speed: 1, ActivationDistance: 250, WallClearance: 40},
	KindJet:        {Width: 25, Height: 25, Points: 100, Speed: 3, Sweeps: true},
}

// ProfileOf returns the constants for an enemy kind.
func ProfileOf(kind Kind) (Profile, bool) {
	p, ok := profiles[kind]
	return p, ok
}

// Enemy is a helicopter, tanker or jet. The kind selects its profile.
type Enemy struct {
	Entity
	Kind      Kind
	VX        float64
	Direction int
	Activated bool
}

func newEnemy(kind Kind, x, y float64) *Enemy {
	p := profiles[kind]
	e := &Enemy{
		Entity: Entity{X: x, Y: y, Width: p.Width, Height: p.Height, Alive: true},
		Kind:   kind,
	}
	if p.Sweeps {
		e.VX = p.Speed
		e.Direction = 1
		e.Activated = true
	}
	return e
}

func (e *Enemy) profile() Profile {
	return profiles[e.Kind]
}

// Points awarded for destroying e.
func (e *Enemy) Points() int {
	return e.profile().Points
}

// advance scrolls the enemy and applies its horizontal behaviour. River
// enemies start drifting once the checkpoint gate is open and the player is
// within activation distance; pick chooses the drift sign.
func (e *Enemy) advance(scrollSpeed, playerY float64, gateOpen bool, walls Walls, pick func(a, b float64) float64) {
	p := e.profile()
	e.Y += scrollSpeed

	if p.Sweeps {
		e.X += e.VX * float64(e.Direction)
		if e.X > JetRightEdge {
			e.Direction = -1
		} else if e.X < JetLeftEdge {
			e.Direction = 1
		}
		return
	}

	if gateOpen && !e.Activated && math.Abs(e.Y-playerY) < p.ActivationDistance {
		e.Activated = true
		e.VX = pick(-p.Speed, p.Speed)
	}
	if !e.Activated {
		return
	}
	e.X += e.VX
	if e.X < walls.Left+p.WallClearance || e.X > walls.Right-p.WallClearance {
		e.VX = -e.VX
	}
}

func (e *Enemy) deathCause() DeathCause {
	switch e.Kind {
	case KindHelicopter:
		return CauseHelicopter
	case KindTanker:
		return CauseTanker
	case KindJet:
		return CauseJet
	default:
		return DeathCause("hit " + e.Kind.String())
	}
}
