package world

import "math"

// Player is the single controllable aircraft.
type Player struct {
	Entity
	Fuel            float64
	Lives           int
	Score           int
	InvincibleTimer float64
}

func newPlayer(lives int) Player {
	return Player{
		Entity: Entity{
			X:      PlayerStartX,
			Y:      PlayerStartY,
			Width:  PlayerWidth,
			Height: PlayerHeight,
			Alive:  true,
		},
		Fuel:  MaxFuel,
		Lives: lives,
	}
}

func (p *Player) move(dx float64) {
	p.X = clamp(p.X+dx, PlayerMinX, PlayerMaxX)
}

func (p *Player) invincible() bool {
	return p.InvincibleTimer > 0
}

func (p *Player) coolDown(dt float64) {
	if p.InvincibleTimer > 0 {
		p.InvincibleTimer = math.Max(0, p.InvincibleTimer-dt)
	}
}

// addFuel changes fuel by delta and keeps it inside [0, MaxFuel].
func (p *Player) addFuel(delta float64) {
	p.Fuel = clamp(p.Fuel+delta, 0, MaxFuel)
}

// outsideWalls reports whether the horizontal extent crosses either wall.
func (p *Player) outsideWalls(w Walls) bool {
	half := p.Width / 2
	return p.X-half < w.Left || p.X+half > w.Right
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
