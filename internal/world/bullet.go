package world

// Bullet is the player's single projectile.
type Bullet struct {
	Entity
	Speed float64
}

func newBullet(x, y float64) *Bullet {
	return &Bullet{
		Entity: Entity{X: x, Y: y, Width: BulletWidth, Height: BulletHeight, Alive: true},
		Speed:  BulletSpeed,
	}
}

// advance moves the bullet by its own speed plus the river scroll and kills
// it once it leaves the vertical viewport.
func (b *Bullet) advance(scrollSpeed float64) {
	b.Y += b.Speed + scrollSpeed
	if b.Y < BulletMinY || b.Y > BulletMaxY {
		b.Alive = false
	}
}
