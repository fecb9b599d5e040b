package world

// Bridge blocks the river until shot. Destroyed bridges stay in the world as
// inert scenery until they scroll away.
type Bridge struct {
	Entity
	ID        int
	Points    int
	Destroyed bool
}

func newBridge(id int) *Bridge {
	return &Bridge{
		Entity: Entity{
			X:      BridgeX,
			Y:      -BridgeSpacing * float64(id),
			Width:  BridgeWidth,
			Height: BridgeHeight,
			Alive:  true,
		},
		ID:     id,
		Points: BridgePoints,
	}
}

func (b *Bridge) destroy() {
	b.Destroyed = true
	b.Alive = false
}

func (b *Bridge) visible() bool {
	return b.Y > VisibleBandTop && b.Y < VisibleBandBottom
}
