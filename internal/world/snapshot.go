package world

// PlayerView is the replicated part of the player.
type PlayerView struct {
	X, Y  float64
	Fuel  float64
	Lives int
	Score int
}

// BridgeView is a bridge inside the visible band.
type BridgeView struct {
	X, Y      float64
	Destroyed bool
	ID        int
}

// Snapshot is a deep copy of everything viewers need. It shares no memory
// with the world and can be encoded after the lock is released.
type Snapshot struct {
	RunID        string
	Tick         uint64
	Phase        Phase
	ScrollSpeed  float64
	ScrollOffset float64
	Player       PlayerView
	Bullet       *Point
	Helicopters  []Point
	Tankers      []Point
	Jets         []Point
	FuelDepots   []Point
	Bridges      []BridgeView
	Walls        Walls
	Checkpoint   int
}

func (s Snapshot) Respawning() bool {
	return s.Phase == PhaseRespawning
}

func (s Snapshot) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Snapshot copies the current state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:        w.runID,
		Tick:         w.tick,
		Phase:        w.phase,
		ScrollSpeed:  w.scrollSpeed,
		ScrollOffset: w.scrollOffset,
		Player: PlayerView{
			X:     w.player.X,
			Y:     w.player.Y,
			Fuel:  w.player.Fuel,
			Lives: w.player.Lives,
			Score: w.player.Score,
		},
		Helicopters: positions(w.helicopters),
		Tankers:     positions(w.tankers),
		Jets:        positions(w.jets),
		FuelDepots:  make([]Point, 0, len(w.depots)),
		Bridges:     make([]BridgeView, 0, len(w.bridges)),
		Walls:       w.Walls(),
		Checkpoint:  w.checkpoint,
	}
	if w.bullet != nil {
		p := w.bullet.Pos()
		snap.Bullet = &p
	}
	for _, depot := range w.depots {
		snap.FuelDepots = append(snap.FuelDepots, depot.Pos())
	}
	for _, bridge := range w.bridges {
		if !bridge.visible() {
			continue
		}
		snap.Bridges = append(snap.Bridges, BridgeView{
			X:         bridge.X,
			Y:         bridge.Y,
			Destroyed: bridge.Destroyed,
			ID:        bridge.ID,
		})
	}
	return snap
}

func positions(list []*Enemy) []Point {
	out := make([]Point, 0, len(list))
	for _, e := range list {
		out = append(out, e.Pos())
	}
	return out
}
