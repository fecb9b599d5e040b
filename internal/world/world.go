package world

import (
	"math/rand"

	"github.com/google/uuid"
)

// World is the whole mutable game aggregate. It is not safe for concurrent
// use; sim.Engine serialises every access behind one lock.
type World struct {
	cfg Config
	rng *rand.Rand

	runID string
	tick  uint64

	phase        Phase
	respawnTimer float64
	pending      Input

	player  Player
	bullet  *Bullet
	terrain Terrain

	scrollOffset float64
	scrollSpeed  float64

	helicopters []*Enemy
	tankers     []*Enemy
	jets        []*Enemy
	depots      []*FuelDepot
	bridges     []*Bridge

	bridgeCounter int
	checkpoint    int
}

// New builds a fresh game. A nil rng falls back to the global source.
func New(cfg Config, rng *rand.Rand) *World {
	return build(cfg, rng)
}

func build(cfg Config, rng *rand.Rand) *World {
	cfg = cfg.normalized()
	w := &World{
		cfg:         cfg,
		rng:         rng,
		runID:       uuid.NewString(),
		phase:       PhaseRunning,
		player:      newPlayer(cfg.InitialLives),
		scrollSpeed: DefaultScrollSpeed,
	}
	if len(cfg.Segments) > 0 {
		w.terrain = NewTerrain(cfg.Segments)
	} else {
		w.terrain = GenerateInitial(cfg.SegmentCount)
	}

	w.helicopters = []*Enemy{newEnemy(KindHelicopter, w.randomInt(200, 600), -100)}
	w.tankers = []*Enemy{newEnemy(KindTanker, w.randomInt(200, 600), -200)}
	w.depots = []*FuelDepot{
		newFuelDepot(400, -400),
		newFuelDepot(350, -800),
	}
	w.spawnBridge()
	return w
}

// spawnBridge appends the next bridge in sequence.
func (w *World) spawnBridge() *Bridge {
	w.bridgeCounter++
	b := newBridge(w.bridgeCounter)
	w.bridges = append(w.bridges, b)
	return b
}

// SetPendingInput replaces the input applied by subsequent steps.
func (w *World) SetPendingInput(in Input) {
	w.pending = in.normalized()
}

// PendingInput returns the input the next step will apply.
func (w *World) PendingInput() Input {
	return w.pending
}

func (w *World) Phase() Phase {
	return w.phase
}

func (w *World) RunID() string {
	return w.runID
}

func (w *World) Tick() uint64 {
	return w.tick
}

// Player returns a copy of the player.
func (w *World) Player() Player {
	return w.player
}

// Checkpoint is the id of the last destroyed bridge, 0 before the first.
func (w *World) Checkpoint() int {
	return w.checkpoint
}

// BridgeCounter is the id of the most recently spawned bridge.
func (w *World) BridgeCounter() int {
	return w.bridgeCounter
}

// Walls returns the river banks at the current scroll position.
func (w *World) Walls() Walls {
	return w.terrain.WallsAt(w.scrollOffset, w.player.Y)
}

// Population reports how many enemies of kind are alive.
func (w *World) Population(kind Kind) int {
	if list := w.enemies(kind); list != nil {
		return len(*list)
	}
	return 0
}

func (w *World) enemies(kind Kind) *[]*Enemy {
	switch kind {
	case KindHelicopter:
		return &w.helicopters
	case KindTanker:
		return &w.tankers
	case KindJet:
		return &w.jets
	default:
		return nil
	}
}

func (w *World) gateOpen() bool {
	return w.checkpoint >= w.cfg.ActivationCheckpoint
}
