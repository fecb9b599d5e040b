package world

// Phase is the lifecycle state of a run.
type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseRespawning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseRespawning:
		return "respawning"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// The functions below are the only writers of w.phase.

// beginRespawn enters the respawn countdown after a survivable death.
func (w *World) beginRespawn() {
	if w.phase != PhaseRunning {
		return
	}
	w.phase = PhaseRespawning
	w.respawnTimer = RespawnDelay
}

// tickRespawn counts the respawn timer down by dt and resumes play once it
// expires. It reports whether the world is running again.
func (w *World) tickRespawn(dt float64) bool {
	if w.phase != PhaseRespawning {
		return w.phase == PhaseRunning
	}
	w.respawnTimer -= dt
	if w.respawnTimer > 0 {
		return false
	}
	w.respawnTimer = 0
	w.phase = PhaseRunning
	return true
}

// endGame makes the run terminal. A respawn that was scheduled earlier in
// the same step is discarded.
func (w *World) endGame() {
	w.phase = PhaseGameOver
	w.respawnTimer = 0
}

// restart rebuilds the whole aggregate as a fresh game. Only valid from
// PhaseGameOver; the tick counter survives so logs stay ordered.
func (w *World) restart() bool {
	if w.phase != PhaseGameOver {
		return false
	}
	tick := w.tick
	*w = *build(w.cfg, w.rng)
	w.tick = tick
	return true
}
