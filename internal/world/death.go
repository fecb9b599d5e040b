package world

// DeathCause names what killed the player.
type DeathCause string

const (
	CauseOutOfFuel  DeathCause = "out of fuel"
	CauseRiverbank  DeathCause = "hit riverbank"
	CauseBridge     DeathCause = "hit bridge"
	CauseHelicopter DeathCause = "hit helicopter"
	CauseTanker     DeathCause = "hit tanker"
	CauseJet        DeathCause = "hit jet"
)

// Death is reported by Step when the player lost a life.
type Death struct {
	Cause          DeathCause
	LivesRemaining int
}

// kill applies at most one death per step. Later causes in the same step are
// ignored.
func (w *World) kill(res *StepResult, cause DeathCause) bool {
	if res.Death != nil {
		return false
	}
	w.handleDeath()
	res.Death = &Death{Cause: cause, LivesRemaining: w.player.Lives}
	return true
}

// handleDeath takes a life and, if any remain, resets the field for a
// respawn. With no lives left the world is left as is for the end-of-step
// game over check.
func (w *World) handleDeath() {
	if w.player.Lives > 0 {
		w.player.Lives--
	}
	if w.player.Lives == 0 {
		return
	}

	w.beginRespawn()

	w.player.X = PlayerStartX
	w.player.Y = PlayerStartY
	w.player.Fuel = MaxFuel
	w.player.InvincibleTimer = RespawnInvincibility

	w.bullet = nil

	w.helicopters = []*Enemy{newEnemy(KindHelicopter, w.randomInt(250, 500), -w.randomInt(300, 600))}
	w.tankers = []*Enemy{newEnemy(KindTanker, w.randomInt(250, 500), -w.randomInt(300, 600))}
	w.jets = nil

	for _, depot := range w.depots {
		depot.Y = -w.randomInt(300, 600)
		depot.X = w.randomInt(280, 520)
	}
	for _, bridge := range w.bridges {
		if !bridge.Destroyed {
			bridge.Y = -w.randomInt(500, 1000)
		}
	}
}
