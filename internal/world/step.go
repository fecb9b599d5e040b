package world

// ScoreEvent records one destroyed target.
type ScoreEvent struct {
	Target Kind
	// BridgeID is set for bridges only.
	BridgeID int
	Points   int
	// Score is the player's total after the award.
	Score int
}

// CheckpointAdvance is reported when a bridge was destroyed.
type CheckpointAdvance struct {
	BridgeID     int
	NextBridgeID int
}

// StepResult summarises what one step changed. It is a plain value so the
// caller can log and persist it after releasing the world lock.
type StepResult struct {
	Tick        uint64
	RunID       string
	PhaseBefore Phase
	PhaseAfter  Phase

	Death           *Death
	Scores          []ScoreEvent
	Checkpoint      *CheckpointAdvance
	RespawnComplete bool
	Restarted       bool
	PreviousRunID   string

	Score int
	Lives int
}

// GameEnded reports whether this step moved the run into game over.
func (r StepResult) GameEnded() bool {
	return r.PhaseBefore != PhaseGameOver && r.PhaseAfter == PhaseGameOver
}

// Step advances the world by one fixed step.
func (w *World) Step() StepResult {
	w.tick++
	res := StepResult{Tick: w.tick, RunID: w.runID, PhaseBefore: w.phase}
	dt := w.cfg.StepSeconds()

	switch w.phase {
	case PhaseGameOver:
		if w.pending.Restart {
			prev := w.runID
			if w.restart() {
				res.Restarted = true
				res.PreviousRunID = prev
				res.RunID = w.runID
			}
		}
		return w.finish(res)
	case PhaseRespawning:
		if !w.tickRespawn(dt) {
			return w.finish(res)
		}
		res.RespawnComplete = true
	}

	w.advance(&res, dt)

	if w.player.Lives <= 0 {
		w.endGame()
	}
	return w.finish(res)
}

func (w *World) finish(res StepResult) StepResult {
	res.PhaseAfter = w.phase
	res.Score = w.player.Score
	res.Lives = w.player.Lives
	return res
}

func (w *World) award(res *StepResult, kind Kind, bridgeID, points int) {
	w.player.Score += points
	res.Scores = append(res.Scores, ScoreEvent{
		Target:   kind,
		BridgeID: bridgeID,
		Points:   points,
		Score:    w.player.Score,
	})
}

// advance runs the in-play part of a step in fixed order: input, bullet,
// scroll and fuel, walls, enemy motion, depots, bridges, enemy collisions.
func (w *World) advance(res *StepResult, dt float64) {
	w.player.coolDown(dt)
	w.applyInput(w.pending)

	if w.bullet != nil {
		w.bullet.advance(w.scrollSpeed)
		if !w.bullet.Alive {
			w.bullet = nil
		}
	}

	w.scrollOffset += w.scrollSpeed
	w.player.addFuel(-FuelPerTick)
	if w.player.Fuel <= 0 {
		w.player.Fuel = 0
		w.kill(res, CauseOutOfFuel)
	}

	walls := w.Walls()
	if !w.player.invincible() && w.player.outsideWalls(walls) {
		w.kill(res, CauseRiverbank)
	}

	w.moveEnemies(walls)
	w.updateDepots(res, dt)
	w.updateBridges(res)
	w.resolveEnemies(res)
}

func (w *World) applyInput(in Input) {
	w.player.move(in.DX)

	switch {
	case in.Speed > 0:
		w.scrollSpeed = min(MaxScrollSpeed, w.scrollSpeed+ScrollSpeedStep)
	case in.Speed < 0:
		w.scrollSpeed = max(MinScrollSpeed, w.scrollSpeed-ScrollSpeedStep)
	default:
		w.scrollSpeed += (DefaultScrollSpeed - w.scrollSpeed) * ScrollRelaxFactor
		if diff := w.scrollSpeed - DefaultScrollSpeed; diff < ScrollSnapEpsilon && diff > -ScrollSnapEpsilon {
			w.scrollSpeed = DefaultScrollSpeed
		}
	}

	if in.Shoot && w.bullet == nil {
		w.bullet = newBullet(w.player.X, w.player.Y-BulletSpawnOffset)
	}
}

func (w *World) moveEnemies(walls Walls) {
	gate := w.gateOpen()
	for _, kind := range EnemyKinds {
		list := w.enemies(kind)
		kept := (*list)[:0]
		for _, e := range *list {
			e.advance(w.scrollSpeed, w.player.Y, gate, walls, w.randomChoice)
			if e.Y > DespawnY {
				continue
			}
			kept = append(kept, e)
		}
		clear((*list)[len(kept):])
		*list = kept
	}
}

func (w *World) updateDepots(res *StepResult, dt float64) {
	for _, depot := range w.depots {
		depot.Y += w.scrollSpeed

		if Collides(w.player.Entity, depot.Entity) {
			w.player.addFuel(depot.RefuelRate * dt)
		}

		if w.bullet != nil && Collides(w.bullet.Entity, depot.Entity) {
			w.award(res, KindFuelDepot, 0, depot.Points)
			w.bullet = nil
			depot.Y = -w.randomInt(300, 600)
		}

		if depot.Y > DespawnY {
			depot.Y = -w.randomInt(300, 600)
			depot.X = w.randomInt(280, 520)
		}
	}
}

func (w *World) updateBridges(res *StepResult) {
	// Bridges spawned during this pass start moving next step.
	count := len(w.bridges)
	for i := 0; i < count; i++ {
		bridge := w.bridges[i]
		bridge.Y += w.scrollSpeed
		if bridge.Destroyed {
			continue
		}

		if w.bullet != nil && Collides(w.bullet.Entity, bridge.Entity) {
			w.award(res, KindBridge, bridge.ID, bridge.Points)
			bridge.destroy()
			w.bullet = nil
			if bridge.ID > w.checkpoint {
				w.checkpoint = bridge.ID
			}
			next := w.spawnBridge()
			res.Checkpoint = &CheckpointAdvance{BridgeID: bridge.ID, NextBridgeID: next.ID}
			continue
		}

		if !w.player.invincible() && Collides(w.player.Entity, bridge.Entity) {
			w.kill(res, CauseBridge)
		}
	}

	kept := w.bridges[:0]
	for _, bridge := range w.bridges {
		if bridge.Y > DespawnY {
			if bridge.Destroyed {
				continue
			}
			bridge.Y = -w.randomInt(500, 1000)
		}
		kept = append(kept, bridge)
	}
	clear(w.bridges[len(kept):])
	w.bridges = kept
}

func (w *World) resolveEnemies(res *StepResult) {
	for _, kind := range EnemyKinds {
		list := w.enemies(kind)
		// Iterate a copy; hits remove from the live list.
		for _, e := range append([]*Enemy(nil), (*list)...) {
			if w.bullet != nil && Collides(w.bullet.Entity, e.Entity) {
				w.award(res, e.Kind, 0, e.Points())
				w.bullet = nil
				w.removeEnemy(e)
				continue
			}
			if w.player.invincible() || !Collides(w.player.Entity, e.Entity) {
				continue
			}
			if w.kill(res, e.deathCause()) && w.player.Lives > 0 {
				w.player.InvincibleTimer = CollisionInvincibility
			}
			return
		}
	}
}

func (w *World) removeEnemy(target *Enemy) {
	list := w.enemies(target.Kind)
	if list == nil {
		return
	}
	for i, e := range *list {
		if e == target {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
