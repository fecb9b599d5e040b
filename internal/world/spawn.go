package world

// SpawnRule is one director attempt: spawn an enemy of Kind with
// probability Chance while fewer than Limit are alive.
type SpawnRule struct {
	Kind   Kind
	Limit  int
	Chance float64
}

// TrySpawn rolls rule once. It only spawns while the world is running and
// returns a copy of the new enemy.
func (w *World) TrySpawn(rule SpawnRule) (Enemy, bool) {
	if w.phase != PhaseRunning {
		return Enemy{}, false
	}
	list := w.enemies(rule.Kind)
	if list == nil || len(*list) >= rule.Limit {
		return Enemy{}, false
	}
	if w.randomFloat() >= rule.Chance {
		return Enemy{}, false
	}

	var e *Enemy
	if rule.Kind == KindJet {
		y := w.randomInt(100, 300)
		if w.randomFloat() < 0.5 {
			e = newEnemy(KindJet, JetSpawnLeft, y)
			e.Direction = 1
		} else {
			e = newEnemy(KindJet, JetSpawnRight, y)
			e.Direction = -1
		}
	} else {
		e = newEnemy(rule.Kind, w.randomInt(250, 500), -w.randomInt(200, 500))
	}
	*list = append(*list, e)
	return *e, true
}
