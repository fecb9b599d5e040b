package sim

import (
	"context"
	"strconv"

	"river-raid/server/internal/world"
	"river-raid/server/logging"
	"river-raid/server/logging/gameplay"
	"river-raid/server/logging/lifecycle"
)

var playerRef = logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer}

func entityKind(kind world.Kind) logging.EntityKind {
	switch kind {
	case world.KindHelicopter:
		return logging.EntityKindHelicopter
	case world.KindTanker:
		return logging.EntityKindTanker
	case world.KindJet:
		return logging.EntityKindJet
	case world.KindBridge:
		return logging.EntityKindBridge
	case world.KindFuelDepot:
		return logging.EntityKindFuelDepot
	default:
		return logging.EntityKindUnknown
	}
}

func publishStep(ctx context.Context, pub logging.Publisher, res world.StepResult, checkpoint int) {
	extra := map[string]any{"run": res.RunID}

	if res.Restarted {
		lifecycle.GameRestarted(ctx, pub, res.Tick, lifecycle.GameRestartedPayload{RunID: res.RunID},
			map[string]any{"run": res.RunID, "previousRun": res.PreviousRunID})
	}
	if res.RespawnComplete {
		lifecycle.RespawnComplete(ctx, pub, res.Tick, playerRef, extra)
	}

	for _, score := range res.Scores {
		target := logging.EntityRef{Kind: entityKind(score.Target)}
		if score.BridgeID > 0 {
			target.ID = bridgeID(score.BridgeID)
		}
		gameplay.TargetDestroyed(ctx, pub, res.Tick, playerRef, target,
			gameplay.TargetDestroyedPayload{Points: score.Points, Score: score.Score}, extra)
	}
	if cp := res.Checkpoint; cp != nil {
		gameplay.Checkpoint(ctx, pub, res.Tick, playerRef, gameplay.CheckpointPayload{
			BridgeID:     cp.BridgeID,
			NextBridgeID: cp.NextBridgeID,
			Score:        res.Score,
		}, extra)
	}

	if death := res.Death; death != nil {
		lifecycle.PlayerDied(ctx, pub, res.Tick, playerRef, lifecycle.PlayerDiedPayload{
			Cause:          string(death.Cause),
			LivesRemaining: death.LivesRemaining,
		}, extra)
	}
	if res.GameEnded() {
		lifecycle.GameOver(ctx, pub, res.Tick, playerRef, lifecycle.GameOverPayload{
			Score:      res.Score,
			Checkpoint: checkpoint,
		}, extra)
	}
}

func bridgeID(id int) string {
	return "bridge-" + strconv.Itoa(id)
}
