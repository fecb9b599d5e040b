package lifecycle

import (
	"context"

	"river-raid/server/logging"
)

const (
	// EventPlayerDied is emitted when the player loses a life.
	EventPlayerDied logging.EventType = "lifecycle.player_died"
	// EventRespawnComplete is emitted when the respawn countdown ends and play resumes.
	EventRespawnComplete logging.EventType = "lifecycle.respawn_complete"
	// EventGameOver is emitted when the last life is lost.
	EventGameOver logging.EventType = "lifecycle.game_over"
	// EventGameRestarted is emitted after a full world rebuild.
	EventGameRestarted logging.EventType = "lifecycle.game_restarted"
)

// PlayerDiedPayload captures the cause and the lives left after a death.
type PlayerDiedPayload struct {
	Cause          string `json:"cause"`
	LivesRemaining int    `json:"livesRemaining"`
}

// GameOverPayload captures the final tally of a run.
type GameOverPayload struct {
	Score      int `json:"score"`
	Checkpoint int `json:"checkpoint"`
}

// GameRestartedPayload identifies the fresh run.
type GameRestartedPayload struct {
	RunID string `json:"runId"`
}

// PlayerDied publishes a death event.
func PlayerDied(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerDiedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPlayerDied,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}

// RespawnComplete publishes the end of a respawn countdown.
func RespawnComplete(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRespawnComplete,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLifecycle,
		Extra:    extra,
	})
}

// GameOver publishes the terminal event of a run.
func GameOver(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload GameOverPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventGameOver,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}

// GameRestarted publishes a restart event.
func GameRestarted(ctx context.Context, pub logging.Publisher, tick uint64, payload GameRestartedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventGameRestarted,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}
