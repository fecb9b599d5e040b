package gameplay

import (
	"context"

	"river-raid/server/logging"
)

const (
	// EventTargetDestroyed is emitted when the bullet destroys an enemy or a fuel depot.
	EventTargetDestroyed logging.EventType = "gameplay.target_destroyed"
	// EventCheckpoint is emitted when a bridge falls and the checkpoint advances.
	EventCheckpoint logging.EventType = "gameplay.checkpoint"
)

// TargetDestroyedPayload captures the points awarded and the resulting score.
type TargetDestroyedPayload struct {
	Points int `json:"points"`
	Score  int `json:"score"`
}

// CheckpointPayload captures the destroyed bridge and the one spawned after it.
type CheckpointPayload struct {
	BridgeID     int `json:"bridgeId"`
	NextBridgeID int `json:"nextBridgeId"`
	Score        int `json:"score"`
}

// TargetDestroyed publishes a scoring event.
func TargetDestroyed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload TargetDestroyedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTargetDestroyed,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
		Payload:  payload,
		Extra:    extra,
	})
}

// Checkpoint publishes a checkpoint advance.
func Checkpoint(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CheckpointPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCheckpoint,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
		Extra:    extra,
	})
}
