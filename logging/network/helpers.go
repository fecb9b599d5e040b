package network

import (
	"context"

	"river-raid/server/logging"
)

const (
	// EventPublishFailed is emitted when a snapshot could not be written to a sink.
	EventPublishFailed logging.EventType = "network.publish_failed"
	// EventViewerConnected is emitted when a websocket viewer attaches.
	EventViewerConnected logging.EventType = "network.viewer_connected"
	// EventViewerDisconnected is emitted when a websocket viewer goes away.
	EventViewerDisconnected logging.EventType = "network.viewer_disconnected"
)

// PublishFailedPayload captures the failing sink and the error text.
type PublishFailedPayload struct {
	Error       string `json:"error"`
	Consecutive uint64 `json:"consecutive"`
}

// ViewerPayload describes a viewer session.
type ViewerPayload struct {
	Codec  string `json:"codec"`
	Reason string `json:"reason,omitempty"`
}

// PublishFailed publishes a warning for a failed snapshot write.
func PublishFailed(ctx context.Context, pub logging.Publisher, tick uint64, payload PublishFailedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPublishFailed,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityWarn,
		Category: logging.CategoryNetwork,
		Payload:  payload,
		Extra:    extra,
	})
}

// ViewerConnected publishes a viewer attach event.
func ViewerConnected(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, payload ViewerPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventViewerConnected,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  payload,
		Extra:    extra,
	})
}

// ViewerDisconnected publishes a viewer detach event.
func ViewerDisconnected(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, payload ViewerPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventViewerDisconnected,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  payload,
		Extra:    extra,
	})
}
