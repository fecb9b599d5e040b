// Package ws serves snapshots to websocket viewers and accepts their input.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"river-raid/server/internal/channel"
	"river-raid/server/internal/net/proto"
	"river-raid/server/internal/telemetry"
	"river-raid/server/logging"
	"river-raid/server/logging/network"
)

const defaultWriteTimeout = time.Second

type HubConfig struct {
	WriteTimeout time.Duration
	// AcceptInput lets viewers drive the player.
	AcceptInput bool
}

type Deps struct {
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Publisher logging.Publisher
}

type viewer struct {
	id    string
	conn  *websocket.Conn
	codec proto.Codec

	writeMu sync.Mutex
}

func (v *viewer) write(messageType int, data []byte, timeout time.Duration) error {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()
	if err := v.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return v.conn.WriteMessage(messageType, data)
}

// Hub is both a SnapshotSink and an InputSource.
type Hub struct {
	config   HubConfig
	deps     Deps
	upgrader websocket.Upgrader

	mu      sync.Mutex
	viewers map[string]*viewer
	last    *proto.State

	input channel.LatestInput
}

func NewHub(cfg HubConfig, deps Deps) *Hub {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if deps.Logger == nil {
		deps.Logger = telemetry.Discard()
	}
	if deps.Metrics == nil {
		deps.Metrics = telemetry.DiscardMetrics()
	}
	if deps.Publisher == nil {
		deps.Publisher = logging.NopPublisher()
	}
	return &Hub{
		config: cfg,
		deps:   deps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		viewers: make(map[string]*viewer),
	}
}

// Count reports connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Handle upgrades a viewer connection. The codec query parameter selects
// json (text frames) or msgpack (binary frames).
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	codec, err := proto.CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.deps.Logger.Printf("[ws] upgrade failed: %v", err)
		return
	}

	v := &viewer{id: uuid.NewString(), conn: conn, codec: codec}
	last := h.register(v)
	network.ViewerConnected(r.Context(), h.deps.Publisher, viewerRef(v), network.ViewerPayload{Codec: codec.Name()}, nil)

	if last != nil {
		if data, err := codec.Marshal(last); err == nil {
			if err := v.write(frameType(codec), data, h.config.WriteTimeout); err != nil {
				h.drop(r.Context(), v, "write failed")
				return
			}
		}
	}

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			h.drop(r.Context(), v, "closed")
			return
		}
		if !h.config.AcceptInput {
			continue
		}
		in, err := decodeInput(messageType, payload)
		if err != nil {
			h.deps.Logger.Printf("[ws] discarding malformed input from %s: %v", v.id, err)
			continue
		}
		h.input.Store(in)
	}
}

// decodeInput reads binary frames as msgpack and text frames as JSON,
// whatever codec the viewer picked for snapshots.
func decodeInput(messageType int, payload []byte) (proto.Input, error) {
	if messageType == websocket.BinaryMessage {
		var in proto.Input
		err := proto.Msgpack.Unmarshal(payload, &in)
		return in, err
	}
	return proto.DecodeInput(payload)
}

// TryTakeLatest returns the most recent input sent by any viewer.
func (h *Hub) TryTakeLatest(ctx context.Context) (proto.Input, bool) {
	return h.input.TryTakeLatest(ctx)
}

// Publish sends state to every viewer, encoding once per codec. Viewers
// whose write fails are disconnected; that is not an error for the caller.
func (h *Hub) Publish(ctx context.Context, state proto.State) error {
	h.mu.Lock()
	stored := state
	h.last = &stored
	viewers := make([]*viewer, 0, len(h.viewers))
	for _, v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.mu.Unlock()

	frames := make(map[string][]byte, 2)
	for _, v := range viewers {
		name := v.codec.Name()
		data, ok := frames[name]
		if !ok {
			encoded, err := v.codec.Marshal(state)
			if err != nil {
				return err
			}
			frames[name] = encoded
			data = encoded
		}
		if err := v.write(frameType(v.codec), data, h.config.WriteTimeout); err != nil {
			h.drop(ctx, v, "write failed")
		}
	}
	if data, ok := frames[proto.CodecJSON]; ok {
		h.deps.Metrics.Store(telemetry.MetricSnapshotBytes, uint64(len(data)))
	}
	return nil
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	viewers := h.viewers
	h.viewers = make(map[string]*viewer)
	h.mu.Unlock()
	for _, v := range viewers {
		v.writeMu.Lock()
		v.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(h.config.WriteTimeout))
		v.writeMu.Unlock()
		v.conn.Close()
	}
	h.deps.Metrics.Store(telemetry.MetricViewers, 0)
}

func (h *Hub) register(v *viewer) *proto.State {
	h.mu.Lock()
	h.viewers[v.id] = v
	count := len(h.viewers)
	last := h.last
	h.mu.Unlock()
	h.deps.Metrics.Store(telemetry.MetricViewers, uint64(count))
	return last
}

func (h *Hub) drop(ctx context.Context, v *viewer, reason string) {
	h.mu.Lock()
	_, present := h.viewers[v.id]
	delete(h.viewers, v.id)
	count := len(h.viewers)
	h.mu.Unlock()
	v.conn.Close()
	if !present {
		return
	}
	h.deps.Metrics.Store(telemetry.MetricViewers, uint64(count))
	network.ViewerDisconnected(ctx, h.deps.Publisher, viewerRef(v), network.ViewerPayload{Codec: v.codec.Name(), Reason: reason}, nil)
}

func viewerRef(v *viewer) logging.EntityRef {
	return logging.EntityRef{ID: v.id, Kind: logging.EntityKindViewer}
}

func frameType(codec proto.Codec) int {
	if codec.Name() == proto.CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}
