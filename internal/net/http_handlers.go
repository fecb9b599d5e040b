package net

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"river-raid/server/internal/net/proto"
	"river-raid/server/internal/observability"
	"river-raid/server/internal/world"
	"river-raid/server/logging"
)

// StateReader exposes the world for diagnostics.
type StateReader interface {
	Snapshot() world.Snapshot
}

// Viewers serves the websocket endpoint.
type Viewers interface {
	Handle(w nethttp.ResponseWriter, r *nethttp.Request)
	Count() int
}

// ScoreReader reports ledger statistics.
type ScoreReader interface {
	Best() (int, bool)
	Games() int
}

type HTTPHandlerConfig struct {
	State         StateReader
	Viewers       Viewers
	Scores        ScoreReader
	Metrics       *logging.Metrics
	Router        *logging.Router
	TickRate      int
	Observability observability.Config
}

func NewHTTPHandler(cfg HTTPHandlerConfig) nethttp.Handler {
	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status      string              `json:"status"`
			ServerTime  int64               `json:"serverTime"`
			RunID       string              `json:"runId,omitempty"`
			Phase       string              `json:"phase,omitempty"`
			Tick        uint64              `json:"tick"`
			TickRate    int                 `json:"tickRate"`
			Viewers     int                 `json:"viewers"`
			HighScore   *int                `json:"highScore,omitempty"`
			GamesPlayed int                 `json:"gamesPlayed"`
			Telemetry   map[string]uint64   `json:"telemetry,omitempty"`
			Logging     logging.RouterStats `json:"logging"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
			TickRate:   cfg.TickRate,
			Telemetry:  cfg.Metrics.Snapshot(),
		}
		if cfg.State != nil {
			snap := cfg.State.Snapshot()
			payload.RunID = snap.RunID
			payload.Phase = snap.Phase.String()
			payload.Tick = snap.Tick
		}
		if cfg.Viewers != nil {
			payload.Viewers = cfg.Viewers.Count()
		}
		if cfg.Scores != nil {
			if best, ok := cfg.Scores.Best(); ok {
				payload.HighScore = &best
			}
			payload.GamesPlayed = cfg.Scores.Games()
		}
		if cfg.Router != nil {
			payload.Logging = cfg.Router.Stats()
		}
		writeJSON(w, payload)
	})

	mux.HandleFunc("/ws", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if cfg.Viewers == nil {
			httpError(w, "viewers disabled", nethttp.StatusNotFound)
			return
		}
		cfg.Viewers.Handle(w, r)
	})

	mux.HandleFunc("/schema/input", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, proto.InputSchema())
	})

	mux.HandleFunc("/schema/state", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, proto.StateSchema())
	})

	cfg.Observability.Register(mux)

	return mux
}

func writeJSON(w nethttp.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		httpError(w, "failed to encode", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}
