package net

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"river-raid/server/internal/observability"
	"river-raid/server/internal/world"
	"river-raid/server/logging"
)

type fixedState struct {
	snap world.Snapshot
}

func (f fixedState) Snapshot() world.Snapshot {
	return f.snap
}

type fakeViewers struct {
	count   int
	handled int
}

func (f *fakeViewers) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	f.handled++
	w.WriteHeader(nethttp.StatusTeapot)
}

func (f *fakeViewers) Count() int {
	return f.count
}

type fixedScores struct {
	best  int
	games int
}

func (f fixedScores) Best() (int, bool) {
	return f.best, f.games > 0
}

func (f fixedScores) Games() int {
	return f.games
}

func serve(t *testing.T, handler nethttp.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestHealthReturnsOK(t *testing.T) {
	handler := NewHTTPHandler(HTTPHandlerConfig{})
	resp := serve(t, handler, nethttp.MethodGet, "/health")
	if resp.Code != nethttp.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestDiagnosticsReportsEngineAndScores(t *testing.T) {
	var metrics logging.Metrics
	metrics.TelemetryAdd("ticks", 12)
	handler := NewHTTPHandler(HTTPHandlerConfig{
		State:    fixedState{snap: world.Snapshot{RunID: "run-1", Tick: 12, Phase: world.PhaseRunning}},
		Viewers:  &fakeViewers{count: 2},
		Scores:   fixedScores{best: 350, games: 4},
		Metrics:  &metrics,
		TickRate: 60,
	})

	resp := serve(t, handler, nethttp.MethodGet, "/diagnostics")
	if resp.Code != nethttp.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}
	if contentType := resp.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", contentType)
	}

	var payload struct {
		Status      string            `json:"status"`
		RunID       string            `json:"runId"`
		Phase       string            `json:"phase"`
		Tick        uint64            `json:"tick"`
		TickRate    int               `json:"tickRate"`
		Viewers     int               `json:"viewers"`
		HighScore   *int              `json:"highScore"`
		GamesPlayed int               `json:"gamesPlayed"`
		Telemetry   map[string]uint64 `json:"telemetry"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode diagnostics payload: %v", err)
	}
	if payload.Status != "ok" || payload.RunID != "run-1" || payload.Tick != 12 || payload.TickRate != 60 {
		t.Fatalf("unexpected diagnostics payload: %s", resp.Body.String())
	}
	if payload.Phase != world.PhaseRunning.String() {
		t.Fatalf("expected phase %q, got %q", world.PhaseRunning.String(), payload.Phase)
	}
	if payload.Viewers != 2 || payload.GamesPlayed != 4 {
		t.Fatalf("unexpected viewer or games count: %s", resp.Body.String())
	}
	if payload.HighScore == nil || *payload.HighScore != 350 {
		t.Fatalf("expected high score 350, got %v", payload.HighScore)
	}
	if payload.Telemetry["ticks"] != 12 {
		t.Fatalf("expected telemetry counters in payload, got %v", payload.Telemetry)
	}
}

func TestDiagnosticsOmitsHighScoreWithoutHistory(t *testing.T) {
	handler := NewHTTPHandler(HTTPHandlerConfig{Scores: fixedScores{}})
	resp := serve(t, handler, nethttp.MethodGet, "/diagnostics")

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode diagnostics payload: %v", err)
	}
	if _, ok := payload["highScore"]; ok {
		t.Fatalf("expected highScore to be omitted, payload=%s", resp.Body.String())
	}
}

func TestWebsocketRouteRequiresViewers(t *testing.T) {
	resp := serve(t, NewHTTPHandler(HTTPHandlerConfig{}), nethttp.MethodGet, "/ws")
	if resp.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404 without viewers, got %d", resp.Code)
	}

	viewers := &fakeViewers{}
	resp = serve(t, NewHTTPHandler(HTTPHandlerConfig{Viewers: viewers}), nethttp.MethodGet, "/ws")
	if viewers.handled != 1 || resp.Code != nethttp.StatusTeapot {
		t.Fatalf("expected request to be delegated to viewers, handled=%d code=%d", viewers.handled, resp.Code)
	}
}

func TestSchemaRoutes(t *testing.T) {
	handler := NewHTTPHandler(HTTPHandlerConfig{})
	for _, path := range []string{"/schema/input", "/schema/state"} {
		t.Run(path, func(t *testing.T) {
			resp := serve(t, handler, nethttp.MethodGet, path)
			if resp.Code != nethttp.StatusOK {
				t.Fatalf("expected status 200 OK, got %d", resp.Code)
			}
			var schema map[string]any
			if err := json.Unmarshal(resp.Body.Bytes(), &schema); err != nil {
				t.Fatalf("failed to decode schema: %v", err)
			}
			if len(schema) == 0 {
				t.Fatalf("expected non-empty schema document")
			}

			resp = serve(t, handler, nethttp.MethodPost, path)
			if resp.Code != nethttp.StatusMethodNotAllowed {
				t.Fatalf("expected 405 for POST, got %d", resp.Code)
			}
		})
	}
}

func TestPprofIsOptIn(t *testing.T) {
	resp := serve(t, NewHTTPHandler(HTTPHandlerConfig{}), nethttp.MethodGet, "/debug/pprof/")
	if resp.Code != nethttp.StatusNotFound {
		t.Fatalf("expected pprof to be absent by default, got %d", resp.Code)
	}

	handler := NewHTTPHandler(HTTPHandlerConfig{Observability: observability.Config{EnablePprof: true}})
	resp = serve(t, handler, nethttp.MethodGet, "/debug/pprof/")
	if resp.Code != nethttp.StatusOK {
		t.Fatalf("expected pprof index when enabled, got %d", resp.Code)
	}
}
