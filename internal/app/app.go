package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"river-raid/server/internal/channel"
	"river-raid/server/internal/channel/file"
	"river-raid/server/internal/config"
	"river-raid/server/internal/director"
	"river-raid/server/internal/ingest"
	servernet "river-raid/server/internal/net"
	"river-raid/server/internal/net/ws"
	"river-raid/server/internal/observability"
	"river-raid/server/internal/replication"
	"river-raid/server/internal/scores"
	"river-raid/server/internal/sim"
	"river-raid/server/internal/telemetry"
	"river-raid/server/logging"
	loggingSinks "river-raid/server/logging/sinks"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Logger   telemetry.Logger
	Settings config.Config
}

// Run wires the engine, its periodic tasks and the HTTP surface, and blocks
// until ctx is cancelled or one of them fails.
func Run(ctx context.Context, cfg Config) error {
	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	fallbackLogger := log.Default()
	if provider, ok := telemetryLogger.(interface{ StandardLogger() *log.Logger }); ok {
		if candidate := provider.StandardLogger(); candidate != nil {
			fallbackLogger = candidate
		}
	}

	settings := cfg.Settings
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig := settings.LoggingSettings()
	sinks := map[string]logging.Sink{
		logging.SinkConsole: loggingSinks.NewConsole(os.Stdout),
	}
	if logConfig.HasSink(logging.SinkJSON) {
		jsonSink, err := loggingSinks.OpenJSONFile(logConfig.JSON.FilePath, logConfig.JSON.FlushInterval)
		if err != nil {
			return fmt.Errorf("failed to open json event log: %w", err)
		}
		sinks[logging.SinkJSON] = jsonSink
	}

	router, err := logging.NewRouter(logConfig, logging.SystemClock{}, fallbackLogger, sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()
	metrics := telemetry.WrapMetrics(router.Metrics())

	seed := settings.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := sim.NewEngine(settings.World(), sim.Deps{
		Logger:    telemetryLogger,
		Metrics:   metrics,
		Publisher: router,
		Clock:     logging.SystemClock{},
		RNG:       rand.New(rand.NewSource(seed)),
	})

	var store scores.Store
	if settings.Scores.Enabled {
		opened, err := scores.OpenStore(settings.Scores.AppName)
		if err != nil {
			telemetryLogger.Printf("score ledger kept in memory: %v", err)
		} else {
			store = opened
		}
	}
	ledger := scores.NewLedger(store, telemetryLogger)
	recorder := scores.NewRecorder(ledger, 0, telemetryLogger)

	var (
		inputs    []channel.InputSource
		snapshots []channel.SnapshotSink
		viewers   servernet.Viewers
		hub       *ws.Hub
	)
	if settings.Channels.File {
		inputs = append(inputs, file.NewReader(settings.Channels.InputPath))
		snapshots = append(snapshots, file.NewWriter(settings.Channels.StatePath))
	}
	if settings.Server.Viewers {
		hub = ws.NewHub(ws.HubConfig{AcceptInput: settings.Server.ViewerInput}, ws.Deps{
			Logger:    telemetryLogger,
			Metrics:   metrics,
			Publisher: router,
		})
		inputs = append(inputs, hub)
		snapshots = append(snapshots, hub)
		viewers = hub
	}

	loop := sim.NewLoop(engine, sim.LoopConfig{TickRate: settings.Simulation.TickRate}, sim.LoopHooks{
		AfterStep: func(res sim.LoopStepResult) {
			if !res.GameEnded() {
				return
			}
			recorder.Submit(scores.Result{RunID: res.RunID, Score: res.Score, At: time.Now()})
		},
	})
	spawns := director.New(engine, settings.DirectorSettings())
	intake := ingest.New(channel.Merge(inputs...), engine, settings.Channels.InputPeriod, metrics)
	publisher := replication.New(engine, channel.Fanout(snapshots...), replication.Config{
		Period: settings.Channels.ReplicationPeriod,
	}, replication.Deps{
		Logger:    telemetryLogger,
		Metrics:   metrics,
		Publisher: router,
		Scores:    ledger,
	})

	handler := servernet.NewHTTPHandler(servernet.HTTPHandlerConfig{
		State:         engine,
		Viewers:       viewers,
		Scores:        ledger,
		Metrics:       router.Metrics(),
		Router:        router,
		TickRate:      settings.Simulation.TickRate,
		Observability: observability.Config{EnablePprof: settings.Server.EnablePprof},
	})
	srv := &http.Server{Addr: settings.Server.Addr, Handler: handler}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error { return spawns.Run(gctx) })
	g.Go(func() error { return intake.Run(gctx) })
	g.Go(func() error { return publisher.Run(gctx) })
	g.Go(func() error { return recorder.Run(gctx) })
	g.Go(func() error {
		telemetryLogger.Printf("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			telemetryLogger.Printf("server shutdown: %v", err)
		}
		if hub != nil {
			hub.Close()
		}
		return nil
	})

	err = g.Wait()
	if best, ok := ledger.Best(); ok {
		telemetryLogger.Printf("shutting down after %d games, best score %d", ledger.Games(), best)
	}
	return err
}
