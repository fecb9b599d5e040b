package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"river-raid/server/internal/app"
	"river-raid/server/internal/config"
	"river-raid/server/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "riverraid.yaml", "path to the YAML configuration file")
	flag.Parse()

	logger := telemetry.WrapLogger(log.Default())

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	config.ApplyEnv(&settings, os.LookupEnv, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.Config{Logger: logger, Settings: settings}); err != nil {
		log.Fatalf("%v", err)
	}
}
