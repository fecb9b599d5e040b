// Package config loads the server configuration from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"river-raid/server/internal/channel/file"
	"river-raid/server/internal/director"
	"river-raid/server/internal/ingest"
	"river-raid/server/internal/replication"
	"river-raid/server/internal/telemetry"
	"river-raid/server/internal/world"
	"river-raid/server/logging"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Simulation SimulationConfig `yaml:"simulation"`
	Director   DirectorConfig   `yaml:"director"`
	Channels   ChannelsConfig   `yaml:"channels"`
	Logging    LoggingConfig    `yaml:"logging"`
	Scores     ScoresConfig     `yaml:"scores"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	EnablePprof bool   `yaml:"enable_pprof"`
	// Viewers enables the websocket endpoint; ViewerInput lets viewers steer.
	Viewers     bool `yaml:"viewers"`
	ViewerInput bool `yaml:"viewer_input"`
}

type SimulationConfig struct {
	TickRate     int `yaml:"tick_rate"`
	InitialLives int `yaml:"initial_lives"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

type SpawnConfig struct {
	Cap    int     `yaml:"cap"`
	Chance float64 `yaml:"chance"`
}

type DirectorConfig struct {
	Period     time.Duration `yaml:"period"`
	Helicopter SpawnConfig   `yaml:"helicopter"`
	Tanker     SpawnConfig   `yaml:"tanker"`
	Jet        SpawnConfig   `yaml:"jet"`
}

type ChannelsConfig struct {
	// File toggles the polled file exchange.
	File              bool          `yaml:"file"`
	InputPath         string        `yaml:"input_path"`
	StatePath         string        `yaml:"state_path"`
	InputPeriod       time.Duration `yaml:"input_period"`
	ReplicationPeriod time.Duration `yaml:"replication_period"`
}

type LoggingConfig struct {
	Sinks           []string `yaml:"sinks"`
	JSONPath        string   `yaml:"json_path"`
	MinimumSeverity string   `yaml:"minimum_severity"`
	// Categories restricts the routed event categories; empty routes all.
	Categories []string `yaml:"categories"`
}

type ScoresConfig struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"app_name"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:    ":8080",
			Viewers: true,
		},
		Simulation: SimulationConfig{
			TickRate:     world.DefaultTickHz,
			InitialLives: world.DefaultLives,
		},
		Director: DirectorConfig{
			Period:     16 * time.Millisecond,
			Helicopter: SpawnConfig{Cap: 2, Chance: 0.01},
			Tanker:     SpawnConfig{Cap: 2, Chance: 0.01},
			Jet:        SpawnConfig{Cap: 1, Chance: 0.005},
		},
		Channels: ChannelsConfig{
			File:              true,
			InputPath:         file.DefaultInputPath,
			StatePath:         file.DefaultStatePath,
			InputPeriod:       ingest.DefaultPeriod,
			ReplicationPeriod: replication.DefaultPeriod,
		},
		Logging: LoggingConfig{
			Sinks:           []string{logging.SinkConsole},
			MinimumSeverity: "info",
		},
		Scores: ScoresConfig{
			Enabled: true,
			AppName: "river_raid_server",
		},
	}
}

// Load reads path on top of the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("server.addr is required"))
	}
	if c.Simulation.TickRate <= 0 || c.Simulation.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("simulation.tick_rate must be between 1 and 1000, got %d", c.Simulation.TickRate))
	}
	if c.Simulation.InitialLives <= 0 {
		errs = append(errs, fmt.Errorf("simulation.initial_lives must be > 0, got %d", c.Simulation.InitialLives))
	}
	if c.Director.Period <= 0 {
		errs = append(errs, fmt.Errorf("director.period must be > 0, got %s", c.Director.Period))
	}
	for name, spawn := range map[string]SpawnConfig{
		"helicopter": c.Director.Helicopter,
		"tanker":     c.Director.Tanker,
		"jet":        c.Director.Jet,
	} {
		if spawn.Cap < 0 {
			errs = append(errs, fmt.Errorf("director.%s.cap must be >= 0, got %d", name, spawn.Cap))
		}
		if spawn.Chance < 0 || spawn.Chance > 1 {
			errs = append(errs, fmt.Errorf("director.%s.chance must be within [0, 1], got %v", name, spawn.Chance))
		}
	}
	if c.Channels.File && (c.Channels.InputPath == "" || c.Channels.StatePath == "") {
		errs = append(errs, fmt.Errorf("channels.input_path and channels.state_path are required when channels.file is set"))
	}
	if c.Channels.InputPeriod <= 0 || c.Channels.ReplicationPeriod <= 0 {
		errs = append(errs, fmt.Errorf("channels periods must be > 0"))
	}
	if _, ok := logging.ParseSeverity(c.Logging.MinimumSeverity); !ok {
		errs = append(errs, fmt.Errorf("logging.minimum_severity %q is unknown", c.Logging.MinimumSeverity))
	}
	if err := c.LoggingSettings().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if c.Scores.Enabled && c.Scores.AppName == "" {
		errs = append(errs, fmt.Errorf("scores.app_name is required when scores are enabled"))
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides fields from the environment. Invalid values are logged
// and ignored.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool), logger telemetry.Logger) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if logger == nil {
		logger = telemetry.Discard()
	}
	if raw, ok := lookup("RIVERRAID_ADDR"); ok && raw != "" {
		cfg.Server.Addr = raw
	}
	if raw, ok := lookup("RIVERRAID_TICK_RATE"); ok && raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Simulation.TickRate = value
		} else {
			logger.Printf("invalid RIVERRAID_TICK_RATE=%q: %v", raw, err)
		}
	}
	if raw, ok := lookup("RIVERRAID_INPUT_PATH"); ok && raw != "" {
		cfg.Channels.InputPath = raw
	}
	if raw, ok := lookup("RIVERRAID_STATE_PATH"); ok && raw != "" {
		cfg.Channels.StatePath = raw
	}
	if raw, ok := lookup("ENABLE_PPROF"); ok && raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.Server.EnablePprof = value
		} else {
			logger.Printf("invalid ENABLE_PPROF=%q: %v", raw, err)
		}
	}
}

// World maps the simulation section onto world.Config.
func (c Config) World() world.Config {
	cfg := world.DefaultConfig()
	cfg.InitialLives = c.Simulation.InitialLives
	cfg.TickRate = c.Simulation.TickRate
	return cfg
}

// DirectorSettings maps the director section onto the spawn rules.
func (c Config) DirectorSettings() director.Config {
	return director.Config{
		Period: c.Director.Period,
		Rules: []world.SpawnRule{
			{Kind: world.KindHelicopter, Limit: c.Director.Helicopter.Cap, Chance: c.Director.Helicopter.Chance},
			{Kind: world.KindTanker, Limit: c.Director.Tanker.Cap, Chance: c.Director.Tanker.Chance},
			{Kind: world.KindJet, Limit: c.Director.Jet.Cap, Chance: c.Director.Jet.Chance},
		},
	}
}

// LoggingSettings maps the logging section onto logging.Config.
func (c Config) LoggingSettings() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = append([]string(nil), c.Logging.Sinks...)
	cfg.JSON.FilePath = c.Logging.JSONPath
	cfg.Categories = append([]string(nil), c.Logging.Categories...)
	if severity, ok := logging.ParseSeverity(c.Logging.MinimumSeverity); ok {
		cfg.MinimumSeverity = severity
	}
	return cfg
}
