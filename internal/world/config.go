package world

// Config captures the tunables used when building a world.
type Config struct {
	InitialLives int
	// TickRate is the number of steps per simulated second; timers and
	// refuelling advance by 1/TickRate per step.
	TickRate int
	// Segments overrides the generated terrain when non-empty.
	Segments     []RiverSegment
	SegmentCount int
	// ActivationCheckpoint is the checkpoint a run must reach before river
	// enemies start drifting.
	ActivationCheckpoint int
}

// DefaultConfig mirrors the arcade defaults.
func DefaultConfig() Config {
	return Config{
		InitialLives:         DefaultLives,
		TickRate:             DefaultTickHz,
		SegmentCount:         DefaultSegmentCount,
		ActivationCheckpoint: 1,
	}
}

// normalized returns a config with defaults applied.
func (cfg Config) normalized() Config {
	out := cfg
	if out.InitialLives <= 0 {
		out.InitialLives = DefaultLives
	}
	if out.TickRate <= 0 {
		out.TickRate = DefaultTickHz
	}
	if out.SegmentCount <= 0 {
		out.SegmentCount = DefaultSegmentCount
	}
	if out.ActivationCheckpoint <= 0 {
		out.ActivationCheckpoint = 1
	}
	return out
}

// StepSeconds is the simulated duration of one step.
func (cfg Config) StepSeconds() float64 {
	return 1 / float64(cfg.normalized().TickRate)
}
