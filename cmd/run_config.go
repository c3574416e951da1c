package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/packetflow/sim"
)

// RunConfig holds every setting of the run command.
// Loaded from --config with strict field checking; explicit flags win.
type RunConfig struct {
	Sources      int     `yaml:"sources"`
	Destinations int     `yaml:"destinations"`
	Events       int     `yaml:"events"`
	Seed         int64   `yaml:"seed"`
	EventsFile   string  `yaml:"events_file"`
	EventsHeader string  `yaml:"events_header"`
	WorkloadSpec string  `yaml:"workload_spec"`
	StepSize     float64 `yaml:"step_size"`
	TurnRatio    float64 `yaml:"turn_ratio"`
	TailFrames   int64   `yaml:"tail_frames"`
	Loops        int     `yaml:"loops"`
	SVGDir       string  `yaml:"svg_dir"`
	SVGEvery     int64   `yaml:"svg_every"`
	SVGScale     float64 `yaml:"svg_scale"`
	Trace        string  `yaml:"trace"`
}

// defaultRunConfig is 40 events over 4 cores and 4 caches, step 0.5,
// turn at a quarter of the drop, 50 trailing frames.
func defaultRunConfig() RunConfig {
	return RunConfig{
		Sources:      4,
		Destinations: 4,
		Events:       40,
		Seed:         42,
		StepSize:     sim.DefaultStepSize,
		TurnRatio:    sim.DefaultTurnRatio,
		TailFrames:   sim.DefaultTailFrames,
		Loops:        1,
		SVGEvery:     1,
		Trace:        "none",
	}
}

// loadRunConfig parses path on top of the defaults.
// Uses strict field checking: typos must cause errors.
func loadRunConfig(path string) (RunConfig, error) {
	cfg := defaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing run config: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides copies every explicitly set flag from flagged into cfg.
func applyFlagOverrides(flags *pflag.FlagSet, flagged RunConfig, cfg *RunConfig) {
	overrides := map[string]func(){
		"sources":       func() { cfg.Sources = flagged.Sources },
		"destinations":  func() { cfg.Destinations = flagged.Destinations },
		"events":        func() { cfg.Events = flagged.Events },
		"seed":          func() { cfg.Seed = flagged.Seed },
		"events-file":   func() { cfg.EventsFile = flagged.EventsFile },
		"events-header": func() { cfg.EventsHeader = flagged.EventsHeader },
		"workload-spec": func() { cfg.WorkloadSpec = flagged.WorkloadSpec },
		"step-size":     func() { cfg.StepSize = flagged.StepSize },
		"turn-ratio":    func() { cfg.TurnRatio = flagged.TurnRatio },
		"tail-frames":   func() { cfg.TailFrames = flagged.TailFrames },
		"loops":         func() { cfg.Loops = flagged.Loops },
		"svg-dir":       func() { cfg.SVGDir = flagged.SVGDir },
		"svg-every":     func() { cfg.SVGEvery = flagged.SVGEvery },
		"svg-scale":     func() { cfg.SVGScale = flagged.SVGScale },
		"trace":         func() { cfg.Trace = flagged.Trace },
	}
	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}
}

// simConfig extracts the tick driver settings.
func (c RunConfig) simConfig() sim.SimConfig {
	return sim.SimConfig{
		Engine:     sim.EngineConfig{StepSize: c.StepSize, TurnRatio: c.TurnRatio},
		TailFrames: c.TailFrames,
		Loops:      c.Loops,
	}
}
