package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// WorkloadSpec is the top-level event generation configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version         string `yaml:"version"`
	Seed            int64  `yaml:"seed"`
	NumSources      int    `yaml:"num_sources"`
	NumDestinations int    `yaml:"num_destinations"`
	NumEvents       int    `yaml:"num_events"`
	StartFrame      int64  `yaml:"start_frame,omitempty"`
	FrameInterval   int64  `yaml:"frame_interval,omitempty"`   // frames between successive batches (default 1)
	EventsPerFrame  int    `yaml:"events_per_frame,omitempty"` // events sharing one frame (default 1)
}

// DefaultWorkloadSpec returns 40 events, one per frame, starting at frame 0.
func DefaultWorkloadSpec(numSources, numDestinations int) *WorkloadSpec {
	return &WorkloadSpec{
		Version:         "1",
		Seed:            42,
		NumSources:      numSources,
		NumDestinations: numDestinations,
		NumEvents:       40,
		FrameInterval:   1,
		EventsPerFrame:  1,
	}
}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	spec.applyDefaults()
	return &spec, nil
}

func (s *WorkloadSpec) applyDefaults() {
	if s.Version == "" {
		s.Version = "1"
	}
	if s.FrameInterval == 0 {
		s.FrameInterval = 1
	}
	if s.EventsPerFrame == 0 {
		s.EventsPerFrame = 1
	}
}

// Validate checks that all fields in the spec are usable.
func (s *WorkloadSpec) Validate() error {
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unsupported workload spec version %q; valid: 1", s.Version)
	}
	if s.NumSources < 1 {
		return fmt.Errorf("num_sources must be >= 1, got %d", s.NumSources)
	}
	if s.NumDestinations < 1 {
		return fmt.Errorf("num_destinations must be >= 1, got %d", s.NumDestinations)
	}
	if s.NumEvents < 0 {
		return fmt.Errorf("num_events must be >= 0, got %d", s.NumEvents)
	}
	if s.StartFrame < 0 {
		return fmt.Errorf("start_frame must be >= 0, got %d", s.StartFrame)
	}
	if s.FrameInterval < 1 {
		return fmt.Errorf("frame_interval must be >= 1, got %d", s.FrameInterval)
	}
	if s.EventsPerFrame < 1 {
		return fmt.Errorf("events_per_frame must be >= 1, got %d", s.EventsPerFrame)
	}
	if s.NumEvents == 0 {
		logrus.Warn("workload spec has num_events=0; the animation will show idle nodes only")
	}
	return nil
}
