package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/packetflow/sim"
	"github.com/inference-sim/packetflow/sim/layout"
	"github.com/inference-sim/packetflow/sim/trace"
	"github.com/inference-sim/packetflow/sim/workload"
)

// runSetup is everything the run command wires together.
type runSetup struct {
	Grid      *layout.Grid
	Feed      *workload.FrameFeed
	Simulator *sim.Simulator
	Trace     *trace.LifecycleTrace
}

// loadEvents picks the event source: an event file, a workload spec, or a
// spec built from the node and event counts. Returns the node counts to lay out.
func loadEvents(cfg RunConfig, explicitCounts bool) ([]sim.TransferEvent, int, int, error) {
	switch {
	case cfg.EventsFile != "":
		events, err := workload.LoadEvents(cfg.EventsFile)
		if err != nil {
			return nil, 0, 0, err
		}
		sources, dests := cfg.Sources, cfg.Destinations
		if cfg.EventsHeader != "" {
			header, err := workload.LoadEventsHeader(cfg.EventsHeader)
			if err != nil {
				return nil, 0, 0, err
			}
			sources, dests = header.NumSources, header.NumDestinations
		} else if !explicitCounts {
			sources, dests = inferNodeCounts(events)
		}
		logrus.Infof("loaded %d events from %s", len(events), cfg.EventsFile)
		return events, sources, dests, nil

	case cfg.WorkloadSpec != "":
		spec, err := workload.LoadWorkloadSpec(cfg.WorkloadSpec)
		if err != nil {
			return nil, 0, 0, err
		}
		events, err := workload.GenerateEvents(spec)
		if err != nil {
			return nil, 0, 0, err
		}
		return events, spec.NumSources, spec.NumDestinations, nil

	default:
		spec := workload.DefaultWorkloadSpec(cfg.Sources, cfg.Destinations)
		spec.NumEvents = cfg.Events
		spec.Seed = cfg.Seed
		events, err := workload.GenerateEvents(spec)
		if err != nil {
			return nil, 0, 0, err
		}
		return events, cfg.Sources, cfg.Destinations, nil
	}
}

// inferNodeCounts sizes the layout to the largest ids an event file references.
func inferNodeCounts(events []sim.TransferEvent) (int, int) {
	sources, dests := 1, 1
	for _, ev := range events {
		if ev.SourceID+1 > sources {
			sources = ev.SourceID + 1
		}
		if ev.DestID+1 > dests {
			dests = ev.DestID + 1
		}
	}
	return sources, dests
}

// buildRun validates cfg and assembles layout, feed, simulator and trace.
func buildRun(cfg RunConfig, explicitCounts bool) (*runSetup, error) {
	if !trace.IsValidTraceLevel(cfg.Trace) {
		return nil, fmt.Errorf("unknown trace level %q; valid: none, lifecycle, phases", cfg.Trace)
	}
	events, numSources, numDests, err := loadEvents(cfg, explicitCounts)
	if err != nil {
		return nil, err
	}
	grid, err := layout.BuildGrid(numSources, numDests, layout.GridConfig{})
	if err != nil {
		return nil, err
	}
	feed, err := workload.NewFrameFeed(events)
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSimulator(cfg.simConfig(), feed, grid.Sources, grid.Destinations)
	if err != nil {
		return nil, err
	}

	setup := &runSetup{Grid: grid, Feed: feed, Simulator: s}
	traceCfg := trace.TraceConfig{Level: trace.TraceLevel(cfg.Trace)}
	if traceCfg.Enabled() {
		setup.Trace = trace.NewLifecycleTrace(traceCfg)
		s.Engine.SetTrace(setup.Trace)
	}
	return setup, nil
}
