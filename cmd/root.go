package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/packetflow/sim"
	"github.com/inference-sim/packetflow/sim/render"
	"github.com/inference-sim/packetflow/sim/trace"
)

var (
	logLevel   string    // Log verbosity level
	configPath string    // Optional YAML run config
	runFlags   RunConfig // Values bound to run flags
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "packetflow",
	Short: "Animated packet transfers from CPU cores to caches",
}

// runCmd executes the animation headlessly using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the packet animation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := runFlags
		if configPath != "" {
			cfg, err = loadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			applyFlagOverrides(cmd.Flags(), runFlags, &cfg)
		}
		explicitCounts := cmd.Flags().Changed("sources") || cmd.Flags().Changed("destinations")

		setup, err := buildRun(cfg, explicitCounts)
		if err != nil {
			logrus.Fatalf("Setup failed: %v", err)
		}

		logrus.Infof("Starting animation with %d events, %d sources, %d destinations, horizon=%d frames, loops=%d, step=%v, turn=%v",
			setup.Feed.Len(), setup.Grid.Sources.Len(), setup.Grid.Destinations.Len(),
			setup.Simulator.Horizon(), cfg.Loops, cfg.StepSize, cfg.TurnRatio)
		startTime := time.Now()

		var observe func(sim.Snapshot) error
		var frames *render.FrameWriter
		if cfg.SVGDir != "" {
			frames, err = render.NewFrameWriter(cfg.SVGDir, cfg.SVGEvery, setup.Grid)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			if cfg.SVGScale > 0 {
				frames.Scale = cfg.SVGScale
			}
			observe = frames.Observe
		}

		if err := setup.Simulator.Run(observe); err != nil {
			logrus.Fatalf("Animation aborted: %v", err)
		}

		setup.Simulator.Metrics.Print(os.Stdout)
		if setup.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(setup.Trace))
		}
		if frames != nil {
			logrus.Infof("Wrote %d SVG frames to %s", frames.Written(), cfg.SVGDir)
		}
		logrus.Infof("Animation complete in %v.", time.Since(startTime))
	},
}

// printTraceSummary writes the lifecycle summary after the metrics block.
func printTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Lifecycle Trace ===")
	fmt.Fprintf(w, "Spawned              : %d\n", summary.TotalSpawned)
	fmt.Fprintf(w, "Retired              : %d\n", summary.TotalRetired)
	fmt.Fprintf(w, "In Flight            : %d\n", summary.InFlight)
	if summary.PhaseTransitions > 0 {
		fmt.Fprintf(w, "Phase Transitions    : %d\n", summary.PhaseTransitions)
	}
	if summary.TotalRetired > 0 {
		fmt.Fprintf(w, "Mean Lifetime        : %.2f ticks\n", summary.MeanLifetime)
		fmt.Fprintf(w, "Max Lifetime         : %d ticks\n", summary.MaxLifetime)
	}
	printDistribution(w, "Source", summary.SourceDistribution)
	printDistribution(w, "Destination", summary.DestinationDistribution)
}

func printDistribution(w io.Writer, label string, dist map[int]int) {
	ids := make([]int, 0, len(dist))
	for id := range dist {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "  %s %d: %d\n", label, id+1, dist[id])
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := defaultRunConfig()

	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run config; explicit flags override its values")

	// Event source
	runCmd.Flags().IntVar(&runFlags.Sources, "sources", defaults.Sources, "Number of CPU cores (source nodes)")
	runCmd.Flags().IntVar(&runFlags.Destinations, "destinations", defaults.Destinations, "Number of caches (destination nodes)")
	runCmd.Flags().IntVar(&runFlags.Events, "events", defaults.Events, "Number of generated transfer events")
	runCmd.Flags().Int64Var(&runFlags.Seed, "seed", defaults.Seed, "Seed for event generation")
	runCmd.Flags().StringVar(&runFlags.EventsFile, "events-file", "", "CSV event file (time,source,destination); overrides generation")
	runCmd.Flags().StringVar(&runFlags.EventsHeader, "events-header", "", "YAML header of the event file, used for node counts")
	runCmd.Flags().StringVar(&runFlags.WorkloadSpec, "workload-spec", "", "YAML workload spec for event generation")

	// Motion
	runCmd.Flags().Float64Var(&runFlags.StepSize, "step-size", defaults.StepSize, "Distance a packet moves along one axis per frame")
	runCmd.Flags().Float64Var(&runFlags.TurnRatio, "turn-ratio", defaults.TurnRatio, "Fraction of the vertical drop before the horizontal leg")
	runCmd.Flags().Int64Var(&runFlags.TailFrames, "tail-frames", defaults.TailFrames, "Frames played after the last event before repeating")
	runCmd.Flags().IntVar(&runFlags.Loops, "loops", defaults.Loops, "Number of passes over the frame range")

	// Output
	runCmd.Flags().StringVar(&runFlags.SVGDir, "svg-dir", "", "Directory for SVG frames (disabled when empty)")
	runCmd.Flags().Int64Var(&runFlags.SVGEvery, "svg-every", defaults.SVGEvery, "Write an SVG frame every N ticks")
	runCmd.Flags().Float64Var(&runFlags.SVGScale, "svg-scale", 0, "Pixels per layout unit (0 = default)")
	runCmd.Flags().StringVar(&runFlags.Trace, "trace", defaults.Trace, "Lifecycle trace level (none, lifecycle, phases)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
