package sim

import (
	"fmt"
	"math"
)

const (
	DefaultStepSize   = 0.5
	DefaultTurnRatio  = 0.25
	DefaultTailFrames = 50
)

// EngineConfig groups the motion parameters of an Engine.
// Fixed at construction; the engine keeps its own copy.
type EngineConfig struct {
	StepSize  float64 // distance advanced along one axis per tick (must be > 0)
	TurnRatio float64 // fraction of the vertical source→destination distance before the turn, in [0, 1]
}

// DefaultEngineConfig returns a half-unit step that turns a quarter of the way down.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{StepSize: DefaultStepSize, TurnRatio: DefaultTurnRatio}
}

// Validate reports an ErrInvalidConfiguration for a non-positive or non-finite
// step size, or a turn ratio outside [0, 1].
func (c EngineConfig) Validate() error {
	if math.IsNaN(c.StepSize) || math.IsInf(c.StepSize, 0) || c.StepSize <= 0 {
		return fmt.Errorf("%w: step size must be a finite value > 0, got %v", ErrInvalidConfiguration, c.StepSize)
	}
	if math.IsNaN(c.TurnRatio) || c.TurnRatio < 0 || c.TurnRatio > 1 {
		return fmt.Errorf("%w: turn ratio must be in [0, 1], got %v", ErrInvalidConfiguration, c.TurnRatio)
	}
	return nil
}

// SimConfig groups the tick driver parameters.
type SimConfig struct {
	Engine     EngineConfig
	TailFrames int64 // frames played after the last scheduled event before the animation repeats (>= 0)
	Loops      int   // number of passes over the frame range (>= 1)
}

// DefaultSimConfig returns a single pass with 50 trailing frames.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Engine:     DefaultEngineConfig(),
		TailFrames: DefaultTailFrames,
		Loops:      1,
	}
}

// Validate checks the engine parameters and the loop bounds.
func (c SimConfig) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if c.TailFrames < 0 {
		return fmt.Errorf("%w: tail frames must be >= 0, got %d", ErrInvalidConfiguration, c.TailFrames)
	}
	if c.Loops < 1 {
		return fmt.Errorf("%w: loops must be >= 1, got %d", ErrInvalidConfiguration, c.Loops)
	}
	return nil
}
