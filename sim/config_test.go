package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultEngineConfig_StepAndTurnRatio(t *testing.T) {
	cfg := DefaultEngineConfig()

	assert.Equal(t, 0.5, cfg.StepSize)
	assert.Equal(t, 0.25, cfg.TurnRatio)
	assert.NoError(t, cfg.Validate())
}

func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   EngineConfig
		valid bool
	}{
		{"defaults", EngineConfig{StepSize: 0.5, TurnRatio: 0.25}, true},
		{"turn ratio zero", EngineConfig{StepSize: 0.5, TurnRatio: 0}, true},
		{"turn ratio one", EngineConfig{StepSize: 0.5, TurnRatio: 1}, true},
		{"zero step", EngineConfig{StepSize: 0, TurnRatio: 0.25}, false},
		{"negative step", EngineConfig{StepSize: -1, TurnRatio: 0.25}, false},
		{"NaN step", EngineConfig{StepSize: math.NaN(), TurnRatio: 0.25}, false},
		{"infinite step", EngineConfig{StepSize: math.Inf(1), TurnRatio: 0.25}, false},
		{"NaN turn ratio", EngineConfig{StepSize: 0.5, TurnRatio: math.NaN()}, false},
		{"turn ratio above one", EngineConfig{StepSize: 0.5, TurnRatio: 1.01}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			}
		})
	}
}

func TestSimConfig_Validate(t *testing.T) {
	cfg := DefaultSimConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Loops = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)

	cfg = DefaultSimConfig()
	cfg.TailFrames = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)

	cfg = DefaultSimConfig()
	cfg.Engine.StepSize = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)
}
