package config

import (
	"testing"

	"github.com/jsphweid/engraver/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	assert.Equal(t, 4.0, c.BeatsPerMeasure)
	assert.Equal(t, 1.0/32, c.GridStep())
	assert.Equal(t, 3, c.LedgerLimit)
	require.Len(t, c.Staves, 2)

	treble, ok := c.StaffInfo(model.Treble)
	require.True(t, ok)
	assert.Equal(t, 71.0, treble.MiddlePitch)

	bass, ok := c.StaffInfo(model.Bass)
	require.True(t, ok)
	assert.Equal(t, 50.0, bass.MiddlePitch)
}

func TestWithGridDoesNotTouchOriginal(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c16 := c.WithGrid(16)
	assert.Equal(t, 32, c.GridDivisions)
	assert.Equal(t, 16, c16.GridDivisions)
	assert.Equal(t, 1.0/16, c16.ConnectGap)
	assert.Equal(t, []float64{4, 2, 1, 0.5, 0.25, 0.125, 1.0 / 32}, c.RestDurations)
}

func TestWithGridRestsReachTheGridStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		divisions int
		want      []float64
	}{
		{64, []float64{4, 2, 1, 0.5, 0.25, 0.125, 1.0 / 64}},
		{8, []float64{4, 2, 1, 0.5, 0.25, 0.125}},
		{3, []float64{4, 2, 1, 1.0 / 3}},
	}
	for _, tt := range tests {
		c := NewConfig().WithGrid(tt.divisions)
		require.Len(t, c.RestDurations, len(tt.want), "grid %v", tt.divisions)
		for i, d := range tt.want {
			assert.InDelta(t, d, c.RestDurations[i], 1e-12, "grid %v", tt.divisions)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ENGRAVER_GRID", "16")
	t.Setenv("ENGRAVER_LEDGER_LIMIT", "2")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 16, c.GridDivisions)
	assert.Equal(t, 2, c.LedgerLimit)
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("ENGRAVER_GRID", "zero")

	_, err := FromEnv()
	require.Error(t, err)
}
