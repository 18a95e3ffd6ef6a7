package notation

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchLabel(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		60:   "C4",
		61:   "C#4",
		69:   "A4",
		21:   "A0",
		108:  "C8",
		59.6: "C4",
		0:    "C-1",
	}
	for midi, expected := range cases {
		assert.Equal(t, expected, PitchLabel(midi), "midi %v", midi)
	}
	assert.Equal(t, "", PitchLabel(math.NaN()))
}

func TestLedgerLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		midi, middle float64
		expected     int
	}{
		{71, 71, 0},
		{75, 71, 0},
		{76, 71, 1},
		{77, 71, 1},
		{78, 71, 2},
		{60, 71, 4},
		{72, 50, 9},
		{60, 50, 3},
		{40, 50, 3},
	}
	for _, c := range cases {
		name := fmt.Sprintf("%v on %v", c.midi, c.middle)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.expected, LedgerLines(c.midi, c.middle))
		})
	}
}

func TestDurationSymbol(t *testing.T) {
	t.Parallel()

	d, ok := DurationSymbol(1)
	require.True(t, ok)
	assert.Equal(t, "quarter", d.String())

	d, ok = DurationSymbol(0.75)
	require.True(t, ok)
	assert.Equal(t, Duration{"eighth", true}, d)

	d, ok = DurationSymbol(3)
	require.True(t, ok)
	assert.Equal(t, "dotted half", d.String())

	d, ok = DurationSymbol(0.375)
	require.True(t, ok)
	assert.True(t, d.Dotted)

	_, ok = DurationSymbol(1.25)
	assert.False(t, ok)
}
