package config

import (
	"math"
	"os"
	"strconv"

	"github.com/jsphweid/engraver/model"
	"github.com/pkg/errors"
)

// Config holds every tunable the engraving stages read. It is passed by value and
// never mutated once a run starts.
type Config struct {
	// Length of a measure in beats (4/4).
	BeatsPerMeasure float64

	// Quantization grid, in divisions per beat.
	GridDivisions int

	// A note is uncertain when its onset moved more than this fraction of a grid step.
	UncertainFraction float64

	// Maximum acceptable ledger lines before fast-path overrides and flags kick in.
	LedgerLimit int

	// Below BassFastPath a note is forced to bass, above TrebleFastPath to treble,
	// but only when both staves exceed LedgerLimit.
	BassFastPath   float64
	TrebleFastPath float64

	// Onsets closer than this are considered the same chord.
	ChordTolerance float64

	// Remaining duration below this ends a measure split.
	SplitTolerance float64

	// Largest gap between two notes that still continues a slur or beam.
	ConnectGap float64

	MaxSlurLength   int
	MaxBeamDuration float64

	// Rest lengths in beats, largest first.
	RestDurations []float64

	Staves []model.StaffInfo
}

// NewConfig creates a Config with reasonable defaults for real usage.
func NewConfig() Config {
	return Config{
		BeatsPerMeasure:   4,
		GridDivisions:     32,
		UncertainFraction: 0.35,
		LedgerLimit:       3,
		BassFastPath:      53,
		TrebleFastPath:    69,
		ChordTolerance:    0.001,
		SplitTolerance:    1e-4,
		ConnectGap:        1.0 / 32,
		MaxSlurLength:     8,
		MaxBeamDuration:   0.5,
		RestDurations:     restDurationsFor(1.0 / 32),
		Staves:            DefaultStaves(),
	}
}

func DefaultStaves() []model.StaffInfo {
	return []model.StaffInfo{
		{Id: model.Treble, Clef: model.Treble, MiddlePitch: 71},
		{Id: model.Bass, Clef: model.Bass, MiddlePitch: 50},
	}
}

// GridStep is the width of one quantization step in beats.
func (c Config) GridStep() float64 {
	return 1 / float64(c.GridDivisions)
}

// WithGrid returns a copy of the config quantizing to the given divisions per beat.
func (c Config) WithGrid(divisions int) Config {
	c.GridDivisions = divisions
	c.ConnectGap = c.GridStep()
	c.RestDurations = restDurationsFor(c.GridStep())
	return c
}

var standardRests = []float64{4, 2, 1, 0.5, 0.25, 0.125}

// restDurationsFor keeps the standard rests that are whole multiples of step and ends
// with step itself, so any gap on the grid decomposes exactly.
func restDurationsFor(step float64) []float64 {
	var res []float64
	for _, d := range standardRests {
		n := math.Round(d / step)
		if n >= 1 && math.Abs(n*step-d) < 1e-9 {
			res = append(res, d)
		}
	}
	if len(res) == 0 || res[len(res)-1]-step > 1e-9 {
		res = append(res, step)
	}
	return res
}

// StaffInfo looks up a staff by id.
func (c Config) StaffInfo(id model.Staff) (model.StaffInfo, bool) {
	for _, s := range c.Staves {
		if s.Id == id {
			return s, true
		}
	}
	return model.StaffInfo{}, false
}

// FromEnv starts from the defaults and applies ENGRAVER_GRID and ENGRAVER_LEDGER_LIMIT.
func FromEnv() (Config, error) {
	c := NewConfig()

	if v := os.Getenv("ENGRAVER_GRID"); v != "" {
		grid, err := strconv.Atoi(v)
		if err != nil || grid <= 0 {
			return c, errors.Errorf("invalid ENGRAVER_GRID %q", v)
		}
		c = c.WithGrid(grid)
	}

	if v := os.Getenv("ENGRAVER_LEDGER_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return c, errors.Errorf("invalid ENGRAVER_LEDGER_LIMIT %q", v)
		}
		c.LedgerLimit = limit
	}

	return c, nil
}
