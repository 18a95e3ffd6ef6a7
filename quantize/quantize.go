package quantize

import (
	"math"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/notation"
)

// SecondsToBeats converts a time in seconds to beats at the given tempo.
func SecondsToBeats(seconds, bpm float64) float64 {
	return seconds * bpm / 60
}

// BeatsToSeconds is the inverse of SecondsToBeats.
func BeatsToSeconds(beats, bpm float64) float64 {
	return beats * 60 / bpm
}

// Snap rounds beats to the nearest grid step.
func Snap(beats float64, divisions int) float64 {
	d := float64(divisions)
	return math.Round(beats*d) / d
}

// Quantize sets StartBeat, DurationBeats, QuantizeErrorBeats and IsUncertain on every
// note, and fills PitchLabel when it is empty.
func Quantize(notes []*model.NoteEvent, bpm float64, cfg config.Config) {
	step := cfg.GridStep()
	threshold := cfg.UncertainFraction * step

	for _, n := range notes {
		raw := SecondsToBeats(n.StartTime, bpm)
		n.StartBeat = Snap(raw, cfg.GridDivisions)
		n.DurationBeats = math.Max(step, Snap(SecondsToBeats(n.Duration, bpm), cfg.GridDivisions))
		n.QuantizeErrorBeats = math.Abs(n.StartBeat - raw)
		n.IsUncertain = n.QuantizeErrorBeats > threshold

		if n.PitchLabel == "" {
			n.PitchLabel = notation.PitchLabel(n.MidiPitch)
		}
	}
}
