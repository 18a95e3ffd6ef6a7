package notation

import (
	"fmt"
	"math"
)

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchLabel spells a midi pitch with sharps, e.g. 60 -> "C4", 61 -> "C#4".
// Fractional pitches are rounded to the nearest semitone.
func PitchLabel(midi float64) string {
	if math.IsNaN(midi) || math.IsInf(midi, 0) {
		return ""
	}
	p := int(math.Round(midi))
	class := ((p % 12) + 12) % 12
	octave := int(math.Floor(float64(p)/12)) - 1
	return fmt.Sprintf("%v%v", sharpNames[class], octave)
}

// LedgerLines is the number of ledger lines needed to write midi on a staff whose
// middle line sits at middle. Four semitones either way stay inside the staff.
func LedgerLines(midi, middle float64) int {
	distance := math.Round(math.Abs(midi-middle)) - 4
	if distance <= 0 {
		return 0
	}
	return int(math.Ceil(distance / 2))
}

type Duration struct {
	Name   string
	Dotted bool
}

var durations = []struct {
	beats float64
	Duration
}{
	{4, Duration{"whole", false}},
	{3, Duration{"half", true}},
	{2, Duration{"half", false}},
	{1.5, Duration{"quarter", true}},
	{1, Duration{"quarter", false}},
	{0.75, Duration{"eighth", true}},
	{0.5, Duration{"eighth", false}},
	{0.375, Duration{"16th", true}},
	{0.25, Duration{"16th", false}},
	{0.1875, Duration{"32nd", true}},
	{0.125, Duration{"32nd", false}},
	{0.0625, Duration{"64th", false}},
	{0.03125, Duration{"128th", false}},
}

// DurationSymbol maps a length in beats to the note value a renderer should draw.
// Lengths with no single symbol report false.
func DurationSymbol(beats float64) (Duration, bool) {
	for _, d := range durations {
		if math.Abs(d.beats-beats) < 1e-4 {
			return d.Duration, true
		}
	}
	return Duration{}, false
}

func (d Duration) String() string {
	if d.Dotted {
		return "dotted " + d.Name
	}
	return d.Name
}
