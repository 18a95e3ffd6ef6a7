package voice

import (
	"math"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
)

func overlaps(a, b *model.NoteEvent) bool {
	return b.StartBeat < a.EndBeat() && b.EndBeat() > a.StartBeat
}

// Assign separates one staff's notes within one measure into two voices.
//
// Every note starts in voice 1. Notes that overlap another note with a different
// onset are independent lines; of those, a note that overlaps any higher-pitched
// line is moved to voice 2. Notes sharing an onset are chord mates and never force
// a voice change. The rule is pairwise, so the result does not depend on order, but
// three or more interleaved lines can still leave overlaps inside a voice.
func Assign(notes []*model.NoteEvent, cfg config.Config) {
	voices := make([]int, len(notes))
	for i, n := range notes {
		voices[i] = model.Voice1
		if n.IsRest {
			continue
		}
		for j, other := range notes {
			if i == j || other.IsRest || !overlaps(n, other) {
				continue
			}
			if math.Abs(other.StartBeat-n.StartBeat) < cfg.ChordTolerance {
				continue
			}
			if other.MidiPitch > n.MidiPitch {
				voices[i] = model.Voice2
				break
			}
		}
	}

	for i, n := range notes {
		n.Voice = voices[i]
	}
}

// AssignMeasure runs Assign for each staff of the measure.
func AssignMeasure(m *model.Measure, cfg config.Config) {
	for _, s := range cfg.Staves {
		Assign(m.NotesFor(s.Id, 0), cfg)
	}
}
