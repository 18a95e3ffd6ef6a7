package phrase

import (
	"math"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
	"golang.org/x/exp/slices"
)

const eps = 1e-9

// Detect clears and recomputes slurs and beams for one measure, separately for each
// (staff, voice) line.
func Detect(m *model.Measure, ids *IDs, cfg config.Config) {
	for _, n := range m.Notes {
		n.SlurId = ""
		n.BeamId = ""
	}

	for _, s := range cfg.Staves {
		for _, v := range []int{model.Voice1, model.Voice2} {
			line := sounding(m.NotesFor(s.Id, v))
			if len(line) == 0 {
				continue
			}
			slices.SortStableFunc(line, func(a, b *model.NoteEvent) bool {
				return a.StartBeat < b.StartBeat
			})
			detectSlurs(line, ids, cfg)
			detectBeams(line, ids, cfg)
		}
	}
}

func sounding(notes []*model.NoteEvent) []*model.NoteEvent {
	res := make([]*model.NoteEvent, 0, len(notes))
	for _, n := range notes {
		if !n.IsRest {
			res = append(res, n)
		}
	}
	return res
}

// IsChordNote reports whether another note in line shares n's onset.
func IsChordNote(n *model.NoteEvent, line []*model.NoteEvent, tolerance float64) bool {
	for _, other := range line {
		if other != n && !other.IsRest && math.Abs(other.StartBeat-n.StartBeat) < tolerance {
			return true
		}
	}
	return false
}

func gap(prev, next *model.NoteEvent) float64 {
	return next.StartBeat - prev.EndBeat()
}

// detectSlurs chains consecutive single notes whose gaps stay within ConnectGap.
// Chords break a chain. So does reaching MaxSlurLength.
func detectSlurs(line []*model.NoteEvent, ids *IDs, cfg config.Config) {
	var chain []*model.NoteEvent
	flush := func() {
		if len(chain) >= 2 {
			id := ids.NextSlur()
			for _, n := range chain {
				n.SlurId = id
			}
		}
		chain = chain[:0]
	}

	for _, n := range line {
		if IsChordNote(n, line, cfg.ChordTolerance) {
			flush()
			continue
		}
		if len(chain) > 0 && gap(chain[len(chain)-1], n) > cfg.ConnectGap+eps {
			flush()
		}
		chain = append(chain, n)
		if len(chain) >= cfg.MaxSlurLength {
			flush()
		}
	}
	flush()
}

func beatOf(beat float64) int {
	return int(math.Floor(beat + eps))
}

// CrossesBeat reports whether the note sounds across an integer beat.
func CrossesBeat(n *model.NoteEvent) bool {
	return beatOf(n.StartBeat) != beatOf(n.EndBeat()-2*eps)
}

// detectBeams groups short notes that sit inside the same beat with no real gap
// between them. A group needs at least two distinct onsets.
func detectBeams(line []*model.NoteEvent, ids *IDs, cfg config.Config) {
	var group []*model.NoteEvent
	flush := func() {
		onsets := 0
		for i, n := range group {
			if i == 0 || math.Abs(n.StartBeat-group[i-1].StartBeat) >= cfg.ChordTolerance {
				onsets++
			}
		}
		if onsets >= 2 {
			id := ids.NextBeam()
			for _, n := range group {
				n.BeamId = id
			}
		}
		group = group[:0]
	}

	for _, n := range line {
		if n.DurationBeats > cfg.MaxBeamDuration+eps || CrossesBeat(n) {
			flush()
			continue
		}
		if len(group) > 0 {
			prev := group[len(group)-1]
			if beatOf(n.StartBeat) != beatOf(group[0].StartBeat) || gap(prev, n) > cfg.ConnectGap+eps {
				flush()
			}
		}
		group = append(group, n)
	}
	flush()
}
