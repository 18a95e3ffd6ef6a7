package measure

import (
	"fmt"
	"math"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
	"golang.org/x/exp/slices"
)

// Index returns the measure a beat falls in.
func Index(beat, beatsPerMeasure float64) int {
	// NOTE: the epsilon keeps a beat that sits on a barline from rounding into the previous measure
	return int(math.Floor(beat/beatsPerMeasure + 1e-9))
}

// Split breaks every note that crosses a barline into tied fragments, one per measure
// it touches. The first fragment keeps the original id. The result is sorted by
// (StartBeat, MidiPitch).
func Split(notes []*model.NoteEvent, cfg config.Config) []*model.NoteEvent {
	res := make([]*model.NoteEvent, 0, len(notes))
	for _, n := range notes {
		res = append(res, splitNote(n, cfg)...)
	}
	SortByOnset(res)
	return res
}

func splitNote(n *model.NoteEvent, cfg config.Config) []*model.NoteEvent {
	var fragments []*model.NoteEvent

	cursor := n.StartBeat
	remaining := n.DurationBeats
	for remaining > cfg.SplitTolerance {
		idx := Index(cursor, cfg.BeatsPerMeasure)
		boundary := float64(idx+1) * cfg.BeatsPerMeasure
		chunk := math.Min(remaining, boundary-cursor)

		var frag *model.NoteEvent
		if len(fragments) == 0 {
			frag = n
		} else {
			frag = n.Clone()
			frag.Id = fmt.Sprintf("%v_split_%v", n.Id, idx)
		}
		frag.StartBeat = cursor
		frag.DurationBeats = chunk
		fragments = append(fragments, frag)

		cursor += chunk
		remaining -= chunk
	}

	if len(fragments) == 0 {
		// zero-length input still has to land somewhere
		n.Tie = model.TieNone
		return []*model.NoteEvent{n}
	}

	last := len(fragments) - 1
	for i, f := range fragments {
		switch {
		case last == 0:
			f.Tie = model.TieNone
		case i == 0:
			f.Tie = model.TieStart
		case i == last:
			f.Tie = model.TieStop
		default:
			f.Tie = model.TieContinue
		}
	}
	return fragments
}

// SortByOnset orders notes by StartBeat then MidiPitch, keeping input order for ties.
func SortByOnset(notes []*model.NoteEvent) {
	slices.SortStableFunc(notes, func(a, b *model.NoteEvent) bool {
		if a.StartBeat != b.StartBeat {
			return a.StartBeat < b.StartBeat
		}
		return a.MidiPitch < b.MidiPitch
	})
}
