package rest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/measure"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/quantize"
	"golang.org/x/exp/slices"
)

const eps = 1e-9

// namespace for rest ids, so the same rest always gets the same id
var restNamespace = uuid.MustParse("6f1c5a0e-3d0b-4c1e-9a57-2c1f0e7b8d41")

// RestId derives a stable id from the rest's staff and position.
func RestId(staff model.Staff, startBeat float64) string {
	name := fmt.Sprintf("rest:%v@%.6f", staff, startBeat)
	return "rest_" + uuid.NewSHA1(restNamespace, []byte(name)).String()
}

// Decompose splits a gap into rest lengths, largest that fits first. Anything left
// below the smallest rest is dropped.
func Decompose(length float64, durations []float64) []float64 {
	var res []float64
	remaining := length
	for _, d := range durations {
		for remaining+eps >= d {
			res = append(res, d)
			remaining -= d
		}
	}
	return res
}

// Fill adds rests so that voice 1 of every staff covers the whole measure. Voice 2
// gaps are left empty. The measure's notes are re-sorted afterwards.
func Fill(m *model.Measure, bpm float64, cfg config.Config) {
	for _, s := range cfg.Staves {
		line := m.NotesFor(s.Id, model.Voice1)
		slices.SortStableFunc(line, func(a, b *model.NoteEvent) bool {
			return a.StartBeat < b.StartBeat
		})

		cursor := m.StartBeat
		for _, n := range line {
			if n.StartBeat-cursor > eps {
				m.Notes = append(m.Notes, rests(s.Id, cursor, n.StartBeat, bpm, cfg)...)
			}
			if n.EndBeat() > cursor {
				cursor = n.EndBeat()
			}
		}
		if m.EndBeat-cursor > eps {
			m.Notes = append(m.Notes, rests(s.Id, cursor, m.EndBeat, bpm, cfg)...)
		}
	}
	measure.SortByOnset(m.Notes)
}

func rests(staff model.Staff, from, to, bpm float64, cfg config.Config) []*model.NoteEvent {
	var res []*model.NoteEvent
	cursor := from
	for _, d := range Decompose(to-from, cfg.RestDurations) {
		res = append(res, &model.NoteEvent{
			Id:            RestId(staff, cursor),
			StartTime:     quantize.BeatsToSeconds(cursor, bpm),
			Duration:      quantize.BeatsToSeconds(d, bpm),
			StartBeat:     cursor,
			DurationBeats: d,
			Staff:         staff,
			Voice:         model.Voice1,
			Tie:           model.TieNone,
			IsRest:        true,
		})
		cursor += d
	}
	return res
}
