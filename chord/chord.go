package chord

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/notation"
	"golang.org/x/exp/slices"
)

// Chord is every sounding note that starts together on one staff.
type Chord struct {
	StartBeat float64
	Staff     model.Staff
	Notes     []*model.NoteEvent
}

// CreateChordKey joins the rounded pitches low to high, e.g. 60-64-67.
func CreateChordKey(notes []*model.NoteEvent) string {
	pitches := make([]int, 0, len(notes))
	for _, n := range notes {
		pitches = append(pitches, int(math.Round(n.MidiPitch)))
	}
	slices.Sort(pitches)

	parts := make([]string, len(pitches))
	for i, p := range pitches {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, "-")
}

func (c Chord) String() string {
	labels := make([]string, 0, len(c.Notes))
	for _, n := range c.Notes {
		labels = append(labels, notation.PitchLabel(n.MidiPitch))
	}
	return fmt.Sprintf("%v@%.3f %v [%v]", c.Staff, c.StartBeat, CreateChordKey(c.Notes), strings.Join(labels, " "))
}

// GetChords groups the measure's sounding notes by staff and onset. Onsets closer
// than tolerance count as the same. Single notes come back as one-note chords.
func GetChords(m model.Measure, tolerance float64) []Chord {
	var notes []*model.NoteEvent
	for _, n := range m.Notes {
		if !n.IsRest {
			notes = append(notes, n)
		}
	}
	slices.SortStableFunc(notes, func(a, b *model.NoteEvent) bool {
		if a.Staff != b.Staff {
			return a.Staff < b.Staff
		}
		if a.StartBeat != b.StartBeat {
			return a.StartBeat < b.StartBeat
		}
		return a.MidiPitch < b.MidiPitch
	})

	var chords []Chord
	for _, n := range notes {
		last := len(chords) - 1
		if last >= 0 && chords[last].Staff == n.Staff && math.Abs(n.StartBeat-chords[last].StartBeat) < tolerance {
			chords[last].Notes = append(chords[last].Notes, n)
			continue
		}
		chords = append(chords, Chord{StartBeat: n.StartBeat, Staff: n.Staff, Notes: []*model.NoteEvent{n}})
	}
	return chords
}
