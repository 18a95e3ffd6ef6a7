package validate

import (
	"fmt"
	"math"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/phrase"
	"github.com/jsphweid/engraver/staff"
	"github.com/jsphweid/engraver/util"
)

const (
	FlagSlurCrossStaff   = "slur_removed_cross_staff"
	FlagSlurCrossVoice   = "slur_removed_cross_voice"
	FlagSlurHasChord     = "slur_removed_has_chord"
	FlagSlurCrossMeasure = "slur_removed_cross_measure"
	FlagBeamInvalid      = "beam_removed_invalid"
	FlagVoiceOverlap     = "voice_overlap"
)

func ExcessLedgerFlag(lines int) string {
	return fmt.Sprintf("excess_ledger_lines_%d", lines)
}

// Report counts what a validation pass changed.
type Report struct {
	LedgerFlags  int
	SlursRemoved int
	BeamsRemoved int
	Overlaps     int
}

type member struct {
	note    *model.NoteEvent
	measure int
	chord   bool
}

// Validate checks the whole score after every other stage has run. Slurs and beams
// that break their grouping rules are stripped; other problems only become flags on
// the note. Flags are never duplicated, so running it again changes nothing.
func Validate(measures []model.Measure, cfg config.Config) Report {
	var report Report

	slurs := make(map[string][]member)
	beams := make(map[string][]member)

	for mi := range measures {
		m := &measures[mi]
		for _, n := range m.Notes {
			if n.IsRest {
				continue
			}
			if checkLedger(n, cfg) {
				report.LedgerFlags++
			}
			if n.SlurId == "" && n.BeamId == "" {
				continue
			}
			line := m.NotesFor(n.Staff, n.Voice)
			mem := member{note: n, measure: m.Index, chord: phrase.IsChordNote(n, line, cfg.ChordTolerance)}
			if n.SlurId != "" {
				slurs[n.SlurId] = append(slurs[n.SlurId], mem)
			}
			if n.BeamId != "" {
				beams[n.BeamId] = append(beams[n.BeamId], mem)
			}
		}
		report.Overlaps += checkOverlaps(m, cfg)
	}

	for _, id := range util.GetKeys(slurs) {
		if checkSlur(slurs[id]) {
			report.SlursRemoved++
		}
	}
	for _, id := range util.GetKeys(beams) {
		if checkBeam(beams[id], cfg) {
			report.BeamsRemoved++
		}
	}
	return report
}

func checkLedger(n *model.NoteEvent, cfg config.Config) bool {
	if !util.IsFinite(n.MidiPitch) {
		return false
	}
	info, ok := cfg.StaffInfo(n.Staff)
	if !ok {
		return false
	}
	if lines := staff.Cost(n.MidiPitch, info); lines > cfg.LedgerLimit {
		n.AddFlag(ExcessLedgerFlag(lines))
		return true
	}
	return false
}

func spread(members []member) (staves, voices, bars int, chord bool) {
	staffSet := make(map[model.Staff]bool)
	voiceSet := make(map[int]bool)
	barSet := make(map[int]bool)
	for _, m := range members {
		staffSet[m.note.Staff] = true
		voiceSet[m.note.Voice] = true
		barSet[m.measure] = true
		chord = chord || m.chord
	}
	return len(staffSet), len(voiceSet), len(barSet), chord
}

func checkSlur(members []member) bool {
	staves, voices, bars, chord := spread(members)

	var flags []string
	if staves > 1 {
		flags = append(flags, FlagSlurCrossStaff)
	}
	if voices > 1 {
		flags = append(flags, FlagSlurCrossVoice)
	}
	if chord {
		flags = append(flags, FlagSlurHasChord)
	}
	if bars > 1 {
		flags = append(flags, FlagSlurCrossMeasure)
	}
	if len(flags) == 0 {
		return false
	}

	for _, m := range members {
		m.note.SlurId = ""
		for _, f := range flags {
			m.note.AddFlag(f)
		}
	}
	return true
}

func checkBeam(members []member, cfg config.Config) bool {
	staves, voices, bars, _ := spread(members)
	valid := staves == 1 && voices == 1 && bars == 1

	start, end := math.Inf(1), math.Inf(-1)
	for _, m := range members {
		if m.note.DurationBeats > cfg.MaxBeamDuration+1e-9 {
			valid = false
		}
		start = math.Min(start, m.note.StartBeat)
		end = math.Max(end, m.note.EndBeat())
	}
	if math.Floor(start+1e-9) != math.Floor(end-2e-9) {
		valid = false
	}
	if valid {
		return false
	}

	for _, m := range members {
		m.note.BeamId = ""
		m.note.AddFlag(FlagBeamInvalid)
	}
	return true
}

// checkOverlaps flags notes that overlap another note of the same voice with a
// different onset. Only three or more interleaved lines produce these.
func checkOverlaps(m *model.Measure, cfg config.Config) int {
	var count int
	for _, s := range cfg.Staves {
		for _, v := range []int{model.Voice1, model.Voice2} {
			line := m.NotesFor(s.Id, v)
			for i, a := range line {
				for _, b := range line[i+1:] {
					if a.IsRest || b.IsRest {
						continue
					}
					if math.Abs(a.StartBeat-b.StartBeat) < cfg.ChordTolerance {
						continue
					}
					if b.StartBeat < a.EndBeat()-1e-9 && b.EndBeat() > a.StartBeat+1e-9 {
						a.AddFlag(FlagVoiceOverlap)
						b.AddFlag(FlagVoiceOverlap)
						count++
					}
				}
			}
		}
	}
	return count
}
