package staff

import (
	"math"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/notation"
)

// ConfigurationError means the assigner was given nothing to assign to. It is a
// programming error, never caused by input notes.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "staff configuration error: " + e.Reason
}

// Cost is the number of ledger lines needed to write midi on the staff.
func Cost(midi float64, s model.StaffInfo) int {
	return notation.LedgerLines(midi, s.MiddlePitch)
}

// Choose picks the staff for a single pitch. The cheapest staff wins, earlier staves
// winning ties. When even the cheapest staff needs more than LedgerLimit lines, very
// low notes go to bass and very high notes to treble; anything else keeps the
// cheapest staff and is flagged later.
func Choose(midi float64, cfg config.Config) model.Staff {
	best := cfg.Staves[0]
	bestCost := Cost(midi, best)
	for _, s := range cfg.Staves[1:] {
		if c := Cost(midi, s); c < bestCost {
			best, bestCost = s, c
		}
	}

	if bestCost > cfg.LedgerLimit {
		if midi < cfg.BassFastPath {
			return model.Bass
		}
		if midi > cfg.TrebleFastPath {
			return model.Treble
		}
	}
	return best.Id
}

// Assign sets Staff on every note. Rests and notes without a usable pitch keep the
// staff they already have, or get treble.
func Assign(notes []*model.NoteEvent, cfg config.Config) error {
	if len(cfg.Staves) == 0 {
		return &ConfigurationError{Reason: "no staves configured"}
	}

	for _, n := range notes {
		if n.IsRest || math.IsNaN(n.MidiPitch) || math.IsInf(n.MidiPitch, 0) {
			if n.Staff == "" {
				n.Staff = model.Treble
			}
			continue
		}
		n.Staff = Choose(n.MidiPitch, cfg)
	}
	return nil
}
