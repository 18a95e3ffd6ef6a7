package measure

import (
	"math"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
)

// Count is the number of measures needed to hold every note.
func Count(notes []*model.NoteEvent, beatsPerMeasure float64) int {
	if len(notes) == 0 {
		return 0
	}
	var end float64
	for _, n := range notes {
		end = math.Max(end, n.EndBeat())
	}
	count := int(math.Ceil(end/beatsPerMeasure - 1e-9))
	if count < 1 {
		count = 1
	}
	return count
}

// Group buckets notes into consecutive measures by StartBeat. Notes keep their
// relative order inside each measure.
func Group(notes []*model.NoteEvent, cfg config.Config) []model.Measure {
	count := Count(notes, cfg.BeatsPerMeasure)
	measures := make([]model.Measure, count)
	for i := range measures {
		measures[i] = model.Measure{
			Index:     i,
			StartBeat: float64(i) * cfg.BeatsPerMeasure,
			EndBeat:   float64(i+1) * cfg.BeatsPerMeasure,
			Notes:     []*model.NoteEvent{},
		}
	}

	for _, n := range notes {
		idx := Index(n.StartBeat, cfg.BeatsPerMeasure)
		if idx < 0 {
			idx = 0
		}
		if idx >= count {
			idx = count - 1
		}
		measures[idx].Notes = append(measures[idx].Notes, n)
	}
	return measures
}
