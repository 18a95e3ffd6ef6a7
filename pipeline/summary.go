package pipeline

import "github.com/jsphweid/engraver/model"

// Summarize counts what ended up in the score.
func Summarize(measures []model.Measure) model.Summary {
	s := model.Summary{NumMeasures: len(measures), Flags: make(map[string]int)}
	slurs := make(map[string]bool)
	beams := make(map[string]bool)

	for _, m := range measures {
		for _, n := range m.Notes {
			if n.IsRest {
				s.NumRests++
				continue
			}
			s.NumNotes++
			if n.Tie != model.TieNone && n.Tie != "" {
				s.NumTied++
			}
			if n.IsUncertain {
				s.NumUncertain++
			}
			if n.Voice == model.Voice2 {
				s.NumVoice2++
			}
			if n.SlurId != "" {
				slurs[n.SlurId] = true
			}
			if n.BeamId != "" {
				beams[n.BeamId] = true
			}
			for _, f := range n.RemediationFlags {
				s.Flags[f]++
			}
		}
	}
	s.NumSlurs = len(slurs)
	s.NumBeams = len(beams)
	return s
}
