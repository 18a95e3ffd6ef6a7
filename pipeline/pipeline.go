package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/logger"
	"github.com/jsphweid/engraver/measure"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/phrase"
	"github.com/jsphweid/engraver/quantize"
	"github.com/jsphweid/engraver/rest"
	"github.com/jsphweid/engraver/staff"
	"github.com/jsphweid/engraver/util"
	"github.com/jsphweid/engraver/validate"
	"github.com/jsphweid/engraver/voice"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var idNamespace = uuid.MustParse("0b6f3f1e-8f0e-4c52-b1a3-5d2f7c9e4a10")

// ValidateInput rejects non-finite fields, negative onsets and negative durations
// before anything is mutated.
func ValidateInput(events []model.NoteEvent, bpm float64) error {
	if !util.IsFinite(bpm) || bpm <= 0 {
		return &ValidationError{Index: -1, Field: "bpm", Value: bpm}
	}
	for i, e := range events {
		switch {
		case !util.IsFinite(e.StartTime) || e.StartTime < 0:
			return &ValidationError{Index: i, Field: "start_time", Value: e.StartTime}
		case !util.IsFinite(e.Duration) || e.Duration < 0:
			return &ValidationError{Index: i, Field: "duration", Value: e.Duration}
		case !util.IsFinite(e.MidiPitch):
			return &ValidationError{Index: i, Field: "midi_pitch", Value: e.MidiPitch}
		}
	}
	return nil
}

// ingest copies the caller's events so a run never writes to its input, and clears
// anything a previous run derived.
func ingest(events []model.NoteEvent) []*model.NoteEvent {
	notes := make([]*model.NoteEvent, 0, len(events))
	for i := range events {
		n := events[i].Clone()
		if n.Id == "" {
			key := fmt.Sprintf("%d:%v:%v:%v", i, n.StartTime, n.Duration, n.MidiPitch)
			n.Id = "note_" + uuid.NewSHA1(idNamespace, []byte(key)).String()
		}
		n.Staff = ""
		n.Voice = 0
		n.Tie = ""
		n.SlurId = ""
		n.BeamId = ""
		n.IsRest = false
		n.RemediationFlags = nil
		notes = append(notes, n)
	}
	return notes
}

// Run engraves the events at the given tempo and returns the measures in order.
// Each call owns all of its state, so concurrent runs never interfere, and the same
// input always produces the same output.
func Run(events []model.NoteEvent, bpm float64, cfg config.Config) ([]model.Measure, error) {
	if err := ValidateInput(events, bpm); err != nil {
		return nil, err
	}
	log := logger.GetProjectLogger()

	notes := ingest(events)
	quantize.Quantize(notes, bpm, cfg)

	notes = measure.Split(notes, cfg)
	log.WithFields(logrus.Fields{"input": len(events), "fragments": len(notes)}).Debug("split notes at barlines")

	if err := staff.Assign(notes, cfg); err != nil {
		return nil, errors.Wrap(err, "could not assign staves")
	}

	measures := measure.Group(notes, cfg)

	ids := phrase.NewIDs()
	for i := range measures {
		m := &measures[i]
		voice.AssignMeasure(m, cfg)
		phrase.Detect(m, ids, cfg)
		rest.Fill(m, bpm, cfg)
	}

	report := validate.Validate(measures, cfg)
	log.WithFields(logrus.Fields{
		"measures":      len(measures),
		"ledger_flags":  report.LedgerFlags,
		"slurs_removed": report.SlursRemoved,
		"beams_removed": report.BeamsRemoved,
		"overlaps":      report.Overlaps,
	}).Debug("validated score")

	return measures, nil
}

// scoreKey is everything that decides what a score looks like.
type scoreKey struct {
	model.EngraveRequestBody
	GridDivisions int `json:"grid"`
	LedgerLimit   int `json:"ledger_limit"`
}

// ScoreId is a content hash of the input and the settings that shape the result, so
// the same notes, tempo and settings always map to the same score.
func ScoreId(events []model.NoteEvent, bpm float64, cfg config.Config) (string, error) {
	buf, err := json.Marshal(scoreKey{
		EngraveRequestBody: model.EngraveRequestBody{Bpm: bpm, Notes: events},
		GridDivisions:      cfg.GridDivisions,
		LedgerLimit:        cfg.LedgerLimit,
	})
	if err != nil {
		return "", errors.Wrap(err, "could not hash score")
	}
	return uuid.NewSHA1(idNamespace, buf).String(), nil
}

// Engrave runs the pipeline for a request and wraps the result with its id and summary.
func Engrave(req model.EngraveRequestBody, cfg config.Config) (model.EngraveResponse, error) {
	measures, err := Run(req.Notes, req.Bpm, cfg)
	if err != nil {
		return model.EngraveResponse{}, err
	}
	id, err := ScoreId(req.Notes, req.Bpm, cfg)
	if err != nil {
		return model.EngraveResponse{}, err
	}
	return model.EngraveResponse{
		ScoreId:  id,
		Bpm:      req.Bpm,
		Measures: measures,
		Summary:  Summarize(measures),
	}, nil
}
