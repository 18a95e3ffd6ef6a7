package batch

import (
	"path/filepath"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/file"
	"github.com/jsphweid/engraver/logger"
	"github.com/jsphweid/engraver/midi"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/pipeline"
	"github.com/jsphweid/engraver/util"
	"github.com/pkg/errors"
)

type Report struct {
	Processed int
	Skipped   int
	Summary   model.Summary
}

// EngraveMidiFile reads a midi file and engraves it at the file's own tempo, or at
// bpm when bpm is positive.
func EngraveMidiFile(path string, bpm float64, cfg config.Config) (model.EngraveResponse, error) {
	parsed, err := midi.ReadMidiFile(path)
	if err != nil {
		return model.EngraveResponse{}, err
	}
	if bpm <= 0 {
		bpm = midi.Tempo(parsed, constants.DefaultBpm)
	}
	req := model.EngraveRequestBody{Bpm: bpm, Notes: midi.ToNoteEvents(parsed)}
	res, err := pipeline.Engrave(req, cfg)
	return res, errors.Wrapf(err, "could not engrave %v", path)
}

func processMidiFile(fileNum uint32, path string, outDir string, bpm float64, cfg config.Config) (model.Summary, error) {
	res, err := EngraveMidiFile(path, bpm, cfg)
	if err != nil {
		return model.Summary{}, err
	}
	out := filepath.Join(outDir, file.OutputName(fileNum, path))
	if err := util.WriteJSON(out, res); err != nil {
		return model.Summary{}, err
	}
	return res.Summary, nil
}

// ProcessAllMidiFiles engraves every file into outDir. Files that fail are logged and
// skipped.
func ProcessAllMidiFiles(m file.FileNumToMidiPath, outDir string, bpm float64, cfg config.Config) Report {
	log := logger.GetProjectLogger()
	report := Report{Summary: model.Summary{Flags: make(map[string]int)}}

	keys := util.GetKeys(m)
	for i, num := range keys {
		log.Infof("Processing %v of %v midi files", i+1, len(keys))
		summary, err := processMidiFile(num, m[num], outDir, bpm, cfg)
		if err != nil {
			log.Warnf("Skipping %v because: %v", m[num], err)
			report.Skipped++
			continue
		}
		report.Processed++
		Merge(&report.Summary, summary)
	}
	return report
}

// Merge adds s into the running totals.
func Merge(into *model.Summary, s model.Summary) {
	into.NumMeasures += s.NumMeasures
	into.NumNotes += s.NumNotes
	into.NumRests += s.NumRests
	into.NumTied += s.NumTied
	into.NumSlurs += s.NumSlurs
	into.NumBeams += s.NumBeams
	into.NumUncertain += s.NumUncertain
	into.NumVoice2 += s.NumVoice2
	for k, v := range s.Flags {
		into.Flags[k] += v
	}
}
