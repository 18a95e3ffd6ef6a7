package cmd

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/midi"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/util"
)

// readInput loads notes from a midi file or a JSON request body. A positive bpm
// overrides whatever tempo the file carries.
func readInput(path string, bpm float64) (model.EngraveRequestBody, error) {
	var req model.EngraveRequestBody

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".mid" || ext == ".midi" {
		parsed, err := midi.ReadMidiFile(path)
		if err != nil {
			return req, err
		}
		req.Bpm = midi.Tempo(parsed, constants.DefaultBpm)
		req.Notes = midi.ToNoteEvents(parsed)
	} else {
		var err error
		req, err = util.ReadJSON[model.EngraveRequestBody](path)
		if err != nil {
			return req, err
		}
	}

	if bpm > 0 {
		req.Bpm = bpm
	}
	if req.Bpm == 0 {
		req.Bpm = constants.DefaultBpm
	}
	return req, nil
}
