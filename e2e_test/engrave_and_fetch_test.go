//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/engraver/batch"
	"github.com/jsphweid/engraver/cmd"
	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/db"
	"github.com/jsphweid/engraver/file"
	"github.com/jsphweid/engraver/midi"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/util"
	"github.com/stretchr/testify/assert"
	"k8s.io/utils/clock"
)

var handler http.Handler

func TestMain(m *testing.M) {
	handler = cmd.NewServer(config.NewConfig(), db.NewMemoryStore(), clock.RealClock{}).Router()
	os.Exit(m.Run())
}

func createEngraveReqBody(notes []model.NoteEvent) io.Reader {
	data, err := json.Marshal(model.EngraveRequestBody{Bpm: 120, Notes: notes})
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestEngraveThenFetchE2E(t *testing.T) {
	assert := assert.New(t)

	body := createEngraveReqBody([]model.NoteEvent{
		{Id: "n1", StartTime: 0, Duration: 0.5, MidiPitch: 60, Velocity: 80, Confidence: 0.9},
		{Id: "n2", StartTime: 0, Duration: 0.5, MidiPitch: 64, Velocity: 80, Confidence: 0.9},
		{Id: "n3", StartTime: 1.75, Duration: 0.5, MidiPitch: 67, Velocity: 80, Confidence: 0.9},
		{Id: "n4", StartTime: 0, Duration: 2, MidiPitch: 43, Velocity: 80, Confidence: 0.9},
	})
	req := httptest.NewRequest(http.MethodPost, "/engrave", body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(200, w.Code)

	var engraved model.EngraveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &engraved); err != nil {
		panic(err.Error())
	}
	assert.Equal(2, len(engraved.Measures))
	assert.Equal(2, engraved.Summary.NumTied)

	req = httptest.NewRequest(http.MethodGet, "/scores/"+engraved.ScoreId, nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(200, w.Code)

	var fetched model.EngraveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		panic(err.Error())
	}
	assert.Equal(engraved, fetched)
}

func TestBatchE2E(t *testing.T) {
	assert := assert.New(t)
	in := t.TempDir()
	out := t.TempDir()

	measures := []model.Measure{{
		Index: 0, StartBeat: 0, EndBeat: 4,
		Notes: []*model.NoteEvent{
			{StartBeat: 0, DurationBeats: 1, MidiPitch: 60, Velocity: 90},
			{StartBeat: 1, DurationBeats: 1, MidiPitch: 62, Velocity: 90},
			{StartBeat: 2, DurationBeats: 2, MidiPitch: 48, Velocity: 90},
		},
	}}
	for _, name := range []string{"a.mid", "b.mid"} {
		f, err := os.Create(filepath.Join(in, name))
		if err != nil {
			panic(err.Error())
		}
		if err := midi.WriteScore(f, measures, 120); err != nil {
			panic(err.Error())
		}
		f.Close()
	}

	paths, err := util.GatherAllMidiPaths(in, 0)
	assert.NoError(err)
	report := batch.ProcessAllMidiFiles(file.CreateFileNumMap(paths), out, 0, config.NewConfig())
	assert.Equal(2, report.Processed)
	assert.Equal(0, report.Skipped)
	assert.Equal(6, report.Summary.NumNotes)

	_, err = os.Stat(filepath.Join(out, "000_a.json"))
	assert.NoError(err)
}
