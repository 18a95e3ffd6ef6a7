package midi

import (
	"fmt"

	"github.com/jsphweid/engraver/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

type reducedEvent struct {
	track     int
	micros    int64
	isNoteOff bool
	channel   uint8
	key       uint8
	velocity  uint8
}

type pendingKey struct {
	track   int
	channel uint8
	key     uint8
}

// Tempo returns the first tempo found in the file, or fallback.
func Tempo(s *smf.SMF, fallback float64) float64 {
	for _, track := range s.Tracks {
		for _, event := range track {
			var bpm float64
			if event.Message.GetMetaTempo(&bpm) && bpm > 0 {
				return bpm
			}
		}
	}
	return fallback
}

// ToNoteEvents pairs note on/off messages into NoteEvents with times in seconds.
// Notes still sounding at the end of a track are dropped.
func ToNoteEvents(s *smf.SMF) []model.NoteEvent {
	var reduced []reducedEvent
	for i, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			msg := midi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				reduced = append(reduced, reducedEvent{track: i, micros: s.TimeAt(absTicks), channel: channel, key: key, velocity: velocity})
			case msg.GetNoteEnd(&channel, &key):
				reduced = append(reduced, reducedEvent{track: i, micros: s.TimeAt(absTicks), isNoteOff: true, channel: channel, key: key})
			}
		}
	}

	// prioritize smaller offset values then note off
	slices.SortStableFunc(reduced, func(a, b reducedEvent) bool {
		if a.micros != b.micros {
			return a.micros < b.micros
		}
		return a.isNoteOff && !b.isNoteOff
	})

	var res []model.NoteEvent
	pending := make(map[pendingKey][]reducedEvent)
	for _, evt := range reduced {
		k := pendingKey{evt.track, evt.channel, evt.key}
		if !evt.isNoteOff {
			pending[k] = append(pending[k], evt)
			continue
		}
		started := pending[k]
		if len(started) == 0 {
			continue
		}
		on := started[0]
		pending[k] = started[1:]
		res = append(res, model.NoteEvent{
			Id:         fmt.Sprintf("t%d_n%d", on.track, len(res)),
			StartTime:  float64(on.micros) / 1e6,
			Duration:   float64(evt.micros-on.micros) / 1e6,
			MidiPitch:  float64(on.key),
			Velocity:   float64(on.velocity),
			Confidence: 1,
		})
	}

	slices.SortStableFunc(res, func(a, b model.NoteEvent) bool {
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.MidiPitch < b.MidiPitch
	})
	return res
}
