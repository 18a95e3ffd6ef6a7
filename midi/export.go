package midi

import (
	"io"
	"math"

	"github.com/jsphweid/engraver/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

const TicksPerBeat = 960

type timedMessage struct {
	tick  uint32
	off   bool
	bytes []byte
}

// ScoreToSMF writes the engraved score's sounding notes to a single-track file at
// the score's tempo. Tied fragments are written as separate notes.
func ScoreToSMF(measures []model.Measure, bpm float64) *smf.SMF {
	var msgs []timedMessage
	for _, m := range measures {
		for _, n := range m.Notes {
			if n.IsRest {
				continue
			}
			key := uint8(math.Max(0, math.Min(127, math.Round(n.MidiPitch))))
			vel := uint8(math.Max(1, math.Min(127, math.Round(n.Velocity))))
			start := uint32(math.Round(n.StartBeat * TicksPerBeat))
			end := uint32(math.Round(n.EndBeat() * TicksPerBeat))
			msgs = append(msgs,
				timedMessage{tick: start, bytes: midi.NoteOn(0, key, vel)},
				timedMessage{tick: end, off: true, bytes: midi.NoteOff(0, key)},
			)
		}
	}

	slices.SortStableFunc(msgs, func(a, b timedMessage) bool {
		if a.tick != b.tick {
			return a.tick < b.tick
		}
		return a.off && !b.off
	})

	var track smf.Track
	track.Add(0, smf.MetaMeter(4, 4))
	track.Add(0, smf.MetaTempo(bpm))
	var last uint32
	for _, msg := range msgs {
		track.Add(msg.tick-last, msg.bytes)
		last = msg.tick
	}
	track.Close(0)

	var res smf.SMF
	res.TimeFormat = smf.MetricTicks(TicksPerBeat)
	res.Tracks = append(res.Tracks, track)
	return &res
}

func WriteScore(w io.Writer, measures []model.Measure, bpm float64) error {
	_, err := ScoreToSMF(measures, bpm).WriteTo(w)
	return errors.Wrap(err, "could not write midi")
}
