package model

type Staff string

const (
	Treble Staff = "treble"
	Bass   Staff = "bass"
)

type Tie string

const (
	TieNone     Tie = "none"
	TieStart    Tie = "start"
	TieContinue Tie = "continue"
	TieStop     Tie = "stop"
)

const (
	Voice1 = 1
	Voice2 = 2
)

// NoteEvent is a single pitched (or rest) event. The input fields come from the
// transcription stage; everything below them is derived by the engraving stages.
type NoteEvent struct {
	Id         string  `json:"id"`
	StartTime  float64 `json:"start_time"`
	Duration   float64 `json:"duration"`
	MidiPitch  float64 `json:"midi_pitch"`
	Velocity   float64 `json:"velocity"`
	Confidence float64 `json:"confidence"`

	StartBeat          float64 `json:"startBeat"`
	DurationBeats      float64 `json:"durationBeats"`
	QuantizeErrorBeats float64 `json:"quantizeErrorBeats"`
	PitchLabel         string  `json:"pitch_label,omitempty"`
	Staff              Staff   `json:"staff,omitempty"`
	Voice              int     `json:"voice,omitempty"`
	Tie                Tie     `json:"tie,omitempty"`
	SlurId             string  `json:"slurId,omitempty"`
	BeamId             string  `json:"beamId,omitempty"`

	IsRest           bool     `json:"isRest"`
	IsUncertain      bool     `json:"isUncertain"`
	RemediationFlags []string `json:"remediationFlags,omitempty"`
}

func (n *NoteEvent) EndBeat() float64 {
	return n.StartBeat + n.DurationBeats
}

// HasFlag reports whether the remediation flag is already recorded.
func (n *NoteEvent) HasFlag(flag string) bool {
	for _, f := range n.RemediationFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// AddFlag records a remediation flag once.
func (n *NoteEvent) AddFlag(flag string) {
	if !n.HasFlag(flag) {
		n.RemediationFlags = append(n.RemediationFlags, flag)
	}
}

// Clone copies the event, including its flag slice.
func (n *NoteEvent) Clone() *NoteEvent {
	c := *n
	if n.RemediationFlags != nil {
		c.RemediationFlags = append([]string(nil), n.RemediationFlags...)
	}
	return &c
}
