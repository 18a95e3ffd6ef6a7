package model

type Measure struct {
	Index     int          `json:"index"`
	StartBeat float64      `json:"startBeat"`
	EndBeat   float64      `json:"endBeat"`
	Notes     []*NoteEvent `json:"notes"`
}

// NotesFor returns the measure's notes on the given staff, in measure order.
// A voice of 0 matches every voice.
func (m *Measure) NotesFor(staff Staff, voice int) []*NoteEvent {
	var res []*NoteEvent
	for _, n := range m.Notes {
		if n.Staff != staff {
			continue
		}
		if voice != 0 && n.Voice != voice {
			continue
		}
		res = append(res, n)
	}
	return res
}

type StaffInfo struct {
	Id   Staff `json:"id"`
	Clef Staff `json:"clef"`

	// MiddlePitch is the midi pitch on the staff's middle line.
	MiddlePitch float64 `json:"middlePitch"`
}
