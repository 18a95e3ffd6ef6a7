package model

type EngraveRequestBody struct {
	Bpm   float64     `json:"bpm"`
	Notes []NoteEvent `json:"notes"`
}

type EngraveResponse struct {
	ScoreId  string    `json:"score_id"`
	Bpm      float64   `json:"bpm"`
	Measures []Measure `json:"measures"`
	Summary  Summary   `json:"summary"`
}

type Summary struct {
	NumMeasures  int            `json:"num_measures"`
	NumNotes     int            `json:"num_notes"`
	NumRests     int            `json:"num_rests"`
	NumTied      int            `json:"num_tied"`
	NumSlurs     int            `json:"num_slurs"`
	NumBeams     int            `json:"num_beams"`
	NumUncertain int            `json:"num_uncertain"`
	NumVoice2    int            `json:"num_voice2"`
	Flags        map[string]int `json:"flags"`
}

type DurationResponse struct {
	Beats  float64 `json:"beats"`
	Name   string  `json:"name"`
	Dotted bool    `json:"dotted"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
