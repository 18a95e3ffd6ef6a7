package phrase

import (
	"testing"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(start, dur, pitch float64) *model.NoteEvent {
	return &model.NoteEvent{StartBeat: start, DurationBeats: dur, MidiPitch: pitch, Staff: model.Treble, Voice: model.Voice1}
}

func measureOf(notes ...*model.NoteEvent) *model.Measure {
	return &model.Measure{Index: 0, StartBeat: 0, EndBeat: 4, Notes: notes}
}

func TestLegatoRunIsSlurred(t *testing.T) {
	t.Parallel()

	a, b, c := note(0, 1, 60), note(1, 1, 62), note(2, 1, 64)
	Detect(measureOf(a, b, c), NewIDs(), config.NewConfig())

	require.NotEmpty(t, a.SlurId)
	assert.Equal(t, a.SlurId, b.SlurId)
	assert.Equal(t, a.SlurId, c.SlurId)
}

func TestGapBreaksSlur(t *testing.T) {
	t.Parallel()

	a, b, c := note(0, 1, 60), note(1, 0.5, 62), note(2, 1, 64)
	Detect(measureOf(a, b, c), NewIDs(), config.NewConfig())

	assert.NotEmpty(t, a.SlurId)
	assert.Equal(t, a.SlurId, b.SlurId)
	// a single note after the gap gets no slur
	assert.Empty(t, c.SlurId)
}

func TestChordBreaksSlurAndIsExcluded(t *testing.T) {
	t.Parallel()

	a, b := note(0, 1, 60), note(1, 1, 62)
	c1, c2 := note(2, 1, 64), note(2, 1, 67)
	d := note(3, 1, 65)
	Detect(measureOf(a, b, c1, c2, d), NewIDs(), config.NewConfig())

	assert.NotEmpty(t, a.SlurId)
	assert.Equal(t, a.SlurId, b.SlurId)
	assert.Empty(t, c1.SlurId)
	assert.Empty(t, c2.SlurId)
	assert.Empty(t, d.SlurId)
}

func TestSlurStopsAtMaxLength(t *testing.T) {
	t.Parallel()

	var notes []*model.NoteEvent
	for i := 0; i < 10; i++ {
		notes = append(notes, note(float64(i)*0.25, 0.25, 60+float64(i)))
	}
	Detect(measureOf(notes...), NewIDs(), config.NewConfig())

	first := notes[0].SlurId
	require.NotEmpty(t, first)
	for _, n := range notes[:8] {
		assert.Equal(t, first, n.SlurId)
	}
	assert.NotEqual(t, first, notes[8].SlurId)
	assert.Equal(t, notes[8].SlurId, notes[9].SlurId)
}

func TestBeamsStayInsideBeat(t *testing.T) {
	t.Parallel()

	a, b, c, d := note(0, 0.5, 60), note(0.5, 0.5, 62), note(1, 0.5, 64), note(1.5, 0.5, 65)
	quarter := note(2, 1, 67)
	Detect(measureOf(a, b, c, d, quarter), NewIDs(), config.NewConfig())

	require.NotEmpty(t, a.BeamId)
	assert.Equal(t, a.BeamId, b.BeamId)
	require.NotEmpty(t, c.BeamId)
	assert.Equal(t, c.BeamId, d.BeamId)
	assert.NotEqual(t, a.BeamId, c.BeamId)
	assert.Empty(t, quarter.BeamId)
}

func TestSingleChordIsNotBeamed(t *testing.T) {
	t.Parallel()

	a, b := note(0, 0.5, 60), note(0, 0.5, 64)
	Detect(measureOf(a, b), NewIDs(), config.NewConfig())

	assert.Empty(t, a.BeamId)
	assert.Empty(t, b.BeamId)
}

func TestVoicesArePhrasedSeparately(t *testing.T) {
	t.Parallel()

	a, b := note(0, 1, 72), note(1, 1, 71)
	c := note(0.5, 1, 60)
	c.Voice = model.Voice2
	Detect(measureOf(a, b, c), NewIDs(), config.NewConfig())

	assert.NotEmpty(t, a.SlurId)
	assert.Equal(t, a.SlurId, b.SlurId)
	assert.Empty(t, c.SlurId)
}

func TestDetectClearsPreviousGroups(t *testing.T) {
	t.Parallel()

	a := note(0, 1, 60)
	a.SlurId = "slur_99"
	a.BeamId = "beam_99"
	Detect(measureOf(a), NewIDs(), config.NewConfig())

	assert.Empty(t, a.SlurId)
	assert.Empty(t, a.BeamId)
}

func TestIDsAreScopedToRun(t *testing.T) {
	t.Parallel()

	first, second := NewIDs(), NewIDs()
	assert.Equal(t, "slur_1", first.NextSlur())
	assert.Equal(t, "slur_2", first.NextSlur())
	assert.Equal(t, "slur_1", second.NextSlur())
	assert.Equal(t, "beam_1", second.NextBeam())
}
