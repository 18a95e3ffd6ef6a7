package measure

import (
	"testing"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(id string, start, dur, pitch float64) *model.NoteEvent {
	return &model.NoteEvent{Id: id, StartBeat: start, DurationBeats: dur, MidiPitch: pitch}
}

func TestSplitNoteInsideMeasure(t *testing.T) {
	t.Parallel()

	res := Split([]*model.NoteEvent{note("a", 0, 2, 60)}, config.NewConfig())
	require.Len(t, res, 1)
	assert.Equal(t, "a", res[0].Id)
	assert.Equal(t, model.TieNone, res[0].Tie)
	assert.Equal(t, 2.0, res[0].DurationBeats)
}

func TestSplitAcrossBarline(t *testing.T) {
	t.Parallel()

	res := Split([]*model.NoteEvent{note("a", 3.5, 1, 60)}, config.NewConfig())
	require.Len(t, res, 2)

	assert.Equal(t, "a", res[0].Id)
	assert.Equal(t, 3.5, res[0].StartBeat)
	assert.Equal(t, 0.5, res[0].DurationBeats)
	assert.Equal(t, model.TieStart, res[0].Tie)

	assert.Equal(t, "a_split_1", res[1].Id)
	assert.Equal(t, 4.0, res[1].StartBeat)
	assert.Equal(t, 0.5, res[1].DurationBeats)
	assert.Equal(t, model.TieStop, res[1].Tie)
}

func TestSplitLongNoteContinues(t *testing.T) {
	t.Parallel()

	res := Split([]*model.NoteEvent{note("long", 2, 11, 48)}, config.NewConfig())
	require.Len(t, res, 4)

	ties := []model.Tie{model.TieStart, model.TieContinue, model.TieContinue, model.TieStop}
	ids := []string{"long", "long_split_1", "long_split_2", "long_split_3"}
	var total float64
	for i, f := range res {
		assert.Equal(t, ties[i], f.Tie)
		assert.Equal(t, ids[i], f.Id)
		total += f.DurationBeats
	}
	assert.InDelta(t, 11.0, total, 1e-4)
	assert.Equal(t, 1.0, res[3].DurationBeats)
}

func TestSplitSortsByOnsetThenPitch(t *testing.T) {
	t.Parallel()

	res := Split([]*model.NoteEvent{
		note("c", 1, 1, 72),
		note("b", 0, 1, 67),
		note("a", 0, 1, 60),
	}, config.NewConfig())

	require.Len(t, res, 3)
	assert.Equal(t, "a", res[0].Id)
	assert.Equal(t, "b", res[1].Id)
	assert.Equal(t, "c", res[2].Id)
}

func TestGroupPartitionsNotes(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	notes := Split([]*model.NoteEvent{
		note("a", 0, 1, 60),
		note("b", 3.5, 1, 62),
		note("c", 9, 3, 64),
	}, cfg)

	measures := Group(notes, cfg)
	require.Len(t, measures, 3)

	var total int
	for i, m := range measures {
		assert.Equal(t, i, m.Index)
		assert.Equal(t, float64(i*4), m.StartBeat)
		assert.Equal(t, float64(i*4+4), m.EndBeat)
		for _, n := range m.Notes {
			assert.GreaterOrEqual(t, n.StartBeat, m.StartBeat)
			assert.Less(t, n.StartBeat, m.EndBeat)
		}
		total += len(m.Notes)
	}
	assert.Equal(t, len(notes), total)
	assert.Len(t, measures[1].Notes, 1)
}

func TestGroupEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Group(nil, config.NewConfig()))
}

func TestCountEndsOnBarline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, Count([]*model.NoteEvent{note("a", 4, 4, 60)}, 4))
}
