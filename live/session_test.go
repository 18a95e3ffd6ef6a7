package live

import (
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesArePaired(t *testing.T) {
	t.Parallel()

	s := NewSession(60, config.NewConfig(), time.Hour, func([]model.Measure) {})
	s.NoteOn(60, 100, 0)
	s.NoteOn(64, 90, 500)
	s.NoteOff(60, 1000)
	s.NoteOff(67, 1200) // never started

	events := s.Events()
	require.Len(t, events, 1)
	assert.Equal(t, 60.0, events[0].MidiPitch)
	assert.Equal(t, 0.0, events[0].StartTime)
	assert.Equal(t, 1.0, events[0].Duration)
	assert.Equal(t, 100.0, events[0].Velocity)
}

func TestStaleEngravingIsDropped(t *testing.T) {
	t.Parallel()

	var calls int
	s := NewSession(60, config.NewConfig(), time.Hour, func([]model.Measure) { calls++ })
	events := []model.NoteEvent{{StartTime: 0, Duration: 1, MidiPitch: 60}}

	s.generation = 2
	s.engrave(1, events)
	assert.Equal(t, 0, calls)

	s.engrave(2, events)
	assert.Equal(t, 1, calls)
}

func TestDebouncedEngravingSeesWholeTake(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var scores [][]model.Measure
	s := NewSession(60, config.NewConfig(), 20*time.Millisecond, func(m []model.Measure) {
		mu.Lock()
		defer mu.Unlock()
		scores = append(scores, m)
	})

	s.NoteOn(72, 100, 0)
	s.NoteOff(72, 1000)
	s.NoteOn(74, 100, 1000)
	s.NoteOff(74, 5000)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(scores) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, scores[0], 2)
}

func TestNewNotesWaitForScoreInProgress(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	s := NewSession(60, config.NewConfig(), time.Hour, func([]model.Measure) {
		close(entered)
		<-release
	})
	events := []model.NoteEvent{{StartTime: 0, Duration: 1, MidiPitch: 60}}

	go s.engrave(0, events)
	<-entered

	played := make(chan struct{})
	go func() {
		s.NoteOn(62, 100, 0)
		s.NoteOff(62, 500)
		close(played)
	}()

	select {
	case <-played:
		t.Fatal("note was taken while a score was being delivered")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-played:
	case <-time.After(2 * time.Second):
		t.Fatal("note never went through")
	}
	assert.Len(t, s.Events(), 1)
}
