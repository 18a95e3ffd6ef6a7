package live

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/engraver/config"
	"github.com/jsphweid/engraver/logger"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/pipeline"
	"github.com/sirupsen/logrus"
)

// Session collects notes played on a live input and re-engraves the whole take once
// playing pauses. Every new note supersedes any engraving still in flight; a stale
// result is dropped instead of reaching onScore. onScore must not call back into the
// session.
type Session struct {
	mu     sync.Mutex
	open   map[uint8]model.NoteEvent
	events []model.NoteEvent

	bpm        float64
	cfg        config.Config
	generation int64
	debounced  func(f func())
	onScore    func([]model.Measure)
}

func NewSession(bpm float64, cfg config.Config, quiet time.Duration, onScore func([]model.Measure)) *Session {
	return &Session{
		open:      make(map[uint8]model.NoteEvent),
		bpm:       bpm,
		cfg:       cfg,
		debounced: debounce.New(quiet),
		onScore:   onScore,
	}
}

func (s *Session) NoteOn(key, velocity uint8, timestampms int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[key] = model.NoteEvent{
		StartTime:  float64(timestampms) / 1000,
		MidiPitch:  float64(key),
		Velocity:   float64(velocity),
		Confidence: 1,
	}
}

func (s *Session) NoteOff(key uint8, timestampms int32) {
	s.mu.Lock()
	on, ok := s.open[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.open, key)
	on.Id = fmt.Sprintf("live_%d", len(s.events))
	on.Duration = float64(timestampms)/1000 - on.StartTime
	if on.Duration < 0 {
		on.Duration = 0
	}
	s.events = append(s.events, on)
	s.mu.Unlock()

	s.schedule()
}

// Events returns a copy of every finished note so far.
func (s *Session) Events() []model.NoteEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.NoteEvent(nil), s.events...)
}

func (s *Session) schedule() {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	snapshot := append([]model.NoteEvent(nil), s.events...)
	s.mu.Unlock()

	s.debounced(func() {
		s.engrave(gen, snapshot)
	})
}

func (s *Session) engrave(gen int64, events []model.NoteEvent) {
	log := logger.GetProjectLogger()
	measures, err := pipeline.Run(events, s.bpm, s.cfg)
	if err != nil {
		log.Errorf("could not engrave live take: %v", err)
		return
	}

	// a newer take waits until onScore returns
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		log.WithFields(logrus.Fields{"generation": gen, "current": s.generation}).Debug("dropping superseded engraving")
		return
	}
	s.onScore(measures)
}
