package db

import (
	"sync"

	"github.com/jsphweid/engraver/model"
)

// MemoryStore keeps scores for the life of the process. It is what serve uses when
// no DynamoDB table is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	scores map[string]model.EngraveResponse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string]model.EngraveResponse)}
}

func (s *MemoryStore) PutScore(res model.EngraveResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[res.ScoreId] = res
	return nil
}

func (s *MemoryStore) GetScore(id string) (model.EngraveResponse, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.scores[id]
	return res, ok, nil
}
