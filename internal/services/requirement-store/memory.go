package requirementstore

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"pbf-marketplace/internal/models"
)

// MemoryStore is the process-resident backend. Contents are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	next atomic.Int64
	log  []models.Requirement
	now  Clock
}

func NewMemoryStore(now Clock) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now}
}

// Append never fails. ID assignment and the append happen under the same
// lock so log order always equals ID order.
func (s *MemoryStore) Append(_ context.Context, candidate models.RequirementCandidate) (*models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := models.NewRequirement(s.next.Add(1), candidate, s.now())
	s.log = append(s.log, req)
	return &req, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Requirement, len(s.log))
	copy(out, s.log)
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
