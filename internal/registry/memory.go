// internal/registry/memory.go
package registry

import (
	"context"
	"sync"

	"activities-service/internal/common/errors"
	"activities-service/internal/models"
)

// MemoryStore keeps the registry in process memory behind a single RWMutex.
// The catalog is small and rosters are short, so one lock over the whole
// map is enough to prevent lost updates under concurrent requests.
type MemoryStore struct {
	mu         sync.RWMutex
	activities map[string]*models.Activity
	opts       Options
}

// NewMemoryStore builds a store pre-populated with seed. The seed is
// deep-copied; callers keep ownership of their input.
func NewMemoryStore(seed models.Registry, opts Options) *MemoryStore {
	activities := make(map[string]*models.Activity, len(seed))
	for name, act := range seed {
		clone := act.Clone()
		if clone.Participants == nil {
			clone.Participants = []string{}
		}
		activities[name] = &clone
	}
	return &MemoryStore{activities: activities, opts: opts}
}

func (s *MemoryStore) List(ctx context.Context) (models.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(models.Registry, len(s.activities))
	for name, act := range s.activities {
		out[name] = act.Clone()
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, activity string) (models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	act, ok := s.activities[activity]
	if !ok {
		return models.Activity{}, errors.NewActivityNotFoundError(activity)
	}
	return act.Clone(), nil
}

func (s *MemoryStore) Signup(ctx context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	act, ok := s.activities[activity]
	if !ok {
		return errors.NewActivityNotFoundError(activity)
	}
	if act.HasParticipant(email) {
		return errors.NewAlreadyRegisteredError(activity, email)
	}
	if s.opts.EnforceCapacity && act.IsFull() {
		return errors.NewActivityFullError(activity, act.MaxParticipants)
	}

	act.Participants = append(act.Participants, email)
	return nil
}

func (s *MemoryStore) Unregister(ctx context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	act, ok := s.activities[activity]
	if !ok {
		return errors.NewActivityNotFoundError(activity)
	}

	for i, p := range act.Participants {
		if p == email {
			act.Participants = append(act.Participants[:i], act.Participants[i+1:]...)
			return nil
		}
	}
	return errors.NewNotRegisteredError(activity, email)
}
