package store

import (
	"context"
	"slices"
	"sync"

	"batepapo/internal/app/model"
)

// MemoryStore keeps both collections in process memory.
// The zero value is not usable; call NewMemoryStore.
type MemoryStore struct {
	mu sync.RWMutex

	// participants preserves registration order.
	participants []model.Participant

	messages []model.Message
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) indexOf(name string) int {
	return slices.IndexFunc(s.participants, func(p model.Participant) bool {
		return p.Name == name
	})
}

func (s *MemoryStore) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Participant{}, s.participants...), nil
}

func (s *MemoryStore) GetParticipant(ctx context.Context, name string) (model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(name)
	if i < 0 {
		return model.Participant{}, ErrNotFound
	}
	return s.participants[i], nil
}

func (s *MemoryStore) InsertParticipant(ctx context.Context, p model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.Name) >= 0 {
		return ErrDuplicate
	}
	s.participants = append(s.participants, p)
	return nil
}

func (s *MemoryStore) TouchParticipant(ctx context.Context, name string, lastStatus int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return ErrNotFound
	}
	s.participants[i].LastStatus = lastStatus
	return nil
}

func (s *MemoryStore) DeleteParticipant(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return ErrNotFound
	}
	s.participants = slices.Delete(s.participants, i, i+1)
	return nil
}

func (s *MemoryStore) ListMessages(ctx context.Context) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]model.Message{}, s.messages...), nil
}

func (s *MemoryStore) InsertMessage(ctx context.Context, m model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, m)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
