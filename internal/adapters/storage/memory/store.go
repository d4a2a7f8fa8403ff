package memory

import (
	"context"
	"sync"

	"pet-care-log/internal/ports/storage"
)

// Store guarda documentos en memoria. Se pierde al reiniciar (modo dev/tests).
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewStore() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.docs[name]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return append([]byte(nil), body...), nil
}

func (s *Store) Save(ctx context.Context, name string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[name] = append([]byte(nil), body...)
	return nil
}
