package storage

import "sync"

// InMemory keeps values in a plain map. Used by tests and by runs without a
// database configured; entries do not survive a restart.
type InMemory struct {
	values map[string]string
	mx     sync.RWMutex
}

func NewInMemory() *InMemory {
	return &InMemory{values: map[string]string{}}
}

func (s *InMemory) Get(key string) (string, bool, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *InMemory) Set(key, value string) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.values[key] = value
	return nil
}

func (s *InMemory) Delete(key string) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	delete(s.values, key)
	return nil
}
