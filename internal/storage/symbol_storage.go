package storage

import (
	"sync"
)

// SymbolStorage holds the exchange's tradable symbols. It is filled once and
// read by concurrent requests afterwards.
type SymbolStorage struct {
	symbols map[string]struct{}
	loaded  bool
	mu      sync.RWMutex
}

func NewSymbolStorage() *SymbolStorage {
	return &SymbolStorage{
		symbols: make(map[string]struct{}),
	}
}

// Replace swaps the stored set for symbols and marks the storage loaded.
func (s *SymbolStorage) Replace(symbols []string) {
	next := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		next[sym] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.symbols = next
	s.loaded = true
}

func (s *SymbolStorage) Has(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.symbols[symbol]
	return exists
}

func (s *SymbolStorage) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

func (s *SymbolStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.symbols)
}
