package persona

import (
	"fmt"
	"strings"
)

// Store resolves the agents a conversation can be primed with.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
}

// MemoryStore is a read-only catalog of agents indexed by id. Catalog order
// is kept for listing.
type MemoryStore struct {
	items []Persona
	byID  map[string]int
}

// NewMemoryStore indexes items. A later entry with a repeated id is ignored;
// LoadFile rejects such catalogs before they get here.
func NewMemoryStore(items []Persona) *MemoryStore {
	s := &MemoryStore{byID: make(map[string]int, len(items))}
	for _, item := range items {
		if _, dup := s.byID[item.ID]; dup {
			continue
		}
		s.byID[item.ID] = len(s.items)
		s.items = append(s.items, item)
	}
	return s
}

// LoadStore builds a MemoryStore from a YAML catalog, or from the built-in
// agents when path is empty.
func LoadStore(path string) (*MemoryStore, error) {
	items, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load personas: %w", err)
	}
	return NewMemoryStore(items), nil
}

// List returns the agents in catalog order.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByID resolves an agent id. Surrounding whitespace in the id is ignored
// and an empty id never matches.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return Persona{}, false
	}
	return s.items[i], true
}

// Len 返回目录中的代理数量
func (s *MemoryStore) Len() int {
	return len(s.items)
}
