package view

import (
	"fmt"
	"sync"
)

type Slot string

const (
	TotalCommits     Slot = "total-commits"
	AvgDevelopers    Slot = "avg-developers"
	CodespaceHours   Slot = "codespace-hours"
	CostEstimate     Slot = "cost-estimate"
	PoliciesList     Slot = "policies-list"
	ComplianceStatus Slot = "compliance-status"
	CostControls     Slot = "cost-controls"
)

var Slots = []Slot{
	TotalCommits,
	AvgDevelopers,
	CodespaceHours,
	CostEstimate,
	PoliciesList,
	ComplianceStatus,
	CostControls,
}

func (s Slot) Valid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// Store holds the latest content of every view slot. Slots start empty and
// only change through Set, so a failed refresh leaves them as they were.
type Store struct {
	mu      sync.RWMutex
	content map[Slot]string
	version uint64
}

func NewStore() *Store {
	return &Store{content: make(map[Slot]string, len(Slots))}
}

// Set replaces the given slots in one step. Readers never observe a partial
// batch. Unknown slots reject the whole batch.
func (s *Store) Set(updates map[Slot]string) error {
	for slot := range updates {
		if !slot.Valid() {
			return fmt.Errorf("unknown view slot %q", slot)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for slot, content := range updates {
		s.content[slot] = content
	}
	s.version++
	return nil
}

func (s *Store) Get(slot Slot) (string, bool) {
	if !slot.Valid() {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content[slot], true
}

// Snapshot copies every slot, including empty ones, with the store version.
func (s *Store) Snapshot() (map[Slot]string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Slot]string, len(Slots))
	for _, slot := range Slots {
		out[slot] = s.content[slot]
	}
	return out, s.version
}

// Version counts successful batches written to the store.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
