package refresher

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Policy decides what happens when a refresh starts while an earlier call of
// the same operation is still in flight.
type Policy int

const (
	// PolicyAllow lets calls overlap; whichever finishes last wins.
	PolicyAllow Policy = iota
	// PolicySkip drops a call while the previous one is still running.
	PolicySkip
	// PolicySequence lets calls overlap but discards a completion that is
	// older than the content already applied.
	PolicySequence
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "allow":
		return PolicyAllow, nil
	case "skip":
		return PolicySkip, nil
	case "sequence":
		return PolicySequence, nil
	}
	return PolicyAllow, fmt.Errorf("unknown overlap policy %q", s)
}

func (p Policy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicySequence:
		return "sequence"
	}
	return "allow"
}

type guard struct {
	policy   Policy
	next     atomic.Uint64
	inFlight atomic.Bool

	mu      sync.Mutex
	applied uint64
}

func (g *guard) begin() (uint64, bool) {
	seq := g.next.Add(1)
	if g.policy == PolicySkip && !g.inFlight.CompareAndSwap(false, true) {
		return seq, false
	}
	return seq, true
}

func (g *guard) end() {
	if g.policy == PolicySkip {
		g.inFlight.Store(false)
	}
}

// commit runs apply unless a newer call has already been applied.
func (g *guard) commit(seq uint64, apply func() error) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.policy == PolicySequence && seq < g.applied {
		return false, nil
	}
	if err := apply(); err != nil {
		return true, err
	}
	g.applied = seq
	return true, nil
}
