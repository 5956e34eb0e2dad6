// Package fetch sequences overlapping refreshes of a single state slot.
// Each request takes a monotonically increasing ticket; a completion whose
// ticket is no longer the newest issued is discarded instead of
// overwriting fresher state.
package fetch

import "sync"

type Ticket uint64

// Slot guards one piece of refreshable state.
type Slot struct {
	mu     sync.Mutex
	issued Ticket
	taken  Ticket
}

// Begin issues a ticket for a new refresh, superseding all earlier ones.
func (s *Slot) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit reports whether the ticket is still the newest issued. The first
// successful commit of the newest ticket wins; later commits of the same
// ticket and commits of superseded tickets return false.
func (s *Slot) Commit(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued || t == s.taken {
		return false
	}
	s.taken = t
	return true
}
