package room

import (
	"errors"
	"sync"

	"go.uber.org/atomic"
)

var (
	ErrParticipantExists   = errors.New("participant already in roster")
	ErrParticipantNotFound = errors.New("participant not in roster")
)

// RosterStore holds the live per-room participant snapshots reported by the
// conferencing transport. Join order is preserved, readers always get copies.
type RosterStore struct {
	mu       sync.RWMutex
	rosters  map[string][]Participant
	revision atomic.Uint64
}

func NewRosterStore() *RosterStore {
	return &RosterStore{
		rosters: make(map[string][]Participant),
	}
}

func (s *RosterStore) Join(roomID string, participant Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.rosters[roomID] {
		if p.SessionID == participant.SessionID {
			return ErrParticipantExists
		}
	}

	s.rosters[roomID] = append(s.rosters[roomID], participant)
	s.revision.Inc()
	return nil
}

func (s *RosterStore) Leave(roomID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.rosters[roomID]
	for i, p := range roster {
		if p.SessionID != sessionID {
			continue
		}

		s.rosters[roomID] = append(roster[:i:i], roster[i+1:]...)
		s.revision.Inc()
		return nil
	}

	return ErrParticipantNotFound
}

// Update replaces a participant's snapshot in place, keeping its position.
func (s *RosterStore) Update(roomID string, participant Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.rosters[roomID]
	for i, p := range roster {
		if p.SessionID != participant.SessionID {
			continue
		}

		roster[i] = participant
		s.revision.Inc()
		return nil
	}

	return ErrParticipantNotFound
}

// Snapshot returns a copy of the room's roster in join order.
func (s *RosterStore) Snapshot(roomID string) []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := make([]Participant, len(s.rosters[roomID]))
	copy(roster, s.rosters[roomID])
	return roster
}

// Revision increases on every roster change. update-rooms events carry it so
// lobby clients can skip refreshes they have already seen.
func (s *RosterStore) Revision() uint64 {
	return s.revision.Load()
}
