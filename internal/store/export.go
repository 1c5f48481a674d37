package store

import (
	"github.com/grappleflow/grappleflow/internal/model"
)

// Export is a whole-state backup of all four collections.
type Export struct {
	Sessions   []model.Session     `json:"sessions"`
	Challenges []model.Challenge   `json:"challenges"`
	LabEntries []model.LabEntry    `json:"lab_entries"`
	Messages   []model.ChatMessage `json:"chat_messages"`
}

// ExportAll snapshots every collection.
func (s *Store) ExportAll() Export {
	return Export{
		Sessions:   emptyNotNil(s.Sessions()),
		Challenges: emptyNotNil(s.Challenges()),
		LabEntries: emptyNotNil(append([]model.LabEntry(nil), s.entries...)),
		Messages:   emptyNotNil(s.Messages()),
	}
}

// Import replaces the current state with an export. Records are validated
// first; nothing is touched if any record is invalid.
func (s *Store) Import(ex Export) (int, error) {
	for _, r := range ex.Sessions {
		if err := r.Validate(); err != nil {
			return 0, err
		}
	}
	for _, r := range ex.Challenges {
		if err := r.Validate(); err != nil {
			return 0, err
		}
	}
	for _, r := range ex.LabEntries {
		if err := r.Validate(); err != nil {
			return 0, err
		}
	}
	for _, r := range ex.Messages {
		if err := r.Validate(); err != nil {
			return 0, err
		}
	}

	s.sessions = ex.Sessions
	s.challenges = ex.Challenges
	s.entries = ex.LabEntries
	s.messages = ex.Messages

	if err := s.saveSessions(); err != nil {
		return 0, err
	}
	if err := s.saveChallenges(); err != nil {
		return 0, err
	}
	if err := s.saveEntries(); err != nil {
		return 0, err
	}
	if err := s.saveMessages(); err != nil {
		return 0, err
	}
	return len(ex.Sessions) + len(ex.Challenges) + len(ex.LabEntries) + len(ex.Messages), nil
}
