package store

import (
	"time"

	"github.com/grappleflow/grappleflow/internal/model"
)

// AddMessage appends one turn of the coach conversation.
func (s *Store) AddMessage(role, text string) (*model.ChatMessage, error) {
	m := model.ChatMessage{
		ID:        s.newID(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	s.messages = append(s.messages, m)
	if err := s.saveMessages(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Messages returns the conversation history, oldest first.
func (s *Store) Messages() []model.ChatMessage {
	out := make([]model.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// ClearMessages drops the conversation history.
func (s *Store) ClearMessages() error {
	s.messages = nil
	return s.saveMessages()
}
