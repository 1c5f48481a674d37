package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/grappleflow/grappleflow/internal/model"
)

// AddSessionParams holds parameters for logging a session.
type AddSessionParams struct {
	Date            time.Time // zero means now
	DurationMinutes int
	Type            string
	Rounds          int
	Techniques      []model.Technique
	Notes           string
	Mood            string
	Intensity       int
}

// AddSession logs a training session. Sessions are immutable after
// creation; the only later mutation is deletion by id.
func (s *Store) AddSession(p AddSessionParams) (*model.Session, error) {
	date := p.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	sess := model.Session{
		ID:              s.newID(),
		Date:            date,
		DurationMinutes: p.DurationMinutes,
		Type:            p.Type,
		Rounds:          p.Rounds,
		Techniques:      p.Techniques,
		Notes:           p.Notes,
		Mood:            p.Mood,
		Intensity:       p.Intensity,
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}

	s.sessions = append([]model.Session{sess}, s.sessions...)
	if err := s.saveSessions(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// DeleteSession removes a session by id.
func (s *Store) DeleteSession(id string) error {
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return s.saveSessions()
		}
	}
	return fmt.Errorf("session not found: %s", id)
}

// Sessions returns all sessions, newest first.
func (s *Store) Sessions() []model.Session {
	out := make([]model.Session, len(s.sessions))
	copy(out, s.sessions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// FindSessions returns sessions whose notes or technique names contain
// query, case-insensitive, newest first.
func (s *Store) FindSessions(query string) []model.Session {
	q := strings.ToLower(query)
	var out []model.Session
	for _, sess := range s.Sessions() {
		if strings.Contains(strings.ToLower(sess.Notes), q) {
			out = append(out, sess)
			continue
		}
		for _, t := range sess.Techniques {
			if strings.Contains(strings.ToLower(t.Name), q) {
				out = append(out, sess)
				break
			}
		}
	}
	return out
}
