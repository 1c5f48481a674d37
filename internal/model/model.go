// Package model defines the core journal data types.
package model

import (
	"fmt"
	"time"
)

// Session represents one logged training occurrence.
type Session struct {
	ID              string      `json:"id"`
	Date            time.Time   `json:"date"`
	DurationMinutes int         `json:"duration_minutes"`
	Type            string      `json:"type"`
	Rounds          int         `json:"rounds"`
	Techniques      []Technique `json:"techniques,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Mood            string      `json:"mood"`
	Intensity       int         `json:"intensity"`
}

// Technique is a named technique drilled or hit during a session.
type Technique struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Challenge is an ongoing technical problem tracked in the lab notebook.
type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// LabEntry is one timestamped note under a Challenge. Entries are
// append-only and immutable.
type LabEntry struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challenge_id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	Result      string    `json:"result,omitempty"` // Experiment entries only
}

// ChatMessage is one turn of the coach conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session types.
const (
	TypeGi          = "Gi"
	TypeNoGi        = "No-Gi"
	TypeOpenMat     = "Open Mat"
	TypeSeminar     = "Seminar"
	TypeCompetition = "Competition"
)

// SessionTypes lists the session types in display order.
var SessionTypes = []string{TypeGi, TypeNoGi, TypeOpenMat, TypeSeminar, TypeCompetition}

// ValidSessionTypes are the allowed session types.
var ValidSessionTypes = map[string]bool{
	TypeGi:          true,
	TypeNoGi:        true,
	TypeOpenMat:     true,
	TypeSeminar:     true,
	TypeCompetition: true,
}

// ValidMoods are the allowed session moods.
var ValidMoods = map[string]bool{
	"Great":   true,
	"Good":    true,
	"Neutral": true,
	"Hard":    true,
	"Injured": true,
}

// Challenge statuses.
const (
	StatusActive  = "Active"
	StatusSolved  = "Solved"
	StatusShelved = "Shelved"
)

// ValidStatuses are the allowed challenge statuses.
var ValidStatuses = map[string]bool{
	StatusActive:  true,
	StatusSolved:  true,
	StatusShelved: true,
}

// DefaultCategories are the suggested challenge categories. Category is a
// free string, so these are not enforced.
var DefaultCategories = []string{"Guard", "Passing", "Takedown", "Escape", "Submission", "Pinning"}

// Lab entry types.
const (
	EntryObservation = "Observation"
	EntryHypothesis  = "Hypothesis"
	EntryExperiment  = "Experiment"
	EntryAnalysis    = "Analysis"
)

// ValidEntryTypes are the allowed lab entry types.
var ValidEntryTypes = map[string]bool{
	EntryObservation: true,
	EntryHypothesis:  true,
	EntryExperiment:  true,
	EntryAnalysis:    true,
}

// Experiment results.
const (
	ResultSuccess      = "Success"
	ResultFailure      = "Failure"
	ResultInconclusive = "Inconclusive"
)

// ValidResults are the allowed experiment results.
var ValidResults = map[string]bool{
	ResultSuccess:      true,
	ResultFailure:      true,
	ResultInconclusive: true,
}

// Chat roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Validate checks required fields and enum membership. Persisted data is
// validated field-by-field at the load boundary rather than trusted
// structurally.
func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session: missing id")
	}
	if s.Date.IsZero() {
		return fmt.Errorf("session %s: missing date", s.ID)
	}
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("session %s: duration must be positive, got %d", s.ID, s.DurationMinutes)
	}
	if !ValidSessionTypes[s.Type] {
		return fmt.Errorf("session %s: invalid type %q", s.ID, s.Type)
	}
	if s.Rounds < 0 {
		return fmt.Errorf("session %s: negative rounds", s.ID)
	}
	if !ValidMoods[s.Mood] {
		return fmt.Errorf("session %s: invalid mood %q", s.ID, s.Mood)
	}
	if s.Intensity < 1 || s.Intensity > 10 {
		return fmt.Errorf("session %s: intensity %d out of range 1-10", s.ID, s.Intensity)
	}
	return nil
}

// Validate checks required fields and enum membership.
func (c Challenge) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("challenge: missing id")
	}
	if c.Title == "" {
		return fmt.Errorf("challenge %s: missing title", c.ID)
	}
	if !ValidStatuses[c.Status] {
		return fmt.Errorf("challenge %s: invalid status %q", c.ID, c.Status)
	}
	if c.CreatedAt.IsZero() || c.LastUpdated.IsZero() {
		return fmt.Errorf("challenge %s: missing timestamps", c.ID)
	}
	return nil
}

// Validate checks required fields and enum membership. Result is required
// for Experiment entries and forbidden otherwise.
func (e LabEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("lab entry: missing id")
	}
	if e.ChallengeID == "" {
		return fmt.Errorf("lab entry %s: missing challenge id", e.ID)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("lab entry %s: missing date", e.ID)
	}
	if !ValidEntryTypes[e.Type] {
		return fmt.Errorf("lab entry %s: invalid type %q", e.ID, e.Type)
	}
	if e.Content == "" {
		return fmt.Errorf("lab entry %s: missing content", e.ID)
	}
	if e.Type == EntryExperiment {
		if !ValidResults[e.Result] {
			return fmt.Errorf("lab entry %s: invalid result %q", e.ID, e.Result)
		}
	} else if e.Result != "" {
		return fmt.Errorf("lab entry %s: result set on non-experiment", e.ID)
	}
	return nil
}

// Validate checks required fields and role membership.
func (m ChatMessage) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("chat message: missing id")
	}
	if m.Role != RoleUser && m.Role != RoleModel {
		return fmt.Errorf("chat message %s: invalid role %q", m.ID, m.Role)
	}
	if m.Text == "" {
		return fmt.Errorf("chat message %s: missing text", m.ID)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("chat message %s: missing timestamp", m.ID)
	}
	return nil
}
