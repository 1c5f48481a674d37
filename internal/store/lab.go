package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/grappleflow/grappleflow/internal/model"
)

// AddChallengeParams holds parameters for opening a challenge.
type AddChallengeParams struct {
	Title    string
	Category string
}

// AddChallenge opens a new challenge with status Active and no entries.
func (s *Store) AddChallenge(p AddChallengeParams) (*model.Challenge, error) {
	now := time.Now().UTC()
	c := model.Challenge{
		ID:          s.newID(),
		Title:       p.Title,
		Category:    p.Category,
		Status:      model.StatusActive,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s.challenges = append([]model.Challenge{c}, s.challenges...)
	if err := s.saveChallenges(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetChallengeStatus updates a challenge's status. Status is operator-set;
// no entry type drives it automatically.
func (s *Store) SetChallengeStatus(id, status string) (*model.Challenge, error) {
	if !model.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	for i := range s.challenges {
		if s.challenges[i].ID == id {
			s.challenges[i].Status = status
			s.challenges[i].LastUpdated = s.bumpUpdated(s.challenges[i].LastUpdated)
			if err := s.saveChallenges(); err != nil {
				return nil, err
			}
			c := s.challenges[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("challenge not found: %s", id)
}

// DeleteChallenge removes a challenge and cascade-deletes every lab entry
// referencing it, as one logical operation.
func (s *Store) DeleteChallenge(id string) error {
	idx := -1
	for i, c := range s.challenges {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("challenge not found: %s", id)
	}

	kept := s.entries[:0:0]
	for _, e := range s.entries {
		if e.ChallengeID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.challenges = append(s.challenges[:idx], s.challenges[idx+1:]...)

	// Entries first so a crash in between cannot leave orphans.
	if err := s.saveEntries(); err != nil {
		return err
	}
	return s.saveChallenges()
}

// Challenge returns a challenge by id.
func (s *Store) Challenge(id string) (*model.Challenge, error) {
	for _, c := range s.challenges {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("challenge not found: %s", id)
}

// Challenges returns all challenges, most recently updated first.
func (s *Store) Challenges() []model.Challenge {
	out := make([]model.Challenge, len(s.challenges))
	copy(out, s.challenges)
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out
}

// AppendEntryParams holds parameters for appending a lab entry.
type AppendEntryParams struct {
	ChallengeID string
	Date        time.Time // zero means now
	Type        string
	Content     string
	Result      string // Experiment only; defaults to Inconclusive
}

// AppendEntry appends an immutable entry under an existing challenge and
// bumps the challenge's LastUpdated. The two blobs are written back to
// back; a crash in between leaves LastUpdated stale, which the single-user
// best-effort durability model accepts.
func (s *Store) AppendEntry(p AppendEntryParams) (*model.LabEntry, error) {
	idx := -1
	for i, c := range s.challenges {
		if c.ID == p.ChallengeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("challenge not found: %s", p.ChallengeID)
	}

	date := p.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	result := p.Result
	if p.Type == model.EntryExperiment && result == "" {
		result = model.ResultInconclusive
	}

	e := model.LabEntry{
		ID:          s.newID(),
		ChallengeID: p.ChallengeID,
		Date:        date,
		Type:        p.Type,
		Content:     p.Content,
		Result:      result,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	s.entries = append(s.entries, e)
	s.challenges[idx].LastUpdated = s.bumpUpdated(s.challenges[idx].LastUpdated)

	if err := s.saveEntries(); err != nil {
		return nil, err
	}
	if err := s.saveChallenges(); err != nil {
		return nil, err
	}
	return &e, nil
}

// bumpUpdated returns now, clamped so LastUpdated never moves backwards.
func (s *Store) bumpUpdated(prev time.Time) time.Time {
	now := time.Now().UTC()
	if now.Before(prev) {
		return prev
	}
	return now
}

// EntriesFor returns a challenge's entries in chronological order.
// Insertion order usually coincides with date order but is not trusted;
// entries are re-sorted by date every time.
func (s *Store) EntriesFor(challengeID string) []model.LabEntry {
	var out []model.LabEntry
	for _, e := range s.entries {
		if e.ChallengeID == challengeID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// HasUntestedIdea reports whether the challenge has a Hypothesis entry with
// no Experiment entry strictly later than it. Equal timestamps do not clear
// the flag.
func (s *Store) HasUntestedIdea(challengeID string) bool {
	entries := s.EntriesFor(challengeID)
	for _, h := range entries {
		if h.Type != model.EntryHypothesis {
			continue
		}
		tested := false
		for _, e := range entries {
			if e.Type == model.EntryExperiment && e.Date.After(h.Date) {
				tested = true
				break
			}
		}
		if !tested {
			return true
		}
	}
	return false
}
