// Package store owns the in-memory collections and their JSON blob
// persistence. Every mutation updates memory first, then synchronously
// rewrites the owning blob. There is no partial write and no transaction
// across blobs; durability is best-effort, single-writer.
package store

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/grappleflow/grappleflow/internal/model"
)

// Blob file names under the data directory.
const (
	sessionsFile   = "sessions.json"
	challengesFile = "challenges.json"
	entriesFile    = "lab_entries.json"
	messagesFile   = "chat_messages.json"
)

// Store holds the journal collections and persists them under dir.
type Store struct {
	dir     string
	log     *logrus.Logger
	entropy *rand.Rand

	sessions   []model.Session
	challenges []model.Challenge
	entries    []model.LabEntry
	messages   []model.ChatMessage
}

// Open loads the collections from dir, creating it if needed. A blob that
// fails to parse or validate is discarded with a warning and its collection
// starts empty; Open itself only fails if the directory cannot be created.
func Open(dir string, log *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if log == nil {
		log = logrus.New()
	}

	s := &Store{
		dir:     dir,
		log:     log,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.sessions = loadBlob[model.Session](filepath.Join(dir, sessionsFile), log)
	s.challenges = loadBlob[model.Challenge](filepath.Join(dir, challengesFile), log)
	s.entries = loadBlob[model.LabEntry](filepath.Join(dir, entriesFile), log)
	s.messages = loadBlob[model.ChatMessage](filepath.Join(dir, messagesFile), log)
	return s, nil
}

// Dir returns the data directory the store persists into.
func (s *Store) Dir() string { return s.dir }

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

type validator interface {
	Validate() error
}

// loadBlob reads one collection blob. A missing file is an empty
// collection. Parse failures and records that fail validation discard the
// whole load: better an empty collection than records of unknown shape.
func loadBlob[T validator](path string, log *logrus.Logger) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", path).Warn("failed to read blob, starting empty")
		}
		return nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.WithError(err).WithField("path", path).Warn("malformed blob, starting empty")
		return nil
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			log.WithError(err).WithField("path", path).Warn("invalid record in blob, starting empty")
			return nil
		}
	}
	return records
}

// saveBlob rewrites one collection blob in full. nil collections are
// written as empty arrays so a deleted last record still clears the file.
func (s *Store) saveBlob(name string, collection any) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveSessions() error   { return s.saveBlob(sessionsFile, emptyNotNil(s.sessions)) }
func (s *Store) saveChallenges() error { return s.saveBlob(challengesFile, emptyNotNil(s.challenges)) }
func (s *Store) saveEntries() error    { return s.saveBlob(entriesFile, emptyNotNil(s.entries)) }
func (s *Store) saveMessages() error   { return s.saveBlob(messagesFile, emptyNotNil(s.messages)) }

func emptyNotNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
