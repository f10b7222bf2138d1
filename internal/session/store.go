package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fjordlane/counterpoint/internal/errors"
	"github.com/fjordlane/counterpoint/internal/logging"
)

// Library provides durable CRUD over the session collection. Every mutation
// is an atomic read-modify-write of the whole collection: the blob is read,
// deserialized, modified in memory, and written back wholesale.
//
// The collection is kept most-recently-updated first. Missing or corrupted
// persisted state degrades to an empty collection rather than failing; that
// path logs a warning and the user simply sees no history.
type Library struct {
	medium Medium
	logger *logging.Logger
	now    func() time.Time
}

// NewLibrary creates a Library over the given medium. A nil logger disables
// logging.
func NewLibrary(medium Medium, logger *logging.Logger) *Library {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Library{
		medium: medium,
		logger: logger,
		now:    time.Now,
	}
}

// LoadAll reads the blob and deserializes the session collection.
// On missing key or deserialization failure it returns an empty collection;
// corrupted history degrades to "no history" rather than crashing.
func (l *Library) LoadAll() []Session {
	data, err := l.medium.Read()
	if err != nil {
		if !errors.Is(err, errors.ErrSessionNotFound) {
			l.logger.Warn("session library unreadable, starting empty", "error", err)
		}
		return []Session{}
	}

	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		l.logger.Warn("session library corrupted, starting empty", "error", err)
		return []Session{}
	}
	return sessions
}

// Get returns the session with the given id.
// Returns errors.ErrSessionNotFound if absent.
func (l *Library) Get(id string) (Session, error) {
	for _, s := range l.LoadAll() {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return Session{}, errors.ErrSessionNotFound
}

// Upsert inserts or replaces a session and rewrites the whole collection.
// A session without an ID is assigned a generated one and inserted at the
// head; an existing session is replaced and moved to the head so the
// collection stays most-recently-updated first. UpdatedAt is stamped on
// every write, CreatedAt on first insert.
//
// Sessions with empty guided and debate histories are never persisted:
// Upsert returns the input unchanged without touching the medium.
func (l *Library) Upsert(s Session) (Session, error) {
	if s.Empty() {
		return s, nil
	}

	s = s.Clone()
	now := l.now()
	s.UpdatedAt = now
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}

	sessions := l.LoadAll()
	replaced := false
	for i := range sessions {
		if sessions[i].ID == s.ID {
			sessions[i] = s
			// Move to head to keep most-recently-updated ordering.
			updated := sessions[i]
			copy(sessions[1:i+1], sessions[:i])
			sessions[0] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append([]Session{s}, sessions...)
	}

	if err := l.write(sessions); err != nil {
		return Session{}, err
	}

	l.logger.WithSession(s.ID).Debug("session persisted",
		"type", string(s.Type),
		"guided_steps", len(s.Guided),
		"debate_turns", len(s.Debate),
	)
	return s, nil
}

// Remove deletes the session with the given id and rewrites the collection.
// Returns errors.ErrSessionNotFound if absent. Deletion is permanent; callers
// are expected to confirm with the user first.
func (l *Library) Remove(id string) error {
	sessions := l.LoadAll()
	filtered := sessions[:0]
	found := false
	for _, s := range sessions {
		if s.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, s)
	}
	if !found {
		return errors.ErrSessionNotFound
	}

	if err := l.write(filtered); err != nil {
		return err
	}

	l.logger.WithSession(id).Info("session deleted")
	return nil
}

// write serializes and replaces the whole collection.
func (l *Library) write(sessions []Session) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("failed to serialize session collection", err)
	}
	if err := l.medium.Write(data); err != nil {
		return errors.NewPersistenceError("failed to write session collection", err)
	}
	return nil
}
