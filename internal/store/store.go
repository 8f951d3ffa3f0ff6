// Package store holds the session's ordered note collection and the views
// derived from it. It is single-writer: callers serialize mutations.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pbaille/notecat/internal/domain"
)

// ErrIndexOutOfRange indicates a reorder position outside the collection.
var ErrIndexOutOfRange = errors.New("index out of range")

// Store is the ordered note collection in display order
type Store struct {
	notes  []domain.Note
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to resolve "today"
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for view diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty Store
func New(opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of notes
func (s *Store) Len() int {
	return len(s.notes)
}

// Notes returns a copy of the collection in display order
func (s *Store) Notes() []domain.Note {
	out := make([]domain.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Get returns the note with the given id
func (s *Store) Get(id string) (domain.Note, error) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Note{}, fmt.Errorf("get %s: %w", id, domain.ErrNotFound)
	}
	return s.notes[i], nil
}

// Append inserts note at the front of the display order
func (s *Store) Append(note domain.Note) error {
	if s.indexOf(note.ID) >= 0 {
		return fmt.Errorf("append %s: %w", note.ID, domain.ErrDuplicateID)
	}

	s.notes = append([]domain.Note{note}, s.notes...)
	return nil
}

// Remove deletes the note with the given id
func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, domain.ErrNotFound)
	}

	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	return nil
}

// Reorder moves the note at from to position to, shifting the notes in between
// by one slot. Equal positions are a no-op.
func (s *Store) Reorder(from, to int) error {
	n := len(s.notes)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("reorder %d to %d of %d: %w", from, to, n, ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}

	moved := s.notes[from]
	if from < to {
		copy(s.notes[from:to], s.notes[from+1:to+1])
	} else {
		copy(s.notes[to+1:from+1], s.notes[to:from])
	}
	s.notes[to] = moved

	return nil
}

// Move places the note activeID at the position currently held by overID
func (s *Store) Move(activeID, overID string) error {
	if activeID == overID {
		return nil
	}

	from := s.indexOf(activeID)
	if from < 0 {
		return fmt.Errorf("move %s: %w", activeID, domain.ErrNotFound)
	}
	to := s.indexOf(overID)
	if to < 0 {
		return fmt.Errorf("move over %s: %w", overID, domain.ErrNotFound)
	}

	return s.Reorder(from, to)
}

func (s *Store) indexOf(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
