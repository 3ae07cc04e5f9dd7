// Package store holds the persistence collaborators for the
// enlistment core: section and student aggregates plus the read-only
// catalog entities. Implementations exist for sql databases and for
// plain memory.
package store

import (
	"context"
	"errors"

	"github.com/enlistd/api/enlistment"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStale is returned when a save lost to a concurrent writer.
	// The caller may reload and retry.
	ErrStale = errors.New("aggregate is stale")
)

// SectionStore persists section aggregates.
type SectionStore interface {
	FindByID(ctx context.Context, id string) (*enlistment.Section, error)
	FindAll(ctx context.Context) ([]*enlistment.Section, error)
	Create(ctx context.Context, s *enlistment.Section) error
	// Save writes the enrolled count back. Fails with ErrStale if the
	// stored version no longer matches the aggregate's.
	Save(ctx context.Context, s *enlistment.Section) error
}

// StudentStore persists students together with their enrolled-section
// and taken-subject sets.
type StudentStore interface {
	FindByNumber(ctx context.Context, number int) (*enlistment.Student, error)
	Create(ctx context.Context, st *enlistment.Student) error
	Save(ctx context.Context, st *enlistment.Student) error
}

// RoomStore reads rooms.
type RoomStore interface {
	FindByName(ctx context.Context, name string) (enlistment.Room, error)
	FindAll(ctx context.Context) ([]enlistment.Room, error)
}

// SubjectStore reads subjects.
type SubjectStore interface {
	FindByID(ctx context.Context, id string) (enlistment.Subject, error)
	FindAll(ctx context.Context) ([]enlistment.Subject, error)
}

// FacultyStore reads instructors.
type FacultyStore interface {
	FindByNumber(ctx context.Context, number int) (enlistment.Faculty, error)
	FindAll(ctx context.Context) ([]enlistment.Faculty, error)
}

// Store bundles every collaborator the registrar needs.
type Store struct {
	Sections SectionStore
	Students StudentStore
	Rooms    RoomStore
	Subjects SubjectStore
	Faculty  FacultyStore
}
