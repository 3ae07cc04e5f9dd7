// Package registrar is the concurrency boundary of the enlistment
// core. It serializes enlist/cancel requests per section so capacity
// checks and seat counts stay consistent, and runs the catalog-wide
// conflict scan when sections are created.
package registrar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/enlistd/api/enlistment"
	"github.com/enlistd/api/store"
)

// ErrTimeout is returned when a request gave up waiting for a
// section's serialization unit. Nothing was mutated and the request
// may be resubmitted.
var ErrTimeout = errors.New("timed out waiting for section")

// DefaultLockWait bounds how long a request waits on a contended
// section before failing with ErrTimeout.
const DefaultLockWait = 5 * time.Second

// Action is what a student wants done with a section.
type Action string

// The two enlistment actions.
const (
	Enlist Action = "ENLIST"
	Cancel Action = "CANCEL"
)

// ParseAction converts request input into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToUpper(strings.TrimSpace(s))) {
	case Enlist:
		return Enlist, nil
	case Cancel:
		return Cancel, nil
	}
	return "", &enlistment.ValidationError{Msg: fmt.Sprintf("unknown action %q", s)}
}

// Registrar coordinates enlistment against the stores.
type Registrar struct {
	store store.Store
	locks lockTable

	// catalog serializes section creation: the duplicate-id check and
	// the instructor scan must see every committed section.
	catalog lockTable

	// LockWait bounds serialization-unit acquisition.
	LockWait time.Duration
}

// New creates a registrar over the given store.
func New(st store.Store) *Registrar {
	return &Registrar{store: st, LockWait: DefaultLockWait}
}

// acquire takes a serialization unit, bounded by LockWait.
func (r *Registrar) acquire(ctx context.Context, lt *lockTable, id string) (func(), error) {
	wait := r.LockWait
	if wait <= 0 {
		wait = DefaultLockWait
	}
	lockCtx, cancel := context.WithTimeout(ctx, wait)
	release, err := lt.acquire(lockCtx, id)
	if err != nil {
		cancel()
		return nil, err
	}
	return func() {
		release()
		cancel()
	}, nil
}

// Perform runs one enlist or cancel request. The section's
// serialization unit is held from before the section load until
// after both aggregates are saved, so concurrent requests for one
// section observe each other's committed counts while requests for
// other sections run in parallel. Every business failure comes back
// as a typed error and leaves stored state untouched.
func (r *Registrar) Perform(ctx context.Context, studentNumber int, sectionID string, action Action) error {
	if strings.TrimSpace(sectionID) == "" {
		return &enlistment.ValidationError{Msg: "section id must not be blank"}
	}

	// The student aggregate is only touched by its own request, so
	// it can load outside the lock.
	student, err := r.store.Students.FindByNumber(ctx, studentNumber)
	if err != nil {
		return err
	}

	release, err := r.acquire(ctx, &r.locks, sectionID)
	if err != nil {
		return err
	}
	defer release()

	// Loaded under the lock: the count seen here is the committed
	// count, not a snapshot from before the queue formed.
	section, err := r.store.Sections.FindByID(ctx, sectionID)
	if err != nil {
		return err
	}

	switch action {
	case Enlist:
		err = student.Enlist(section)
	case Cancel:
		err = student.Cancel(section)
	default:
		err = &enlistment.ValidationError{Msg: fmt.Sprintf("unknown action %q", action)}
	}
	if err != nil {
		return err
	}

	if err = r.store.Sections.Save(ctx, section); err != nil {
		return err
	}
	return r.store.Students.Save(ctx, student)
}

// CreateSection holds the parameters of an administrative
// section-creation request.
type CreateSection struct {
	SectionID  string `form:"section_id" json:"section_id"`
	SubjectID  string `form:"subject_id" json:"subject_id"`
	Days       string `form:"days" json:"days"`
	Start      string `form:"start" json:"start"`
	End        string `form:"end" json:"end"`
	Room       string `form:"room" json:"room"`
	Instructor int    `form:"instructor" json:"instructor"`
}

// CreateSection validates the request, resolves the referenced
// catalog records, scans every existing section for an instructor
// schedule clash, and stores the new section. Capacity is fixed from
// the room.
func (r *Registrar) CreateSection(ctx context.Context, p CreateSection) (*enlistment.Section, error) {
	switch {
	case strings.TrimSpace(p.SectionID) == "":
		return nil, &enlistment.ValidationError{Msg: "please provide a section id for the new section"}
	case strings.TrimSpace(p.SubjectID) == "":
		return nil, &enlistment.ValidationError{Msg: "please choose a subject for the new section"}
	case strings.TrimSpace(p.Room) == "":
		return nil, &enlistment.ValidationError{Msg: "please choose a room for the new section"}
	}
	schedule, err := enlistment.ParseSchedule(p.Days, p.Start, p.End)
	if err != nil {
		return nil, err
	}

	// Creation is serialized catalog-wide so the duplicate check and
	// the conflict scan run against every committed section.
	release, err := r.acquire(ctx, &r.catalog, "catalog")
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err = r.store.Sections.FindByID(ctx, p.SectionID); err == nil {
		return nil, &enlistment.DuplicateSectionError{ID: p.SectionID}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	subject, err := r.store.Subjects.FindByID(ctx, p.SubjectID)
	if err != nil {
		return nil, err
	}
	room, err := r.store.Rooms.FindByName(ctx, p.Room)
	if err != nil {
		return nil, err
	}
	instructor, err := r.store.Faculty.FindByNumber(ctx, p.Instructor)
	if err != nil {
		return nil, err
	}

	section, err := enlistment.NewSection(p.SectionID, subject, schedule, room, instructor)
	if err != nil {
		return nil, err
	}
	existing, err := r.store.Sections.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, cur := range existing {
		if err = section.CheckScheduleAndInstructor(cur); err != nil {
			return nil, err
		}
	}
	if err = r.store.Sections.Create(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// RegisterStudent records a new student with an empty timetable.
func (r *Registrar) RegisterStudent(ctx context.Context, number int, firstName, lastName string) (*enlistment.Student, error) {
	student, err := enlistment.NewStudent(number, firstName, lastName)
	if err != nil {
		return nil, err
	}
	if err = r.store.Students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Student loads a student with their enrolled sections.
func (r *Registrar) Student(ctx context.Context, number int) (*enlistment.Student, error) {
	return r.store.Students.FindByNumber(ctx, number)
}

// Section loads one section.
func (r *Registrar) Section(ctx context.Context, id string) (*enlistment.Section, error) {
	return r.store.Sections.FindByID(ctx, id)
}

// Sections lists the whole catalog.
func (r *Registrar) Sections(ctx context.Context) ([]*enlistment.Section, error) {
	return r.store.Sections.FindAll(ctx)
}
