package enlistment

import (
	"errors"
	"fmt"
)

// Sentinel failures raised by seat accounting and enrollment checks.
var (
	// ErrCapacityExceeded is returned when a section has no seats left.
	ErrCapacityExceeded = errors.New("section is already at capacity")
	// ErrNoSeatToRelease is returned when releasing a seat from an
	// empty section.
	ErrNoSeatToRelease = errors.New("no enrolled seat to release")
	// ErrNotEnrolled is returned when a student cancels a section they
	// never enlisted in.
	ErrNotEnrolled = errors.New("student is not enrolled in this section")
	// ErrAlreadyEnrolled is returned when a student enlists in a
	// section they already hold a seat in.
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this section")
)

// ValidationError marks malformed input rejected before any aggregate
// is touched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DuplicateSectionError is returned when creating a section whose id
// is already taken.
type DuplicateSectionError struct {
	ID string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("a section with section id %s already exists", e.ID)
}

// InstructorConflictError is returned when two sections taught by the
// same instructor have overlapping schedules.
type InstructorConflictError struct {
	Instructor int
	Section    string
	Other      string
}

func (e *InstructorConflictError) Error() string {
	return fmt.Sprintf(
		"instructor %d already teaches section %s at a schedule overlapping section %s",
		e.Instructor, e.Other, e.Section,
	)
}

// SectionConflictError is returned when a section's schedule overlaps
// one the student is already enrolled in. It names the colliding
// section.
type SectionConflictError struct {
	Section  string
	Enrolled string
	Schedule Schedule
}

func (e *SectionConflictError) Error() string {
	return fmt.Sprintf(
		"section %s conflicts with enrolled section %s at %s",
		e.Section, e.Enrolled, e.Schedule,
	)
}

// SubjectTakenError is returned when a student enlists in a section
// for a subject already in their taken set.
type SubjectTakenError struct {
	Subject string
}

func (e *SubjectTakenError) Error() string {
	return fmt.Sprintf("subject %s has already been taken", e.Subject)
}
