// Package enlistment is the domain core of the enrollment engine:
// schedules, sections, students, and the rules guarding seat capacity
// and timetable conflicts. Everything here is plain computation; the
// registrar package supplies the concurrency discipline around it.
package enlistment

// Section is a scheduled instance of a subject, bound to a room, an
// instructor, and a seat capacity. The capacity is fixed at creation
// from the room and the enrolled count only moves through
// ReserveSeat and ReleaseSeat.
type Section struct {
	ID         string   `json:"id"`
	Subject    string   `json:"subject_id"`
	Schedule   Schedule `json:"schedule"`
	Room       string   `json:"room"`
	Instructor int      `json:"instructor"`
	Capacity   int      `json:"capacity"`
	Enrolled   int      `json:"enrolled"`

	// Version is bumped by the section store on every successful
	// save. A mismatched version on save means another writer got
	// there first.
	Version int64 `json:"-"`
}

// NewSection builds a section. Capacity comes from the room. The
// caller is responsible for checking the new section against the
// rest of the catalog with CheckScheduleAndInstructor.
func NewSection(id string, subject Subject, schedule Schedule, room Room, instructor Faculty) (*Section, error) {
	if isBlank(id) {
		return nil, &ValidationError{Msg: "section id must not be blank"}
	}
	if room.Capacity <= 0 {
		return nil, &ValidationError{Msg: "room capacity must be positive"}
	}
	return &Section{
		ID:         id,
		Subject:    subject.ID,
		Schedule:   schedule,
		Room:       room.Name,
		Instructor: instructor.Number,
		Capacity:   room.Capacity,
	}, nil
}

// ReserveSeat takes one seat. The check and the increment must run
// inside the section's serialization unit; see registrar.
func (s *Section) ReserveSeat() error {
	if s.Enrolled >= s.Capacity {
		return ErrCapacityExceeded
	}
	s.Enrolled++
	return nil
}

// ReleaseSeat gives one seat back.
func (s *Section) ReleaseSeat() error {
	if s.Enrolled <= 0 {
		return ErrNoSeatToRelease
	}
	s.Enrolled--
	return nil
}

// Remaining is the number of open seats.
func (s *Section) Remaining() int {
	return s.Capacity - s.Enrolled
}

// CheckScheduleAndInstructor rejects the pair if both sections are
// taught by the same instructor at overlapping schedules. The check
// is symmetric and is run against every existing section when a new
// one is created.
func (s *Section) CheckScheduleAndInstructor(other *Section) error {
	if s.ID == other.ID {
		return nil
	}
	if s.Instructor == other.Instructor && s.Schedule.OverlapsWith(other.Schedule) {
		return &InstructorConflictError{
			Instructor: s.Instructor,
			Section:    s.ID,
			Other:      other.ID,
		}
	}
	return nil
}
