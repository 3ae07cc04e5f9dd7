package enlistment

// Student owns the set of sections they are enrolled in and the set
// of subjects already taken. Only Enlist and Cancel mutate the
// enrolled set, and both leave everything untouched on failure.
type Student struct {
	Number    int    `json:"number"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Sections are references to the authoritative section
	// aggregates, keyed by section id.
	Sections map[string]*Section `json:"-"`
	// SubjectsTaken are the subject ids the student has completed
	// or is currently taking.
	SubjectsTaken map[string]bool `json:"-"`
}

// NewStudent creates a student with no enrollments.
func NewStudent(number int, firstName, lastName string) (*Student, error) {
	if number < 0 {
		return nil, &ValidationError{Msg: "student number must be non-negative"}
	}
	if isBlank(firstName) || isBlank(lastName) {
		return nil, &ValidationError{Msg: "student name must not be blank"}
	}
	return &Student{
		Number:        number,
		FirstName:     firstName,
		LastName:      lastName,
		Sections:      make(map[string]*Section),
		SubjectsTaken: make(map[string]bool),
	}, nil
}

// Enlist reserves a seat in the section for the student. The cheap
// timetable and subject checks run first, each pass in full; the
// capacity reservation on the contended section is last and is the
// single point of truth for whether the enrollment happened.
func (st *Student) Enlist(section *Section) error {
	if st.EnrolledIn(section.ID) {
		return ErrAlreadyEnrolled
	}
	for _, enrolled := range st.Sections {
		if enrolled.Schedule.OverlapsWith(section.Schedule) {
			return &SectionConflictError{
				Section:  section.ID,
				Enrolled: enrolled.ID,
				Schedule: enrolled.Schedule,
			}
		}
	}
	for _, enrolled := range st.Sections {
		if enrolled.Subject == section.Subject {
			return &SubjectTakenError{Subject: section.Subject}
		}
	}
	if st.SubjectsTaken[section.Subject] {
		return &SubjectTakenError{Subject: section.Subject}
	}
	if err := section.ReserveSeat(); err != nil {
		return err
	}
	if st.Sections == nil {
		st.Sections = make(map[string]*Section)
	}
	st.Sections[section.ID] = section
	return nil
}

// Cancel releases the student's seat in the section.
func (st *Student) Cancel(section *Section) error {
	if _, ok := st.Sections[section.ID]; !ok {
		return ErrNotEnrolled
	}
	if err := section.ReleaseSeat(); err != nil {
		return err
	}
	delete(st.Sections, section.ID)
	return nil
}

// EnrolledIn reports whether the student holds a seat in the section.
func (st *Student) EnrolledIn(sectionID string) bool {
	_, ok := st.Sections[sectionID]
	return ok
}
