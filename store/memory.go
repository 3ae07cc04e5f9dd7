package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/enlistd/api/enlistment"
)

// NewMemory creates a store backed by plain maps. Loads hand out
// copies, so nothing is visible to other readers until Save. Used by
// tests and by the "memory" database driver setting.
func NewMemory() *Memory {
	return &Memory{
		sections: make(map[string]enlistment.Section),
		students: make(map[int]memStudent),
		rooms:    make(map[string]enlistment.Room),
		subjects: make(map[string]enlistment.Subject),
		faculty:  make(map[int]enlistment.Faculty),
	}
}

type memStudent struct {
	student  enlistment.Student
	enrolled map[string]bool
	taken    map[string]bool
}

// Memory is the in-memory backend behind NewMemory.
type Memory struct {
	mu       sync.RWMutex
	sections map[string]enlistment.Section
	students map[int]memStudent
	rooms    map[string]enlistment.Room
	subjects map[string]enlistment.Subject
	faculty  map[int]enlistment.Faculty
}

// Store exposes the memory backend through the store interfaces.
func (m *Memory) Store() Store {
	return Store{
		Sections: (*memSections)(m),
		Students: (*memStudents)(m),
		Rooms:    (*memRooms)(m),
		Subjects: (*memSubjects)(m),
		Faculty:  (*memFaculty)(m),
	}
}

// AddRoom seeds a room. Rooms are read-only to the core, so seeding
// happens on the backend, not through the store interfaces.
func (m *Memory) AddRoom(r enlistment.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Name] = r
}

// AddSubject seeds a subject.
func (m *Memory) AddSubject(s enlistment.Subject) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects[s.ID] = s
}

// AddFaculty seeds an instructor.
func (m *Memory) AddFaculty(f enlistment.Faculty) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faculty[f.Number] = f
}

type memSections Memory

func (m *memSections) FindByID(ctx context.Context, id string) (*enlistment.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sec, ok := m.sections[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sec, nil
}

func (m *memSections) FindAll(ctx context.Context) ([]*enlistment.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*enlistment.Section, 0, len(m.sections))
	for id := range m.sections {
		sec := m.sections[id]
		all = append(all, &sec)
	}
	return all, nil
}

func (m *memSections) Create(ctx context.Context, s *enlistment.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sections[s.ID]; ok {
		return &enlistment.DuplicateSectionError{ID: s.ID}
	}
	m.sections[s.ID] = *s
	return nil
}

func (m *memSections) Save(ctx context.Context, s *enlistment.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.sections[s.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != s.Version {
		return ErrStale
	}
	s.Version++
	m.sections[s.ID] = *s
	return nil
}

type memStudents Memory

func (m *memStudents) FindByNumber(ctx context.Context, number int) (*enlistment.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.students[number]
	if !ok {
		return nil, ErrNotFound
	}
	student := rec.student
	student.Sections = make(map[string]*enlistment.Section, len(rec.enrolled))
	student.SubjectsTaken = make(map[string]bool, len(rec.taken))
	for id := range rec.enrolled {
		if sec, ok := m.sections[id]; ok {
			s := sec
			student.Sections[id] = &s
		}
	}
	for subject := range rec.taken {
		student.SubjectsTaken[subject] = true
	}
	return &student, nil
}

func (m *memStudents) Create(ctx context.Context, st *enlistment.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[st.Number]; ok {
		return fmt.Errorf("student %d already stored", st.Number)
	}
	rec := memStudent{
		student:  *st,
		enrolled: make(map[string]bool),
		taken:    make(map[string]bool),
	}
	for id := range st.Sections {
		rec.enrolled[id] = true
	}
	for subject := range st.SubjectsTaken {
		rec.taken[subject] = true
	}
	m.students[st.Number] = rec
	return nil
}

func (m *memStudents) Save(ctx context.Context, st *enlistment.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.students[st.Number]
	if !ok {
		return ErrNotFound
	}
	rec.enrolled = make(map[string]bool, len(st.Sections))
	for id := range st.Sections {
		rec.enrolled[id] = true
	}
	rec.taken = make(map[string]bool, len(st.SubjectsTaken))
	for subject := range st.SubjectsTaken {
		rec.taken[subject] = true
	}
	m.students[st.Number] = rec
	return nil
}

type memRooms Memory

func (m *memRooms) FindByName(ctx context.Context, name string) (enlistment.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[name]
	if !ok {
		return room, ErrNotFound
	}
	return room, nil
}

func (m *memRooms) FindAll(ctx context.Context) ([]enlistment.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]enlistment.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		all = append(all, r)
	}
	return all, nil
}

type memSubjects Memory

func (m *memSubjects) FindByID(ctx context.Context, id string) (enlistment.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	subject, ok := m.subjects[id]
	if !ok {
		return subject, ErrNotFound
	}
	return subject, nil
}

func (m *memSubjects) FindAll(ctx context.Context) ([]enlistment.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]enlistment.Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		all = append(all, s)
	}
	return all, nil
}

type memFaculty Memory

func (m *memFaculty) FindByNumber(ctx context.Context, number int) (enlistment.Faculty, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	faculty, ok := m.faculty[number]
	if !ok {
		return faculty, ErrNotFound
	}
	return faculty, nil
}

func (m *memFaculty) FindAll(ctx context.Context) ([]enlistment.Faculty, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]enlistment.Faculty, 0, len(m.faculty))
	for _, f := range m.faculty {
		all = append(all, f)
	}
	return all, nil
}
