package enlistment

import "strings"

// Subject is a course subject, identified by its id.
type Subject struct {
	ID          string `db:"id" json:"id"`
	Description string `db:"description" json:"description,omitempty"`
}

// NewSubject creates a subject with a non-blank id.
func NewSubject(id string) (Subject, error) {
	if isBlank(id) {
		return Subject{}, &ValidationError{Msg: "subject id must not be blank"}
	}
	return Subject{ID: strings.TrimSpace(id)}, nil
}

// Room is a physical room with a fixed seat capacity.
type Room struct {
	Name     string `db:"name" json:"name"`
	Capacity int    `db:"capacity" json:"capacity"`
}

// NewRoom creates a room with a non-blank name and positive capacity.
func NewRoom(name string, capacity int) (Room, error) {
	if isBlank(name) {
		return Room{}, &ValidationError{Msg: "room name must not be blank"}
	}
	if capacity <= 0 {
		return Room{}, &ValidationError{Msg: "room capacity must be positive"}
	}
	return Room{Name: strings.TrimSpace(name), Capacity: capacity}, nil
}

// Faculty is an instructor. Identity is the faculty number.
type Faculty struct {
	Number    int    `db:"number" json:"number"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

// NewFaculty creates an instructor with a non-negative number and
// non-blank names.
func NewFaculty(number int, firstName, lastName string) (Faculty, error) {
	if number < 0 {
		return Faculty{}, &ValidationError{Msg: "faculty number must be non-negative"}
	}
	if isBlank(firstName) || isBlank(lastName) {
		return Faculty{}, &ValidationError{Msg: "faculty name must not be blank"}
	}
	return Faculty{Number: number, FirstName: firstName, LastName: lastName}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
