package enlistment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStudent(t *testing.T) *Student {
	t.Helper()
	st, err := NewStudent(10, "x", "x")
	require.NoError(t, err)
	return st
}

func TestNewStudent_validation(t *testing.T) {
	var verr *ValidationError
	_, err := NewStudent(-1, "x", "x")
	assert.ErrorAs(t, err, &verr)
	_, err = NewStudent(1, "", "x")
	assert.ErrorAs(t, err, &verr)
}

func TestStudent_enlist(t *testing.T) {
	st := newTestStudent(t)
	sec := newTestSection(t, "A1", mustSchedule(t, "MTH", "08:30", "10:00"), 10, 1000)

	require.NoError(t, st.Enlist(sec))
	assert.True(t, st.EnrolledIn("A1"))
	assert.Equal(t, 1, sec.Enrolled)
}

// A second enlist for a held section must not take a second seat.
func TestStudent_enlistTwice(t *testing.T) {
	st := newTestStudent(t)
	sec := newTestSection(t, "A1", mustSchedule(t, "MTH", "08:30", "10:00"), 10, 1000)

	require.NoError(t, st.Enlist(sec))
	err := st.Enlist(sec)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.Equal(t, 1, sec.Enrolled)

	require.NoError(t, st.Cancel(sec))
	assert.Equal(t, 0, sec.Enrolled, "one cancel must return the only seat held")
}

func TestStudent_enlistScheduleConflict(t *testing.T) {
	st := newTestStudent(t)
	first := newTestSection(t, "A1", mustSchedule(t, "MTH", "08:30", "10:00"), 10, 1000)
	require.NoError(t, st.Enlist(first))

	clashing := newTestSection(t, "B2", mustSchedule(t, "MTH", "09:00", "11:00"), 10, 2000)
	clashing.Subject = "BM102"
	err := st.Enlist(clashing)
	var conflict *SectionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "A1", conflict.Enrolled)
	assert.False(t, st.EnrolledIn("B2"))
	assert.Equal(t, 0, clashing.Enrolled, "failed enlist must not take a seat")
}

func TestStudent_enlistSubjectAlreadyTaken(t *testing.T) {
	st := newTestStudent(t)
	st.SubjectsTaken["BM101"] = true

	sec := newTestSection(t, "A1", mustSchedule(t, "MTH", "08:30", "10:00"), 10, 1000)
	err := st.Enlist(sec)
	var taken *SubjectTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, "BM101", taken.Subject)
	assert.Equal(t, 0, sec.Enrolled)
}

// When one enrolled section clashes on schedule and a different one
// on subject, the schedule conflict is reported no matter how the
// enrolled set iterates.
func TestStudent_scheduleCheckedBeforeSubject(t *testing.T) {
	st := newTestStudent(t)
	timetable := newTestSection(t, "A1", mustSchedule(t, "MTH", "09:00", "10:00"), 10, 1000)
	require.NoError(t, st.Enlist(timetable))
	sameSubject := newTestSection(t, "B2", mustSchedule(t, "TF", "09:00", "10:00"), 10, 2000)
	sameSubject.Subject = "PH403"
	require.NoError(t, st.Enlist(sameSubject))

	candidate := newTestSection(t, "C3", mustSchedule(t, "MTH", "09:30", "10:30"), 10, 2000)
	candidate.Subject = "PH403"
	for i := 0; i < 20; i++ {
		err := st.Enlist(candidate)
		var conflict *SectionConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "A1", conflict.Enrolled)
	}
}

func TestStudent_enlistFullSection(t *testing.T) {
	st := newTestStudent(t)
	sec := newTestSection(t, "A1", mustSchedule(t, "MTH", "08:30", "10:00"), 1, 1000)
	sec.Enrolled = sec.Capacity

	err := st.Enlist(sec)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.False(t, st.EnrolledIn("A1"))
}

func TestStudent_cancel(t *testing.T) {
	st := newTestStudent(t)
	sec := newTestSection(t, "A1", mustSchedule(t, "MTH", "08:30", "10:00"), 10, 1000)

	err := st.Cancel(sec)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	require.NoError(t, st.Enlist(sec))
	require.NoError(t, st.Cancel(sec))
	assert.False(t, st.EnrolledIn("A1"))
	assert.Equal(t, 0, sec.Enrolled)
}

// Enlist followed by cancel puts both aggregates back where they
// started.
func TestStudent_enlistThenCancelRestoresState(t *testing.T) {
	st := newTestStudent(t)
	sec := newTestSection(t, "A1", mustSchedule(t, "TF", "10:00", "11:30"), 7, 1000)
	sec.Enrolled = 3

	before := sec.Enrolled
	require.NoError(t, st.Enlist(sec))
	require.NoError(t, st.Cancel(sec))
	assert.Equal(t, before, sec.Enrolled)
	assert.Empty(t, st.Sections)
}
