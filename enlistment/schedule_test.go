package enlistment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSchedule(t *testing.T, days, start, end string) Schedule {
	t.Helper()
	s, err := ParseSchedule(days, start, end)
	require.NoError(t, err)
	return s
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(9*60+30), tod)
	assert.Equal(t, "09:30", tod.String())

	for _, bad := range []string{"", "25:00", "9am", "12:60"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}
}

func TestNewPeriod_rejectsBackwardsRange(t *testing.T) {
	for _, tt := range []struct{ start, end string }{
		{"10:00", "10:00"},
		{"10:00", "09:00"},
	} {
		_, err := ParsePeriod(tt.start, tt.end)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "%s-%s", tt.start, tt.end)
	}
}

func TestPeriodOverlap_boundary(t *testing.T) {
	nineToTen, err := ParsePeriod("09:00", "10:00")
	require.NoError(t, err)
	tenToEleven, err := ParsePeriod("10:00", "11:00")
	require.NoError(t, err)

	// back to back periods do not overlap
	assert.False(t, nineToTen.OverlapsWith(tenToEleven))
	assert.False(t, tenToEleven.OverlapsWith(nineToTen))

	// one minute over the boundary does
	spill, err := ParsePeriod("09:00", "10:01")
	require.NoError(t, err)
	assert.True(t, spill.OverlapsWith(tenToEleven))
	assert.True(t, tenToEleven.OverlapsWith(spill))
}

func TestDaysIntersect(t *testing.T) {
	for _, tt := range []struct {
		a, b Days
		want bool
	}{
		{MTH, MTH, true},
		{MTH, TF, false},
		{MTH, WS, false},
		{TF, WS, false},
		{MTWTHF, MTH, true},
		{MTWTHF, TF, true},
		{MTWTHF, WS, true}, // both meet on Wednesday
	} {
		assert.Equal(t, tt.want, tt.a.Intersects(tt.b), "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.want, tt.b.Intersects(tt.a), "%s vs %s", tt.b, tt.a)
	}
}

func TestParseDays(t *testing.T) {
	d, err := ParseDays("mth")
	require.NoError(t, err)
	assert.Equal(t, MTH, d)
	_, err = ParseDays("MWF")
	assert.Error(t, err)
}

func TestScheduleOverlap(t *testing.T) {
	var (
		mth830to10 = mustSchedule(t, "MTH", "08:30", "10:00")
		mth9to11   = mustSchedule(t, "MTH", "09:00", "11:00")
		tf830to10  = mustSchedule(t, "TF", "08:30", "10:00")
		mth10to11  = mustSchedule(t, "MTH", "10:00", "11:00")
	)
	t.Run("SameDaysSharedTime", func(t *testing.T) {
		assert.True(t, mth830to10.OverlapsWith(mth9to11))
	})
	t.Run("Symmetry", func(t *testing.T) {
		assert.Equal(t,
			mth830to10.OverlapsWith(mth9to11),
			mth9to11.OverlapsWith(mth830to10))
	})
	t.Run("Reflexive", func(t *testing.T) {
		assert.True(t, mth830to10.OverlapsWith(mth830to10))
	})
	t.Run("DifferentDays", func(t *testing.T) {
		assert.False(t, mth830to10.OverlapsWith(tf830to10))
	})
	t.Run("BackToBack", func(t *testing.T) {
		assert.False(t, mth830to10.OverlapsWith(mth10to11))
	})
}

func TestScheduleString(t *testing.T) {
	s := mustSchedule(t, "TF", "08:30", "10:00")
	assert.Equal(t, "TF 08:30-10:00", s.String())
}
