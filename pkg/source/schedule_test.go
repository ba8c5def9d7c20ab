package source

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleSource_ReferencePattern(t *testing.T) {
	src, err := NewScheduleSource(ReferenceSchedule(), 7204)
	require.NoError(t, err)
	defer src.Close()

	// Two periods' worth of firings: offsets repeat every 3602 s, the state
	// ring advances one step per firing.
	want := []Transition{
		{State: 0, TimeSec: 1},
		{State: 1, TimeSec: 100},
		{State: 2, TimeSec: 3600},
		{State: 3, TimeSec: 3602},
		{State: 4, TimeSec: 3603},
		{State: 5, TimeSec: 3702},
		{State: 0, TimeSec: 7202},
		{State: 1, TimeSec: 7204},
	}
	for i, w := range want {
		got, err := src.Next()
		require.NoError(t, err, "event %d", i)
		assert.Equal(t, w, got, "event %d", i)
	}

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF, "next firing (7205) is past the horizon")
}

func TestScheduleSource_HorizonCutsMidPeriod(t *testing.T) {
	src, err := NewScheduleSource(ReferenceSchedule(), 100)
	require.NoError(t, err)

	n := 0
	for {
		_, err := src.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 2, n, "only the firings at t=1 and t=100 fit")
}

func TestScheduleSource_TimestampsNonDecreasing(t *testing.T) {
	src, err := NewScheduleSource(ReferenceSchedule(), 50000)
	require.NoError(t, err)

	prev := -1.0
	for {
		tr, err := src.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.GreaterOrEqual(t, tr.TimeSec, prev)
		prev = tr.TimeSec
	}
}

func TestNewScheduleSource_Validation(t *testing.T) {
	ok := ReferenceSchedule()

	bad := []Schedule{
		{PeriodSec: 0, OffsetsSec: []float64{1}, States: []int{0}},
		{PeriodSec: 10, OffsetsSec: nil, States: []int{0}},
		{PeriodSec: 10, OffsetsSec: []float64{5, 3}, States: []int{0}},  // unsorted
		{PeriodSec: 10, OffsetsSec: []float64{5, 11}, States: []int{0}}, // past period
		{PeriodSec: 10, OffsetsSec: []float64{5}, States: nil},
	}
	for i, s := range bad {
		_, err := NewScheduleSource(s, 100)
		assert.ErrorIs(t, err, ErrBadSchedule, "case %d", i)
	}

	_, err := NewScheduleSource(ok, 0)
	assert.ErrorIs(t, err, ErrBadSchedule, "non-positive horizon")
}
