package source

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource_ReplaysLog(t *testing.T) {
	log := "time_s,state\n0,1\n10,0\n153,4\n153,2\n"
	src, err := NewCSVSource(strings.NewReader(log))
	require.NoError(t, err)
	defer src.Close()

	want := []Transition{
		{State: 1, TimeSec: 0},
		{State: 0, TimeSec: 10},
		{State: 4, TimeSec: 153},
		{State: 2, TimeSec: 153}, // equal timestamps are valid
	}
	for i, w := range want {
		got, err := src.Next()
		require.NoError(t, err, "row %d", i)
		assert.Equal(t, w, got, "row %d", i)
	}

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVSource_HeaderRequired(t *testing.T) {
	cases := []string{
		"",                    // empty file
		"0,1\n10,0\n",         // data without header
		"seconds,mode\n0,1\n", // wrong column names
	}
	for _, in := range cases {
		_, err := NewCSVSource(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrBadHeader, "input %q", in)
	}
}

func TestCSVSource_HeaderCaseAndSpacing(t *testing.T) {
	src, err := NewCSVSource(strings.NewReader("Time_s, State\n5,3\n"))
	require.NoError(t, err)

	tr, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, Transition{State: 3, TimeSec: 5}, tr)
}

func TestCSVSource_BadRecord(t *testing.T) {
	cases := []string{
		"time_s,state\nabc,1\n",  // bad timestamp
		"time_s,state\n1,xyz\n",  // bad state
		"time_s,state\n1,2,3\n",  // wrong field count
		"time_s,state\n2,0.5\n",  // fractional state
	}
	for _, in := range cases {
		src, err := NewCSVSource(strings.NewReader(in))
		require.NoError(t, err, "input %q", in)
		_, err = src.Next()
		assert.ErrorIs(t, err, ErrBadRecord, "input %q", in)
	}
}

func TestCSVSource_OutOfOrderRejected(t *testing.T) {
	src, err := NewCSVSource(strings.NewReader("time_s,state\n100,0\n50,1\n"))
	require.NoError(t, err)

	_, err = src.Next()
	require.NoError(t, err)
	_, err = src.Next()
	assert.ErrorIs(t, err, ErrNotOrdered)
}

func TestCSVSource_HeaderOnly(t *testing.T) {
	src, err := NewCSVSource(strings.NewReader("time_s,state\n"))
	require.NoError(t, err)

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}
