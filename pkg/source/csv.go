package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVSource replays a transition log with a "time_s,state" header. Rows must
// be in non-decreasing time order; equal timestamps are allowed.
type CSVSource struct {
	r       *csv.Reader
	line    int
	last    float64
	started bool
}

// NewCSVSource wraps a reader over CSV log data. The header row is consumed
// and checked immediately so an empty or foreign file fails at construction.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if strings.TrimSpace(strings.ToLower(header[0])) != "time_s" ||
		strings.TrimSpace(strings.ToLower(header[1])) != "state" {
		return nil, fmt.Errorf("%w: got %q,%q", ErrBadHeader, header[0], header[1])
	}
	return &CSVSource{r: cr, line: 1}, nil
}

// Next returns the next logged transition or io.EOF at end of file.
func (s *CSVSource) Next() (Transition, error) {
	rec, err := s.r.Read()
	if err == io.EOF {
		return Transition{}, io.EOF
	}
	if err != nil {
		return Transition{}, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	s.line++

	ts, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		return Transition{}, fmt.Errorf("%w: line %d: time %q", ErrBadRecord, s.line, rec[0])
	}
	state, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return Transition{}, fmt.Errorf("%w: line %d: state %q", ErrBadRecord, s.line, rec[1])
	}
	if s.started && ts < s.last {
		return Transition{}, fmt.Errorf("%w: line %d: %.6f after %.6f", ErrNotOrdered, s.line, ts, s.last)
	}
	s.started = true
	s.last = ts

	return Transition{State: state, TimeSec: ts}, nil
}

// Close is a no-op; the caller owns the underlying reader.
func (s *CSVSource) Close() error { return nil }
