package source

import "errors"

var (
	// ErrBadHeader indicates the CSV log did not start with the expected
	// "time_s,state" header row.
	ErrBadHeader = errors.New("source: bad csv header")

	// ErrBadRecord indicates a CSV row that could not be parsed.
	ErrBadRecord = errors.New("source: bad csv record")

	// ErrNotOrdered indicates a row whose timestamp moved backwards.
	ErrNotOrdered = errors.New("source: timestamps not in order")

	// ErrBadSchedule indicates an invalid schedule definition (non-positive
	// period, unsorted or out-of-range offsets, empty state ring).
	ErrBadSchedule = errors.New("source: bad schedule")
)
