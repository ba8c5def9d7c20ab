package energy

import "errors"

var (
	// ErrTimeReversed indicates an event timestamp earlier than the last
	// processed one. The event is dropped; accepting it would produce a
	// negative duration and corrupt the totals.
	ErrTimeReversed = errors.New("energy: timestamp moved backwards")

	// ErrFinalized indicates an operation on an integrator whose trailing
	// interval has already been closed. A second Finalize would double-count
	// that interval, so it is rejected rather than ignored.
	ErrFinalized = errors.New("energy: integrator already finalized")

	// ErrBadReference indicates a zero or negative ground-truth energy.
	// Relative error is undefined against such a reference.
	ErrBadReference = errors.New("energy: reference energy must be positive")
)
