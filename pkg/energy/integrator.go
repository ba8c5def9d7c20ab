// Package energy integrates a piecewise-constant power function over a stream
// of timestamped state transitions and validates the resulting total against a
// ground-truth measurement.
package energy

import (
	"fmt"
	"math"
)

// Integrator accumulates energy from chronologically ordered state
// transitions. Each transition closes the previous state's interval using the
// power table, then opens a new one; Finalize closes the trailing interval
// that no transition will ever close.
//
// The integrator has exactly one writer and processes events strictly
// sequentially; it is not safe for concurrent use.
type Integrator struct {
	table PowerTable

	started   bool
	finalized bool
	prevState int
	firstTime float64
	lastTime  float64
	endTime   float64

	totalJ      float64
	currentW    float64
	perStateJ   map[int]float64
	perStateSec map[int]float64
	transitions int
	unknown     int
}

// NewIntegrator creates an integrator over the given characterization table.
// All accumulators start at zero; per-state slots exist for every
// characterized state so the report always lists the full set.
func NewIntegrator(table PowerTable) *Integrator {
	in := &Integrator{
		table:       table,
		perStateJ:   make(map[int]float64),
		perStateSec: make(map[int]float64),
	}
	for _, s := range table.States() {
		in.perStateJ[s] = 0
		in.perStateSec[s] = 0
	}
	return in
}

// OnTransition processes one state-change event. If this is not the first
// event, the previous state's interval [lastTransition, ts) is closed and its
// energy added to the totals. The entered state's instantaneous power is
// recorded for display only; it is never itself accumulated.
//
// A timestamp earlier than the last transition is rejected with
// ErrTimeReversed and leaves the totals untouched. Equal timestamps are valid
// and contribute zero energy.
func (in *Integrator) OnTransition(state int, ts float64) error {
	if in.finalized {
		return ErrFinalized
	}
	if in.started && ts < in.lastTime {
		return fmt.Errorf("%w: %.6f after %.6f", ErrTimeReversed, ts, in.lastTime)
	}

	if in.started {
		in.closeInterval(ts)
	} else {
		in.started = true
		in.firstTime = ts
	}

	power, known := in.table.Lookup(state)
	if !known {
		in.unknown++
	}
	in.currentW = power
	in.prevState = state
	in.lastTime = ts
	in.transitions++
	return nil
}

// closeInterval accrues energy for the open interval ending at ts.
func (in *Integrator) closeInterval(ts float64) {
	duration := ts - in.lastTime
	power, _ := in.table.Lookup(in.prevState)
	increment := power * duration
	in.totalJ += increment
	in.perStateJ[in.prevState] += increment
	in.perStateSec[in.prevState] += duration
}

// Finalize closes the interval still open at end-of-stream, as if one more
// transition occurred at endTs, and marks the integrator finalized. On an
// empty stream it marks finalized without adding energy. A second call is
// rejected with ErrFinalized and changes nothing.
func (in *Integrator) Finalize(endTs float64) error {
	if in.finalized {
		return ErrFinalized
	}
	if in.started {
		if endTs < in.lastTime {
			return fmt.Errorf("%w: finalize at %.6f after %.6f", ErrTimeReversed, endTs, in.lastTime)
		}
		in.closeInterval(endTs)
		in.endTime = endTs
	}
	in.finalized = true
	return nil
}

// Validate compares the accumulated total against a ground-truth energy.
// referenceJ must be positive; anything else returns ErrBadReference rather
// than risking a division fault. Validate never mutates the integrator, but
// the result is only authoritative after Finalize.
func (in *Integrator) Validate(referenceJ, tolerance float64) (Validation, error) {
	if referenceJ <= 0 {
		return Validation{}, fmt.Errorf("%w: got %g", ErrBadReference, referenceJ)
	}
	abs := math.Abs(in.totalJ - referenceJ)
	rel := abs / referenceJ
	return Validation{
		ComputedJ:  in.totalJ,
		ReferenceJ: referenceJ,
		AbsErrorJ:  abs,
		RelError:   rel,
		Tolerance:  tolerance,
		Pass:       rel < tolerance,
	}, nil
}

// TotalEnergyJ returns the energy accumulated by all closed intervals so far.
func (in *Integrator) TotalEnergyJ() float64 { return in.totalJ }

// CurrentPowerW returns the instantaneous power of the active state.
func (in *Integrator) CurrentPowerW() float64 { return in.currentW }

// TransitionCount returns the number of processed transition events.
// Finalize does not count as a transition.
func (in *Integrator) TransitionCount() int { return in.transitions }

// UnknownLookups returns how many transitions entered an uncharacterized
// state and were billed at the default power. Nonzero values are a
// data-quality warning, not an error.
func (in *Integrator) UnknownLookups() int { return in.unknown }

// Finalized reports whether the trailing interval has been closed.
func (in *Integrator) Finalized() bool { return in.finalized }
