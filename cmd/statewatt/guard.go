package main

import (
	"sync"

	"github.com/statewatt/statewatt/pkg/energy"
)

// lockedIntegrator serializes access to an integrator so the report API can
// read while the watch loop writes. The integrator itself keeps its
// single-writer contract: the watch loop is the only caller of the mutating
// methods.
type lockedIntegrator struct {
	mu sync.Mutex
	in *energy.Integrator
}

func newLockedIntegrator(in *energy.Integrator) *lockedIntegrator {
	return &lockedIntegrator{in: in}
}

func (g *lockedIntegrator) OnTransition(state int, ts float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.in.OnTransition(state, ts)
}

func (g *lockedIntegrator) Finalize(endTs float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.in.Finalize(endTs)
}

func (g *lockedIntegrator) Report() energy.Report {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.in.Report()
}

func (g *lockedIntegrator) Validate(referenceJ, tolerance float64) (energy.Validation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.in.Validate(referenceJ, tolerance)
}
