package source

import (
	"fmt"
	"io"
)

// Schedule describes a cyclic firing pattern: transitions fire at fixed
// offsets inside a repeating period, and the emitted state cycles through a
// ring. This is the pattern the reference device's driver produces.
type Schedule struct {
	PeriodSec  float64
	OffsetsSec []float64 // ascending, each in (0, PeriodSec]
	States     []int     // state ring, cycled in order
}

// ReferenceSchedule returns the firing pattern of the reference run: four
// events per 3602 s period, cycling through the characterized states.
func ReferenceSchedule() Schedule {
	return Schedule{
		PeriodSec:  3602,
		OffsetsSec: []float64{1, 100, 3600, 3602},
		States:     []int{0, 1, 2, 3, 4, 5},
	}
}

func (s Schedule) validate() error {
	if s.PeriodSec <= 0 {
		return fmt.Errorf("%w: period %.6f", ErrBadSchedule, s.PeriodSec)
	}
	if len(s.OffsetsSec) == 0 {
		return fmt.Errorf("%w: no offsets", ErrBadSchedule)
	}
	prev := 0.0
	for _, off := range s.OffsetsSec {
		if off <= prev || off > s.PeriodSec {
			return fmt.Errorf("%w: offset %.6f", ErrBadSchedule, off)
		}
		prev = off
	}
	if len(s.States) == 0 {
		return fmt.Errorf("%w: no states", ErrBadSchedule)
	}
	return nil
}

// ScheduleSource generates a schedule's transitions up to a virtual-time
// horizon. Deterministic and allocation-free per event.
type ScheduleSource struct {
	sched    Schedule
	horizon  float64
	cycle    int
	offIdx   int
	stateIdx int
}

// NewScheduleSource validates the schedule and prepares a stream of every
// firing with timestamp <= horizonSec.
func NewScheduleSource(sched Schedule, horizonSec float64) (*ScheduleSource, error) {
	if err := sched.validate(); err != nil {
		return nil, err
	}
	if horizonSec <= 0 {
		return nil, fmt.Errorf("%w: horizon %.6f", ErrBadSchedule, horizonSec)
	}
	return &ScheduleSource{sched: sched, horizon: horizonSec}, nil
}

// Next returns the next scheduled transition or io.EOF past the horizon.
func (s *ScheduleSource) Next() (Transition, error) {
	ts := float64(s.cycle)*s.sched.PeriodSec + s.sched.OffsetsSec[s.offIdx]
	if ts > s.horizon {
		return Transition{}, io.EOF
	}

	tr := Transition{State: s.sched.States[s.stateIdx], TimeSec: ts}

	s.stateIdx = (s.stateIdx + 1) % len(s.sched.States)
	s.offIdx++
	if s.offIdx == len(s.sched.OffsetsSec) {
		s.offIdx = 0
		s.cycle++
	}
	return tr, nil
}

// Close is a no-op.
func (s *ScheduleSource) Close() error { return nil }
