package energy

import "sort"

// StateRow is one state's share of the accumulated totals.
type StateRow struct {
	State       int     `json:"state"`
	PowerW      float64 `json:"power_w"`
	EnergyJ     float64 `json:"energy_j"`
	DurationSec float64 `json:"duration_sec"`
	Share       float64 `json:"share"`
}

// Report is a read-only snapshot of the integrator's accumulators.
type Report struct {
	TotalEnergyJ   float64    `json:"total_energy_j"`
	CurrentPowerW  float64    `json:"current_power_w"`
	Transitions    int        `json:"transitions"`
	UnknownLookups int        `json:"unknown_lookups"`
	Finalized      bool       `json:"finalized"`
	StartTimeSec   float64    `json:"start_time_sec"`
	EndTimeSec     float64    `json:"end_time_sec"`
	ElapsedSec     float64    `json:"elapsed_sec"`
	States         []StateRow `json:"states"`
}

// Validation is the outcome of comparing computed energy against ground truth.
type Validation struct {
	ComputedJ  float64 `json:"computed_j"`
	ReferenceJ float64 `json:"reference_j"`
	AbsErrorJ  float64 `json:"abs_error_j"`
	RelError   float64 `json:"rel_error"`
	Tolerance  float64 `json:"tolerance"`
	Pass       bool    `json:"pass"`
}

// Report snapshots the current totals. Rows cover every characterized state
// plus any uncharacterized state that actually appeared, in ascending order.
func (in *Integrator) Report() Report {
	states := make([]int, 0, len(in.perStateJ))
	for s := range in.perStateJ {
		states = append(states, s)
	}
	sort.Ints(states)

	rows := make([]StateRow, 0, len(states))
	for _, s := range states {
		power, _ := in.table.Lookup(s)
		row := StateRow{
			State:       s,
			PowerW:      power,
			EnergyJ:     in.perStateJ[s],
			DurationSec: in.perStateSec[s],
		}
		if in.totalJ > 0 {
			row.Share = row.EnergyJ / in.totalJ
		}
		rows = append(rows, row)
	}

	end := in.lastTime
	if in.finalized && in.started {
		end = in.endTime
	}
	rep := Report{
		TotalEnergyJ:   in.totalJ,
		CurrentPowerW:  in.currentW,
		Transitions:    in.transitions,
		UnknownLookups: in.unknown,
		Finalized:      in.finalized,
		States:         rows,
	}
	if in.started {
		rep.StartTimeSec = in.firstTime
		rep.EndTimeSec = end
		rep.ElapsedSec = end - in.firstTime
	}
	return rep
}
