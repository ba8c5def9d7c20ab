package energy

import "sort"

// PowerTable maps a discrete operating state to its constant power draw in
// Watts. Lookup is total: states outside the characterized set resolve to the
// table's default power instead of failing, so a misbehaving event source can
// never crash the integrator. Callers that care about data quality should
// watch the known flag (the integrator counts these for its report).
type PowerTable struct {
	powers   map[int]float64
	defaultW float64
}

// NewPowerTable builds a table from a state→Watts map and a default power for
// unmapped states. The input map is copied; the table is immutable afterwards.
func NewPowerTable(powers map[int]float64, defaultPower float64) PowerTable {
	cp := make(map[int]float64, len(powers))
	for s, w := range powers {
		cp[s] = w
	}
	return PowerTable{powers: cp, defaultW: defaultPower}
}

// ReferenceTable returns the characterized table for the reference device:
// six operating states measured from cleaned sensor logs, 1.0 W default.
func ReferenceTable() PowerTable {
	return NewPowerTable(map[int]float64{
		0: 1.0357, // at work (office)
		1: 1.0215, // not at work
		2: 1.0284, // at work (remote)
		3: 1.0960, // office, bluetooth active
		4: 1.1500, // remote, bluetooth active
		5: 1.0925, // not at work, bluetooth active
	}, 1.0)
}

// Lookup returns the power draw for a state. known is false when the state is
// uncharacterized and the default power was served.
func (t PowerTable) Lookup(state int) (power float64, known bool) {
	if w, ok := t.powers[state]; ok {
		return w, true
	}
	return t.defaultW, false
}

// DefaultPower returns the power served for uncharacterized states.
func (t PowerTable) DefaultPower() float64 { return t.defaultW }

// States returns the characterized state identifiers in ascending order.
func (t PowerTable) States() []int {
	out := make([]int, 0, len(t.powers))
	for s := range t.powers {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}
