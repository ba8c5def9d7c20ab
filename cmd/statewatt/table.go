package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/statewatt/statewatt/pkg/energy"
)

// buildTable resolves the characterization table from flags: an explicit
// --table spec wins, otherwise the reference device's table is used.
func buildTable(o opts) (energy.PowerTable, error) {
	if o.tableSpec == "" {
		return energy.ReferenceTable(), nil
	}
	powers, err := parseTableSpec(o.tableSpec)
	if err != nil {
		return energy.PowerTable{}, err
	}
	return energy.NewPowerTable(powers, o.defaultPower), nil
}

// parseTableSpec parses "state=watts" pairs separated by commas, e.g.
// "0=1.0357,1=1.0215".
func parseTableSpec(spec string) (map[int]float64, error) {
	powers := make(map[int]float64)
	for _, pair := range strings.Split(spec, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("table spec: %q is not state=watts", pair)
		}
		state, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("table spec: bad state %q", k)
		}
		watts, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("table spec: bad power %q", v)
		}
		if watts < 0 {
			return nil, fmt.Errorf("table spec: negative power for state %d", state)
		}
		powers[state] = watts
	}
	return powers, nil
}
