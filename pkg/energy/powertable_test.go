package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerTable_LookupKnown(t *testing.T) {
	tbl := ReferenceTable()

	cases := map[int]float64{
		0: 1.0357,
		1: 1.0215,
		2: 1.0284,
		3: 1.0960,
		4: 1.1500,
		5: 1.0925,
	}
	for state, want := range cases {
		got, known := tbl.Lookup(state)
		require.True(t, known, "state %d should be characterized", state)
		assert.InDelta(t, want, got, 1e-12, "state %d", state)
	}
}

func TestPowerTable_LookupUnknownServesDefault(t *testing.T) {
	tbl := ReferenceTable()

	for _, state := range []int{-1, 6, 99, 1 << 20} {
		got, known := tbl.Lookup(state)
		assert.False(t, known, "state %d", state)
		assert.InDelta(t, 1.0, got, 1e-12, "state %d", state)
	}
}

func TestPowerTable_StatesSorted(t *testing.T) {
	tbl := NewPowerTable(map[int]float64{5: 1.5, 0: 1.0, 3: 1.3}, 2.0)
	assert.Equal(t, []int{0, 3, 5}, tbl.States())
	assert.Equal(t, 2.0, tbl.DefaultPower())
}

func TestPowerTable_ImmutableAfterConstruction(t *testing.T) {
	src := map[int]float64{0: 1.0}
	tbl := NewPowerTable(src, 9.0)

	// Mutating the source map must not leak into the table.
	src[0] = 123.0
	src[1] = 456.0

	got, known := tbl.Lookup(0)
	require.True(t, known)
	assert.InDelta(t, 1.0, got, 1e-12)

	got, known = tbl.Lookup(1)
	assert.False(t, known)
	assert.InDelta(t, 9.0, got, 1e-12)
}
