package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableSpec(t *testing.T) {
	got, err := parseTableSpec("0=1.0357, 1=1.0215,99=2")
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{0: 1.0357, 1: 1.0215, 99: 2}, got)
}

func TestParseTableSpec_Invalid(t *testing.T) {
	for _, spec := range []string{
		"0",        // no '='
		"x=1.0",    // bad state
		"0=watts",  // bad power
		"0=-1.5",   // negative power
		"0=1,,1=2", // empty pair
	} {
		_, err := parseTableSpec(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}

func TestBuildTable_DefaultsToReference(t *testing.T) {
	tbl, err := buildTable(opts{})
	require.NoError(t, err)

	w, known := tbl.Lookup(0)
	require.True(t, known)
	assert.InDelta(t, 1.0357, w, 1e-12)
}

func TestBuildTable_SpecOverrides(t *testing.T) {
	tbl, err := buildTable(opts{tableSpec: "0=2.5", defaultPower: 0.75})
	require.NoError(t, err)

	w, known := tbl.Lookup(0)
	require.True(t, known)
	assert.InDelta(t, 2.5, w, 1e-12)

	w, known = tbl.Lookup(1)
	assert.False(t, known)
	assert.InDelta(t, 0.75, w, 1e-12)
}
