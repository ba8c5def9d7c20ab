package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTransition(t *testing.T) {
	tr, err := decodeTransition([]byte(`{"state":4,"time_s":153.5}`))
	require.NoError(t, err)
	assert.Equal(t, Transition{State: 4, TimeSec: 153.5}, tr)
}

func TestDecodeTransition_Invalid(t *testing.T) {
	cases := [][]byte{
		[]byte(``),
		[]byte(`not json`),
		[]byte(`{"state":"four","time_s":1}`),
		[]byte(`{"state":1,"time_s":-5}`), // negative virtual time
	}
	for _, payload := range cases {
		_, err := decodeTransition(payload)
		assert.Error(t, err, "payload %q", payload)
	}
}

func TestDecodeTransition_MissingFieldsDefaultToZero(t *testing.T) {
	// Sparse payloads decode to the zero state/time; ordering problems are
	// the integrator's to reject, not the decoder's.
	tr, err := decodeTransition([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, Transition{}, tr)
}
