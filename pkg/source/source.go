package source

// Transition is one timestamped state-change event.
type Transition struct {
	State   int     `json:"state"`
	TimeSec float64 `json:"time_s"`
}

// Source is a finite, chronologically ordered stream of transitions.
type Source interface {
	// Next returns the next transition, or io.EOF when the stream ends.
	Next() (Transition, error)

	// Close releases backend resources. Safe to call more than once.
	Close() error
}
