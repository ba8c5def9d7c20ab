// Package source provides time-ordered state-transition streams for feeding
// the energy integrator (see pkg/energy).
//
// Overview
//
//   - Source interface:
//     Next() (Transition, error)
//     Close() error
//
//     Next returns the next transition in non-decreasing time order and io.EOF
//     once the stream is exhausted. The caller decides when the stream has
//     ended and supplies the finalize timestamp to the integrator itself;
//     sources carry no explicit end-of-stream marker beyond io.EOF.
//
//   - Backends:
//
//   - CSV replay: reads a "time_s,state" log (the cleaned characterization
//     format). Strict: malformed rows and out-of-order timestamps are errors,
//     not skips, so a corrupt log fails fast instead of corrupting totals.
//
//   - Schedule: generates the device's cyclic firing pattern — fixed offsets
//     inside a repeating period with the state cycling through a ring — up to
//     a virtual-time horizon. Deterministic; useful for simulation runs and
//     tests.
//
//   - MQTT: subscribes to live telemetry (JSON {"state":N,"time_s":T}) via
//     eclipse/paho and delivers it through the same interface. Messages that
//     fail to decode are logged and dropped; bad telemetry must not stop the
//     accountant.
//
// Ordering
//
// Sources deliver transitions in non-decreasing time order where they can
// enforce it (CSV, schedule). The integrator still guards monotonicity on its
// own, so a misbehaving live source degrades to rejected events rather than
// corrupted totals.
//
// If transitions are replayed from several logs at once, merge them into one
// globally time-ordered stream before handing them to the integrator; the
// integrator has a single-writer contract.
package source
