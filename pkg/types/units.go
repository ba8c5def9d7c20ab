package types

import "fmt"

// Joules is a float64 wrapper representing an amount of energy.
type Joules float64

// Humanized returns a human-readable string with automatic unit (J, kJ, MJ, GJ).
func (j Joules) Humanized() string {
	v := float64(j)
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GJ", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MJ", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f kJ", v/1e3)
	default:
		return fmt.Sprintf("%.2f J", v)
	}
}

// WattHours returns the energy expressed in watt-hours.
func (j Joules) WattHours() float64 { return float64(j) / 3600 }

// KiloJoules returns the energy expressed in kilojoules.
func (j Joules) KiloJoules() float64 { return float64(j) / 1e3 }

// Watts is a float64 wrapper representing a power draw.
type Watts float64

// Humanized returns a human-readable string with automatic unit (mW, W, kW).
func (w Watts) Humanized() string {
	v := float64(w)
	switch {
	case v >= 1e3:
		return fmt.Sprintf("%.2f kW", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.3f W", v)
	default:
		return fmt.Sprintf("%.1f mW", v*1e3)
	}
}
