// Package health turns a network sample into a health state and the
// command the actuators should show for it.
package health

// State is the classified health of the wireless link.
type State int

const (
	// Unknown is the zero value, used for contradictory samples.
	Unknown State = iota
	Healthy
	DegradedNoGateway
	DegradedWeakSignal
	Offline
	// Reconfiguring is set by the poll loop while recovery runs; Classify never returns it.
	Reconfiguring
)

// States lists every State.
var States = []State{Unknown, Healthy, DegradedNoGateway, DegradedWeakSignal, Offline, Reconfiguring}

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Healthy:
		return "healthy"
	case DegradedNoGateway:
		return "degraded-no-gateway"
	case DegradedWeakSignal:
		return "degraded-weak-signal"
	case Offline:
		return "offline"
	case Reconfiguring:
		return "reconfiguring"
	default:
		return "invalid"
	}
}

// MarshalText lets a State appear by name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Degraded reports whether the state warrants attention but isn't offline.
func (s State) Degraded() bool {
	return s == DegradedNoGateway || s == DegradedWeakSignal
}
