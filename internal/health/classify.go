package health

import (
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/network"
)

// DefaultWeakSignalDBM is the strict-mode threshold.
const DefaultWeakSignalDBM = -80

// Classifier maps samples to states.
type Classifier struct {
	// StrictSignal reports DegradedWeakSignal instead of Healthy when the
	// signal is below WeakSignalDBM. A missing reading counts as weak.
	StrictSignal  bool
	WeakSignalDBM int

	// Log, when set, receives state transitions.
	Log logger.Logger
}

// Classify applies the default Classifier (strict signal off).
func Classify(sample network.Sample, prior State, noGatewayTicks int) (State, int) {
	return Classifier{WeakSignalDBM: DefaultWeakSignalDBM}.Classify(sample, prior, noGatewayTicks)
}

// Classify returns the state for sample and the updated count of
// consecutive no-gateway cycles. The first matching rule wins. prior only
// affects logging.
func (c Classifier) Classify(sample network.Sample, prior State, noGatewayTicks int) (State, int) {
	state, ticks := c.classify(sample, noGatewayTicks)
	if c.Log != nil && state != prior {
		c.Log.Info("health %s -> %s (%s)", prior, state, sample)
	}
	return state, ticks
}

func (c Classifier) classify(sample network.Sample, noGatewayTicks int) (State, int) {
	switch {
	case sample.Timestamp.IsZero(), sample.Connected && sample.SSID == nil:
		return Unknown, 0
	case !sample.Connected, *sample.SSID == network.OfflineSSID:
		return Offline, 0
	case sample.HasGateway():
		if c.StrictSignal && sample.SignalOrSentinel() < c.WeakSignalDBM {
			return DegradedWeakSignal, 0
		}
		return Healthy, 0
	default:
		return DegradedNoGateway, noGatewayTicks + 1
	}
}

// Bars maps a signal level to 0..4 bars.
func Bars(dbm int) int {
	switch {
	case dbm > -50:
		return 4
	case dbm > -60:
		return 3
	case dbm > -70:
		return 2
	case dbm > -80:
		return 1
	default:
		return 0
	}
}
