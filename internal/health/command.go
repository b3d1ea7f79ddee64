package health

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/wifimon/internal/actuator"
	"github.com/rileyhilliard/wifimon/internal/network"
)

// TimeLayout formats the clock line, e.g. "Mar-09-24 02:05 PM".
const TimeLayout = "Jan-02-06 03:04 PM"

// Display placeholders.
const (
	notAvailable = "NA"
	noGateway    = "none"
	unknownText  = "Status unknown"
	reconfigText = "Reconfiguring..."
	failedText   = "Cycle failed"
)

// CommandFor returns what the actuators show for state. Every State,
// including values outside the declared set, maps to exactly one Command.
func CommandFor(state State, sample network.Sample, now time.Time, heartbeat bool) actuator.Command {
	clock := now.Format(TimeLayout)
	signal := sample.SignalOrSentinel()
	ssidLine := fmt.Sprintf("%s %ddBm", sample.SSIDOr(network.OfflineSSID), signal)

	var cmd actuator.Command
	switch state {
	case Healthy, DegradedWeakSignal:
		cmd = actuator.Command{
			LED:   actuator.LEDGreen,
			Lines: []string{clock, "IP: " + sample.IPOr(notAvailable), "GW: " + sample.GatewayOr(notAvailable), ssidLine},
			Bars:  Bars(signal),
		}
		if state == DegradedWeakSignal {
			cmd.LED = actuator.LEDYellow
			cmd.Alert = true
		}
	case DegradedNoGateway:
		cmd = actuator.Command{
			LED:   actuator.LEDYellow,
			Lines: []string{clock, "IP: " + sample.IPOr(notAvailable), "GW: " + noGateway, ssidLine},
			Bars:  Bars(signal),
			Alert: true,
		}
	case Offline:
		cmd = actuator.Command{
			LED:   actuator.LEDRed,
			Lines: []string{clock, "IP: " + notAvailable, "GW: " + notAvailable, "SSID: " + network.OfflineSSID},
			Alert: true,
		}
	case Reconfiguring:
		cmd = actuator.Command{
			LED:   actuator.LEDYellowBlink,
			Lines: []string{clock, reconfigText, sample.SSIDOr(network.OfflineSSID)},
			Bars:  Bars(signal),
		}
	default:
		cmd = actuator.Command{
			LED:   actuator.LEDRed,
			Lines: []string{clock, unknownText},
			Alert: true,
		}
	}

	cmd.Heartbeat = heartbeat
	return cmd
}

// FailureCommand is shown after a cycle fails unexpectedly.
func FailureCommand(now time.Time) actuator.Command {
	return actuator.Command{
		LED:   actuator.LEDRed,
		Lines: []string{now.Format(TimeLayout), failedText},
		Alert: true,
	}
}
