// Package parsers extracts wireless facts from the text output of Linux
// networking tools. Parsers never fail: a missing match yields nil.
package parsers

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// WirelessInfo is what a link query reports.
type WirelessInfo struct {
	SSID      *string
	SignalDBM *int
}

var (
	// iwconfig: wlan0  IEEE 802.11  ESSID:"HomeNet"
	iwconfigESSID = regexp.MustCompile(`ESSID:"([^"]*)"`)
	// iwconfig: Link Quality=70/70  Signal level=-40 dBm
	iwconfigSignal = regexp.MustCompile(`Signal level[=:]\s*(-?\d+)\s*dBm`)
	// iw dev wlan0 link: \tsignal: -45 dBm
	iwSignal = regexp.MustCompile(`^signal:\s*(-?\d+)\s*dBm`)
)

// ParseWireless understands both `iwconfig <iface>` and `iw dev <iface> link`.
// An unassociated interface (ESSID:off/any, "Not connected.") has no SSID.
func ParseWireless(out string) WirelessInfo {
	var info WirelessInfo

	if m := iwconfigESSID.FindStringSubmatch(out); len(m) > 1 {
		if m[1] != "" {
			ssid := m[1]
			info.SSID = &ssid
		}
	}
	if m := iwconfigSignal.FindStringSubmatch(out); len(m) > 1 {
		info.SignalDBM = parseDBM(m[1])
	}
	if info.SSID != nil || info.SignalDBM != nil {
		return info
	}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "Not connected"):
			return WirelessInfo{}
		case strings.HasPrefix(line, "SSID:"):
			if ssid := strings.TrimSpace(strings.TrimPrefix(line, "SSID:")); ssid != "" {
				info.SSID = &ssid
			}
		default:
			if m := iwSignal.FindStringSubmatch(line); len(m) > 1 {
				info.SignalDBM = parseDBM(m[1])
			}
		}
	}

	return info
}

// parseDBM accepts only plausible readings. Some drivers report a 0..100
// quality scale in the same field, which is not dBm.
func parseDBM(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil || v > 0 || v < -120 {
		return nil
	}
	return &v
}
