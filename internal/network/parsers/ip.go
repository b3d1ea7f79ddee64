package parsers

import (
	"bufio"
	"net/netip"
	"strings"
)

// ParseAddress returns the first IPv4 address in the output of
// `hostname -I` or `ip -4 -o addr show <iface>`. Loopback is skipped.
func ParseAddress(out string) *string {
	fields := strings.Fields(out)

	// ip addr output: the address follows the "inet" keyword, with a prefix length.
	for i, f := range fields {
		if f == "inet" && i+1 < len(fields) {
			if addr, ok := ipv4(strings.SplitN(fields[i+1], "/", 2)[0]); ok {
				return &addr
			}
		}
	}

	// hostname -I output: bare addresses, IPv6 mixed in.
	for _, f := range fields {
		if addr, ok := ipv4(f); ok {
			return &addr
		}
	}

	return nil
}

// ParseDefaultRoute returns the gateway of the default route in
// `ip route show default` output. A route on iface wins over others.
// A default route with no "via" (point-to-point) has no gateway.
func ParseDefaultRoute(out, iface string) *string {
	var fallback *string

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "default" {
			continue
		}

		via, dev := "", ""
		for i := 1; i+1 < len(fields); i++ {
			switch fields[i] {
			case "via":
				via = fields[i+1]
			case "dev":
				dev = fields[i+1]
			}
		}

		addr, ok := ipv4(via)
		if !ok {
			continue
		}
		if iface != "" && dev == iface {
			return &addr
		}
		if fallback == nil {
			fallback = &addr
		}
	}

	return fallback
}

func ipv4(s string) (string, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() || addr.IsLoopback() {
		return "", false
	}
	return addr.String(), true
}
