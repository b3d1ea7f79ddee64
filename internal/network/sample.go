// Package network samples the host's wireless state through external tools.
package network

import (
	"fmt"
	"time"
)

// NoSignalDBM stands in for an absent signal reading.
const NoSignalDBM = -100

// OfflineSSID is the placeholder shown when there is no association.
// An SSID equal to it is never treated as connected.
const OfflineSSID = "Offline"

// Fact names one of the sampled values.
type Fact string

const (
	FactWireless Fact = "wireless"
	FactAddress  Fact = "address"
	FactGateway  Fact = "gateway"
)

// Facts lists every Fact in query order.
var Facts = []Fact{FactWireless, FactAddress, FactGateway}

// Sample is one point-in-time snapshot. It is built fresh each cycle and
// not modified after Sample returns it.
type Sample struct {
	Timestamp time.Time
	SSID      *string
	SignalDBM *int
	IP        *string
	Gateway   *string
	Connected bool

	// Faults records which fact queries failed and why. A failed query
	// leaves its facts nil; classification never reads this.
	Faults map[Fact]error
}

// SignalOrSentinel returns the signal in dBm, or NoSignalDBM when unknown.
func (s Sample) SignalOrSentinel() int {
	if s.SignalDBM == nil {
		return NoSignalDBM
	}
	return *s.SignalDBM
}

// SSIDOr returns the SSID, or def when there is none.
func (s Sample) SSIDOr(def string) string {
	return StringOr(s.SSID, def)
}

// IPOr returns the IP address, or def when there is none.
func (s Sample) IPOr(def string) string {
	return StringOr(s.IP, def)
}

// GatewayOr returns the gateway, or def when there is none.
func (s Sample) GatewayOr(def string) string {
	return StringOr(s.Gateway, def)
}

// HasGateway reports whether a non-empty gateway was found.
func (s Sample) HasGateway() bool {
	return s.Gateway != nil && *s.Gateway != ""
}

// String renders the sample on one line for logs.
func (s Sample) String() string {
	signal := "?"
	if s.SignalDBM != nil {
		signal = fmt.Sprintf("%ddBm", *s.SignalDBM)
	}
	return fmt.Sprintf("ssid=%s signal=%s ip=%s gw=%s connected=%t",
		s.SSIDOr("-"), signal, s.IPOr("-"), s.GatewayOr("-"), s.Connected)
}

// StringOr dereferences p, or returns def when p is nil.
func StringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
