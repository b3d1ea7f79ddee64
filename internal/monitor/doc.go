// Package monitor implements the live terminal view behind 'wifimon watch'.
//
// The view samples the link on its own schedule with the same sampler and
// classifier the daemon uses, but never touches the LEDs, the display, or
// the supplicant. It is safe to run next to a live daemon.
//
// # Architecture
//
//	Collector - samples and classifies, carrying the no-gateway counter between calls
//	History   - ring buffer of signal readings for the sparkline
//	Model     - Bubble Tea model: tick, collect, render
//
// # Keys
//
//	q / Ctrl+C  quit
//	r           sample now
//	p           toggle the display preview
//	?           toggle help
package monitor
