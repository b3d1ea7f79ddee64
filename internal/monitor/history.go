package monitor

import "sync"

// DefaultHistorySize is the number of signal readings kept for the sparkline.
const DefaultHistorySize = 60

// History is a fixed-size ring buffer of signal readings in dBm.
type History struct {
	mu    sync.RWMutex
	data  []float64
	head  int
	count int
}

// NewHistory creates a history holding up to size readings.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{data: make([]float64, size)}
}

// Push records a reading, overwriting the oldest when full.
func (h *History) Push(dbm float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.data[h.head] = dbm
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Last returns up to n of the most recent readings, oldest first.
func (h *History) Last(n int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || h.count == 0 {
		return nil
	}
	n = min(n, h.count)

	out := make([]float64, n)
	start := (h.head - n + len(h.data)) % len(h.data)
	for i := range out {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// Len returns how many readings are held.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
