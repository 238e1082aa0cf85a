package framerate

// HistorySnapshot summarises the samples currently held by a History.
type HistorySnapshot struct {
	Count int
	Min   int
	Max   int
	Mean  float64
	Last  int
}

// History keeps the most recent rate samples in a fixed-size ring.
// The zero value holds nothing; use NewHistory.
type History struct {
	buf  []int
	next int
	full bool
}

// NewHistory returns a ring holding up to size samples (minimum 1).
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{buf: make([]int, size)}
}

// Add records a sample, overwriting the oldest once the ring is full.
func (h *History) Add(s RateSample) {
	if h == nil || len(h.buf) == 0 {
		return
	}
	h.buf[h.next] = s.FramesPerSecond
	h.next++
	if h.next == len(h.buf) {
		h.next = 0
		h.full = true
	}
}

// Len returns how many samples are held.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	if h.full {
		return len(h.buf)
	}
	return h.next
}

// Reset drops every held sample.
func (h *History) Reset() {
	if h == nil {
		return
	}
	h.next = 0
	h.full = false
}

// Snapshot computes min, max, mean and last over the held samples.
func (h *History) Snapshot() HistorySnapshot {
	n := h.Len()
	if n == 0 {
		return HistorySnapshot{}
	}
	last := h.next - 1
	if last < 0 {
		last = len(h.buf) - 1
	}
	snap := HistorySnapshot{Count: n, Min: h.buf[0], Max: h.buf[0], Last: h.buf[last]}
	sum := 0
	for i := 0; i < n; i++ {
		v := h.buf[i]
		sum += v
		if v < snap.Min {
			snap.Min = v
		}
		if v > snap.Max {
			snap.Max = v
		}
	}
	snap.Mean = float64(sum) / float64(n)
	return snap
}
