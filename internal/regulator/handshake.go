package regulator

import "sync/atomic"

const readyBit = 1 << 16

// Handshake passes the latest committed filter average from the main loop to
// the display loop. Reading and flag share one atomic word, so the reader
// never sees a flag without its value or a half-written value.
type Handshake struct {
	cell atomic.Uint32
}

// Offer publishes avg and raises the ready flag, replacing any value the
// reader has not taken yet.
func (h *Handshake) Offer(avg uint16) {
	h.cell.Store(readyBit | uint32(avg))
}

// Take returns the pending value and clears the flag.
func (h *Handshake) Take() (uint16, bool) {
	v := h.cell.Swap(0)
	if v&readyBit == 0 {
		return 0, false
	}
	return uint16(v), true
}
