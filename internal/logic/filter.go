package logic

// FilterSize is the number of raw samples averaged by Filter.
const FilterSize = 32

// filterShift divides the running sum by FilterSize.
const filterShift = 5

// Filter is a moving average over the last FilterSize raw samples.
// sum always equals the sum of buf; it is updated in O(1) per push and
// never recomputed from the buffer. The zero value starts from an all-zero window.
type Filter struct {
	buf  [FilterSize]uint16
	sum  uint32
	next int // slot holding the oldest sample
}

// Push inserts sample, evicts the oldest one and returns the unscaled mean.
func (f *Filter) Push(sample uint16) uint16 {
	f.sum -= uint32(f.buf[f.next])
	f.sum += uint32(sample)
	f.buf[f.next] = sample
	f.next = (f.next + 1) % FilterSize
	return f.Mean()
}

// Mean returns the current average without pushing.
func (f *Filter) Mean() uint16 {
	return uint16(f.sum >> filterShift)
}

// Sum returns the running sum of the window.
func (f *Filter) Sum() uint32 {
	return f.sum
}
