package sensor

import (
	"errors"
	"sync"
)

// FakeReader is a test double that returns scripted raw samples.
type FakeReader struct {
	mu sync.Mutex

	// Samples are returned in order; the last one repeats once exhausted.
	Samples []uint16

	index int

	// Channels records the channel of every read.
	Channels []int

	// ReadError, if set, will be returned by ReadRaw.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples ...uint16) *FakeReader {
	return &FakeReader{Samples: samples}
}

// ReadRaw returns the next scripted sample.
func (f *FakeReader) ReadRaw(channel int) (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Channels = append(f.Channels, channel)
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}
