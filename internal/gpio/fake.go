package gpio

import (
	"errors"
	"sync"

	"github.com/sweeney/temp-regulator/internal/logic"
)

// FakeButtons is a test double that returns scripted key states.
type FakeButtons struct {
	// Samples contains scripted key states to return.
	// Each call to Read() consumes the next sample.
	Samples []Buttons

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeButtons creates a FakeButtons with the given samples.
func NewFakeButtons(samples []Buttons) *FakeButtons {
	return &FakeButtons{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeButtons) Read() (Buttons, error) {
	if f.ReadError != nil {
		return Buttons{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Buttons{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeButtons) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeEdges is an EdgeSource fed by the test.
type FakeEdges struct {
	ch     chan Edge
	Closed bool
}

// NewFakeEdges creates a FakeEdges with a bounded channel.
func NewFakeEdges() *FakeEdges {
	return &FakeEdges{ch: make(chan Edge, edgeBuffer)}
}

// Edges returns the delivery channel.
func (f *FakeEdges) Edges() <-chan Edge {
	return f.ch
}

// Fire delivers e, dropping it if the channel is full.
// It reports whether the edge was queued.
func (f *FakeEdges) Fire(e Edge) bool {
	select {
	case f.ch <- e:
		return true
	default:
		return false
	}
}

// Close marks the source as closed.
func (f *FakeEdges) Close() error {
	f.Closed = true
	return nil
}

// FakeOutputs records every level set. Safe for concurrent use.
type FakeOutputs struct {
	mu      sync.Mutex
	history []logic.Outputs

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeOutputs creates an empty FakeOutputs.
func NewFakeOutputs() *FakeOutputs {
	return &FakeOutputs{}
}

// Set records levels.
func (f *FakeOutputs) Set(levels logic.Outputs) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.mu.Lock()
	f.history = append(f.history, levels)
	f.mu.Unlock()
	return nil
}

// Last returns the most recent levels, or all-low if none were set.
func (f *FakeOutputs) Last() logic.Outputs {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.history) == 0 {
		return logic.Outputs{}
	}
	return f.history[len(f.history)-1]
}

// History returns a copy of every recorded level set.
func (f *FakeOutputs) History() []logic.Outputs {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]logic.Outputs(nil), f.history...)
}

// Close marks the outputs as closed.
func (f *FakeOutputs) Close() error {
	f.Closed = true
	return nil
}
