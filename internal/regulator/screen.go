package regulator

import (
	"sync/atomic"
	"time"

	"github.com/sweeney/temp-regulator/internal/display"
	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/status"
)

// Screen is the tick side of the dispatcher. On every tick it redraws the
// display from the latest status snapshot, then takes a pending reading from
// the handshake into the displayed temperature. It never blocks and never logs.
type Screen struct {
	renderer  *display.Renderer
	tracker   *status.Tracker
	handshake *Handshake

	temp     logic.Temperature
	failures atomic.Int64
}

// NewScreen creates a screen drawing tracker state through r.
func NewScreen(r *display.Renderer, tracker *status.Tracker, h *Handshake) *Screen {
	return &Screen{renderer: r, tracker: tracker, handshake: h}
}

// Tick performs one periodic redraw and commits a pending reading.
func (s *Screen) Tick() {
	s.Redraw()
	if avg, ok := s.handshake.Take(); ok {
		s.temp = logic.Decode(avg)
	}
}

// Redraw repaints the current state without touching the handshake.
func (s *Screen) Redraw() {
	snap := s.tracker.Snapshot()
	err := s.renderer.Render(display.Frame{
		View:        snap.View,
		Store:       snap.Store,
		Temp:        s.temp,
		Outputs:     snap.Outputs,
		PasswordSet: snap.PasswordSet,
	})
	if err != nil {
		s.failures.Add(1)
	}
}

// Temp returns the displayed temperature. Only the goroutine running the
// screen may call it.
func (s *Screen) Temp() logic.Temperature {
	return s.temp
}

// Failures returns how many redraws reported a display error.
func (s *Screen) Failures() int64 {
	return s.failures.Load()
}

// Run ticks on tick and repaints immediately on redraw until done is closed.
func (s *Screen) Run(tick <-chan time.Time, redraw <-chan struct{}, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-tick:
			s.Tick()
		case <-redraw:
			s.Redraw()
		}
	}
}
