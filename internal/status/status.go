// Package status provides a thread-safe status tracker for the temp-regulator daemon.
// The main loop publishes into it; the display loop and heartbeat read from it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/menu"
	"github.com/sweeney/temp-regulator/internal/settings"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	TickMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	Sim         bool
}

// State is the device state the main loop publishes after every iteration.
type State struct {
	View          menu.View
	Store         settings.Store
	Access        bool
	PasswordSet   bool
	PasswordInUse bool
	Ready         bool // at least one reading has been committed
	Filtered      uint16
	Temp          logic.Temperature
	Outputs       logic.Outputs
	Counts        logic.EventCounts
	Debounced     int // mode edges ignored inside the debounce window
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and stays valid after the lock is released.
type Snapshot struct {
	State
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
// The view starts at Boot with the factory settings.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State: State{
				View:  menu.Boot{},
				Store: settings.Defaults(),
			},
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update replaces the published device state.
// Called from runLoop on every iteration and after every mode edge.
func (t *Tracker) Update(s State) {
	t.mu.Lock()
	t.snap.State = s
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
