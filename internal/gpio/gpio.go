// Package gpio provides the regulator's digital I/O with hardware abstraction:
// three level-sampled buttons, the edge-triggered mode button and the four
// actuator lines. The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

import (
	"time"

	"github.com/sweeney/temp-regulator/internal/logic"
)

// Buttons is one sample of the level-sampled keys (true = pressed).
type Buttons struct {
	Next   bool
	Select bool
	Back   bool
}

// Edge is a falling edge on the mode line.
type Edge struct {
	Time time.Time
}

// ButtonReader samples the level-sampled keys.
type ButtonReader interface {
	// Read returns the logical key states.
	// The lines are active-low: raw 0 = pressed.
	Read() (Buttons, error)

	// Close releases GPIO resources.
	Close() error
}

// EdgeSource delivers mode-button edges.
type EdgeSource interface {
	// Edges returns the channel edges are delivered on. Edges that arrive
	// while the channel is full are dropped.
	Edges() <-chan Edge

	Close() error
}

// Outputs drives the actuator lines.
type Outputs interface {
	// Set drives Heat, Cool, Alarm and Lock to the given levels.
	Set(levels logic.Outputs) error

	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinNext   = 5
	DefaultPinSelect = 6
	DefaultPinBack   = 13
	DefaultPinMode   = 19
	DefaultPinHeat   = 17
	DefaultPinCool   = 27
	DefaultPinAlarm  = 22
	DefaultPinLock   = 23
)

// Pins maps each function to a line offset on the chip.
type Pins struct {
	Next, Select, Back, Mode int
	Heat, Cool, Alarm, Lock  int
}

// DefaultPins returns the standard wiring.
func DefaultPins() Pins {
	return Pins{
		Next:   DefaultPinNext,
		Select: DefaultPinSelect,
		Back:   DefaultPinBack,
		Mode:   DefaultPinMode,
		Heat:   DefaultPinHeat,
		Cool:   DefaultPinCool,
		Alarm:  DefaultPinAlarm,
		Lock:   DefaultPinLock,
	}
}

// edgeBuffer bounds the mode-edge channel.
const edgeBuffer = 4
