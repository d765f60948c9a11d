// Package logic contains the pure control core of the temperature regulator:
// the sampling filter, the temperature decoder and the control/alarm engine.
// This package has NO external dependencies (no GPIO, I2C, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how the actuators are driven around the set point.
type Mode uint8

const (
	ModeHeat Mode = iota
	ModeCool
	ModeBalance
)

// ModeCount is the number of selectable control modes.
const ModeCount = 3

func (m Mode) String() string {
	switch m {
	case ModeHeat:
		return "heating"
	case ModeCool:
		return "cooling"
	case ModeBalance:
		return "balance"
	default:
		return "unknown"
	}
}

// ParseMode accepts the short ("heat") and display ("heating") names.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heat", "heating":
		return ModeHeat, nil
	case "cool", "cooling":
		return ModeCool, nil
	case "balance":
		return ModeBalance, nil
	}
	return ModeHeat, fmt.Errorf("unknown control mode %q", s)
}

// Temperature is a decoded reading with half-degree resolution.
type Temperature struct {
	Celsius uint8
	Half    bool
}

func (t Temperature) String() string {
	if t.Half {
		return fmt.Sprintf("%d.5", t.Celsius)
	}
	return fmt.Sprintf("%d.0", t.Celsius)
}

// Outputs are the actuator line levels produced by one evaluation.
// At most one of Heat and Cool is ever true.
type Outputs struct {
	Heat  bool
	Cool  bool
	Alarm bool
	Lock  bool // an actuator is engaged; may block menu entry
}

// Input is one evaluation request for the control and alarm engine.
type Input struct {
	Temp         uint8 // whole degrees Celsius
	SetTemp      uint8
	TempDiff     uint8 // hysteresis half-width
	Mode         Mode
	AlarmDiff    uint8
	AlarmHigh    uint8
	AlarmLow     uint8
	AlarmEnabled bool
	Time         time.Time
}

// EventType represents an actuator transition.
type EventType string

const (
	EventHeatOn   EventType = "HEAT_ON"
	EventHeatOff  EventType = "HEAT_OFF"
	EventCoolOn   EventType = "COOL_ON"
	EventCoolOff  EventType = "COOL_OFF"
	EventAlarmOn  EventType = "ALARM_ON"
	EventAlarmOff EventType = "ALARM_OFF"
)

// Event represents an output transition observed by the engine.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Temp      uint8
	SetTemp   uint8
	Outputs   Outputs
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	HeatOn   int
	HeatOff  int
	CoolOn   int
	CoolOff  int
	AlarmOn  int
	AlarmOff int
}

// HeartbeatData contains information for a heartbeat log line.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
