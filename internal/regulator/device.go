// Package regulator is the event-dispatch core of the temperature regulator.
//
// Device owns every piece of mutable state and is driven by a single
// goroutine: the main loop calls Sample and Poll each iteration and Edge for
// each mode-button edge. The only value shared with the display goroutine is
// the Handshake; everything else reaches it as a status.Snapshot copy.
package regulator

import (
	"time"

	"github.com/sweeney/temp-regulator/internal/gpio"
	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/menu"
	"github.com/sweeney/temp-regulator/internal/settings"
	"github.com/sweeney/temp-regulator/internal/status"
)

// ReadyThreshold is how far the filter sum must move from the last committed
// sum before a new reading is committed: half of one count of the mean.
const ReadyThreshold = logic.FilterSize / 2

// DefaultDebounce is the mode-button debounce window.
const DefaultDebounce = 500 * time.Millisecond

// Device is the regulator's owned state. It is not safe for concurrent use.
type Device struct {
	store     settings.Store
	filter    logic.Filter
	engine    *logic.Engine
	machine   *menu.Machine
	handshake *Handshake

	committed bool
	lastSum   uint32
	avg       uint16

	debounce   time.Duration
	quietUntil time.Time
	debounced  int
}

// NewDevice creates a device in the Boot view with the given power-on settings.
func NewDevice(store settings.Store, debounce time.Duration, start time.Time) *Device {
	store.Normalize()
	d := &Device{
		store:     store,
		engine:    logic.NewEngine(start),
		handshake: &Handshake{},
		debounce:  debounce,
	}
	d.machine = menu.New(&d.store)
	return d
}

// Handshake returns the cell the display loop takes committed readings from.
func (d *Device) Handshake() *Handshake {
	return d.handshake
}

// Engine exposes the control engine for heartbeat and counters.
func (d *Device) Engine() *logic.Engine {
	return d.engine
}

// Sample pushes one raw reading through the filter. When the filtered sum has
// moved by more than ReadyThreshold since the last commit (or on the first
// sample, or when leaving the menu asked for it) the reading is committed:
// it is offered to the display loop and the engine is evaluated.
// committed reports whether that happened; events lists output transitions.
func (d *Device) Sample(raw uint16, now time.Time) (out logic.Outputs, events []logic.Event, committed bool) {
	d.filter.Push(raw)
	sum := d.filter.Sum()

	force := d.machine.TakeReevaluate()
	if d.committed && !force && absDiff(sum, d.lastSum) <= ReadyThreshold {
		return d.engine.Outputs(), nil, false
	}

	d.committed = true
	d.lastSum = sum
	d.avg = d.filter.Mean()
	d.handshake.Offer(d.avg)

	in := d.store.ControlInput(logic.Decode(d.avg).Celsius)
	in.Time = now
	out, events = d.engine.Process(in)
	return out, events, true
}

// Poll applies one sample of the level-sampled keys. At most one key is
// handled per call, in priority Next, Select, Back.
func (d *Device) Poll(b gpio.Buttons) bool {
	switch {
	case b.Next:
		return d.machine.Press(menu.ButtonNext)
	case b.Select:
		return d.machine.Press(menu.ButtonSelect)
	case b.Back:
		return d.machine.Press(menu.ButtonBack)
	}
	return false
}

// Edge handles a mode-button edge at time at. Edges inside the debounce
// window of the last accepted edge are ignored and accepted is false.
// A refused menu entry still counts as accepted and opens a window.
func (d *Device) Edge(at time.Time) (res menu.Result, accepted bool) {
	if at.Before(d.quietUntil) {
		d.debounced++
		return menu.Unchanged, false
	}
	d.quietUntil = at.Add(d.debounce)
	return d.machine.PressMode(d.engine.Locked()), true
}

// View returns the current navigation state.
func (d *Device) View() menu.View {
	return d.machine.View()
}

// Store returns a copy of the configuration.
func (d *Device) Store() settings.Store {
	return d.store
}

// State returns the snapshot published to the status tracker.
func (d *Device) State() status.State {
	return status.State{
		View:          d.machine.View(),
		Store:         d.store,
		Access:        d.machine.Access(),
		PasswordSet:   d.machine.PasswordSet(),
		PasswordInUse: d.machine.PasswordInUse(),
		Ready:         d.committed,
		Filtered:      d.avg,
		Temp:          logic.Decode(d.avg),
		Outputs:       d.engine.Outputs(),
		Counts:        d.engine.EventCountsSnapshot(),
		Debounced:     d.debounced,
	}
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
