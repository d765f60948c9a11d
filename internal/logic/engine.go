package logic

import "time"

// Engine runs Evaluate on every committed reading and reports output transitions.
type Engine struct {
	outputs       Outputs
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewEngine creates an engine whose outputs start all low.
// The startTime is used for calculating uptime in heartbeat data.
func NewEngine(startTime time.Time) *Engine {
	return &Engine{
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process evaluates input and returns the new outputs plus the events for
// every line that changed level. Events are ordered heat, cool, alarm.
func (e *Engine) Process(input Input) (Outputs, []Event) {
	prev := e.outputs
	next := Evaluate(input)
	e.outputs = next

	var events []Event
	emit := func(t EventType) {
		events = append(events, Event{
			Timestamp: input.Time,
			Type:      t,
			Temp:      input.Temp,
			SetTemp:   input.SetTemp,
			Outputs:   next,
		})
	}

	if t := transition(prev.Heat, next.Heat, EventHeatOn, EventHeatOff); t != nil {
		emit(*t)
	}
	if t := transition(prev.Cool, next.Cool, EventCoolOn, EventCoolOff); t != nil {
		emit(*t)
	}
	if t := transition(prev.Alarm, next.Alarm, EventAlarmOn, EventAlarmOff); t != nil {
		emit(*t)
	}

	for _, ev := range events {
		switch ev.Type {
		case EventHeatOn:
			e.eventCounts.HeatOn++
		case EventHeatOff:
			e.eventCounts.HeatOff++
		case EventCoolOn:
			e.eventCounts.CoolOn++
		case EventCoolOff:
			e.eventCounts.CoolOff++
		case EventAlarmOn:
			e.eventCounts.AlarmOn++
		case EventAlarmOff:
			e.eventCounts.AlarmOff++
		}
	}

	return next, events
}

func transition(from, to bool, on, off EventType) *EventType {
	if from == to {
		return nil
	}
	event := off
	if to {
		event = on
	}
	return &event
}

// Outputs returns the levels from the last evaluation.
func (e *Engine) Outputs() Outputs {
	return e.outputs
}

// Locked reports whether an actuator is currently engaged.
func (e *Engine) Locked() bool {
	return e.outputs.Lock
}

// EventCountsSnapshot returns a copy of the event counters.
func (e *Engine) EventCountsSnapshot() EventCounts {
	return e.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (e *Engine) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(e.lastHeartbeat) < interval {
		return nil
	}

	e.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(e.startTime),
		Counts:    e.eventCounts,
	}
}
