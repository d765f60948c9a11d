// Package settings holds the editable configuration of the regulator:
// the variable table, the alarm table, the control mode and the password code.
//
// Every edit goes through a total clamp function, so any sequence of
// increments and decrements leaves the tables inside their ranges with the
// cross-field invariants intact.
package settings

import "github.com/sweeney/temp-regulator/internal/logic"

// Variable table slots.
const (
	MaxTemp = iota
	MinTemp
	SetTemp
	TempDiff
	OnTime
	OffTime
	VariableCount
)

// Alarm table slots.
const (
	AlarmDiff = iota
	AlarmHigh
	AlarmLow
	AlarmEnabled
	LockEnabled
	AlarmCount
)

// Range limits.
const (
	TempCeiling    = 99
	TempDiffMax    = 30
	TimeMax        = 250
	AlarmDiffMin   = 1
	AlarmDiffMax   = 50
	passwordLength = 4
)

// VariableNames are the labels shown in the Variables menu.
var VariableNames = [VariableCount]string{"max_temp", "min_temp", "set_temp", "temp_diff", "on_time", "off_time"}

// AlarmNames are the labels shown in the Alarms menu.
var AlarmNames = [AlarmCount]string{"alarm_diff", "alarm_high", "alarm_low", "alarm_usage", "lock_usage"}

// Store is the complete editable configuration. It is a value type;
// copies are independent snapshots.
type Store struct {
	Variables [VariableCount]uint8
	Alarms    [AlarmCount]uint8
	Mode      logic.Mode
	Password  Password
}

// Defaults returns the power-on configuration.
func Defaults() Store {
	return Store{
		Variables: [VariableCount]uint8{
			MaxTemp:  40,
			MinTemp:  10,
			SetTemp:  25,
			TempDiff: 2,
		},
		Alarms: [AlarmCount]uint8{
			AlarmDiff: 5,
			AlarmHigh: 45,
			AlarmLow:  5,
		},
		Mode:     logic.ModeHeat,
		Password: DefaultPassword,
	}
}

// AlarmsEnabled reports whether the alarm output is in use.
func (s *Store) AlarmsEnabled() bool {
	return s.Alarms[AlarmEnabled] != 0
}

// LockEnabled reports whether an engaged actuator blocks menu entry.
func (s *Store) LockEnabled() bool {
	return s.Alarms[LockEnabled] != 0
}

// ControlInput builds an engine input from the configuration and a reading.
func (s *Store) ControlInput(temp uint8) logic.Input {
	return logic.Input{
		Temp:         temp,
		SetTemp:      s.Variables[SetTemp],
		TempDiff:     s.Variables[TempDiff],
		Mode:         s.Mode,
		AlarmDiff:    s.Alarms[AlarmDiff],
		AlarmHigh:    s.Alarms[AlarmHigh],
		AlarmLow:     s.Alarms[AlarmLow],
		AlarmEnabled: s.AlarmsEnabled(),
	}
}

// IncrementVariable steps slot i up, wrapping inside its range.
// Out-of-range slots are ignored.
func (s *Store) IncrementVariable(i int) {
	v := &s.Variables
	switch i {
	case MaxTemp:
		v[MaxTemp] = stepUpper(v[MaxTemp], v[MinTemp], true)
	case MinTemp:
		v[MinTemp] = stepLower(v[MinTemp], v[MaxTemp], true)
	case SetTemp:
		v[SetTemp] = wrapUp(v[SetTemp], v[MinTemp], v[MaxTemp])
	case TempDiff:
		v[TempDiff] = wrapUp(v[TempDiff], 0, TempDiffMax)
	case OnTime, OffTime:
		v[i] = wrapUp(v[i], 0, TimeMax)
	default:
		return
	}
	s.clampSetTemp()
}

// DecrementVariable steps slot i down, wrapping inside its range.
func (s *Store) DecrementVariable(i int) {
	v := &s.Variables
	switch i {
	case MaxTemp:
		v[MaxTemp] = stepUpper(v[MaxTemp], v[MinTemp], false)
	case MinTemp:
		v[MinTemp] = stepLower(v[MinTemp], v[MaxTemp], false)
	case SetTemp:
		v[SetTemp] = wrapDown(v[SetTemp], v[MinTemp], v[MaxTemp])
	case TempDiff:
		v[TempDiff] = wrapDown(v[TempDiff], 0, TempDiffMax)
	case OnTime, OffTime:
		v[i] = wrapDown(v[i], 0, TimeMax)
	default:
		return
	}
	s.clampSetTemp()
}

// IncrementAlarm steps alarm slot i up; usage flags toggle.
func (s *Store) IncrementAlarm(i int) {
	a := &s.Alarms
	switch i {
	case AlarmDiff:
		a[AlarmDiff] = wrapUp(a[AlarmDiff], AlarmDiffMin, AlarmDiffMax)
	case AlarmHigh:
		a[AlarmHigh] = stepUpper(a[AlarmHigh], a[AlarmLow], true)
	case AlarmLow:
		a[AlarmLow] = stepLower(a[AlarmLow], a[AlarmHigh], true)
	case AlarmEnabled, LockEnabled:
		a[i] = toggle(a[i])
	}
}

// DecrementAlarm steps alarm slot i down; usage flags toggle.
func (s *Store) DecrementAlarm(i int) {
	a := &s.Alarms
	switch i {
	case AlarmDiff:
		a[AlarmDiff] = wrapDown(a[AlarmDiff], AlarmDiffMin, AlarmDiffMax)
	case AlarmHigh:
		a[AlarmHigh] = stepUpper(a[AlarmHigh], a[AlarmLow], false)
	case AlarmLow:
		a[AlarmLow] = stepLower(a[AlarmLow], a[AlarmHigh], false)
	case AlarmEnabled, LockEnabled:
		a[i] = toggle(a[i])
	}
}

// Normalize forces every field back into range. It is used for values that
// did not come through the edit functions, such as file-supplied defaults.
// It reports whether anything had to change.
func (s *Store) Normalize() bool {
	before := *s
	v := &s.Variables
	a := &s.Alarms

	v[MaxTemp] = clamp(v[MaxTemp], 0, TempCeiling)
	v[MinTemp] = clamp(v[MinTemp], 0, v[MaxTemp])
	v[TempDiff] = clamp(v[TempDiff], 0, TempDiffMax)
	v[OnTime] = clamp(v[OnTime], 0, TimeMax)
	v[OffTime] = clamp(v[OffTime], 0, TimeMax)
	s.clampSetTemp()

	a[AlarmDiff] = clamp(a[AlarmDiff], AlarmDiffMin, AlarmDiffMax)
	a[AlarmHigh] = clamp(a[AlarmHigh], 0, TempCeiling)
	a[AlarmLow] = clamp(a[AlarmLow], 0, a[AlarmHigh])
	a[AlarmEnabled] = clamp(a[AlarmEnabled], 0, 1)
	a[LockEnabled] = clamp(a[LockEnabled], 0, 1)

	if s.Mode >= logic.ModeCount {
		s.Mode = logic.ModeHeat
	}
	return *s != before
}

func (s *Store) clampSetTemp() {
	v := &s.Variables
	v[SetTemp] = clamp(v[SetTemp], v[MinTemp], v[MaxTemp])
}

// stepUpper moves the upper half of a coupled pair (max_temp, alarm_high).
// Past the ceiling it wraps to just above lower; below lower it wraps to the ceiling.
func stepUpper(v, lower uint8, up bool) uint8 {
	if up {
		if v >= TempCeiling {
			return clamp(lower+1, lower, TempCeiling)
		}
		return v + 1
	}
	if v <= lower {
		return TempCeiling
	}
	return v - 1
}

// stepLower moves the lower half of a coupled pair (min_temp, alarm_low).
// Past upper it wraps to 0; below 0 it wraps to upper.
func stepLower(v, upper uint8, up bool) uint8 {
	if up {
		if v >= upper {
			return 0
		}
		return v + 1
	}
	if v == 0 {
		return upper
	}
	return v - 1
}

func wrapUp(v, lo, hi uint8) uint8 {
	if v >= hi || v < lo {
		return lo
	}
	return v + 1
}

func wrapDown(v, lo, hi uint8) uint8 {
	if v <= lo || v > hi {
		return hi
	}
	return v - 1
}

func clamp(v, lo, hi uint8) uint8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toggle(v uint8) uint8 {
	if v != 0 {
		return 0
	}
	return 1
}
