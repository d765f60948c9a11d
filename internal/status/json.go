package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/temp-regulator/internal/settings"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details. The password code is never included.
type StatusInner struct {
	Event          string           `json:"event,omitempty"`
	Display        string           `json:"display"`
	ControlMode    string           `json:"control_mode"`
	Ready          bool             `json:"ready"`
	Temperature    string           `json:"temperature"`
	Filtered       uint16           `json:"filtered_raw"`
	Outputs        OutputsJSON      `json:"outputs"`
	Access         bool             `json:"access"`
	PasswordSet    bool             `json:"password_set"`
	PasswordInUse  bool             `json:"password_in_use"`
	Variables      map[string]uint8 `json:"variables"`
	Alarms         map[string]uint8 `json:"alarms"`
	Counts         CountsJSON       `json:"event_counts"`
	DebouncedEdges int              `json:"debounced_edges"`
	UptimeSeconds  int64            `json:"uptime_seconds"`
	StartTime      string           `json:"start_time"`
	Timestamp      string           `json:"timestamp"`
	Config         ConfigJSON       `json:"config"`
}

// OutputsJSON reports the actuator line levels.
type OutputsJSON struct {
	Heat  bool `json:"heat"`
	Cool  bool `json:"cool"`
	Alarm bool `json:"alarm"`
	Lock  bool `json:"lock"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	HeatOn   int `json:"heat_on"`
	HeatOff  int `json:"heat_off"`
	CoolOn   int `json:"cool_on"`
	CoolOff  int `json:"cool_off"`
	AlarmOn  int `json:"alarm_on"`
	AlarmOff int `json:"alarm_off"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64 `json:"poll_ms"`
	TickMs      int64 `json:"tick_ms"`
	DebounceMs  int64 `json:"debounce_ms"`
	HeartbeatMs int64 `json:"heartbeat_ms"`
	Sim         bool  `json:"sim"`
}

func buildInner(snap Snapshot) StatusInner {
	display := "Boot"
	if snap.View != nil {
		display = snap.View.Mode().String()
	}

	vars := make(map[string]uint8, settings.VariableCount)
	for i, name := range settings.VariableNames {
		vars[name] = snap.Store.Variables[i]
	}
	alarms := make(map[string]uint8, settings.AlarmCount)
	for i, name := range settings.AlarmNames {
		alarms[name] = snap.Store.Alarms[i]
	}

	return StatusInner{
		Display:     display,
		ControlMode: snap.Store.Mode.String(),
		Ready:       snap.Ready,
		Temperature: snap.Temp.String(),
		Filtered:    snap.Filtered,
		Outputs: OutputsJSON{
			Heat:  snap.Outputs.Heat,
			Cool:  snap.Outputs.Cool,
			Alarm: snap.Outputs.Alarm,
			Lock:  snap.Outputs.Lock,
		},
		Access:        snap.Access,
		PasswordSet:   snap.PasswordSet,
		PasswordInUse: snap.PasswordInUse,
		Variables:     vars,
		Alarms:        alarms,
		Counts: CountsJSON{
			HeatOn:   snap.Counts.HeatOn,
			HeatOff:  snap.Counts.HeatOff,
			CoolOn:   snap.Counts.CoolOn,
			CoolOff:  snap.Counts.CoolOff,
			AlarmOn:  snap.Counts.AlarmOn,
			AlarmOff: snap.Counts.AlarmOff,
		},
		DebouncedEdges: snap.Debounced,
		UptimeSeconds:  int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:      snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:      snap.Now.UTC().Format(time.RFC3339),
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			TickMs:      snap.Config.TickMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Sim:         snap.Config.Sim,
		},
	}
}

// FormatJSON returns the indented JSON status printed by -print-state.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatEvent returns the single-line JSON status logged with a system event
// such as HEARTBEAT or SHUTDOWN.
func FormatEvent(snap Snapshot, event string) []byte {
	inner := buildInner(snap)
	inner.Event = event

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
