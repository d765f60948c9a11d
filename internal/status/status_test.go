package status

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/menu"
	"github.com/sweeney/temp-regulator/internal/settings"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{PollMs: 200, TickMs: 10, DebounceMs: 500}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.PollMs != 200 {
		t.Errorf("Config.PollMs: got %d, want 200", snap.Config.PollMs)
	}
	if snap.Ready {
		t.Error("expected Ready=false initially")
	}
	if _, ok := snap.View.(menu.Boot); !ok {
		t.Errorf("expected Boot view initially, got %T", snap.View)
	}
	if snap.Store != settings.Defaults() {
		t.Error("expected factory settings initially")
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.Update(State{
		View:     menu.Running{},
		Ready:    true,
		Filtered: 94,
		Temp:     logic.Temperature{Celsius: 23, Half: true},
		Outputs:  logic.Outputs{Heat: true, Lock: true},
		Counts:   logic.EventCounts{HeatOn: 3},
	})

	snap := tr.Snapshot()
	if _, ok := snap.View.(menu.Running); !ok {
		t.Errorf("View: got %T, want Running", snap.View)
	}
	if !snap.Ready {
		t.Error("expected Ready=true")
	}
	if snap.Temp.String() != "23.5" {
		t.Errorf("Temp: got %s, want 23.5", snap.Temp)
	}
	if !snap.Outputs.Heat || !snap.Outputs.Lock {
		t.Errorf("Outputs: got %+v", snap.Outputs)
	}
	if snap.Counts.HeatOn != 3 {
		t.Errorf("Counts.HeatOn: got %d, want 3", snap.Counts.HeatOn)
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{})

	before := time.Now()
	snap := tr.Snapshot()
	after := time.Now()

	if snap.Now.Before(before) || snap.Now.After(after) {
		t.Errorf("Now (%v) not between %v and %v", snap.Now, before, after)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	store := settings.Defaults()
	tr.Update(State{View: menu.Running{}, Store: store})

	snap1 := tr.Snapshot()

	store.Variables[settings.SetTemp] = 30
	tr.Update(State{View: menu.Categories{}, Store: store})

	// snap1 should still reflect old state
	if _, ok := snap1.View.(menu.Running); !ok {
		t.Error("snapshot should be a copy; View was modified")
	}
	if snap1.Store.Variables[settings.SetTemp] != 25 {
		t.Error("snapshot should be a copy; Store was modified")
	}
}

func testSnapshot() Snapshot {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := settings.Defaults()
	store.Password = settings.ParsePassword("4711")
	return Snapshot{
		State: State{
			View:          menu.Items{Category: menu.CategoryAlarms},
			Store:         store,
			PasswordSet:   true,
			PasswordInUse: true,
			Ready:         true,
			Filtered:      100,
			Temp:          logic.Temperature{Celsius: 25},
			Outputs:       logic.Outputs{Cool: true, Lock: true},
			Counts:        logic.EventCounts{CoolOn: 5, CoolOff: 2, AlarmOn: 1},
			Debounced:     4,
		},
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
		Config:    Config{PollMs: 200, TickMs: 10, DebounceMs: 500, HeartbeatMs: 900000},
	}
}

func TestFormatJSON(t *testing.T) {
	data := FormatJSON(testSnapshot())

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := parsed.Status
	if s.Display != "Menu" {
		t.Errorf("Display: got %q, want Menu", s.Display)
	}
	if s.ControlMode != "heating" {
		t.Errorf("ControlMode: got %q, want heating", s.ControlMode)
	}
	if s.Temperature != "25.0" {
		t.Errorf("Temperature: got %q, want 25.0", s.Temperature)
	}
	if !s.Outputs.Cool || !s.Outputs.Lock || s.Outputs.Heat {
		t.Errorf("Outputs: got %+v", s.Outputs)
	}
	if s.Variables["set_temp"] != 25 || s.Alarms["alarm_high"] != 45 {
		t.Errorf("tables: got %v %v", s.Variables, s.Alarms)
	}
	if s.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", s.UptimeSeconds)
	}
	if s.Counts.CoolOn != 5 || s.Counts.AlarmOn != 1 {
		t.Errorf("Counts: got %+v", s.Counts)
	}
	if s.DebouncedEdges != 4 {
		t.Errorf("DebouncedEdges: got %d, want 4", s.DebouncedEdges)
	}
	if s.Config.TickMs != 10 {
		t.Errorf("Config.TickMs: got %d, want 10", s.Config.TickMs)
	}
	if s.Event != "" {
		t.Errorf("expected empty Event, got %q", s.Event)
	}
}

func TestFormatJSONNeverContainsPassword(t *testing.T) {
	for _, data := range [][]byte{FormatJSON(testSnapshot()), FormatEvent(testSnapshot(), "HEARTBEAT")} {
		if strings.Contains(string(data), "4711") {
			t.Errorf("password leaked into status: %s", data)
		}
	}
}

func TestFormatJSONZeroSnapshot(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	var parsed StatusJSON
	if err := json.Unmarshal(FormatJSON(snap), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Display != "Boot" {
		t.Errorf("Display: got %q, want Boot", parsed.Status.Display)
	}
}

func TestFormatEvent(t *testing.T) {
	data := FormatEvent(testSnapshot(), "SHUTDOWN")

	if strings.Contains(string(data), "\n") {
		t.Error("event status should be a single line")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	status := raw["status"].(map[string]interface{})
	if status["event"] != "SHUTDOWN" {
		t.Errorf("event: got %v, want SHUTDOWN", status["event"])
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.Update(State{View: menu.Running{}, Counts: logic.EventCounts{HeatOn: i}})
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = snap.Uptime()
		}
	}()

	wg.Wait()
}
