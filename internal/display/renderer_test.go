package display

import (
	"strings"
	"testing"

	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/menu"
	"github.com/sweeney/temp-regulator/internal/settings"
)

func render(t *testing.T, f Frame) *Buffer {
	t.Helper()
	b := NewBuffer()
	if err := NewRenderer(b).Render(f); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return b
}

func frame(v menu.View) Frame {
	return Frame{View: v, Store: settings.Defaults()}
}

func TestRenderBoot(t *testing.T) {
	b := render(t, frame(menu.Boot{}))
	if got := b.Row(0); got != "   Welcome to   " {
		t.Errorf("row 0: %q", got)
	}
	if got := b.Row(1); got != " temp. control  " {
		t.Errorf("row 1: %q", got)
	}
}

func TestRenderRunning(t *testing.T) {
	f := frame(menu.Running{})
	f.Temp = logic.Temperature{Celsius: 23, Half: true}
	f.Store.Mode = logic.ModeCool
	b := render(t, f)

	want := "Temp: 23.5\x00C"
	if got := b.Text(0); got != want {
		t.Errorf("row 0: got %q, want %q", got, want)
	}
	if got := b.Text(1); got != "Mode: cooling" {
		t.Errorf("row 1: %q", got)
	}
}

func TestRenderRunningIndicators(t *testing.T) {
	f := frame(menu.Running{})
	f.Outputs = logic.Outputs{Heat: true, Alarm: true, Lock: true}
	b := render(t, f)

	row := b.Row(0)
	if row[Cols-2] != GlyphBell {
		t.Errorf("expected bell at column 14, got %q", row[Cols-2])
	}
	if row[Cols-1] != GlyphLock {
		t.Errorf("expected padlock at column 15, got %q", row[Cols-1])
	}

	f.Outputs = logic.Outputs{}
	row = render(t, f).Row(0)
	if row[Cols-2] != ' ' || row[Cols-1] != ' ' {
		t.Errorf("no indicators expected, got %q", row)
	}
}

func TestRenderGlyphsUploadedOnce(t *testing.T) {
	b := NewBuffer()
	r := NewRenderer(b)
	r.Render(frame(menu.Boot{}))

	if b.Glyph(GlyphDegree) != glyphBitmaps[GlyphDegree] {
		t.Error("degree glyph not uploaded")
	}

	b.DefineGlyph(GlyphDegree, [8]byte{})
	r.Render(frame(menu.Running{}))
	if b.Glyph(GlyphDegree) != ([8]byte{}) {
		t.Error("glyphs should only be uploaded on the first render")
	}
	if b.Clears() != 2 {
		t.Errorf("expected a full redraw per render, got %d clears", b.Clears())
	}
}

func TestRenderCategories(t *testing.T) {
	b := render(t, frame(menu.Categories{Category: menu.CategoryAlarms}))
	if got := b.Row(0); got != "<    Alarms    >" {
		t.Errorf("row 0: %q", got)
	}
}

func TestRenderItems(t *testing.T) {
	tests := []struct {
		name string
		view menu.Items
		row0 string
		row1 string
	}{
		{"variable", menu.Items{Category: menu.CategoryVariables, Index: settings.SetTemp}, "set_temp", "25"},
		{"editing", menu.Items{Category: menu.CategoryVariables, Index: settings.MaxTemp, Editing: true}, "max_temp", "<40>"},
		{"alarm value", menu.Items{Category: menu.CategoryAlarms, Index: settings.AlarmHigh}, "alarm_high", "45"},
		{"alarm flag", menu.Items{Category: menu.CategoryAlarms, Index: settings.AlarmEnabled}, "alarm_usage", "off"},
		{"mode", menu.Items{Category: menu.CategoryModes, Index: uint8(logic.ModeBalance)}, "Modes", "balance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := render(t, frame(tt.view))
			if got := strings.Trim(b.Row(0), " <>"); got != tt.row0 {
				t.Errorf("row 0: got %q, want %q", got, tt.row0)
			}
			if got := strings.TrimSpace(b.Row(1)); got != tt.row1 {
				t.Errorf("row 1: got %q, want %q", got, tt.row1)
			}
			if b.Row(0)[0] != '<' || b.Row(0)[Cols-1] != '>' {
				t.Errorf("missing navigation arrows: %q", b.Row(0))
			}
		})
	}
}

func TestRenderSetPassword(t *testing.T) {
	f := frame(menu.SetPassword{Slot: 1, Editing: true})
	f.Store.Password = settings.ParsePassword("1234")
	b := render(t, f)

	if got := strings.TrimSpace(b.Row(0)); got != "Set password" {
		t.Errorf("row 0: %q", got)
	}
	if got := b.Row(1); got != " 1 <2> 3  4  OK " {
		t.Errorf("row 1: %q", got)
	}

	f = frame(menu.SetPassword{Slot: menu.OKSlot})
	f.PasswordSet = true
	b = render(t, f)
	if got := strings.TrimSpace(b.Row(0)); got != "Password saved" {
		t.Errorf("row 0: %q", got)
	}
	if got := b.Row(1); got != " 0  0  0  0 [OK]" {
		t.Errorf("row 1: %q", got)
	}
}

func TestRenderEnterPassword(t *testing.T) {
	b := render(t, frame(menu.EnterPassword{Entry: settings.ParsePassword("0900"), Slot: 1}))
	if got := strings.TrimSpace(b.Row(0)); got != "Enter password" {
		t.Errorf("row 0: %q", got)
	}
	if got := b.Row(1); got != " 0 [9] 0  0  OK " {
		t.Errorf("row 1: %q", got)
	}
}

func TestRenderPasswordFailure(t *testing.T) {
	b := render(t, frame(menu.EnterPassword{Entry: settings.DefaultPassword, Failed: true}))
	if got := strings.TrimSpace(b.Row(0)); got != "Incorrect" {
		t.Errorf("row 0: %q", got)
	}
	if got := strings.TrimSpace(b.Row(1)); got != "password" {
		t.Errorf("row 1: %q", got)
	}
}
