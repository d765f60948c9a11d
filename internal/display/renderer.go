package display

import (
	"strconv"

	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/menu"
	"github.com/sweeney/temp-regulator/internal/settings"
)

// Custom character slots.
const (
	GlyphDegree = 0
	GlyphBell   = 1
	GlyphLock   = 2
)

var glyphBitmaps = map[int][8]byte{
	GlyphDegree: {0x06, 0x09, 0x09, 0x06, 0x00, 0x00, 0x00, 0x00},
	GlyphBell:   {0x04, 0x0E, 0x0E, 0x0E, 0x1F, 0x00, 0x04, 0x00},
	GlyphLock:   {0x0E, 0x11, 0x11, 0x1F, 0x1B, 0x1B, 0x1F, 0x00},
}

// Frame is everything one redraw needs. It is a copy; the renderer never
// touches live device state.
type Frame struct {
	View        menu.View
	Store       settings.Store
	Temp        logic.Temperature
	Outputs     logic.Outputs
	PasswordSet bool
}

// Renderer draws frames onto a Display. Every call is a full redraw.
type Renderer struct {
	d      Display
	glyphs bool
}

// NewRenderer creates a renderer for d. Glyphs are uploaded on the first Render.
func NewRenderer(d Display) *Renderer {
	return &Renderer{d: d}
}

// Render clears the display and draws f.
func (r *Renderer) Render(f Frame) error {
	if !r.glyphs {
		for slot := GlyphDegree; slot <= GlyphLock; slot++ {
			r.d.DefineGlyph(slot, glyphBitmaps[slot])
		}
		r.glyphs = true
	}

	r.d.Clear()
	switch v := f.View.(type) {
	case menu.Boot:
		r.boot()
	case menu.Running:
		r.running(f)
	case menu.Categories:
		r.arrows()
		r.centered(v.Category.String(), 0)
	case menu.Items:
		r.arrows()
		r.items(v, &f.Store)
	case menu.SetPassword:
		title := "Set password"
		if f.PasswordSet {
			title = "Password saved"
		}
		r.centered(title, 0)
		r.digits(f.Store.Password, v.Slot, v.Editing)
	case menu.EnterPassword:
		if v.Failed {
			r.centered("Incorrect", 0)
			r.centered("password", 1)
			break
		}
		r.centered("Enter password", 0)
		r.digits(v.Entry, v.Slot, v.Editing)
	}

	if fl, ok := r.d.(Flusher); ok {
		return fl.Flush()
	}
	return nil
}

func (r *Renderer) boot() {
	r.d.MoveCursor(3, 0)
	r.d.WriteText("Welcome to")
	r.d.MoveCursor(1, 1)
	r.d.WriteText("temp. control")
}

func (r *Renderer) running(f Frame) {
	r.d.MoveCursor(0, 0)
	r.d.WriteText("Temp: " + f.Temp.String())
	r.d.WriteGlyph(GlyphDegree)
	r.d.WriteChar('C')
	if f.Outputs.Alarm {
		r.d.MoveCursor(Cols-2, 0)
		r.d.WriteGlyph(GlyphBell)
	}
	if f.Outputs.Lock {
		r.d.MoveCursor(Cols-1, 0)
		r.d.WriteGlyph(GlyphLock)
	}
	r.d.MoveCursor(0, 1)
	r.d.WriteText("Mode: " + f.Store.Mode.String())
}

func (r *Renderer) arrows() {
	r.d.MoveCursor(0, 0)
	r.d.WriteChar('<')
	r.d.MoveCursor(Cols-1, 0)
	r.d.WriteChar('>')
}

func (r *Renderer) items(v menu.Items, s *settings.Store) {
	var label, value string
	switch v.Category {
	case menu.CategoryVariables:
		label = settings.VariableNames[v.Index]
		value = strconv.Itoa(int(s.Variables[v.Index]))
	case menu.CategoryModes:
		label = v.Category.String()
		value = logic.Mode(v.Index).String()
	case menu.CategoryAlarms:
		label = settings.AlarmNames[v.Index]
		switch v.Index {
		case settings.AlarmEnabled, settings.LockEnabled:
			value = onOff(s.Alarms[v.Index] != 0)
		default:
			value = strconv.Itoa(int(s.Alarms[v.Index]))
		}
	}

	r.centered(label, 0)
	if v.Editing {
		r.d.MoveCursor((Cols-1-len(value))/2, 1)
		r.d.WriteText("<" + value + ">")
		return
	}
	r.centered(value, 1)
}

// digits draws the code as four 3-column cells followed by the OK cell.
func (r *Renderer) digits(code settings.Password, slot uint8, editing bool) {
	r.d.MoveCursor(0, 1)
	for i, c := range code {
		left, right := byte(' '), byte(' ')
		if uint8(i) == slot {
			left, right = '[', ']'
			if editing {
				left, right = '<', '>'
			}
		}
		r.d.WriteChar(left)
		r.d.WriteChar(c)
		r.d.WriteChar(right)
	}
	if slot == menu.OKSlot {
		r.d.WriteText("[OK]")
	} else {
		r.d.WriteText(" OK ")
	}
}

func (r *Renderer) centered(s string, row int) {
	col := (Cols - len(s)) / 2
	if col < 0 {
		col = 0
	}
	r.d.MoveCursor(col, row)
	r.d.WriteText(s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
