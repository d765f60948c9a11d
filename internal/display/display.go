// Package display renders the regulator state on a 16x2 character display.
//
// The Display interface is the whole contract with the hardware driver.
// Buffer keeps an in-memory copy for tests and the console simulator;
// HD44780 drives a real panel through a PCF8574 I2C backpack.
package display

// Geometry of the panel.
const (
	Cols = 16
	Rows = 2
)

// GlyphSlots is the number of user-definable characters.
const GlyphSlots = 8

// Display is the character-display collaborator. Writes are fire-and-forget;
// drivers that can fail also implement Flusher.
type Display interface {
	Clear()
	MoveCursor(col, row int)
	WriteText(s string)
	WriteChar(c byte)
	DefineGlyph(slot int, bitmap [8]byte)
	WriteGlyph(slot int)
}

// Flusher is implemented by displays that buffer output or collect errors.
// Flush is called once at the end of every redraw.
type Flusher interface {
	Flush() error
}
