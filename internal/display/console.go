package display

import (
	"io"
	"strings"
)

// glyphRunes stands in for the custom characters on a terminal.
var glyphRunes = [GlyphSlots]rune{
	GlyphDegree: '°',
	GlyphBell:   '!',
	GlyphLock:   '#',
}

// Console is a Buffer that prints its contents to w whenever a redraw
// changes them. Used by the simulator.
type Console struct {
	*Buffer
	w    io.Writer
	last string
}

// NewConsole creates a console display writing frames to w.
func NewConsole(w io.Writer) *Console {
	return &Console{Buffer: NewBuffer(), w: w}
}

// Flush prints the frame if it differs from the last one printed.
func (c *Console) Flush() error {
	frame := c.frame()
	if frame == c.last {
		return nil
	}
	c.last = frame
	_, err := io.WriteString(c.w, frame)
	return err
}

func (c *Console) frame() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", Cols) + "+\n"
	sb.WriteString(border)
	for r := 0; r < Rows; r++ {
		sb.WriteByte('|')
		for _, ch := range []byte(c.Row(r)) {
			if ch < GlyphSlots {
				if g := glyphRunes[ch]; g != 0 {
					sb.WriteRune(g)
				} else {
					sb.WriteByte('?')
				}
				continue
			}
			sb.WriteByte(ch)
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
