package display

import (
	"strings"
	"sync"
)

// Buffer is an in-memory 16x2 display. Glyph cells hold the slot number
// (0-7), the same way the panel's character RAM is addressed.
// It is safe for concurrent use.
type Buffer struct {
	mu     sync.Mutex
	cells  [Rows][Cols]byte
	col    int
	row    int
	glyphs [GlyphSlots][8]byte
	clears int
}

// NewBuffer returns a blank buffer.
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.blank()
	return b
}

func (b *Buffer) blank() {
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = ' '
		}
	}
	b.col, b.row = 0, 0
}

// Clear blanks every cell and homes the cursor.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.blank()
	b.clears++
	b.mu.Unlock()
}

// MoveCursor positions the cursor. Out-of-range positions are clamped.
func (b *Buffer) MoveCursor(col, row int) {
	b.mu.Lock()
	b.col = clampInt(col, 0, Cols)
	b.row = clampInt(row, 0, Rows-1)
	b.mu.Unlock()
}

// WriteText writes s at the cursor. Characters past the last column are dropped.
func (b *Buffer) WriteText(s string) {
	b.mu.Lock()
	for i := 0; i < len(s); i++ {
		b.put(s[i])
	}
	b.mu.Unlock()
}

// WriteChar writes one character at the cursor.
func (b *Buffer) WriteChar(c byte) {
	b.mu.Lock()
	b.put(c)
	b.mu.Unlock()
}

// DefineGlyph stores a 5x8 bitmap in slot.
func (b *Buffer) DefineGlyph(slot int, bitmap [8]byte) {
	b.mu.Lock()
	b.glyphs[slot&(GlyphSlots-1)] = bitmap
	b.mu.Unlock()
}

// WriteGlyph writes the custom character in slot at the cursor.
func (b *Buffer) WriteGlyph(slot int) {
	b.mu.Lock()
	b.put(byte(slot & (GlyphSlots - 1)))
	b.mu.Unlock()
}

func (b *Buffer) put(c byte) {
	if b.col < Cols {
		b.cells[b.row][b.col] = c
	}
	b.col++
}

// Row returns the raw contents of row r. Glyph cells appear as bytes 0-7.
func (b *Buffer) Row(r int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.cells[r][:])
}

// Text returns row r with trailing blanks removed.
func (b *Buffer) Text(r int) string {
	return strings.TrimRight(b.Row(r), " ")
}

// Glyph returns the bitmap stored in slot.
func (b *Buffer) Glyph(slot int) [8]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.glyphs[slot&(GlyphSlots-1)]
}

// Clears returns how many times Clear has been called.
func (b *Buffer) Clears() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clears
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
