package display

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// DefaultHD44780Addr is the usual PCF8574 backpack address.
const DefaultHD44780Addr = 0x27

// PCF8574 port bits.
const (
	bitRS        = 0x01 // RW (0x02) stays low: the backpack is only written
	bitEN        = 0x04
	bitBacklight = 0x08
)

// HD44780 commands.
const (
	cmdClear       = 0x01
	cmdEntryMode   = 0x06 // increment, no shift
	cmdDisplayOff  = 0x08
	cmdDisplayOn   = 0x0C // display on, cursor off, blink off
	cmdFunction4x2 = 0x28 // 4-bit bus, 2 lines, 5x8 font
	cmdSetCGRAM    = 0x40
	cmdSetDDRAM    = 0x80
)

var rowOffsets = [Rows]byte{0x00, 0x40}

// HD44780 drives a character LCD through a PCF8574 I2C port expander in
// 4-bit mode. Write errors are kept and reported by the next Flush.
type HD44780 struct {
	dev       i2c.Dev
	backlight byte
	sleep     func(time.Duration)
	err       error
}

// NewHD44780 initializes the panel at addr on bus.
func NewHD44780(bus i2c.Bus, addr uint16) (*HD44780, error) {
	d := &HD44780{
		dev:       i2c.Dev{Bus: bus, Addr: addr},
		backlight: bitBacklight,
		sleep:     time.Sleep,
	}
	if err := d.init(); err != nil {
		return nil, fmt.Errorf("hd44780 init at 0x%02x: %w", addr, err)
	}
	return d, nil
}

func (d *HD44780) init() error {
	d.sleep(50 * time.Millisecond)

	// Reset sequence: three 8-bit function sets, then switch to 4-bit.
	d.nibble(0x30, 0)
	d.sleep(4500 * time.Microsecond)
	d.nibble(0x30, 0)
	d.sleep(150 * time.Microsecond)
	d.nibble(0x30, 0)
	d.nibble(0x20, 0)

	d.command(cmdFunction4x2)
	d.command(cmdDisplayOff)
	d.Clear()
	d.command(cmdEntryMode)
	d.command(cmdDisplayOn)
	return d.Flush()
}

// Clear blanks the panel and homes the cursor.
func (d *HD44780) Clear() {
	d.command(cmdClear)
	d.sleep(2 * time.Millisecond)
}

// MoveCursor sets the DDRAM address for (col, row).
func (d *HD44780) MoveCursor(col, row int) {
	row = clampInt(row, 0, Rows-1)
	col = clampInt(col, 0, Cols-1)
	d.command(cmdSetDDRAM | (rowOffsets[row] + byte(col)))
}

// WriteText writes s byte by byte.
func (d *HD44780) WriteText(s string) {
	for i := 0; i < len(s); i++ {
		d.data(s[i])
	}
}

// WriteChar writes one character.
func (d *HD44780) WriteChar(c byte) {
	d.data(c)
}

// DefineGlyph uploads a 5x8 bitmap into character RAM slot.
// The cursor must be repositioned afterwards.
func (d *HD44780) DefineGlyph(slot int, bitmap [8]byte) {
	d.command(cmdSetCGRAM | byte(slot&(GlyphSlots-1))<<3)
	for _, row := range bitmap {
		d.data(row & 0x1F)
	}
}

// WriteGlyph writes the custom character in slot.
func (d *HD44780) WriteGlyph(slot int) {
	d.data(byte(slot & (GlyphSlots - 1)))
}

// Flush returns and clears the first error since the last Flush.
func (d *HD44780) Flush() error {
	err := d.err
	d.err = nil
	return err
}

// Close blanks the panel and switches the backlight off.
func (d *HD44780) Close() error {
	d.Clear()
	d.backlight = 0
	d.tx(0)
	return d.Flush()
}

func (d *HD44780) command(c byte) {
	d.send(c, 0)
}

func (d *HD44780) data(c byte) {
	d.send(c, bitRS)
}

func (d *HD44780) send(b, mode byte) {
	d.nibble(b&0xF0, mode)
	d.nibble(b<<4, mode)
}

// nibble clocks the high four bits of v into the controller with one EN pulse.
func (d *HD44780) nibble(v, mode byte) {
	out := v&0xF0 | mode | d.backlight
	d.tx(out|bitEN, out)
}

func (d *HD44780) tx(w ...byte) {
	if d.err != nil {
		return
	}
	d.err = d.dev.Tx(w, nil)
}
