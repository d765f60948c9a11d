//go:build !linux

package gpio

import (
	"errors"

	"github.com/sweeney/temp-regulator/internal/logic"
)

// Panel is not available on non-Linux platforms.
type Panel struct{}

// NewPanel returns an error on non-Linux platforms.
func NewPanel(chipName string, pins Pins) (*Panel, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (p *Panel) Read() (Buttons, error) {
	return Buttons{}, errors.New("gpio: not supported")
}

// Edges returns a nil channel, which never delivers.
func (p *Panel) Edges() <-chan Edge {
	return nil
}

// Set is not implemented on non-Linux platforms.
func (p *Panel) Set(levels logic.Outputs) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (p *Panel) Close() error {
	return nil
}
