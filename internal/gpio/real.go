//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/temp-regulator/internal/logic"
)

const consumer = "temp-regulator"

// Panel drives the regulator's keys and actuator lines on a Linux GPIO chip.
// It implements ButtonReader, EdgeSource and Outputs.
type Panel struct {
	chip    *gpiocdev.Chip
	buttons *gpiocdev.Lines
	mode    *gpiocdev.Line
	outputs *gpiocdev.Lines
	edges   chan Edge
}

// NewPanel requests every line on the named chip (e.g. "gpiochip0").
func NewPanel(chipName string, pins Pins) (*Panel, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	p := &Panel{chip: chip, edges: make(chan Edge, edgeBuffer)}

	// Keys short to ground: pull-up, raw 0 = pressed.
	p.buttons, err = chip.RequestLines([]int{pins.Next, pins.Select, pins.Back},
		gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("request key pins %d/%d/%d: %w", pins.Next, pins.Select, pins.Back, err)
	}

	p.mode, err = chip.RequestLine(pins.Mode,
		gpiocdev.AsInput, gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge, gpiocdev.WithEventHandler(p.handleEdge))
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("request mode pin %d: %w", pins.Mode, err)
	}

	p.outputs, err = chip.RequestLines([]int{pins.Heat, pins.Cool, pins.Alarm, pins.Lock},
		gpiocdev.AsOutput(0, 0, 0, 0))
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("request output pins %d/%d/%d/%d: %w", pins.Heat, pins.Cool, pins.Alarm, pins.Lock, err)
	}

	return p, nil
}

// handleEdge runs on the gpiocdev event goroutine.
func (p *Panel) handleEdge(evt gpiocdev.LineEvent) {
	if evt.Type != gpiocdev.LineEventFallingEdge {
		return
	}
	select {
	case p.edges <- Edge{Time: time.Now()}:
	default:
	}
}

// Read returns the logical key states.
func (p *Panel) Read() (Buttons, error) {
	raw := make([]int, 3)
	if err := p.buttons.Values(raw); err != nil {
		return Buttons{}, fmt.Errorf("read key pins: %w", err)
	}
	return Buttons{
		Next:   raw[0] == 0,
		Select: raw[1] == 0,
		Back:   raw[2] == 0,
	}, nil
}

// Edges returns the mode-button edge channel.
func (p *Panel) Edges() <-chan Edge {
	return p.edges
}

// Set drives the actuator lines.
func (p *Panel) Set(levels logic.Outputs) error {
	values := []int{level(levels.Heat), level(levels.Cool), level(levels.Alarm), level(levels.Lock)}
	if err := p.outputs.SetValues(values); err != nil {
		return fmt.Errorf("set output pins: %w", err)
	}
	return nil
}

func level(on bool) int {
	if on {
		return 1
	}
	return 0
}

// Close drives every output low, then releases all lines.
// Inputs are returned to plain pulled-up inputs before release.
func (p *Panel) Close() error {
	var errs []error

	if p.outputs != nil {
		if err := p.outputs.SetValues([]int{0, 0, 0, 0}); err != nil {
			errs = append(errs, fmt.Errorf("drive outputs low: %w", err))
		}
		if err := p.outputs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close output pins: %w", err))
		}
	}
	if p.mode != nil {
		if err := p.mode.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mode pin: %w", err))
		}
	}
	if p.buttons != nil {
		if err := p.buttons.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close key pins: %w", err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
