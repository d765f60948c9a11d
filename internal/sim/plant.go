// Package sim provides hardware-free stand-ins for the regulator's
// peripherals: a thermal plant that answers sensor reads and reacts to the
// actuator lines, and a keypad driven by a text stream.
package sim

import (
	"math"
	"sync"
	"time"

	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/sensor"
)

// CountsPerDegree is the raw sensor resolution: 10 mV/°C at 2.5 mV per count.
const CountsPerDegree = 4

// PlantParams tunes the first-order thermal model. Rates are in °C per second.
type PlantParams struct {
	Ambient  float64
	HeatRate float64
	CoolRate float64
	// Leak is the fraction of the difference to ambient lost per second.
	Leak float64
}

// DefaultPlantParams is a small, fast-reacting enclosure.
func DefaultPlantParams() PlantParams {
	return PlantParams{
		Ambient:  20,
		HeatRate: 0.5,
		CoolRate: 0.5,
		Leak:     0.01,
	}
}

// Plant is a simulated enclosure. It implements sensor.Reader and gpio.Outputs.
// It is safe for concurrent use.
type Plant struct {
	mu      sync.Mutex
	params  PlantParams
	temp    float64
	outputs logic.Outputs
	last    time.Time
	now     func() time.Time
	closed  bool
}

// NewPlant creates a plant at the ambient temperature.
func NewPlant(params PlantParams, now func() time.Time) *Plant {
	return &Plant{
		params: params,
		temp:   params.Ambient,
		last:   now(),
		now:    now,
	}
}

// advance integrates the model up to the current time. Caller holds mu.
func (p *Plant) advance() {
	t := p.now()
	dt := t.Sub(p.last).Seconds()
	p.last = t
	if dt <= 0 {
		return
	}

	rate := p.params.Leak * (p.params.Ambient - p.temp)
	if p.outputs.Heat {
		rate += p.params.HeatRate
	}
	if p.outputs.Cool {
		rate -= p.params.CoolRate
	}
	p.temp += rate * dt
}

// ReadRaw returns the current temperature as a raw sample. The channel is ignored.
func (p *Plant) ReadRaw(channel int) (uint16, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	raw := math.Round(p.temp * CountsPerDegree)
	switch {
	case raw < 0:
		return 0, nil
	case raw > sensor.MaxRaw:
		return sensor.MaxRaw, nil
	}
	return uint16(raw), nil
}

// Set applies new actuator levels from now on.
func (p *Plant) Set(levels logic.Outputs) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()
	p.outputs = levels
	return nil
}

// Temp returns the modelled temperature in °C.
func (p *Plant) Temp() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()
	return p.temp
}

// SetTemp forces the modelled temperature.
func (p *Plant) SetTemp(celsius float64) {
	p.mu.Lock()
	p.advance()
	p.temp = celsius
	p.mu.Unlock()
}

// Outputs returns the levels last applied with Set.
func (p *Plant) Outputs() logic.Outputs {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outputs
}

// Close switches every actuator off.
func (p *Plant) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()
	p.outputs = logic.Outputs{}
	p.closed = true
	return nil
}
