// Package sensor provides raw temperature-sensor sampling with hardware abstraction.
//
// Samples are in the regulator's raw domain: 10-bit, 2.5 mV per count, which
// with an LM35-style 10 mV/°C sensor is 4 counts per degree.
package sensor

// Reader acquires raw samples.
type Reader interface {
	// ReadRaw blocks until a conversion on channel completes and returns it.
	ReadRaw(channel int) (uint16, error)

	// Close releases the peripheral.
	Close() error
}

// MaxRaw is the largest value in the raw domain.
const MaxRaw = 1023
