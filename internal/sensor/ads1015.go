package sensor

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

const (
	// DefaultADS1015Addr is the address with ADDR tied to GND.
	DefaultADS1015Addr = 0x48

	regConversion = 0x00
	regConfig     = 0x01

	cfgStart      = 0x8000 // OS: begin a single conversion / conversion done
	cfgMuxSingle0 = 0x4000 // AIN0 vs GND; add channel<<12 for AIN1..3
	cfgPGA4096    = 0x0200 // ±4.096 V full scale, 2 mV per count
	cfgSingleShot = 0x0100
	cfgRate1600   = 0x0080
	cfgCompOff    = 0x0003

	conversionPoll    = 200 * time.Microsecond
	conversionTimeout = 10 * time.Millisecond
)

// ADS1015 is a 12-bit I2C ADC read in single-shot mode.
type ADS1015 struct {
	dev   i2c.Dev
	sleep func(time.Duration)
}

// NewADS1015 binds the converter at addr on bus.
func NewADS1015(bus i2c.Bus, addr uint16) *ADS1015 {
	return &ADS1015{
		dev:   i2c.Dev{Bus: bus, Addr: addr},
		sleep: time.Sleep,
	}
}

// ReadRaw starts a conversion on channel (0-3), waits for it and returns the
// result scaled to 2.5 mV per count and clamped to MaxRaw.
func (a *ADS1015) ReadRaw(channel int) (uint16, error) {
	if channel < 0 || channel > 3 {
		return 0, fmt.Errorf("ads1015: channel %d out of range", channel)
	}

	cfg := uint16(cfgStart|cfgMuxSingle0|cfgPGA4096|cfgSingleShot|cfgRate1600|cfgCompOff) | uint16(channel)<<12
	if err := a.dev.Tx([]byte{regConfig, byte(cfg >> 8), byte(cfg)}, nil); err != nil {
		return 0, fmt.Errorf("ads1015: start conversion: %w", err)
	}

	status := make([]byte, 2)
	var waited time.Duration
	for {
		if err := a.dev.Tx([]byte{regConfig}, status); err != nil {
			return 0, fmt.Errorf("ads1015: read status: %w", err)
		}
		if status[0]&0x80 != 0 {
			break
		}
		if waited >= conversionTimeout {
			return 0, errors.New("ads1015: conversion timeout")
		}
		a.sleep(conversionPoll)
		waited += conversionPoll
	}

	read := make([]byte, 2)
	if err := a.dev.Tx([]byte{regConversion}, read); err != nil {
		return 0, fmt.Errorf("ads1015: read conversion: %w", err)
	}

	code := int16(uint16(read[0])<<8|uint16(read[1])) >> 4
	return scale(code), nil
}

// scale converts a 2 mV count to the 2.5 mV raw domain.
func scale(code int16) uint16 {
	if code <= 0 {
		return 0
	}
	v := uint32(code) * 4 / 5
	if v > MaxRaw {
		return MaxRaw
	}
	return uint16(v)
}

// Close does nothing; the bus is owned by the caller.
func (a *ADS1015) Close() error {
	return nil
}
