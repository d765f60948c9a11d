// Package config loads the optional startup file: GPIO wiring, I2C
// addresses and the power-on settings. Nothing is ever written back.
package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/sweeney/temp-regulator/internal/display"
	"github.com/sweeney/temp-regulator/internal/gpio"
	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/sensor"
	"github.com/sweeney/temp-regulator/internal/settings"
)

// File is the YAML document. Keys left out keep their Default values.
type File struct {
	GPIO     GPIO     `json:"gpio"`
	I2C      I2C      `json:"i2c"`
	Defaults Defaults `json:"defaults"`
}

// GPIO names the chip and the BCM line of every key and actuator.
type GPIO struct {
	Chip   string `json:"chip"`
	Next   int    `json:"next"`
	Select int    `json:"select"`
	Back   int    `json:"back"`
	Mode   int    `json:"mode"`
	Heat   int    `json:"heat"`
	Cool   int    `json:"cool"`
	Alarm  int    `json:"alarm"`
	Lock   int    `json:"lock"`
}

// I2C locates the display backpack and the ADC. An empty Bus opens the
// first bus the host registers.
type I2C struct {
	Bus        string `json:"bus"`
	LCDAddress uint16 `json:"lcdAddress"`
	ADCAddress uint16 `json:"adcAddress"`
	ADCChannel int    `json:"adcChannel"`
}

// Defaults are the power-on settings.
type Defaults struct {
	MaxTemp      int    `json:"maxTemp"`
	MinTemp      int    `json:"minTemp"`
	SetTemp      int    `json:"setTemp"`
	TempDiff     int    `json:"tempDiff"`
	OnTime       int    `json:"onTime"`
	OffTime      int    `json:"offTime"`
	AlarmDiff    int    `json:"alarmDiff"`
	AlarmHigh    int    `json:"alarmHigh"`
	AlarmLow     int    `json:"alarmLow"`
	AlarmEnabled bool   `json:"alarmEnabled"`
	LockEnabled  bool   `json:"lockEnabled"`
	Mode         string `json:"mode"`
}

// Default returns the built-in configuration.
func Default() File {
	pins := gpio.DefaultPins()
	s := settings.Defaults()
	v, a := s.Variables, s.Alarms
	return File{
		GPIO: GPIO{
			Chip:   "gpiochip0",
			Next:   pins.Next,
			Select: pins.Select,
			Back:   pins.Back,
			Mode:   pins.Mode,
			Heat:   pins.Heat,
			Cool:   pins.Cool,
			Alarm:  pins.Alarm,
			Lock:   pins.Lock,
		},
		I2C: I2C{
			LCDAddress: display.DefaultHD44780Addr,
			ADCAddress: sensor.DefaultADS1015Addr,
		},
		Defaults: Defaults{
			MaxTemp:      int(v[settings.MaxTemp]),
			MinTemp:      int(v[settings.MinTemp]),
			SetTemp:      int(v[settings.SetTemp]),
			TempDiff:     int(v[settings.TempDiff]),
			OnTime:       int(v[settings.OnTime]),
			OffTime:      int(v[settings.OffTime]),
			AlarmDiff:    int(a[settings.AlarmDiff]),
			AlarmHigh:    int(a[settings.AlarmHigh]),
			AlarmLow:     int(a[settings.AlarmLow]),
			AlarmEnabled: s.AlarmsEnabled(),
			LockEnabled:  s.LockEnabled(),
			Mode:         "heat",
		},
	}
}

// Load reads path over the built-in configuration. An empty path returns Default.
func Load(path string) (File, error) {
	f := Default()
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	if f.I2C.ADCChannel < 0 || f.I2C.ADCChannel > 3 {
		return f, fmt.Errorf("parse config %s: adcChannel %d out of range 0-3", path, f.I2C.ADCChannel)
	}
	return f, nil
}

// Pins returns the GPIO wiring.
func (f File) Pins() gpio.Pins {
	return gpio.Pins{
		Next:   f.GPIO.Next,
		Select: f.GPIO.Select,
		Back:   f.GPIO.Back,
		Mode:   f.GPIO.Mode,
		Heat:   f.GPIO.Heat,
		Cool:   f.GPIO.Cool,
		Alarm:  f.GPIO.Alarm,
		Lock:   f.GPIO.Lock,
	}
}

// Store builds the power-on settings. Values outside their ranges are
// clamped and adjusted is true; an unknown mode is an error.
func (f File) Store() (s settings.Store, adjusted bool, err error) {
	d := f.Defaults
	mode, err := logic.ParseMode(d.Mode)
	if err != nil {
		return s, false, fmt.Errorf("defaults: %w", err)
	}

	s = settings.Defaults()
	s.Mode = mode
	vals := []struct {
		dst *uint8
		v   int
	}{
		{&s.Variables[settings.MaxTemp], d.MaxTemp},
		{&s.Variables[settings.MinTemp], d.MinTemp},
		{&s.Variables[settings.SetTemp], d.SetTemp},
		{&s.Variables[settings.TempDiff], d.TempDiff},
		{&s.Variables[settings.OnTime], d.OnTime},
		{&s.Variables[settings.OffTime], d.OffTime},
		{&s.Alarms[settings.AlarmDiff], d.AlarmDiff},
		{&s.Alarms[settings.AlarmHigh], d.AlarmHigh},
		{&s.Alarms[settings.AlarmLow], d.AlarmLow},
	}
	for _, e := range vals {
		switch {
		case e.v < 0:
			*e.dst = 0
			adjusted = true
		case e.v > 255:
			*e.dst = 255
			adjusted = true
		default:
			*e.dst = uint8(e.v)
		}
	}
	if d.AlarmEnabled {
		s.Alarms[settings.AlarmEnabled] = 1
	}
	if d.LockEnabled {
		s.Alarms[settings.LockEnabled] = 1
	}

	if s.Normalize() {
		adjusted = true
	}
	return s, adjusted, nil
}
