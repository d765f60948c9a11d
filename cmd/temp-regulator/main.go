// Command temp-regulator samples a temperature sensor, drives heating and
// cooling outputs with hysteresis, raises alarms and runs the button menu on
// a 16x2 character display.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/sweeney/temp-regulator/internal/config"
	"github.com/sweeney/temp-regulator/internal/display"
	"github.com/sweeney/temp-regulator/internal/gpio"
	"github.com/sweeney/temp-regulator/internal/logic"
	"github.com/sweeney/temp-regulator/internal/menu"
	"github.com/sweeney/temp-regulator/internal/regulator"
	"github.com/sweeney/temp-regulator/internal/sensor"
	"github.com/sweeney/temp-regulator/internal/sim"
	"github.com/sweeney/temp-regulator/internal/status"
)

type options struct {
	poll       time.Duration
	tick       time.Duration
	debounce   time.Duration
	heartbeat  time.Duration
	configPath string
	sim        bool
	printState bool
}

func main() {
	var opts options
	flag.DurationVar(&opts.poll, "poll", 200*time.Millisecond, "Main loop interval (sensor sample and key poll)")
	flag.DurationVar(&opts.tick, "tick", 10*time.Millisecond, "Display refresh interval")
	flag.DurationVar(&opts.debounce, "debounce", regulator.DefaultDebounce, "Mode button debounce window")
	flag.DurationVar(&opts.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&opts.configPath, "config", "", "YAML file with wiring and power-on settings")
	flag.BoolVar(&opts.sim, "sim", false, "Run against a simulated plant, console display and stdin keypad")
	flag.BoolVar(&opts.printState, "print-state", false, "Read one sample, print state and exit")

	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// hardware groups the peripherals the main loop talks to.
type hardware struct {
	sensor  sensor.Reader
	channel int
	keys    gpio.ButtonReader
	edges   gpio.EdgeSource
	outputs gpio.Outputs
	display display.Display
	closers []func() error
}

// Close releases every peripheral in reverse order of opening.
func (h *hardware) Close() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func openSim() *hardware {
	plant := sim.NewPlant(sim.DefaultPlantParams(), time.Now)
	keypad := sim.NewKeypad(os.Stdin, time.Now)
	return &hardware{
		sensor:  plant,
		keys:    keypad,
		edges:   keypad,
		outputs: plant,
		display: display.NewConsole(os.Stdout),
		closers: []func() error{plant.Close, keypad.Close},
	}
}

func openHardware(cfg config.File) (*hardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	h := &hardware{channel: cfg.I2C.ADCChannel}

	bus, err := i2creg.Open(cfg.I2C.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.I2C.Bus, err)
	}
	h.closers = append(h.closers, bus.Close)

	adc := sensor.NewADS1015(bus, cfg.I2C.ADCAddress)
	h.sensor = adc
	h.closers = append(h.closers, adc.Close)

	lcd, err := display.NewHD44780(bus, cfg.I2C.LCDAddress)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("init display: %w", err)
	}
	h.display = lcd
	h.closers = append(h.closers, lcd.Close)

	panel, err := gpio.NewPanel(cfg.GPIO.Chip, cfg.Pins())
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("init gpio: %w", err)
	}
	h.keys, h.edges, h.outputs = panel, panel, panel
	h.closers = append(h.closers, panel.Close)

	return h, nil
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	store, adjusted, err := cfg.Store()
	if err != nil {
		return err
	}
	if adjusted {
		log.Printf("config: power-on settings out of range, clamped")
	}

	var hw *hardware
	if opts.sim {
		hw = openSim()
	} else {
		hw, err = openHardware(cfg)
		if err != nil {
			return err
		}
	}
	defer func() {
		if err := hw.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	start := time.Now()
	dev := regulator.NewDevice(store, opts.debounce, start)
	tracker := status.NewTracker(start, status.Config{
		PollMs:      opts.poll.Milliseconds(),
		TickMs:      opts.tick.Milliseconds(),
		DebounceMs:  opts.debounce.Milliseconds(),
		HeartbeatMs: opts.heartbeat.Milliseconds(),
		Sim:         opts.sim,
	})

	// Print state mode
	if opts.printState {
		raw, err := hw.sensor.ReadRaw(hw.channel)
		if err != nil {
			return fmt.Errorf("read sensor: %w", err)
		}
		dev.Sample(raw, start)
		tracker.Update(dev.State())
		fmt.Printf("%s\n", status.FormatJSON(tracker.Snapshot()))
		return nil
	}

	screen := regulator.NewScreen(display.NewRenderer(hw.display), tracker, dev.Handshake())
	redraw := make(chan struct{}, 1)
	done := make(chan struct{})
	displayTicker := time.NewTicker(opts.tick)
	defer displayTicker.Stop()
	stopped := make(chan struct{})
	go func() {
		screen.Run(displayTicker.C, redraw, done)
		close(stopped)
	}()
	defer func() {
		close(done)
		<-stopped
		if n := screen.Failures(); n > 0 {
			log.Printf("display: %d redraws failed", n)
		}
	}()

	log.Printf("started: poll=%v tick=%v debounce=%v heartbeat=%v sim=%v",
		opts.poll, opts.tick, opts.debounce, opts.heartbeat, opts.sim)

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(dev, hw, tracker, redraw, opts.heartbeat, time.Now, ticker.C, hw.edges.Edges(), sigCh)
}

// runLoop is the main loop. It alone mutates dev: sensor samples and key
// polls arrive on tick, mode-button edges on edges. Every change is published
// to tracker, and edges request an immediate redraw.
func runLoop(dev *regulator.Device, hw *hardware, tracker *status.Tracker, redraw chan<- struct{}, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, edges <-chan gpio.Edge, sig <-chan os.Signal) error {
	tracker.Update(dev.State())

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if err := hw.outputs.Set(logic.Outputs{}); err != nil {
				log.Printf("output write error: %v", err)
			}
			tracker.Update(dev.State())
			log.Printf("shutdown: %s", status.FormatEvent(tracker.Snapshot(), "SHUTDOWN"))
			return nil

		case e := <-edges:
			before := dev.View()
			res, accepted := dev.Edge(e.Time)
			if accepted {
				if res == menu.Refused {
					log.Printf("menu entry refused: actuator locked")
				}
				logTransition(before, dev.View())
				tracker.Update(dev.State())
			}
			// Redraw even when nothing changed; repainting is idempotent.
			requestRedraw(redraw)

		case <-tick:
			t := now()
			raw, err := hw.sensor.ReadRaw(hw.channel)
			if err != nil {
				log.Printf("sensor read error: %v", err)
				continue
			}

			out, events, committed := dev.Sample(raw, t)
			for _, ev := range events {
				log.Printf("event: %s (temp=%d set=%d)", ev.Type, ev.Temp, ev.SetTemp)
			}
			if committed {
				if err := hw.outputs.Set(out); err != nil {
					log.Printf("output write error: %v", err)
					// Don't crash on output failure
				}
			}

			keys, err := hw.keys.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}
			before := dev.View()
			if dev.Poll(keys) {
				logTransition(before, dev.View())
			}

			if hb := dev.Engine().CheckHeartbeat(t, heartbeat); hb != nil {
				tracker.Update(dev.State())
				log.Printf("heartbeat: uptime=%v %s", hb.Uptime, status.FormatEvent(tracker.Snapshot(), "HEARTBEAT"))
			}

			tracker.Update(dev.State())
		}
	}
}

// logTransition logs display-mode changes and password failures.
// The code itself is never logged.
func logTransition(before, after menu.View) {
	if v, ok := after.(menu.EnterPassword); ok && v.Failed {
		if b, ok := before.(menu.EnterPassword); !ok || !b.Failed {
			log.Printf("password rejected")
		}
	}
	if before.Mode() != after.Mode() {
		log.Printf("mode: %s -> %s", before.Mode(), after.Mode())
	}
}

func requestRedraw(redraw chan<- struct{}) {
	select {
	case redraw <- struct{}{}:
	default:
	}
}
