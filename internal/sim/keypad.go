package sim

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/sweeney/temp-regulator/internal/gpio"
)

// Keypad turns a text stream into key presses. Each character of a line is
// one press: 'n' Next, 's' Select, 'b' Back, 'm' the mode button. Other
// characters are ignored.
//
// Level-sampled keys are queued and each Read returns at most one press,
// so a key is seen as held for exactly one poll.
type Keypad struct {
	mu      sync.Mutex
	pending []gpio.Buttons
	edges   chan gpio.Edge
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewKeypad starts reading r in the background until EOF or Close.
func NewKeypad(r io.Reader, now func() time.Time) *Keypad {
	k := &Keypad{
		edges: make(chan gpio.Edge, 4),
		now:   now,
		done:  make(chan struct{}),
	}
	go k.scan(r)
	return k
}

func (k *Keypad) scan(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		for _, c := range sc.Bytes() {
			if !k.key(c) {
				return
			}
		}
	}
}

// key handles one character and reports whether scanning should continue.
func (k *Keypad) key(c byte) bool {
	select {
	case <-k.done:
		return false
	default:
	}

	var b gpio.Buttons
	switch c {
	case 'n':
		b.Next = true
	case 's':
		b.Select = true
	case 'b':
		b.Back = true
	case 'm':
		select {
		case k.edges <- gpio.Edge{Time: k.now()}:
		default:
		}
		return true
	default:
		return true
	}

	k.mu.Lock()
	k.pending = append(k.pending, b)
	k.mu.Unlock()
	return true
}

// Read returns the next queued press, or no keys held.
func (k *Keypad) Read() (gpio.Buttons, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.pending) == 0 {
		return gpio.Buttons{}, nil
	}
	b := k.pending[0]
	k.pending = k.pending[1:]
	return b, nil
}

// Edges returns the mode-button edge channel.
func (k *Keypad) Edges() <-chan gpio.Edge {
	return k.edges
}

// Close stops handling input. The reader itself is not closed.
func (k *Keypad) Close() error {
	k.once.Do(func() { close(k.done) })
	return nil
}
