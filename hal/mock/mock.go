// Package mock provides in-memory implementations of the hal
// capabilities. They record everything the bench does to them so tests
// can run the whole harness without a board attached.
package mock

import (
	"bytes"
	"sync"
	"time"

	"github.com/OuranosAPOPHIS/Servo-Motor-Test/hal"
)

// LEDBank records the on/off state of the four LEDs.
type LEDBank struct {
	mu    sync.Mutex
	state [4]bool
}

func (b *LEDBank) Set(led hal.LED, on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if led == hal.LEDAll {
		for i := range b.state {
			b.state[i] = on
		}
		return
	}
	if led >= hal.LED1 && led <= hal.LED4 {
		b.state[led-1] = on
	}
}

// On reports whether one LED is currently lit.
func (b *LEDBank) On(led hal.LED) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if led >= hal.LED1 && led <= hal.LED4 {
		return b.state[led-1]
	}
	return false
}

// AnyOn reports whether any LED is lit.
func (b *LEDBank) AnyOn() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, on := range b.state {
		if on {
			return true
		}
	}
	return false
}

// PWM is an in-memory two-channel generator.
type PWM struct {
	mu      sync.Mutex
	period  uint32
	pulse   [2]uint32
	enabled bool
}

// NewPWM creates a generator with a fixed period in counts.
func NewPWM(period uint32) *PWM {
	return &PWM{period: period}
}

func (p *PWM) Period() uint32 { return p.period }

func (p *PWM) Set(channel uint8, counts uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if channel < 2 {
		p.pulse[channel] = counts
	}
}

func (p *PWM) Enable() {
	p.mu.Lock()
	p.enabled = true
	p.mu.Unlock()
}

func (p *PWM) Disable() {
	p.mu.Lock()
	p.enabled = false
	p.mu.Unlock()
}

// Pulse returns the last width written to a channel.
func (p *PWM) Pulse(channel uint8) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if channel < 2 {
		return p.pulse[channel]
	}
	return 0
}

// Enabled reports whether the generator output is on.
func (p *PWM) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Ticker fires only when the test calls Fire, standing in for timer
// expiries.
type Ticker struct {
	mu      sync.Mutex
	period  time.Duration
	fn      func()
	running bool
}

func (t *Ticker) Start(period time.Duration, fn func()) {
	t.mu.Lock()
	t.period = period
	t.fn = fn
	t.running = true
	t.mu.Unlock()
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
}

// Fire invokes the callback once, as one timer expiry would.
func (t *Ticker) Fire() {
	t.mu.Lock()
	fn, running := t.fn, t.running
	t.mu.Unlock()
	if running && fn != nil {
		fn()
	}
}

// Running reports whether Start has been called without a later Stop.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Period returns the period passed to Start.
func (t *Ticker) Period() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.period
}

// Buttons replays a scripted sequence of poll results; the last state
// repeats forever.
type Buttons struct {
	mu  sync.Mutex
	seq []hal.ButtonState
}

// NewButtons scripts the poll results. At least one state is required.
func NewButtons(states ...hal.ButtonState) *Buttons {
	if len(states) == 0 {
		states = []hal.ButtonState{hal.ButtonNone}
	}
	return &Buttons{seq: states}
}

func (b *Buttons) Poll() hal.ButtonState {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.seq[0]
	if len(b.seq) > 1 {
		b.seq = b.seq[1:]
	}
	return s
}

// Console is a concurrency-safe sink for console output.
type Console struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// String returns everything written so far.
func (c *Console) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Reset clears the captured output.
func (c *Console) Reset() {
	c.mu.Lock()
	c.buf.Reset()
	c.mu.Unlock()
}
