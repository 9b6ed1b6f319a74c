//go:build rp2040 || rp2350

// Package board implements the hal capabilities on a Raspberry Pi Pico.
// The original bench ran on a TI TM4C LaunchPad; this port keeps the
// same console and PWM contract on hardware TinyGo supports.
package board

import (
	"errors"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	tgservo "tinygo.org/x/drivers/servo"

	servotest "github.com/OuranosAPOPHIS/Servo-Motor-Test"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/frame"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/hal"
)

// Config selects the pins and peripherals the bench uses.
type Config struct {
	LEDs     [4]machine.Pin
	PWM      tgservo.PWM
	ServoA   machine.Pin
	ServoB   machine.Pin
	LeftBtn  machine.Pin
	RightBtn machine.Pin
	UART     *uartx.UART
	TX       machine.Pin
	RX       machine.Pin
}

// Default wires the bench the way the lab boards are soldered: four
// status LEDs on GP10-GP13, both servo channels on PWM slice 2
// (GP20/GP21), buttons on GP14/GP15 and the operator console on UART0.
func Default() Config {
	return Config{
		LEDs:     [4]machine.Pin{machine.GP10, machine.GP11, machine.GP12, machine.GP13},
		PWM:      machine.PWM2,
		ServoA:   machine.GP20,
		ServoB:   machine.GP21,
		LeftBtn:  machine.GP14,
		RightBtn: machine.GP15,
		UART:     uartx.UART0,
		TX:       uartx.UART0_TX_PIN,
		RX:       uartx.UART0_RX_PIN,
	}
}

// SysClockHz reports the system clock the frame math divides down.
func SysClockHz() uint32 {
	return machine.CPUFrequency()
}

// LEDBank drives the four user LEDs on GPIO pins.
type LEDBank struct {
	pins [4]machine.Pin
}

func NewLEDBank(pins [4]machine.Pin) *LEDBank {
	for _, p := range pins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	return &LEDBank{pins: pins}
}

func (b *LEDBank) Set(led hal.LED, on bool) {
	if led == hal.LEDAll {
		for _, p := range b.pins {
			p.Set(on)
		}
		return
	}
	if led >= hal.LED1 && led <= hal.LED4 {
		b.pins[led-1].Set(on)
	}
}

// Generator adapts one machine PWM group to the hal.PWM capability.
// The group is configured for the servo frame period; pulse widths are
// rescaled from frame counts to the hardware top value, since the RP2040
// picks its own prescale for a 20 ms period rather than the TM4C's /64.
type Generator struct {
	pwm     tgservo.PWM
	chans   [2]uint8
	period  uint32
	top     uint32
	last    [2]uint32
	enabled bool
}

func NewGenerator(pwm tgservo.PWM, pinA, pinB machine.Pin, f frame.Frame) (*Generator, error) {
	err := pwm.Configure(machine.PWMConfig{
		Period: uint64(1e9) / uint64(f.FrameHz),
	})
	if err != nil {
		return nil, errors.New("board: pwm configure: " + err.Error())
	}
	a, err := pwm.Channel(pinA)
	if err != nil {
		return nil, errors.New("board: pwm channel A: " + err.Error())
	}
	b, err := pwm.Channel(pinB)
	if err != nil {
		return nil, errors.New("board: pwm channel B: " + err.Error())
	}
	return &Generator{
		pwm:    pwm,
		chans:  [2]uint8{a, b},
		period: f.Period,
		top:    pwm.Top(),
	}, nil
}

func (g *Generator) Period() uint32 { return g.period }

func (g *Generator) Set(channel uint8, counts uint32) {
	if channel > 1 {
		return
	}
	g.last[channel] = counts
	if g.enabled {
		g.pwm.Set(g.chans[channel], g.scale(counts))
	}
}

// Enable starts driving the last commanded widths; Disable parks both
// outputs at zero width, which releases the servos.
func (g *Generator) Enable() {
	g.enabled = true
	g.pwm.Set(g.chans[0], g.scale(g.last[0]))
	g.pwm.Set(g.chans[1], g.scale(g.last[1]))
}

func (g *Generator) Disable() {
	g.enabled = false
	g.pwm.Set(g.chans[0], 0)
	g.pwm.Set(g.chans[1], 0)
}

func (g *Generator) scale(counts uint32) uint32 {
	return uint32(uint64(counts) * uint64(g.top) / uint64(g.period))
}

// Ticker drives the periodic tick from a time.Ticker goroutine.
type Ticker struct {
	stop chan struct{}
}

func (t *Ticker) Start(period time.Duration, fn func()) {
	t.stop = make(chan struct{})
	stop := t.stop
	tick := time.NewTicker(period)
	go func() {
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				fn()
			}
		}
	}()
}

func (t *Ticker) Stop() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

// Buttons reads the two user switches, active low with pull-ups. The
// arming loop polls slowly enough that a double sample is all the
// debounce needed.
type Buttons struct {
	left  machine.Pin
	right machine.Pin
}

func NewButtons(left, right machine.Pin) *Buttons {
	left.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	right.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &Buttons{left: left, right: right}
}

func (b *Buttons) Poll() hal.ButtonState {
	l, r := !b.left.Get(), !b.right.Get()
	time.Sleep(5 * time.Millisecond)
	l = l && !b.left.Get()
	r = r && !b.right.Get()
	switch {
	case l && r:
		return hal.ButtonBoth
	case l:
		return hal.ButtonLeft
	case r:
		return hal.ButtonRight
	}
	return hal.ButtonNone
}

// Console is the operator UART. Output goes through io.Writer; received
// bytes are pushed one at a time into the handler given to StartRX.
type Console struct {
	uart *uartx.UART
}

func NewConsole(u *uartx.UART, tx, rx machine.Pin) (*Console, error) {
	err := u.Configure(uartx.UARTConfig{
		BaudRate: servotest.BaudRate,
		TX:       tx,
		RX:       rx,
	})
	if err != nil {
		return nil, errors.New("board: uart configure: " + err.Error())
	}
	return &Console{uart: u}, nil
}

func (c *Console) Write(p []byte) (int, error) {
	return c.uart.Write(p)
}

// StartRX delivers every received byte to fn from a dedicated reader
// goroutine; the uartx RX interrupt wakes it through Readable.
func (c *Console) StartRX(fn func(byte)) {
	go func() {
		buf := make([]byte, 16)
		c.drain(buf, fn)
		for range c.uart.Readable() {
			c.drain(buf, fn)
		}
	}()
}

func (c *Console) drain(buf []byte, fn func(byte)) {
	for {
		n := c.uart.TryRead(buf)
		if n == 0 {
			return
		}
		for _, b := range buf[:n] {
			fn(b)
		}
	}
}
