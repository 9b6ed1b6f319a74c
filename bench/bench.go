// Package bench runs the servo test lifecycle: boot, arm on the left
// button, the cooperative command loop, and shutdown.
package bench

import (
	"fmt"
	"io"
	"time"

	servotest "github.com/OuranosAPOPHIS/Servo-Motor-Test"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/commands"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/frame"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/hal"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/servo"
)

// Config carries the board-reported clocking the frame math needs.
type Config struct {
	SysClockHz uint32
	FrameHz    uint32
}

// Harness owns the bench state: the servo command model, the run flag
// and the console mailbox. The main loop is the only dispatcher caller;
// the serial receive context only deposits bytes through OnSerialByte.
type Harness struct {
	cfg     Config
	leds    hal.LEDBank
	pwm     hal.PWM
	console io.Writer
	ticker  hal.Ticker
	buttons hal.Buttons

	servo *servo.State
	inbox mailbox
	quit  bool

	ticks  uint32
	led4On bool
}

// New boots the bench: LEDs cleared, LED1 lit while initializing, frame
// and duty band computed, servo command set to the start position and
// applied. A config error is printed once and returned with LEDAll lit
// so the caller can trap.
func New(cfg Config, leds hal.LEDBank, pwm hal.PWM, console io.Writer, ticker hal.Ticker, buttons hal.Buttons) (*Harness, error) {
	h := &Harness{
		cfg:     cfg,
		leds:    leds,
		pwm:     pwm,
		console: console,
		ticker:  ticker,
		buttons: buttons,
	}

	// Turn off all LEDs, in case one was left on.
	h.leds.Set(hal.LEDAll, false)
	h.leds.Set(hal.LED1, true)

	fmt.Fprintf(console, "Clock speed: %d\r\n", cfg.SysClockHz)
	io.WriteString(console, "Initializing servo motors...\r\n")

	f, err := frame.New(cfg.SysClockHz, cfg.FrameHz)
	if err != nil {
		return nil, h.trap(err)
	}
	fmt.Fprintf(console, "PWM generator period: %d\r\n", f.Period)

	band, err := f.Band()
	if err != nil {
		return nil, h.trap(err)
	}

	h.servo = servo.New(band)
	h.servo.Apply(pwm)
	io.WriteString(console, "Done!\r\n")
	return h, nil
}

// trap reports a fatal init error once and lights every LED.
func (h *Harness) trap(err error) error {
	fmt.Fprintf(h.console, "servo init failed: %s\r\n", err)
	h.leds.Set(hal.LEDAll, true)
	return err
}

// Run arms the bench and executes the command loop until the Q command.
// It leaves the hardware parked: servos at the start position, outputs
// disabled, LEDs off.
func (h *Harness) Run() {
	io.WriteString(h.console, "Initialization Complete!\r\nPress left button to start.\r\n")
	h.leds.Set(hal.LEDAll, true)
	h.waitForButton(hal.ButtonLeft)
	h.leds.Set(hal.LEDAll, false)
	h.leds.Set(hal.LED1, false)

	h.ticker.Start(time.Second/servotest.TickHz, h.OnTick)
	h.pwm.Enable()
	commands.Dispatch(h, h.console, servotest.FlagMenu)

	for !h.quit {
		if b, ok := h.inbox.take(); ok {
			commands.Dispatch(h, h.console, b)
			continue
		}
		time.Sleep(time.Millisecond)
	}

	// Return the servos to the start position before killing the outputs.
	commands.Dispatch(h, h.console, servotest.FlagReset)
	io.WriteString(h.console, servotest.ShutdownLine)
	h.leds.Set(hal.LEDAll, false)
	h.ticker.Stop()
	h.pwm.Disable()
}

func (h *Harness) waitForButton(want hal.ButtonState) {
	for h.buttons.Poll() != want {
		time.Sleep(time.Millisecond)
	}
}

// OnTick is the periodic tick callback. It divides the 12 Hz tick down
// to a 1 Hz blink on LED4 and does no other work.
func (h *Harness) OnTick() {
	h.ticks++
	if h.ticks < servotest.BlinkDivide {
		return
	}
	h.ticks = 0
	h.led4On = !h.led4On
	h.leds.Set(hal.LED4, h.led4On)
}

// OnSerialByte is the receive path and the only Harness method safe to
// call from the serial reader context. It echoes the byte best-effort
// and deposits it in the mailbox, overwriting any byte the loop has not
// consumed yet. It never dispatches.
func (h *Harness) OnSerialByte(b byte) {
	h.console.Write([]byte{b})
	h.inbox.put(b)
}

// The Harness is the commands.Controller: every mutation writes the new
// pulse width to both PWM channels before the dispatcher prints it.

func (h *Harness) StepUp() uint32   { return h.apply(h.servo.StepUp()) }
func (h *Harness) StepDown() uint32 { return h.apply(h.servo.StepDown()) }
func (h *Harness) Reset() uint32    { return h.apply(h.servo.Reset()) }
func (h *Harness) End() uint32      { return h.apply(h.servo.End()) }
func (h *Harness) Quit()            { h.quit = true }

func (h *Harness) apply(v uint32) uint32 {
	h.servo.Apply(h.pwm)
	return v
}
