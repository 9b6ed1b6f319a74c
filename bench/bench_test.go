package bench

import (
	"errors"
	"strings"
	"testing"
	"time"

	servotest "github.com/OuranosAPOPHIS/Servo-Motor-Test"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/frame"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/hal"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/hal/mock"
)

type rig struct {
	leds    *mock.LEDBank
	pwm     *mock.PWM
	console *mock.Console
	ticker  *mock.Ticker
	buttons *mock.Buttons
}

func newRig(states ...hal.ButtonState) *rig {
	return &rig{
		leds:    &mock.LEDBank{},
		pwm:     mock.NewPWM(37500),
		console: &mock.Console{},
		ticker:  &mock.Ticker{},
		buttons: mock.NewButtons(states...),
	}
}

func (r *rig) newHarness(t *testing.T) *Harness {
	t.Helper()
	h, err := New(Config{SysClockHz: 120000000, FrameHz: servotest.FrameHz},
		r.leds, r.pwm, r.console, r.ticker, r.buttons)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestNewBoots(t *testing.T) {
	r := newRig()
	r.newHarness(t)

	expected := "Clock speed: 120000000\r\n" +
		"Initializing servo motors...\r\n" +
		"PWM generator period: 37500\r\n" +
		"Done!\r\n"
	if r.console.String() != expected {
		t.Errorf("expected=%q, got=%q", expected, r.console.String())
	}

	if !r.leds.On(hal.LED1) {
		t.Error("expected LED1 on after boot")
	}
	for _, led := range []hal.LED{hal.LED2, hal.LED3, hal.LED4} {
		if r.leds.On(led) {
			t.Errorf("expected LED%d off after boot", led)
		}
	}

	// Servos parked at the start position, outputs still off.
	for ch := uint8(0); ch < 2; ch++ {
		if got := r.pwm.Pulse(ch); got != 937 {
			t.Errorf("channel %d: expected=937, got=%d", ch, got)
		}
	}
	if r.pwm.Enabled() {
		t.Error("expected PWM output disabled before arming")
	}
}

func TestNewTrap(t *testing.T) {
	r := newRig()
	_, err := New(Config{SysClockHz: 3000, FrameHz: servotest.FrameHz},
		r.leds, r.pwm, r.console, r.ticker, r.buttons)
	if !errors.Is(err, frame.ErrFrameTooFast) {
		t.Errorf("expected=%v, got=%v", frame.ErrFrameTooFast, err)
	}

	if !strings.Contains(r.console.String(), "servo init failed") {
		t.Errorf("expected init failure on console, got=%q", r.console.String())
	}
	for _, led := range []hal.LED{hal.LED1, hal.LED2, hal.LED3, hal.LED4} {
		if !r.leds.On(led) {
			t.Errorf("expected LED%d on after trap", led)
		}
	}
}

// Six ticks per toggle divides the 12 Hz tick to a 1 Hz blink.
func TestOnTickBlinkDivider(t *testing.T) {
	r := newRig()
	h := r.newHarness(t)

	for cycle := 0; cycle < 3; cycle++ {
		for i := 0; i < int(servotest.BlinkDivide)-1; i++ {
			h.OnTick()
			if r.leds.On(hal.LED4) {
				t.Fatalf("cycle %d: LED4 toggled after %d ticks", cycle, i+1)
			}
		}
		h.OnTick()
		if !r.leds.On(hal.LED4) {
			t.Fatalf("cycle %d: LED4 not on after %d ticks", cycle, servotest.BlinkDivide)
		}

		for i := 0; i < int(servotest.BlinkDivide); i++ {
			h.OnTick()
		}
		if r.leds.On(hal.LED4) {
			t.Fatalf("cycle %d: LED4 not off after %d ticks", cycle, 2*servotest.BlinkDivide)
		}
	}
}

func TestOnSerialByteEchoes(t *testing.T) {
	r := newRig()
	h := r.newHarness(t)
	r.console.Reset()

	h.OnSerialByte('w')
	h.OnSerialByte('Q')

	if r.console.String() != "wQ" {
		t.Errorf("expected=%q, got=%q", "wQ", r.console.String())
	}
}

func TestMailboxLatestWins(t *testing.T) {
	var m mailbox

	if _, ok := m.take(); ok {
		t.Error("expected empty mailbox")
	}

	m.put('w')
	m.put('s')

	b, ok := m.take()
	if !ok || b != 's' {
		t.Errorf("expected=%q, got=%q (ok=%t)", byte('s'), b, ok)
	}
	if _, ok := m.take(); ok {
		t.Error("expected mailbox drained after take")
	}

	// A zero byte is still a deposit.
	m.put(0)
	b, ok = m.take()
	if !ok || b != 0 {
		t.Errorf("expected zero byte deposit, got=%q (ok=%t)", b, ok)
	}
}

func TestRunLifecycle(t *testing.T) {
	r := newRig(hal.ButtonNone, hal.ButtonRight, hal.ButtonLeft)
	h := r.newHarness(t)

	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()

	// Arming: the right button is ignored, the left button starts the
	// bench and enables the outputs.
	waitFor(t, "PWM enable", r.pwm.Enabled)
	waitFor(t, "ticker start", r.ticker.Running)
	if got := r.ticker.Period(); got != time.Second/servotest.TickHz {
		t.Errorf("expected=%v, got=%v", time.Second/servotest.TickHz, got)
	}
	waitFor(t, "menu print", func() bool {
		return strings.Contains(r.console.String(), "e - Set servo angle furthest CCW.\r\n")
	})

	h.OnSerialByte(servotest.FlagUp)
	waitFor(t, "step ack", func() bool {
		return strings.Contains(r.console.String(), "Angle Increase: 974\r\n")
	})
	if got := r.pwm.Pulse(0); got != 974 {
		t.Errorf("expected=974, got=%d", got)
	}

	h.OnSerialByte(servotest.FlagQuit)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for run loop to exit")
	}

	// Shutdown parks the hardware and says goodbye.
	out := r.console.String()
	if !strings.Contains(out, "Start Position: 937\r\n") {
		t.Errorf("expected reset ack in %q", out)
	}
	if !strings.HasSuffix(out, servotest.ShutdownLine) {
		t.Errorf("expected console to end with %q, got=%q", servotest.ShutdownLine, out)
	}
	for ch := uint8(0); ch < 2; ch++ {
		if got := r.pwm.Pulse(ch); got != 937 {
			t.Errorf("channel %d: expected=937, got=%d", ch, got)
		}
	}
	if r.pwm.Enabled() {
		t.Error("expected PWM output disabled after shutdown")
	}
	if r.ticker.Running() {
		t.Error("expected ticker stopped after shutdown")
	}
	if r.leds.AnyOn() {
		t.Error("expected all LEDs off after shutdown")
	}
}
