// Package hal defines the capability interfaces the bench core drives.
// The firmware/board package implements them on real hardware; hal/mock
// implements them in memory for host-side tests. The console is a plain
// io.Writer on the output side; received bytes reach the core through a
// callback registered with the board.
package hal

import "time"

// LED identifies one of the four user LEDs, or all of them at once.
type LED uint8

const (
	LED1 LED = iota + 1
	LED2
	LED3
	LED4
	LEDAll
)

// LEDBank drives the user LEDs. Set is idempotent.
type LEDBank interface {
	Set(led LED, on bool)
}

// PWM is a count-down PWM generator with two output channels sharing one
// period. Channels are addressed by index, the way machine and
// tinygo.org/x/drivers expose them.
type PWM interface {
	// Period returns the generator period in counts.
	Period() uint32
	// Set programs the pulse width of one channel, in counts <= Period().
	Set(channel uint8, counts uint32)
	Enable()
	Disable()
}

// Ticker fires fn once per period until stopped.
type Ticker interface {
	Start(period time.Duration, fn func())
	Stop()
}

// ButtonState is the debounced state of the two user switches.
type ButtonState uint8

const (
	ButtonNone ButtonState = iota
	ButtonLeft
	ButtonRight
	ButtonBoth
)

// Buttons reports the current debounced switch state.
type Buttons interface {
	Poll() ButtonState
}
