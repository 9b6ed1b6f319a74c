// Package servotest holds the constants shared between the servo bench
// firmware and the host-side tools that talk to it over serial.
package servotest

// Console command bytes understood by the firmware dispatcher.
const (
	FlagMenu  byte = 'M'
	FlagQuit  byte = 'Q'
	FlagUp    byte = 'w'
	FlagDown  byte = 's'
	FlagReset byte = 'x'
	FlagEnd   byte = 'e'
)

// BaudRate of the operator console, 8-N-1.
const BaudRate = 115200

// PWM and tick timing shared by the frame model and the board setup.
const (
	FrameHz     = 50 // hobby-servo frame rate
	PWMDivisor  = 64 // PWM clock prescale from the system clock
	TickHz      = 12 // periodic tick rate while running
	BlinkDivide = 6  // tick expiries per LED4 toggle (1 Hz blink)
)

// ShutdownLine is printed when the Q command stops the bench.
const ShutdownLine = "Dave, I'm scared. Will I dream?\r\n"
