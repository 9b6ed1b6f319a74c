// Package frame maps the PWM clock configuration to pulse-width counts.
package frame

import "errors"

var (
	// ErrFrameTooFast means the frame rate is too high for the divided
	// clock and the generator period truncated to zero counts.
	ErrFrameTooFast = errors.New("frame: period is zero counts at this clock")
	// ErrBandCollapsed means the period is too short to split the duty
	// band into 100 whole-count angle steps.
	ErrBandCollapsed = errors.New("frame: duty band has no usable step")
)

// Frame describes one PWM period in generator counts. Immutable after New.
type Frame struct {
	SysClockHz uint32
	Divisor    uint32
	FrameHz    uint32
	Period     uint32
}

// New computes the generator period for a system clock and frame rate.
// The divisor is the fixed /64 PWM clock prescale. Integer truncation is
// accepted: at 120 MHz / 50 Hz the frame period error is below 0.1%.
func New(sysClockHz, frameHz uint32) (Frame, error) {
	f := Frame{SysClockHz: sysClockHz, Divisor: 64, FrameHz: frameHz}
	f.Period = sysClockHz / f.Divisor / frameHz
	if f.Period == 0 {
		return Frame{}, ErrFrameTooFast
	}
	return f, nil
}

// Band is the range of pulse widths that command valid servo positions:
// 2.5% duty at Min up to 12.5% at Max, split into 100 angle steps.
type Band struct {
	Min  uint32
	Max  uint32
	Step uint32
}

// Band derives the duty band from the frame period. Max is Min*5 rather
// than Period*125/1000 so the counts match the original firmware exactly.
func (f Frame) Band() (Band, error) {
	b := Band{Min: f.Period * 25 / 1000}
	b.Max = b.Min * 5
	b.Step = (b.Max - b.Min) / 100
	if b.Step == 0 {
		return Band{}, ErrBandCollapsed
	}
	return b, nil
}
