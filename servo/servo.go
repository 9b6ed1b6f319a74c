// Package servo tracks the commanded position of the bench servos as a
// pulse width inside the duty band. Both output channels always carry
// the same value; the bench is a single-axis rig.
package servo

import (
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/frame"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/hal"
)

// State holds the commanded pulse width for both channels.
type State struct {
	band    frame.Band
	current uint32
}

// New starts the command at the bottom of the band (start position).
func New(band frame.Band) *State {
	return &State{band: band, current: band.Min}
}

// Current returns the commanded pulse width in counts.
func (s *State) Current() uint32 { return s.current }

// Reset moves the command back to the start position.
func (s *State) Reset() uint32 {
	s.current = s.band.Min
	return s.current
}

// End moves the command to the top of the band.
func (s *State) End() uint32 {
	s.current = s.band.Max
	return s.current
}

// StepUp advances one angle step, saturating at the top of the band.
func (s *State) StepUp() uint32 {
	if s.current > s.band.Max-s.band.Step {
		s.current = s.band.Max
	} else {
		s.current += s.band.Step
	}
	return s.current
}

// StepDown retreats one angle step, saturating at the start position.
// The original firmware let this arithmetic wrap below the band and
// commanded garbage pulse widths; the command never leaves the band here.
func (s *State) StepDown() uint32 {
	if s.current < s.band.Min+s.band.Step {
		s.current = s.band.Min
	} else {
		s.current -= s.band.Step
	}
	return s.current
}

// Apply programs both PWM channels with the commanded width.
func (s *State) Apply(pwm hal.PWM) {
	pwm.Set(0, s.current)
	pwm.Set(1, s.current)
}
