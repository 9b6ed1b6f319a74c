package ui

import (
	"io"

	servotest "github.com/OuranosAPOPHIS/Servo-Motor-Test"
)

// benchWrapper turns button presses into single command bytes on the
// serial link. The board echoes and acknowledges over the same link, so
// no response handling happens here.
type benchWrapper struct {
	writer io.Writer
}

func (b *benchWrapper) send(flag byte) {
	b.writer.Write([]byte{flag})
}

func (b *benchWrapper) StepUp()   { b.send(servotest.FlagUp) }
func (b *benchWrapper) StepDown() { b.send(servotest.FlagDown) }
func (b *benchWrapper) Reset()    { b.send(servotest.FlagReset) }
func (b *benchWrapper) End()      { b.send(servotest.FlagEnd) }
func (b *benchWrapper) Menu()     { b.send(servotest.FlagMenu) }
func (b *benchWrapper) Quit()     { b.send(servotest.FlagQuit) }
