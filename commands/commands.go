// Package commands implements the single-character console protocol of
// the bench. The menu is generated from the command table so the help
// text and the dispatch table cannot drift apart.
package commands

import (
	"fmt"
	"io"

	servotest "github.com/OuranosAPOPHIS/Servo-Motor-Test"
)

// Controller is the surface a command needs: the servo command model
// bound to its PWM generator, plus the quit latch. Every mutator applies
// the new pulse width to the hardware before returning it.
type Controller interface {
	StepUp() uint32
	StepDown() uint32
	Reset() uint32
	End() uint32
	Quit()
}

type Command struct {
	Flag        byte
	Run         func(Controller, io.Writer)
	Description string
}

var (
	MenuCommand = &Command{
		Flag:        servotest.FlagMenu,
		Description: "Print this menu.",
	}
	QuitCommand = &Command{
		Flag:        servotest.FlagQuit,
		Description: "Quit this program.",
		Run: func(c Controller, w io.Writer) {
			c.Quit()
		},
	}
	UpCommand = &Command{
		Flag:        servotest.FlagUp,
		Description: "Increase servo angle (CW).",
		Run: func(c Controller, w io.Writer) {
			fmt.Fprintf(w, "Angle Increase: %d\r\n", c.StepUp())
		},
	}
	DownCommand = &Command{
		Flag:        servotest.FlagDown,
		Description: "Decrease servo angle (CCW).",
		Run: func(c Controller, w io.Writer) {
			fmt.Fprintf(w, "Angle Decrease: %d\r\n", c.StepDown())
		},
	}
	ResetCommand = &Command{
		Flag:        servotest.FlagReset,
		Description: "Reset the servo angle.",
		Run: func(c Controller, w io.Writer) {
			fmt.Fprintf(w, "Start Position: %d\r\n", c.Reset())
		},
	}
	EndCommand = &Command{
		Flag:        servotest.FlagEnd,
		Description: "Set servo angle furthest CCW.",
		Run: func(c Controller, w io.Writer) {
			fmt.Fprintf(w, "End Position: %d\r\n", c.End())
		},
	}
)

// MenuCommand.Run is assigned in init to break the initialization
// cycle MenuCommand -> PrintMenu -> commands -> MenuCommand.
func init() {
	MenuCommand.Run = func(c Controller, w io.Writer) {
		PrintMenu(w)
	}
}

// commands in menu order.
var commands = []*Command{
	MenuCommand,
	QuitCommand,
	UpCommand,
	DownCommand,
	ResetCommand,
	EndCommand,
}

// PrintMenu writes the operator menu, byte-for-byte what the original
// bench printed.
func PrintMenu(w io.Writer) {
	io.WriteString(w, "Menu:\r\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "%c - %s\r\n", cmd.Flag, cmd.Description)
	}
}

// Dispatch runs the command bound to flag. Unknown flags do nothing:
// neither controller state nor console output changes.
func Dispatch(c Controller, w io.Writer, flag byte) {
	for _, cmd := range commands {
		if cmd.Flag == flag {
			cmd.Run(c, w)
			return
		}
	}
}
