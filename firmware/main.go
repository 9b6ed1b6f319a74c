//go:build rp2040 || rp2350

package main

import (
	"time"

	servotest "github.com/OuranosAPOPHIS/Servo-Motor-Test"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/bench"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/firmware/board"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/frame"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/hal"
)

func main() {
	// Allow USB CDC to enumerate before the boot banner.
	time.Sleep(2 * time.Second)

	cfg := board.Default()
	leds := board.NewLEDBank(cfg.LEDs)

	console, err := board.NewConsole(cfg.UART, cfg.TX, cfg.RX)
	if err != nil {
		trap(leds, err)
	}

	sysClock := board.SysClockHz()
	f, err := frame.New(sysClock, servotest.FrameHz)
	if err != nil {
		trap(leds, err)
	}

	gen, err := board.NewGenerator(cfg.PWM, cfg.ServoA, cfg.ServoB, f)
	if err != nil {
		trap(leds, err)
	}

	buttons := board.NewButtons(cfg.LeftBtn, cfg.RightBtn)

	h, err := bench.New(
		bench.Config{SysClockHz: sysClock, FrameHz: servotest.FrameHz},
		leds, gen, console, &board.Ticker{}, buttons,
	)
	if err != nil {
		// bench.New already reported and lit LEDAll.
		halt()
	}

	console.StartRX(h.OnSerialByte)
	h.Run()

	// The bench has parked the hardware; hold here until power-off.
	halt()
}

func trap(leds *board.LEDBank, err error) {
	println("init failed:", err.Error())
	leds.Set(hal.LEDAll, true)
	halt()
}

func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
