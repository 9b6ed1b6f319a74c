package main

import (
	"context"
	"flag"
	"os"

	"github.com/OuranosAPOPHIS/Servo-Motor-Test/host"
	"github.com/OuranosAPOPHIS/Servo-Motor-Test/ui"
)

func main() {
	cfg := host.NewFromEnv()
	flag.StringVar(&cfg.SerialPort, "port", cfg.SerialPort, "Serial port of the flashed bench board")
	flag.IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "Serial baud rate")
	flag.Parse()

	if os.Getenv("ENABLE_UI") == "true" {
		runUI(cfg)
		return
	}

	runCLI(cfg)
}

func runUI(cfg host.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui.Run(ctx, cfg)
}

func runCLI(cfg host.Config) {
	c, err := host.Open(cfg)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	err = c.Run(context.Background(), os.Stdin, os.Stdout)
	if err != nil {
		panic(err)
	}
}
