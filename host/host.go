// Package host connects the operator tools to a flashed bench board
// over its USB serial port.
package host

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	servotest "github.com/OuranosAPOPHIS/Servo-Motor-Test"
)

// SerialPortNone is the sentinel port name for "do not connect".
const SerialPortNone = "none"

// ErrNoUSBSerial means no candidate USB serial device was found.
var ErrNoUSBSerial = errors.New("no usb serial ports found")

// Config selects the serial link to the board.
type Config struct {
	SerialPort string
	BaudRate   int
}

// NewFromEnv reads SERVO_SERIAL_PORT and SERVO_BAUD_RATE, defaulting the
// baud rate to the firmware's console rate.
func NewFromEnv() Config {
	cfg := Config{
		SerialPort: os.Getenv("SERVO_SERIAL_PORT"),
		BaudRate:   servotest.BaudRate,
	}
	if v := os.Getenv("SERVO_BAUD_RATE"); v != "" {
		if baud, err := strconv.Atoi(v); err == nil {
			cfg.BaudRate = baud
		}
	}
	return cfg
}

// GetSerialPorts lists candidate USB serial devices.
func GetSerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "listing serial ports")
	}
	var usb []string
	for _, p := range ports {
		lower := strings.ToLower(p)
		if strings.Contains(lower, "usb") || strings.Contains(lower, "acm") {
			usb = append(usb, p)
		}
	}
	if len(usb) == 0 {
		return nil, ErrNoUSBSerial
	}
	return usb, nil
}

// Conn is an open serial session with the bench.
type Conn struct {
	port serial.Port
}

// Open connects to the configured port.
func Open(cfg Config) (*Conn, error) {
	if cfg.SerialPort == "" || cfg.SerialPort == SerialPortNone {
		return nil, errors.New("no serial port configured")
	}
	port, err := serial.Open(cfg.SerialPort, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", cfg.SerialPort)
	}
	return &Conn{port: port}, nil
}

func (c *Conn) Close() error { return c.port.Close() }

// Write sends command bytes to the board.
func (c *Conn) Write(p []byte) (int, error) { return c.port.Write(p) }

// Read receives console output from the board.
func (c *Conn) Read(p []byte) (int, error) { return c.port.Read(p) }

// Run bridges the operator terminal and the board until ctx is
// cancelled or either side closes.
func (c *Conn) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	errCh := make(chan error, 2)
	go func() {
		_, err := io.Copy(c.port, in)
		errCh <- err
	}()
	go func() {
		_, err := io.Copy(out, c.port)
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return errors.Wrap(err, "serial bridge")
	}
}
