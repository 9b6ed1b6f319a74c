package tester

import (
	"os"
	"strings"
	"testing"
	"time"

	"go.bug.st/serial"

	servotest "github.com/OuranosAPOPHIS/Servo-Motor-Test"
)

// Hardware-in-the-loop checks against a flashed board. The board must
// already be armed (left button pressed) before running these. Set
// SERVO_TEST_PORT to the board's serial device to enable them.

func testPort(t *testing.T) string {
	t.Helper()
	port := os.Getenv("SERVO_TEST_PORT")
	if port == "" {
		t.Skip("SERVO_TEST_PORT not set")
	}
	return port
}

func sendSerial(t *testing.T, port, in string, expectedLen int) string {
	t.Helper()
	mode := &serial.Mode{
		BaudRate: servotest.BaudRate,
	}

	conn, err := serial.Open(port, mode)
	if err != nil {
		t.Errorf("unexpected error opening serial connection: %v", err)
		return ""
	}
	defer conn.Close()

	_, err = conn.Write([]byte(in))
	if err != nil {
		t.Errorf("unexpected error writing serial: %v", err)
		return ""
	}
	time.Sleep(100 * time.Millisecond)

	buf := make([]byte, expectedLen)
	total := 0
	conn.SetReadTimeout(1 * time.Second)
	deadline := time.Now().Add(1 * time.Second)
	for total < expectedLen && time.Now().Before(deadline) {
		n, err := conn.Read(buf[total:])
		if err != nil {
			t.Errorf("unexpected error reading serial: %v", err)
			return ""
		}
		total += n
	}
	return string(buf[:total])
}

// The pulse counts in the acks depend on the board's clock, so these
// only check the echo and the ack prefix.
func TestSerialAcks(t *testing.T) {
	port := testPort(t)

	tests := []struct {
		name           string
		in             string
		expectedPrefix string
	}{
		{"Reset", "x", "xStart Position: "},
		{"StepUp", "w", "wAngle Increase: "},
		{"StepDown", "s", "sAngle Decrease: "},
		{"End", "e", "eEnd Position: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sendSerial(t, port, tt.in, len(tt.expectedPrefix)+8)
			clean := strings.Trim(out, "\x00")
			if !strings.HasPrefix(clean, tt.expectedPrefix) {
				t.Errorf("expected prefix=%q, got=%q", tt.expectedPrefix, clean)
			}
			if !strings.HasSuffix(clean, "\r\n") {
				t.Errorf("expected CRLF terminated ack, got=%q", clean)
			}
		})
	}

	// Leave the servos back at the start position.
	sendSerial(t, port, "x", 2)
}

func TestSerialMenu(t *testing.T) {
	port := testPort(t)

	expected := strings.ReplaceAll(`Menu:
M - Print this menu.
Q - Quit this program.
w - Increase servo angle (CW).
s - Decrease servo angle (CCW).
x - Reset the servo angle.
e - Set servo angle furthest CCW.
`, "\n", "\r\n")
	expected = "M" + expected

	out := sendSerial(t, port, "M", len(expected))
	clean := strings.Trim(out, "\x00")
	if clean != expected {
		t.Errorf("expected=%q, got=%q", expected, clean)
	}
}
