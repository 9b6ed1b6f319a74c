// Package ui is a small fyne control panel for the servo bench. Each
// button sends one command byte over the serial link, the same bytes a
// terminal user would type, and the board's console output streams into
// a log view.
package ui

import (
	"context"
	"io"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/OuranosAPOPHIS/Servo-Motor-Test/host"
)

type BenchUI struct {
	mu      sync.Mutex
	console string
	log     *widget.Label
}

func NewBenchUI() *BenchUI {
	return &BenchUI{log: widget.NewLabel("")}
}

// Write receives the board's console output from the serial bridge and
// appends it to the log view.
func (u *BenchUI) Write(p []byte) (int, error) {
	u.mu.Lock()
	u.console += string(p)
	text := u.console
	u.mu.Unlock()

	fyne.Do(func() {
		u.log.SetText(text)
	})

	return len(p), nil
}

// Show builds the panel window and wires its buttons to the bench.
func (u *BenchUI) Show(window fyne.Window, b *benchWrapper) {
	buttons := container.NewGridWithColumns(2,
		widget.NewButton("Step up (w)", b.StepUp),
		widget.NewButton("Step down (s)", b.StepDown),
		widget.NewButton("Start position (x)", b.Reset),
		widget.NewButton("End position (e)", b.End),
		widget.NewButton("Menu (M)", b.Menu),
		widget.NewButton("Quit bench (Q)", b.Quit),
	)

	logScroll := container.NewVScroll(u.log)
	logScroll.SetMinSize(fyne.NewSize(320, 160))
	console := widget.NewAccordion(widget.NewAccordionItem("Console", logScroll))
	console.Open(0)

	window.SetContent(container.NewVBox(buttons, console))
	window.Resize(fyne.NewSize(360, 340))
	window.Show()
}

// Run drives the panel lifecycle. When no serial port is configured the
// configuration window is shown first and the panel opens on submit.
func Run(ctx context.Context, cfg host.Config) {
	application := app.New()
	u := NewBenchUI()

	openPanel := func() {
		window := application.NewWindow("Servo Bench")

		conn, err := host.Open(cfg)
		if err != nil {
			window.Show()
			showError(application, window, err)
			return
		}

		go func() {
			<-ctx.Done()
			conn.Close()
		}()
		go io.Copy(io.MultiWriter(os.Stdout, u), conn)

		u.Show(window, &benchWrapper{writer: conn})
	}

	if cfg.SerialPort == "" || cfg.SerialPort == host.SerialPortNone {
		cw := NewConfigWindow(application)
		cw.OnSubmit = openPanel
		cw.Show(&cfg)
	} else {
		openPanel()
	}

	application.Run()
}

func showError(application fyne.App, window fyne.Window, err error) {
	d := dialog.NewError(err, window)
	d.SetOnClosed(func() {
		application.Quit()
	})
	d.Show()
}
