// Package monitor renders a terminal view of CPU registers and captured
// serial output while the machine runs. Grounded on the teacher's
// jeebie/render/terminal.go TerminalRenderer, trimmed to what this core can
// show: no pixel framebuffer exists here, so the game-screen and joypad
// panels are dropped and the register/log panels take the whole screen.
package monitor

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/coreboy/gbz80/internal/machine"
)

const (
	frameTime       = time.Second / 30
	cyclesPerFrame  = 70224 // one display refresh's worth of T-states at 4.19 MHz/60Hz
	serialTailLines = 10
)

// Run drives m on a fixed cadence, redrawing registers and serial output
// until the user quits (Esc/Ctrl-C) or a decode error halts the machine.
func Run(m *machine.Machine) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("monitor: init terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("monitor: init terminal: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	quit := make(chan struct{})
	go pollInput(screen, quit)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	running := true
	for running {
		select {
		case <-ticker.C:
			crashed := runFrame(m)
			draw(screen, m)
			if crashed {
				running = false
			}
		case <-signals:
			running = false
		case <-quit:
			running = false
		}
	}

	return nil
}

func runFrame(m *machine.Machine) (crashed bool) {
	defer func() {
		if r := recover(); r != nil {
			crashed = true
		}
	}()
	m.Run(cyclesPerFrame)
	return false
}

func pollInput(screen tcell.Screen, quit chan struct{}) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				close(quit)
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func draw(screen tcell.Screen, m *machine.Machine) {
	screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	highlight := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	drawLine(screen, 0, 0, "coreboy monitor — Esc to quit", highlight)

	r := m.CPU.Registers
	drawLine(screen, 0, 2, fmt.Sprintf("AF=%04X  BC=%04X  DE=%04X  HL=%04X", r.AF(), r.BC(), r.DE(), r.HL()), style)
	drawLine(screen, 0, 3, fmt.Sprintf("SP=%04X  PC=%04X", r.SP, r.PC), style)
	drawLine(screen, 0, 4, fmt.Sprintf("halted=%v", m.CPU.Halted()), style)

	drawLine(screen, 0, 6, "serial output:", highlight)
	lines := tail(splitLines(m.SerialOutput()), serialTailLines)
	for i, line := range lines {
		drawLine(screen, 0, 7+i, line, style)
	}

	screen.Show()
}

func drawLine(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
