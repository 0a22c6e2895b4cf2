// Command coreboy drives the CPU core against a ROM image: load it, run it
// for a fixed cycle budget (it does not stop early when the serial test hook
// captures output), then print what the hook captured; or, with --monitor,
// render a live register/serial monitor instead. Grounded on the
// teacher's cmd/jeebie/main.go CLI shape, with the graphics/audio/input
// flags it exposes dropped since this core has no pixel, audio, or button
// component to drive.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/coreboy/gbz80/internal/machine"
	"github.com/coreboy/gbz80/internal/monitor"
)

func main() {
	app := cli.NewApp()
	app.Name = "coreboy"
	app.Description = "Sharp LR35902 CPU core runner"
	app.Usage = "coreboy [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.IntFlag{
			Name:  "cycles",
			Usage: "Minimum T-states to run before exiting",
			Value: 4_000_000,
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "Log every decoded instruction at debug level",
		},
		cli.BoolFlag{
			Name:  "monitor",
			Usage: "Show a terminal register/serial monitor while running",
		},
		cli.StringFlag{
			Name:  "serial-log",
			Usage: "Write captured serial test output to this file instead of stdout",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("coreboy: fatal", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	if c.Bool("trace") {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		slog.SetDefault(slog.New(handler))
	}

	data, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	m := machine.New()
	if err := m.LoadROM(data); err != nil {
		return err
	}

	if c.Bool("monitor") {
		return monitor.Run(m)
	}

	m.Run(c.Int("cycles"))

	out := m.SerialOutput()
	if len(out) == 0 {
		return nil
	}

	if path := c.String("serial-log"); path != "" {
		return os.WriteFile(path, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}
