//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"filmplakat/app"
	"filmplakat/hal"
)

func main() {
	var (
		configPath string
		headless   bool
		tui        bool
		hz         int
		ticks      uint64
		scale      float64
	)
	flag.StringVar(&configPath, "config", "", "YAML simulator config.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.BoolVar(&tui, "tui", false, "Preview the face in the terminal.")
	flag.IntVar(&hz, "hz", 0, "Frame rate in headless and terminal mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.Float64Var(&scale, "scale", 0, "Clock speedup; 60 turns a second into a minute.")
	flag.Parse()

	cfg := app.DefaultHostConfig()
	if configPath != "" {
		var err error
		if cfg, err = app.LoadHostConfig(configPath); err != nil {
			fatal(err)
		}
	}
	switch {
	case headless:
		cfg.Runner.Mode = app.RunnerHeadless
	case tui:
		cfg.Runner.Mode = app.RunnerTUI
	}
	if hz > 0 {
		cfg.Runner.Hz = hz
	}
	if ticks > 0 {
		cfg.Runner.Ticks = ticks
	}
	if scale > 0 {
		cfg.Scale = scale
	}

	opts, err := cfg.Options()
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.Runner.Mode {
	case app.RunnerHeadless:
		err = hal.RunHeadless(ctx, opts, app.New, hal.HeadlessConfig{Enabled: true, Hz: cfg.Runner.Hz, Ticks: cfg.Runner.Ticks})
	case app.RunnerTUI:
		err = hal.RunTUI(ctx, opts, app.New, hal.TUIConfig{Enabled: true, Hz: cfg.Runner.Hz})
	default:
		err = hal.RunWindow(opts, app.New)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
