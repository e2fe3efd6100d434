//go:build !tinygo

package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"filmplakat/hal"

	"gopkg.in/yaml.v3"
)

// Runner modes for the host simulator.
const (
	RunnerWindow   = "window"
	RunnerHeadless = "headless"
	RunnerTUI      = "tui"
)

// HostConfig is the simulator's YAML configuration file.
type HostConfig struct {
	Timezone  string  `yaml:"timezone"`   // IANA name; empty means the local zone
	Start     string  `yaml:"start"`      // RFC 3339 or "15:04" today; empty means now
	Scale     float64 `yaml:"scale"`      // wall-clock speedup, 60 turns seconds into minutes
	FlashPath string  `yaml:"flash_path"` // settings image
	LinkStdin bool    `yaml:"link_stdin"` // read companion JSON lines from stdin

	Battery struct {
		Percent  int  `yaml:"percent"`
		Charging bool `yaml:"charging"`
		Plugged  bool `yaml:"plugged"`
	} `yaml:"battery"`
	Bluetooth bool `yaml:"bluetooth"`

	Runner struct {
		Mode  string `yaml:"mode"`
		Hz    int    `yaml:"hz"`
		Ticks uint64 `yaml:"ticks"`
	} `yaml:"runner"`
}

// DefaultHostConfig is a connected, fully charged watch on the local clock.
func DefaultHostConfig() HostConfig {
	var c HostConfig
	c.Scale = 1
	c.Battery.Percent = 100
	c.Bluetooth = true
	c.Runner.Mode = RunnerWindow
	return c
}

// LoadHostConfig reads path over the defaults.
func LoadHostConfig(path string) (HostConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return HostConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	c, err := ParseHostConfig(b)
	if err != nil {
		return HostConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// ParseHostConfig decodes YAML over the defaults. Unknown keys are errors.
func ParseHostConfig(b []byte) (HostConfig, error) {
	c := DefaultHostConfig()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return HostConfig{}, err
	}
	if err := c.validate(); err != nil {
		return HostConfig{}, err
	}
	return c, nil
}

func (c HostConfig) validate() error {
	switch c.Runner.Mode {
	case RunnerWindow, RunnerHeadless, RunnerTUI:
	default:
		return fmt.Errorf("runner.mode %q: want window, headless or tui", c.Runner.Mode)
	}
	if c.Battery.Percent < 0 || c.Battery.Percent > 100 {
		return fmt.Errorf("battery.percent %d out of range", c.Battery.Percent)
	}
	if c.Scale < 0 {
		return fmt.Errorf("scale %v is negative", c.Scale)
	}
	if c.Runner.Hz < 0 {
		return fmt.Errorf("runner.hz %d is negative", c.Runner.Hz)
	}
	return nil
}

// Options resolves the config into simulator options.
func (c HostConfig) Options() (hal.HostOptions, error) {
	opts := hal.HostOptions{
		Scale:     c.Scale,
		FlashPath: c.FlashPath,
		Battery: hal.Battery{
			Percent:  uint8(c.Battery.Percent),
			Charging: c.Battery.Charging,
			Plugged:  c.Battery.Plugged,
		},
		Bluetooth: c.Bluetooth,
		LinkStdin: c.LinkStdin,
	}
	loc := time.Local
	if c.Timezone != "" {
		l, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return hal.HostOptions{}, fmt.Errorf("timezone: %w", err)
		}
		loc = l
	}
	opts.Location = loc

	if c.Start != "" {
		start, err := parseStart(c.Start, loc, time.Now())
		if err != nil {
			return hal.HostOptions{}, err
		}
		opts.Start = start
	}
	return opts, nil
}

func parseStart(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	hm, err := time.ParseInLocation("15:04", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("start %q: want RFC 3339 or 15:04", s)
	}
	now = now.In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), nil
}
