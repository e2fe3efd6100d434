//go:build !tinygo

// Command mkflash writes a flash image holding preset watchface toggles, for
// the simulator's -config flash_path or for flashing a board.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"filmplakat/hal"
	"filmplakat/plakat/settings"
)

const (
	defaultFlashPath = "filmplakat.flash"
	defaultFlashSize = 64 * 1024
	defaultEraseSize = 4096
)

func main() {
	var (
		outPath   string
		flashSize uint
		eraseSize uint
		show      string
		v         = settings.Defaults
	)
	flag.StringVar(&outPath, "out", defaultFlashPath, "Output flash image path.")
	flag.UintVar(&flashSize, "size", defaultFlashSize, "Flash image size (bytes).")
	flag.UintVar(&eraseSize, "erase", defaultEraseSize, "Erase block size (bytes).")
	flag.BoolVar(&v.Invert, "invert", v.Invert, "Black on white.")
	flag.BoolVar(&v.StatusBar, "statusbar", v.StatusBar, "Always show the status bar.")
	flag.BoolVar(&v.Gesture, "accel", v.Gesture, "Show the status bar on a wrist tap.")
	flag.StringVar(&show, "show", "", "Print the toggles stored in an image and exit.")
	flag.Parse()

	if show != "" {
		if err := printImage(os.Stdout, show); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}
	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}
	if err := run(outPath, uint32(flashSize), uint32(eraseSize), v); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(outPath string, flashSize, eraseSize uint32, v settings.Values) error {
	img, err := buildImage(flashSize, eraseSize, v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, img, 0o644); err != nil {
		return fmt.Errorf("write flash image %q: %w", outPath, err)
	}
	return nil
}

// buildImage returns an erased flash of flashSize bytes with the settings
// record in its first block.
func buildImage(flashSize, eraseSize uint32, v settings.Values) ([]byte, error) {
	if eraseSize == 0 || eraseSize%256 != 0 {
		return nil, fmt.Errorf("flash: invalid erase size %d", eraseSize)
	}
	if flashSize == 0 || flashSize%eraseSize != 0 {
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", flashSize, eraseSize)
	}
	rec, err := settings.Encode(v.Entries())
	if err != nil {
		return nil, err
	}
	f := hal.NewMemFlash(flashSize, eraseSize)
	if _, err := f.WriteAt(rec, 0); err != nil {
		return nil, fmt.Errorf("write settings record: %w", err)
	}
	return f.Bytes(), nil
}

func printImage(w io.Writer, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read flash image %q: %w", path, err)
	}
	entries, err := settings.Decode(b)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "erased (defaults)")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s=%t\n", e.Key, e.Value)
	}
	return nil
}
