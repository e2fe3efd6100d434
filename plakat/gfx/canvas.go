package gfx

import (
	"image/color"

	"filmplakat/hal"
)

var (
	Black = color.RGBA{A: 0xFF}
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Canvas draws into an RGB565 framebuffer with a clip rectangle. It
// implements drivers.Displayer so tinyfont can render into it.
type Canvas struct {
	fb   hal.Framebuffer
	clip Rect
}

func NewCanvas(fb hal.Framebuffer) *Canvas {
	c := &Canvas{fb: fb}
	if fb != nil {
		c.clip = R(0, 0, fb.Width(), fb.Height())
	}
	return c
}

// Bounds is the full framebuffer rectangle.
func (c *Canvas) Bounds() Rect {
	if c.fb == nil {
		return Rect{}
	}
	return R(0, 0, c.fb.Width(), c.fb.Height())
}

// Clipped returns a canvas sharing the framebuffer whose drawing is limited
// to r.
func (c *Canvas) Clipped(r Rect) *Canvas {
	return &Canvas{fb: c.fb, clip: c.clip.Intersect(r)}
}

func (c *Canvas) Size() (x, y int16) {
	if c.fb == nil {
		return 0, 0
	}
	return int16(c.fb.Width()), int16(c.fb.Height())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if c.fb == nil || c.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	if !c.clip.Contains(Point{int(x), int(y)}) {
		return
	}
	buf := c.fb.Buffer()
	off := int(y)*c.fb.StrideBytes() + int(x)*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := rgb565(col)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display is a no-op; Present pushes the frame.
func (c *Canvas) Display() error { return nil }

// Present hands the finished frame to the display.
func (c *Canvas) Present() error {
	if c.fb == nil {
		return hal.ErrNotImplemented
	}
	return c.fb.Present()
}

// Clear fills the clip rectangle.
func (c *Canvas) Clear(col color.RGBA) {
	c.FillRect(c.clip, col)
}

func (c *Canvas) FillRect(r Rect, col color.RGBA) {
	if c.fb == nil {
		return
	}
	r = r.Intersect(c.clip)
	if r.Empty() {
		return
	}
	buf := c.fb.Buffer()
	stride := c.fb.StrideBytes()
	pixel := rgb565(col)
	lo, hi := byte(pixel), byte(pixel>>8)
	for y := r.Origin.Y; y < r.MaxY(); y++ {
		row := y*stride + r.Origin.X*2
		for x := 0; x < r.Size.W; x++ {
			off := row + x*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// DrawRect strokes a one pixel outline.
func (c *Canvas) DrawRect(r Rect, col color.RGBA) {
	if r.Empty() {
		return
	}
	c.FillRect(R(r.Origin.X, r.Origin.Y, r.Size.W, 1), col)
	c.FillRect(R(r.Origin.X, r.MaxY()-1, r.Size.W, 1), col)
	c.FillRect(R(r.Origin.X, r.Origin.Y, 1, r.Size.H), col)
	c.FillRect(R(r.MaxX()-1, r.Origin.Y, 1, r.Size.H), col)
}

func rgb565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
