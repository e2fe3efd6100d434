package fonts

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Face wraps a tinyfont font and synthesizes the glyphs the German word
// tables need but the ASCII fonts lack: umlauts, the dotless i and the
// ellipsis. Like tinyfont's own fonts it reuses one glyph value, so it is
// not safe for concurrent use.
type Face struct {
	base      tinyfont.Fonter
	ascent    int
	xHeight   int
	capHeight int
	g         synthGlyph
}

// NewFace measures base and returns a Face over it.
func NewFace(base tinyfont.Fonter) *Face {
	f := &Face{base: base}
	f.capHeight = glyphTop(base, 'H')
	f.xHeight = glyphTop(base, 'x')
	f.ascent = f.capHeight
	if top := glyphTop(base, 'f'); top > f.ascent {
		f.ascent = top
	}
	return f
}

func glyphTop(f tinyfont.Fonter, r rune) int {
	info := f.GetGlyph(r).Info()
	if info.YOffset >= 0 {
		return 0
	}
	return -int(info.YOffset)
}

// Ascent is the distance from the top of the tallest letter to the baseline.
func (f *Face) Ascent() int { return f.ascent }

// Height is the line height used for layout.
func (f *Face) Height() int { return int(f.base.GetYAdvance()) }

func (f *Face) GetYAdvance() uint8 { return f.base.GetYAdvance() }

func (f *Face) GetGlyph(r rune) tinyfont.Glypher {
	if g := f.base.GetGlyph(r); present(g, r) {
		return g
	}
	f.g = synthGlyph{face: f, r: r}
	base, mark := decompose(r)
	f.g.mark = mark
	f.g.base = f.base.GetGlyph(base).Info()
	f.g.baseRune = base
	return &f.g
}

func present(g tinyfont.Glypher, r rune) bool {
	if g == nil {
		return false
	}
	info := g.Info()
	return info.Rune == r && info.XAdvance > 0
}

type mark uint8

const (
	markNone mark = iota
	markUmlaut
	markCapUmlaut
	markDotless
	markEllipsis
)

func decompose(r rune) (rune, mark) {
	switch r {
	case 'ä':
		return 'a', markUmlaut
	case 'ö':
		return 'o', markUmlaut
	case 'ü':
		return 'u', markUmlaut
	case 'Ä':
		return 'A', markCapUmlaut
	case 'Ö':
		return 'O', markCapUmlaut
	case 'Ü':
		return 'U', markCapUmlaut
	case 'ı':
		return 'i', markDotless
	case '…':
		return '.', markEllipsis
	case 'ß':
		return 's', markNone
	default:
		return '?', markNone
	}
}

type synthGlyph struct {
	face     *Face
	r        rune
	baseRune rune
	base     tinyfont.GlyphInfo
	mark     mark
}

func (g *synthGlyph) Info() tinyfont.GlyphInfo {
	info := g.base
	info.Rune = g.r
	if g.mark == markEllipsis {
		info.Width = 3 * info.XAdvance
		info.XAdvance *= 3
	}
	return info
}

func (g *synthGlyph) Draw(d drivers.Displayer, x, y int16, c color.RGBA) {
	f := g.face
	switch g.mark {
	case markDotless:
		// Drop everything above the x-height: the i without its dot.
		clip := &aboveClip{d: d, minY: y - int16(f.xHeight)}
		f.base.GetGlyph(g.baseRune).Draw(clip, x, y, c)
	case markEllipsis:
		for i := int16(0); i < 3; i++ {
			f.base.GetGlyph('.').Draw(d, x+i*int16(g.base.XAdvance), y, c)
		}
	default:
		f.base.GetGlyph(g.baseRune).Draw(d, x, y, c)
	}

	switch g.mark {
	case markUmlaut:
		g.drawDots(d, x, y-int16(f.xHeight), c)
	case markCapUmlaut:
		g.drawDots(d, x, y-int16(f.capHeight), c)
	}
}

// drawDots puts two square dots above top, spread over the base glyph's
// box. Italic faces lean right, so the dots shift right by a fifth of the
// lift.
func (g *synthGlyph) drawDots(d drivers.Displayer, x, top int16, c color.RGBA) {
	size := int16(g.face.xHeight / 6)
	if size < 1 {
		size = 1
	}
	gap := size
	y0 := top - gap - size
	left := x + int16(g.base.XOffset)
	w := int16(g.base.Width)
	lean := (int16(g.face.xHeight) + gap) / 5
	for _, cx := range []int16{left + w/4 + lean, left + (3*w)/4 + lean - size} {
		for dy := int16(0); dy < size; dy++ {
			for dx := int16(0); dx < size; dx++ {
				d.SetPixel(cx+dx, y0+dy, c)
			}
		}
	}
}

type aboveClip struct {
	d    drivers.Displayer
	minY int16
}

func (a *aboveClip) Size() (int16, int16) { return a.d.Size() }
func (a *aboveClip) Display() error       { return a.d.Display() }

func (a *aboveClip) SetPixel(x, y int16, c color.RGBA) {
	if y < a.minY {
		return
	}
	a.d.SetPixel(x, y, c)
}
