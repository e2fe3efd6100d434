package gfx

// Point is a pixel position. Y grows downwards.
type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Size is a pixel extent.
type Size struct {
	W, H int
}

// Rect is an origin plus size, like a layer frame.
type Rect struct {
	Origin Point
	Size   Size
}

func R(x, y, w, h int) Rect { return Rect{Origin: Point{x, y}, Size: Size{w, h}} }

func (r Rect) Empty() bool { return r.Size.W <= 0 || r.Size.H <= 0 }

func (r Rect) MaxX() int { return r.Origin.X + r.Size.W }
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.H }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.MaxX() && p.Y >= r.Origin.Y && p.Y < r.MaxY()
}

// Intersect returns the overlap of r and s, or an empty rect.
func (r Rect) Intersect(s Rect) Rect {
	x0 := max(r.Origin.X, s.Origin.X)
	y0 := max(r.Origin.Y, s.Origin.Y)
	x1 := min(r.MaxX(), s.MaxX())
	y1 := min(r.MaxY(), s.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

// At returns r moved to origin p.
func (r Rect) At(p Point) Rect { return Rect{Origin: p, Size: r.Size} }
