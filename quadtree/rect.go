package quadtree

import "fmt"

type Point struct {
	X, Y int
}

// Rect is an integer axis aligned rectangle. Both edges are inclusive and
// Top <= Bottom.
type Rect struct {
	Left, Right int
	Top, Bottom int
}

func PointRect(p Point) Rect {
	return Rect{Left: p.X, Right: p.X, Top: p.Y, Bottom: p.Y}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

func (r Rect) Valid() bool {
	return r.Left <= r.Right && r.Top <= r.Bottom
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

func (r Rect) Intersects(o Rect) bool {
	return r.Left <= o.Right && o.Left <= r.Right && r.Top <= o.Bottom && o.Top <= r.Bottom
}

// Union returns the smallest rect covering both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   min(r.Left, o.Left),
		Right:  max(r.Right, o.Right),
		Top:    min(r.Top, o.Top),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// quadrants splits r at its midlines. The midline belongs to both sides.
// Order: top-left, top-right, bottom-left, bottom-right.
func (r Rect) quadrants() [4]Rect {
	mx := (r.Left + r.Right) >> 1
	my := (r.Top + r.Bottom) >> 1
	return [4]Rect{
		{Left: r.Left, Right: mx, Top: r.Top, Bottom: my},
		{Left: mx, Right: r.Right, Top: r.Top, Bottom: my},
		{Left: r.Left, Right: mx, Top: my, Bottom: r.Bottom},
		{Left: mx, Right: r.Right, Top: my, Bottom: r.Bottom},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d..%d]x[%d..%d]", r.Left, r.Right, r.Top, r.Bottom)
}
