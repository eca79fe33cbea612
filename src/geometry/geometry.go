package geometry

import (
	"fmt"
	"math"
)

// Point is a position in global (desktop) pixel space unless stated otherwise.
type Point struct {
	X int
	Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Rect is an axis-aligned box. Rects produced by normalization always have
// non-negative width and height.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// IsZero reports whether r is the zero rect.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Translate moves r by d without resizing it.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Contains reports whether p lies strictly inside r. Points on the border
// belong to the handles, not the interior.
func (r Rect) Contains(p Point) bool {
	return p.X > r.X && p.X < r.X+r.Width && p.Y > r.Y && p.Y < r.Y+r.Height
}

// Intersects reports whether r and other overlap by a positive amount on both
// axes. Rects that only touch do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return min(r.X+r.Width, other.X+other.Width)-max(r.X, other.X) > 0 &&
		min(r.Y+r.Height, other.Y+other.Height)-max(r.Y, other.Y) > 0
}

// Extend grows r into the minimal rect containing both r and other. A zero
// rect is replaced by other, which makes Extend usable as a fold over a list.
func (r *Rect) Extend(other Rect) {
	if r.IsZero() {
		*r = other
		return
	}

	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	width := max(r.X-x+r.Width, other.X-x+other.Width)
	height := max(r.Y-y+r.Height, other.Y-y+other.Height)

	*r = Rect{X: x, Y: y, Width: width, Height: height}
}

// Constrain pulls r's top-left corner into area and caps each dimension at
// the area's size. The far edges are not clipped against the area's far
// edges. ok is false when the two rects do not intersect.
func (r Rect) Constrain(area Rect) (Rect, bool) {
	if !r.Intersects(area) {
		return Rect{}, false
	}

	res := r
	res.X = max(res.X, area.X)
	res.Y = max(res.Y, area.Y)
	res.Width = clamp(r.X+r.Width-res.X, 0, area.Width)
	res.Height = clamp(r.Y+r.Height-res.Y, 0, area.Height)

	return res, true
}

// ToExtents converts r into extents running from its top-left to its
// bottom-right corner.
func (r Rect) ToExtents() Extents {
	return Extents{
		StartX: r.X,
		StartY: r.Y,
		EndX:   r.X + r.Width,
		EndY:   r.Y + r.Height,
	}
}

// BoundingRect folds Extend over rects. An empty slice yields the zero rect.
func BoundingRect(rects []Rect) Rect {
	var area Rect
	for _, r := range rects {
		area.Extend(r)
	}
	return area
}

// Extents is a drag in progress. Start may lie after End on either axis; the
// direction only disappears once the extents are normalized into a Rect.
type Extents struct {
	StartX int
	StartY int
	EndX   int
	EndY   int
}

// CollapsedExtents returns extents whose start and end both sit on p.
func CollapsedExtents(p Point) Extents {
	return Extents{StartX: p.X, StartY: p.Y, EndX: p.X, EndY: p.Y}
}

// Translate moves all four coordinates by d.
func (e Extents) Translate(d Point) Extents {
	return Extents{
		StartX: e.StartX + d.X,
		StartY: e.StartY + d.Y,
		EndX:   e.EndX + d.X,
		EndY:   e.EndY + d.Y,
	}
}

// ToRect normalizes e into a rect with non-negative size.
func (e Extents) ToRect() Rect {
	x, width := span(e.StartX, e.EndX)
	y, height := span(e.StartY, e.EndY)
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// ToRectClamped normalizes e and then moves (never resizes) the result so it
// lies inside area. Each axis is clamped independently; on an axis where the
// rect is larger than area the rect is pinned to the area's origin.
func (e Extents) ToRectClamped(area Rect) Rect {
	rect := e.ToRect()
	rect.X = clamp(rect.X, area.X, area.X+area.Width-rect.Width)
	rect.Y = clamp(rect.Y, area.Y, area.Y+area.Height-rect.Height)
	return rect
}

func span(start, end int) (int, int) {
	if start < end {
		return start, end - start
	}
	return end, start - end
}

// clamp bounds v to [lo, hi]. When hi < lo, lo wins.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
