package monitor

import (
	"fmt"
	"math"

	"region-capture/src/geometry"
)

// Monitor is one output surface. Rect is in global desktop coordinates.
// Scale converts surface-local units into pixels; zero means 1.
type Monitor struct {
	ID    string
	Name  string
	Rect  geometry.Rect
	Scale float64
}

func (m Monitor) String() string {
	return fmt.Sprintf("%s (%s) %v", m.ID, m.Name, m.Rect)
}

// ToGlobal converts a surface-local position into global coordinates.
func (m Monitor) ToGlobal(x, y float64) geometry.Point {
	scale := m.Scale
	if scale == 0 {
		scale = 1
	}
	return geometry.Point{
		X: m.Rect.X + int(math.Round(x*scale)),
		Y: m.Rect.Y + int(math.Round(y*scale)),
	}
}

// Layout is the ordered set of monitors plus their combined area. Input
// surfaces that are not displays (an overlay spanning every monitor) are
// registered separately so they never take part in display lookups.
type Layout struct {
	Monitors []Monitor
	Area     geometry.Rect
	surfaces []Monitor
}

// NewLayout folds the monitors' rects into the combined desktop area.
func NewLayout(monitors []Monitor) Layout {
	rects := make([]geometry.Rect, len(monitors))
	for i, m := range monitors {
		rects[i] = m.Rect
	}
	return Layout{Monitors: monitors, Area: geometry.BoundingRect(rects)}
}

// Find returns the monitor with the given id.
func (l Layout) Find(id string) (Monitor, bool) {
	for _, m := range l.Monitors {
		if m.ID == id {
			return m, true
		}
	}
	return Monitor{}, false
}

// At returns the first monitor whose rect covers p.
func (l Layout) At(p geometry.Point) (Monitor, bool) {
	for _, m := range l.Monitors {
		r := m.Rect
		if p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height {
			return m, true
		}
	}
	return Monitor{}, false
}

// WithSurface returns a copy of l that also accepts input from s. A surface
// registered earlier under the same id is replaced.
func (l Layout) WithSurface(s Monitor) Layout {
	surfaces := make([]Monitor, 0, len(l.surfaces)+1)
	for _, existing := range l.surfaces {
		if existing.ID != s.ID {
			surfaces = append(surfaces, existing)
		}
	}
	l.surfaces = append(surfaces, s)
	return l
}

// Surface returns the monitor or extra surface with the given id.
func (l Layout) Surface(id string) (Monitor, bool) {
	if m, ok := l.Find(id); ok {
		return m, true
	}
	for _, s := range l.surfaces {
		if s.ID == id {
			return s, true
		}
	}
	return Monitor{}, false
}

// ToGlobal converts a position on the surface id into global coordinates.
func (l Layout) ToGlobal(id string, x, y float64) (geometry.Point, bool) {
	m, ok := l.Surface(id)
	if !ok {
		return geometry.Point{}, false
	}
	return m.ToGlobal(x, y), true
}

// ToImageLocal moves a global rect into the coordinate space of the combined
// capture, whose origin is the area's origin.
func (l Layout) ToImageLocal(r geometry.Rect) geometry.Rect {
	return r.Translate(geometry.Point{X: -l.Area.X, Y: -l.Area.Y})
}
