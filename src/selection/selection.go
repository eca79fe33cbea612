package selection

import (
	"fmt"

	"region-capture/src/geometry"
	"region-capture/src/window"
)

// Mode identifies which kind of selection is being made.
type Mode int

const (
	ModeRectangle Mode = iota
	ModeDisplay
	ModeWindow
)

func (m Mode) String() string {
	switch m {
	case ModeRectangle:
		return "Rectangle"
	case ModeDisplay:
		return "Display"
	case ModeWindow:
		return "Window"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// RectangleSelection is a free-form rectangle. Active is true only while a
// button is held and a drag is in progress.
type RectangleSelection struct {
	Extents  geometry.Extents
	Modifier *Modifier
	Active   bool
}

// NewRectangleSelection starts a fresh drag anchored at p.
func NewRectangleSelection(p geometry.Point) *RectangleSelection {
	return &RectangleSelection{
		Extents: geometry.CollapsedExtents(p),
		Active:  true,
	}
}

// DisplaySelection refers to a monitor by identity only. Its geometry is
// looked up in the monitor layout when needed.
type DisplaySelection struct {
	MonitorID string
}

// Selection is the mode-tagged selection state. Only the payload that matches
// Mode is ever set; the zero value is a rectangle selection with nothing
// selected yet.
type Selection struct {
	mode      Mode
	rectangle *RectangleSelection
	display   *DisplaySelection
	window    *window.Descriptor
}

func Rectangle(sel *RectangleSelection) Selection {
	return Selection{mode: ModeRectangle, rectangle: sel}
}

func Display(sel *DisplaySelection) Selection {
	return Selection{mode: ModeDisplay, display: sel}
}

func Window(w *window.Descriptor) Selection {
	return Selection{mode: ModeWindow, window: w}
}

// FromWindow wraps a pre-selected window; a missing window yields an empty
// rectangle selection.
func FromWindow(w *window.Descriptor) Selection {
	if w == nil {
		return Rectangle(nil)
	}
	return Window(w)
}

// Empty returns the selection a mode starts from.
func Empty(mode Mode) Selection {
	return Selection{mode: mode}
}

func (s Selection) Mode() Mode { return s.mode }

// RectangleSelection returns the rectangle payload. ok is false outside
// rectangle mode; sel is nil when nothing has been drawn yet.
func (s Selection) RectangleSelection() (sel *RectangleSelection, ok bool) {
	return s.rectangle, s.mode == ModeRectangle
}

func (s Selection) DisplaySelection() (sel *DisplaySelection, ok bool) {
	return s.display, s.mode == ModeDisplay
}

func (s Selection) WindowSelection() (w *window.Descriptor, ok bool) {
	return s.window, s.mode == ModeWindow
}

// HasSelection reports whether the current mode holds a payload.
func (s Selection) HasSelection() bool {
	switch s.mode {
	case ModeRectangle:
		return s.rectangle != nil
	case ModeDisplay:
		return s.display != nil
	case ModeWindow:
		return s.window != nil
	}
	return false
}

// Clone returns a deep copy so callers can snapshot state between events.
func (s Selection) Clone() Selection {
	out := Selection{mode: s.mode}
	if s.rectangle != nil {
		r := *s.rectangle
		if r.Modifier != nil {
			m := *r.Modifier
			r.Modifier = &m
		}
		out.rectangle = &r
	}
	if s.display != nil {
		d := *s.display
		out.display = &d
	}
	if s.window != nil {
		w := *s.window
		out.window = &w
	}
	return out
}

// Flattened turns a window selection into the equivalent rectangle
// selection. Rectangle and display selections are returned unchanged, so the
// result is never in window mode.
func (s Selection) Flattened() Selection {
	if s.mode != ModeWindow {
		return s.Clone()
	}
	if s.window == nil {
		return Rectangle(nil)
	}
	return Rectangle(&RectangleSelection{Extents: s.window.Rect.ToExtents()})
}

func (s Selection) String() string {
	switch s.mode {
	case ModeRectangle:
		if s.rectangle == nil {
			return "Rectangle(none)"
		}
		return fmt.Sprintf("Rectangle(%v active=%v)", s.rectangle.Extents.ToRect(), s.rectangle.Active)
	case ModeDisplay:
		if s.display == nil {
			return "Display(none)"
		}
		return fmt.Sprintf("Display(%s)", s.display.MonitorID)
	case ModeWindow:
		if s.window == nil {
			return "Window(none)"
		}
		return fmt.Sprintf("Window(%v)", s.window.Rect)
	}
	return s.mode.String()
}
