package controller

import (
	"log"

	"region-capture/src/geometry"
	"region-capture/src/monitor"
	"region-capture/src/selection"
	"region-capture/src/window"
)

// DefaultHandleRadius is used when the configured radius is not positive.
const DefaultHandleRadius = 10

// ExitKind says whether and how the session should end.
type ExitKind int

const (
	// ExitNone keeps the session running.
	ExitNone ExitKind = iota
	// ExitOnly ends the session without output.
	ExitOnly
	// ExitWithSelection ends the session with Rect as the result.
	ExitWithSelection
	// ExitNoSelection ends the session because confirm found nothing
	// selected. Callers treat it like ExitOnly.
	ExitNoSelection
)

func (k ExitKind) String() string {
	switch k {
	case ExitOnly:
		return "ExitOnly"
	case ExitWithSelection:
		return "ExitWithSelection"
	case ExitNoSelection:
		return "ExitNoSelection"
	default:
		return "None"
	}
}

// ExitState is the terminal result of a session. Rect is in image-local
// coordinates (relative to the combined monitor area's origin).
type ExitState struct {
	Kind ExitKind
	Rect geometry.Rect
}

// PreSelect describes how the initial window selection is chosen. At most one
// of the fields should be set.
type PreSelect struct {
	Search       *window.SearchParam
	UnderCursor  bool
	ActiveWindow bool
}

type Options struct {
	Layout       monitor.Layout
	HandleRadius int
	// Backend is optional; without it window mode is unavailable.
	Backend     window.Backend
	PreSelect   PreSelect
	AutoCapture bool
}

// Controller owns the selection state of one interactive session. It is not
// safe for concurrent use; every event must be applied from one goroutine.
type Controller struct {
	selection    selection.Selection
	layout       monitor.Layout
	handleRadius int
	backend      window.Backend
	windows      window.List
	exit         ExitState
}

// New creates the session state. When a backend is available the window list
// is fetched once and the pre-selection is applied.
func New(opts Options) *Controller {
	radius := opts.HandleRadius
	if radius <= 0 {
		radius = DefaultHandleRadius
	}

	c := &Controller{
		layout:       opts.Layout,
		handleRadius: radius,
		backend:      opts.Backend,
	}

	if c.backend == nil {
		if opts.PreSelect != (PreSelect{}) {
			log.Printf("Controller: window pre-selection ignored, no compositor backend")
		}
		return c
	}

	windows, err := c.backend.Windows()
	if err != nil {
		log.Printf("Controller: failed to list windows from %s: %v", c.backend.Name(), err)
	}
	c.windows = windows
	c.selection = selection.FromWindow(c.preselect(opts.PreSelect))
	log.Printf("Controller: initial selection %v", c.selection)

	if opts.AutoCapture {
		if sel, ok := c.selection.Flattened().RectangleSelection(); ok && sel != nil {
			c.exit = ExitState{Kind: ExitWithSelection, Rect: c.layout.ToImageLocal(sel.Extents.ToRect())}
			log.Printf("Controller: auto-capture of %v", c.exit.Rect)
		} else {
			log.Printf("Controller: auto-capture requested but nothing was pre-selected")
		}
	}

	return c
}

func (c *Controller) preselect(p PreSelect) *window.Descriptor {
	switch {
	case p.Search != nil:
		return c.windows.FindBySearchParam(*p.Search)
	case p.UnderCursor:
		pos, err := c.backend.MousePosition()
		if err != nil {
			log.Printf("Controller: failed to read cursor position: %v", err)
			return nil
		}
		return c.windows.FindByPosition(pos)
	case p.ActiveWindow:
		w, err := c.backend.FocusedWindow()
		if err != nil {
			log.Printf("Controller: failed to read focused window: %v", err)
			return nil
		}
		return w
	}
	return nil
}

// Selection returns a copy of the current selection.
func (c *Controller) Selection() selection.Selection { return c.selection.Clone() }

func (c *Controller) Layout() monitor.Layout { return c.layout }

func (c *Controller) HandleRadius() int { return c.handleRadius }

// Exit returns the current exit state.
func (c *Controller) Exit() ExitState { return c.exit }

// Done reports whether the session has reached a terminal state.
func (c *Controller) Done() bool { return c.exit.Kind != ExitNone }

// WindowModeAvailable reports whether window mode is part of the mode cycle.
func (c *Controller) WindowModeAvailable() bool { return c.backend != nil }

// ToGlobal converts a surface-local pointer position into global space.
func (c *Controller) ToGlobal(surface string, x, y float64) (geometry.Point, bool) {
	return c.layout.ToGlobal(surface, x, y)
}

// SetSurfaceScale updates the pixel scale of a registered input surface.
func (c *Controller) SetSurfaceScale(surface string, scale float64) bool {
	m, ok := c.layout.Surface(surface)
	if !ok {
		return false
	}
	if _, display := c.layout.Find(surface); display {
		monitors := append([]monitor.Monitor(nil), c.layout.Monitors...)
		for i := range monitors {
			if monitors[i].ID == surface {
				monitors[i].Scale = scale
			}
		}
		c.layout.Monitors = monitors
		return true
	}
	m.Scale = scale
	c.layout = c.layout.WithSurface(m)
	return true
}
