package controller

import (
	"log"

	"region-capture/src/geometry"
	"region-capture/src/selection"
)

// Press handles a button press at pos (global coordinates) on surface.
func (c *Controller) Press(surface string, pos geometry.Point) {
	if c.Done() {
		return
	}

	switch c.selection.Mode() {
	case selection.ModeRectangle:
		sel, _ := c.selection.RectangleSelection()
		state := selection.ProcessHandles(sel, pos, c.handleRadius)
		if state == selection.Unchanged {
			c.selection = selection.Rectangle(selection.NewRectangleSelection(pos))
		}
		log.Printf("Controller: press %v in rectangle mode -> %v", pos, state)

	case selection.ModeDisplay:
		m, ok := c.layout.Find(surface)
		if !ok {
			m, ok = c.layout.At(pos)
		}
		if !ok {
			log.Printf("Controller: press %v on %q matched no display", pos, surface)
			return
		}
		c.selection = selection.Display(&selection.DisplaySelection{MonitorID: m.ID})
		log.Printf("Controller: selected display %v", m)

	case selection.ModeWindow:
		flat := c.selection.Flattened()
		sel, _ := flat.RectangleSelection()
		if selection.ProcessHandles(sel, pos, c.handleRadius) == selection.HandlesChanged {
			// Grabbing a handle promotes the window to a plain rectangle for
			// the rest of the session.
			c.selection = flat
			log.Printf("Controller: window promoted to rectangle for resizing")
			return
		}
		if w := c.windows.FindByPosition(pos); w != nil {
			c.selection = selection.Window(w)
			log.Printf("Controller: selected window %v", w)
		}
	}
}

// Motion applies pointer motion at pos (global coordinates).
func (c *Controller) Motion(pos geometry.Point) {
	if sel, ok := c.selection.RectangleSelection(); ok && sel != nil {
		sel.Drag(pos, c.layout.Area)
	}
}

// Release ends any drag in progress.
func (c *Controller) Release() {
	if sel, ok := c.selection.RectangleSelection(); ok && sel != nil {
		sel.Release()
	}
}

// CycleMode switches Rectangle -> Display -> Window -> Rectangle, skipping
// Window without a compositor backend. The new mode starts empty.
func (c *Controller) CycleMode() {
	if c.Done() {
		return
	}

	next := selection.ModeRectangle
	switch c.selection.Mode() {
	case selection.ModeRectangle:
		next = selection.ModeDisplay
	case selection.ModeDisplay:
		if c.WindowModeAvailable() {
			next = selection.ModeWindow
		}
	case selection.ModeWindow:
		next = selection.ModeRectangle
	}
	c.selection = selection.Empty(next)
	log.Printf("Controller: mode changed to %v", next)
}

// Cancel ends the session without a result.
func (c *Controller) Cancel() {
	c.exit = ExitState{Kind: ExitOnly}
	log.Printf("Controller: cancelled")
}

// Confirm ends the session with the flattened selection. When nothing is
// selected in the current mode the session ends with ExitNoSelection and
// Confirm returns false.
func (c *Controller) Confirm() bool {
	if c.Done() {
		return c.exit.Kind == ExitWithSelection
	}

	rect, ok := c.finalRect()
	if !ok {
		c.exit = ExitState{Kind: ExitNoSelection}
		log.Printf("Controller: confirm with nothing selected in %v mode", c.selection.Mode())
		return false
	}
	c.exit = ExitState{Kind: ExitWithSelection, Rect: rect}
	log.Printf("Controller: confirmed %v", rect)
	return true
}

func (c *Controller) finalRect() (geometry.Rect, bool) {
	flat := c.selection.Flattened()
	switch flat.Mode() {
	case selection.ModeRectangle:
		sel, _ := flat.RectangleSelection()
		if sel == nil {
			return geometry.Rect{}, false
		}
		return c.layout.ToImageLocal(sel.Extents.ToRect()), true
	case selection.ModeDisplay:
		sel, _ := flat.DisplaySelection()
		if sel == nil {
			return geometry.Rect{}, false
		}
		m, ok := c.layout.Find(sel.MonitorID)
		if !ok {
			log.Printf("Controller: selected display %q no longer exists", sel.MonitorID)
			return geometry.Rect{}, false
		}
		return c.layout.ToImageLocal(m.Rect), true
	case selection.ModeWindow:
		panic("controller: flattened selection is still in window mode")
	}
	return geometry.Rect{}, false
}
