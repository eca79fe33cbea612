package selection

import (
	"fmt"

	"region-capture/src/geometry"
)

// ModifierKind names the part of a rectangle that is being dragged.
type ModifierKind int

const (
	Left ModifierKind = iota
	Right
	Top
	Bottom
	TopRight
	BottomRight
	BottomLeft
	TopLeft
	Center
)

var modifierNames = [...]string{"Left", "Right", "Top", "Bottom", "TopRight", "BottomRight", "BottomLeft", "TopLeft", "Center"}

func (k ModifierKind) String() string {
	if k >= 0 && int(k) < len(modifierNames) {
		return modifierNames[k]
	}
	return fmt.Sprintf("ModifierKind(%d)", int(k))
}

// Modifier is the drag mode attached to a rectangle selection. For Center,
// Origin is the press position and Snapshot the extents at press time; every
// motion is applied to the snapshot so long drags never accumulate drift.
type Modifier struct {
	Kind     ModifierKind
	Origin   geometry.Point
	Snapshot geometry.Extents
}

// HandleState reports what a press did to an existing rectangle selection.
type HandleState int

const (
	// Unchanged means the press missed the selection; the caller starts over.
	Unchanged HandleState = iota
	HandlesChanged
	CenterChanged
)

func (s HandleState) String() string {
	switch s {
	case HandlesChanged:
		return "HandlesChanged"
	case CenterChanged:
		return "CenterChanged"
	default:
		return "Unchanged"
	}
}

// Handle is a hit-test anchor on the selection border.
type Handle struct {
	Point geometry.Point
	Kind  ModifierKind
}

// Handles returns the eight anchors of e's normalized rect in hit-test order.
func Handles(e geometry.Extents) []Handle {
	r := e.ToRect()
	left, right := r.X, r.X+r.Width
	top, bottom := r.Y, r.Y+r.Height
	midX, midY := r.X+r.Width/2, r.Y+r.Height/2

	return []Handle{
		{geometry.Point{X: left, Y: midY}, Left},
		{geometry.Point{X: right, Y: midY}, Right},
		{geometry.Point{X: midX, Y: top}, Top},
		{geometry.Point{X: midX, Y: bottom}, Bottom},
		{geometry.Point{X: right, Y: top}, TopRight},
		{geometry.Point{X: right, Y: bottom}, BottomRight},
		{geometry.Point{X: left, Y: bottom}, BottomLeft},
		{geometry.Point{X: left, Y: top}, TopLeft},
	}
}

// ProcessHandles hit-tests pos against sel. The first handle within radius
// wins; otherwise a press inside the rect starts a move. On a hit sel is
// marked active with the matching modifier.
func ProcessHandles(sel *RectangleSelection, pos geometry.Point, radius int) HandleState {
	if sel == nil {
		return Unchanged
	}

	for _, h := range Handles(sel.Extents) {
		if pos.DistanceTo(h.Point) <= float64(radius) {
			sel.Modifier = &Modifier{Kind: h.Kind}
			sel.Active = true
			return HandlesChanged
		}
	}

	if sel.Extents.ToRect().Contains(pos) {
		sel.Modifier = &Modifier{Kind: Center, Origin: pos, Snapshot: sel.Extents}
		sel.Active = true
		return CenterChanged
	}

	return Unchanged
}

// Drag applies a pointer motion to an active selection. Edge and corner
// drags are not clamped; a move is clamped into area.
func (sel *RectangleSelection) Drag(pos geometry.Point, area geometry.Rect) {
	if sel == nil || !sel.Active {
		return
	}

	e := &sel.Extents
	if sel.Modifier == nil {
		e.EndX, e.EndY = pos.X, pos.Y
		return
	}

	switch sel.Modifier.Kind {
	case Left:
		e.StartX = pos.X
	case Right:
		e.EndX = pos.X
	case Top:
		e.StartY = pos.Y
	case Bottom:
		e.EndY = pos.Y
	case TopRight:
		e.EndX, e.StartY = pos.X, pos.Y
	case BottomRight:
		e.EndX, e.EndY = pos.X, pos.Y
	case BottomLeft:
		e.StartX, e.EndY = pos.X, pos.Y
	case TopLeft:
		e.StartX, e.StartY = pos.X, pos.Y
	case Center:
		moved := sel.Modifier.Snapshot.Translate(pos.Sub(sel.Modifier.Origin))
		*e = moved.ToRectClamped(area).ToExtents()
	}
}

// Release ends the drag. The modifier is kept.
func (sel *RectangleSelection) Release() {
	if sel != nil {
		sel.Active = false
	}
}
