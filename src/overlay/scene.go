package overlay

import (
	"image/color"

	"region-capture/src/config"
	"region-capture/src/eventloop"
	"region-capture/src/geometry"
	"region-capture/src/monitor"
	"region-capture/src/selection"
)

// Style holds the drawing parameters read from the configuration.
type Style struct {
	LineWidth             int
	DisplayHighlightWidth int
	ModeTextSize          int
	FontFamily            string
	Selection             color.NRGBA
	Shade                 color.NRGBA
	Text                  color.NRGBA
}

func StyleFromConfig(cfg *config.Config) Style {
	if cfg == nil {
		cfg = config.Default()
	}
	return Style{
		LineWidth:             cfg.LineWidth,
		DisplayHighlightWidth: cfg.DisplayHighlightWidth,
		ModeTextSize:          cfg.ModeTextSize,
		FontFamily:            cfg.FontFamily,
		Selection:             cfg.SelectionColor.NRGBA(),
		Shade:                 cfg.ShadeColor.NRGBA(),
		Text:                  cfg.TextColor.NRGBA(),
	}
}

// Box is an axis-aligned rectangle. A nil Fill or zero StrokeWidth skips
// that part.
type Box struct {
	Rect        geometry.Rect
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth int
}

// Circle is a selection handle.
type Circle struct {
	Center      geometry.Point
	Radius      int
	Stroke      color.Color
	StrokeWidth int
}

type Label struct {
	Text  string
	Pos   geometry.Point
	Size  int
	Color color.Color
}

// Scene is one frame in image-local coordinates (relative to the combined
// area's origin). Frontends draw Shade, then Outlines, then Handles, then
// Labels.
type Scene struct {
	Shade    []Box
	Outlines []Box
	Handles  []Circle
	Labels   []Label
}

// BuildScene turns a snapshot into drawable primitives.
func BuildScene(snap eventloop.Snapshot, style Style) Scene {
	layout := snap.Layout
	toLocal := func(r geometry.Rect) geometry.Rect { return layout.ToImageLocal(r) }
	area := toLocal(layout.Area)

	var scene Scene
	highlight, ok := highlightRect(snap.Selection, layout)
	if !ok {
		scene.Shade = []Box{{Rect: area, Fill: style.Shade}}
	} else {
		scene.Shade = shadeAround(area, toLocal(highlight), style.Shade)
	}

	switch snap.Selection.Mode() {
	case selection.ModeRectangle, selection.ModeWindow:
		if ok {
			scene.Outlines = append(scene.Outlines, Box{
				Rect:        toLocal(highlight),
				Stroke:      style.Selection,
				StrokeWidth: style.LineWidth,
			})
			for _, h := range selection.Handles(highlight.ToExtents()) {
				scene.Handles = append(scene.Handles, Circle{
					Center:      h.Point.Sub(layout.Area.Origin()),
					Radius:      snap.HandleRadius,
					Stroke:      style.Selection,
					StrokeWidth: style.LineWidth,
				})
			}
		}
	case selection.ModeDisplay:
		if ok {
			scene.Outlines = append(scene.Outlines, Box{
				Rect:        toLocal(highlight),
				Stroke:      style.Selection,
				StrokeWidth: style.DisplayHighlightWidth,
			})
		}
	}

	for _, m := range layout.Monitors {
		r := toLocal(m.Rect)
		scene.Labels = append(scene.Labels, Label{
			Text:  ModeText(snap.Selection.Mode(), snap.WindowModeAvailable),
			Pos:   geometry.Point{X: r.X + r.Width/2, Y: r.Y + style.ModeTextSize},
			Size:  style.ModeTextSize,
			Color: style.Text,
		})
	}

	return scene
}

// ModeText is the label shown on every monitor.
func ModeText(mode selection.Mode, windowModeAvailable bool) string {
	next := "Display"
	switch mode {
	case selection.ModeDisplay:
		next = "Rectangle"
		if windowModeAvailable {
			next = "Window"
		}
	case selection.ModeWindow:
		next = "Rectangle"
	}
	return mode.String() + " (Tab: " + next + ")"
}

// highlightRect returns the global rect the current selection covers.
func highlightRect(sel selection.Selection, layout monitor.Layout) (geometry.Rect, bool) {
	switch sel.Mode() {
	case selection.ModeRectangle:
		if r, _ := sel.RectangleSelection(); r != nil {
			return r.Extents.ToRect(), true
		}
	case selection.ModeDisplay:
		if d, _ := sel.DisplaySelection(); d != nil {
			if m, ok := layout.Find(d.MonitorID); ok {
				return m.Rect, true
			}
		}
	case selection.ModeWindow:
		if w, _ := sel.WindowSelection(); w != nil {
			return w.Rect, true
		}
	}
	return geometry.Rect{}, false
}

// shadeAround covers area minus hole with up to four boxes. hole is clipped
// to area first.
func shadeAround(area, hole geometry.Rect, fill color.Color) []Box {
	hole, ok := hole.Constrain(area)
	if !ok {
		return []Box{{Rect: area, Fill: fill}}
	}

	areaRight := area.X + area.Width
	areaBottom := area.Y + area.Height
	left, top := hole.X, hole.Y
	right := min(hole.X+hole.Width, areaRight)
	bottom := min(hole.Y+hole.Height, areaBottom)
	candidates := []geometry.Rect{
		geometry.NewRect(area.X, area.Y, area.Width, top-area.Y),
		geometry.NewRect(area.X, bottom, area.Width, areaBottom-bottom),
		geometry.NewRect(area.X, top, left-area.X, bottom-top),
		geometry.NewRect(right, top, areaRight-right, bottom-top),
	}

	var boxes []Box
	for _, r := range candidates {
		if !r.Empty() {
			boxes = append(boxes, Box{Rect: r, Fill: fill})
		}
	}
	return boxes
}
