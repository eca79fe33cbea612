package gui

import (
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"region-capture/src/eventloop"
	"region-capture/src/geometry"
	"region-capture/src/messages"
	"region-capture/src/overlay"
)

// selectionView shows the frozen capture with the scene drawn on top and
// turns Fyne input into loop messages. Positions are sent in window units;
// the loop multiplies them by the surface scale.
type selectionView struct {
	widget.BaseWidget

	area  geometry.Rect
	style overlay.Style
	post  func(messages.Message) bool

	background *canvas.Image
	layer      *fyne.Container
	root       *fyne.Container

	scale  float64
	latest overlay.Scene
}

var (
	_ desktop.Mouseable = (*selectionView)(nil)
	_ desktop.Hoverable = (*selectionView)(nil)
	_ fyne.Draggable    = (*selectionView)(nil)
	_ fyne.Focusable    = (*selectionView)(nil)
	_ fyne.Tabbable     = (*selectionView)(nil)
)

func newSelectionView(img *image.RGBA, area geometry.Rect, style overlay.Style) *selectionView {
	v := &selectionView{
		area:  area,
		style: style,
		post:  func(messages.Message) bool { return false },
		scale: 1,
	}
	v.background = canvas.NewImageFromImage(img)
	v.background.FillMode = canvas.ImageFillStretch
	v.background.ScaleMode = canvas.ImageScaleFastest
	v.layer = container.NewWithoutLayout()
	v.root = container.NewWithoutLayout(v.background, v.layer)
	v.ExtendBaseWidget(v)
	return v
}

func (v *selectionView) CreateRenderer() fyne.WidgetRenderer {
	return &viewRenderer{view: v}
}

// Render implements eventloop.Renderer. It is called from the loop goroutine.
func (v *selectionView) Render(snap eventloop.Snapshot) {
	scene := overlay.BuildScene(snap, v.style)
	fyne.Do(func() {
		v.latest = scene
		v.redraw()
	})
}

// resized recomputes the image scale. Runs on the Fyne goroutine.
func (v *selectionView) resized(size fyne.Size) {
	scale := fitScale(v.area, size)
	if scale == v.scale {
		return
	}
	v.scale = scale
	log.Printf("OVERLAY: %v units for a %v capture, scale %.3f", size, v.area, scale)
	v.post(messages.SurfaceScale{Surface: SurfaceID, Scale: scale})
	v.redraw()
}

func (v *selectionView) redraw() {
	v.background.Move(fyne.NewPos(0, 0))
	v.background.Resize(fyne.NewSize(v.units(v.area.Width), v.units(v.area.Height)))

	var objs []fyne.CanvasObject
	for _, b := range v.latest.Shade {
		objs = append(objs, v.box(b))
	}
	for _, b := range v.latest.Outlines {
		objs = append(objs, v.box(b))
	}
	for _, h := range v.latest.Handles {
		c := canvas.NewCircle(color.Transparent)
		c.StrokeColor = h.Stroke
		c.StrokeWidth = v.units(h.StrokeWidth)
		r := v.units(h.Radius)
		c.Move(fyne.NewPos(v.units(h.Center.X)-r, v.units(h.Center.Y)-r))
		c.Resize(fyne.NewSize(2*r, 2*r))
		objs = append(objs, c)
	}
	for _, l := range v.latest.Labels {
		t := canvas.NewText(l.Text, l.Color)
		t.TextSize = v.units(l.Size)
		t.TextStyle = fyne.TextStyle{Monospace: v.style.FontFamily == "monospace", Bold: true}
		size := t.MinSize()
		t.Move(fyne.NewPos(v.units(l.Pos.X)-size.Width/2, v.units(l.Pos.Y)-size.Height/2))
		t.Resize(size)
		objs = append(objs, t)
	}

	v.layer.Objects = objs
	v.layer.Refresh()
}

func (v *selectionView) box(b overlay.Box) fyne.CanvasObject {
	fill := b.Fill
	if fill == nil {
		fill = color.Transparent
	}
	r := canvas.NewRectangle(fill)
	if b.StrokeWidth > 0 && b.Stroke != nil {
		r.StrokeColor = b.Stroke
		r.StrokeWidth = v.units(b.StrokeWidth)
	}
	r.Move(fyne.NewPos(v.units(b.Rect.X), v.units(b.Rect.Y)))
	r.Resize(fyne.NewSize(v.units(b.Rect.Width), v.units(b.Rect.Height)))
	return r
}

func (v *selectionView) units(px int) float32 {
	return float32(float64(px) / v.scale)
}

func (v *selectionView) MouseIn(e *desktop.MouseEvent) {
	v.post(messages.PointerEnter{Surface: SurfaceID, X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

func (v *selectionView) MouseMoved(e *desktop.MouseEvent) {
	v.post(messages.PointerMotion{Surface: SurfaceID, X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

func (v *selectionView) MouseOut() {
	v.post(messages.PointerLeave{Surface: SurfaceID})
}

func (v *selectionView) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(v); c != nil {
		c.Focus(v)
	}
	v.post(messages.PointerPress{Surface: SurfaceID, X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

func (v *selectionView) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	v.post(messages.PointerRelease{Surface: SurfaceID, X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

// Dragged covers motion while the button is held, which Fyne does not
// report through MouseMoved.
func (v *selectionView) Dragged(e *fyne.DragEvent) {
	v.post(messages.PointerMotion{Surface: SurfaceID, X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

func (v *selectionView) DragEnd() {}

func (v *selectionView) FocusGained() {}

func (v *selectionView) FocusLost() {}

func (v *selectionView) TypedRune(rune) {}

func (v *selectionView) TypedKey(e *fyne.KeyEvent) {
	if k, ok := keyFor(e.Name); ok {
		v.post(messages.KeyPressed{Key: k})
	}
}

// AcceptsTab keeps Tab from moving focus away; it cycles modes instead.
func (v *selectionView) AcceptsTab() bool { return true }

func keyFor(name fyne.KeyName) (messages.Key, bool) {
	switch name {
	case fyne.KeyEscape:
		return messages.KeyEscape, true
	case fyne.KeyTab:
		return messages.KeyTab, true
	case fyne.KeyReturn, fyne.KeyEnter:
		return messages.KeyReturn, true
	}
	return "", false
}

// fitScale returns capture pixels per window unit so the whole area fits in
// size without distortion.
func fitScale(area geometry.Rect, size fyne.Size) float64 {
	if size.Width <= 0 || size.Height <= 0 || area.Empty() {
		return 1
	}
	return max(float64(area.Width)/float64(size.Width), float64(area.Height)/float64(size.Height))
}

type viewRenderer struct {
	view *selectionView
}

func (r *viewRenderer) Layout(size fyne.Size) {
	r.view.root.Resize(size)
	r.view.resized(size)
}

func (r *viewRenderer) MinSize() fyne.Size { return fyne.NewSize(1, 1) }

func (r *viewRenderer) Refresh() { r.view.redraw() }

func (r *viewRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.view.root} }

func (r *viewRenderer) Destroy() {}
