package eventloop

import (
	"context"
	"log"

	"region-capture/src/controller"
	"region-capture/src/geometry"
	"region-capture/src/messages"
	"region-capture/src/monitor"
	"region-capture/src/selection"
)

// Snapshot is everything a frontend needs to draw one frame.
type Snapshot struct {
	Selection           selection.Selection
	Layout              monitor.Layout
	HandleRadius        int
	WindowModeAvailable bool
	// Pointer is the last known global pointer position; PointerInside is
	// false while the pointer is outside every surface.
	Pointer       geometry.Point
	PointerInside bool
}

// Renderer draws snapshots. Render is always called from the loop goroutine.
type Renderer interface {
	Render(Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Snapshot)

func (f RendererFunc) Render(s Snapshot) { f(s) }

// Loop is the single-threaded coordinator between a frontend and the
// selection controller. Frontends post input from any goroutine; every
// event is applied to the controller from the goroutine running Run.
type Loop struct {
	ctrl     *controller.Controller
	renderer Renderer
	events   chan messages.Message
	done     chan struct{}

	pointer       geometry.Point
	pointerInside bool
	dragging      bool
}

// New creates a loop driving ctrl. A nil renderer is allowed.
func New(ctrl *controller.Controller, renderer Renderer) *Loop {
	if renderer == nil {
		renderer = RendererFunc(func(Snapshot) {})
	}
	return &Loop{
		ctrl:     ctrl,
		renderer: renderer,
		events:   make(chan messages.Message, 64),
		done:     make(chan struct{}),
	}
}

// Post queues msg for the loop. It returns false once the loop has finished.
func (l *Loop) Post(msg messages.Message) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- msg:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Run renders the initial state and applies events until the session ends
// or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) (controller.ExitState, error) {
	defer close(l.done)

	if l.ctrl.Done() {
		log.Printf("Event loop: session finished before the first frame (%v)", l.ctrl.Exit().Kind)
		return l.ctrl.Exit(), nil
	}
	l.render()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Event loop: context done: %v", ctx.Err())
			return controller.ExitState{}, ctx.Err()
		case msg := <-l.events:
			if l.handle(msg) {
				l.render()
			}
			if l.ctrl.Done() {
				exit := l.ctrl.Exit()
				log.Printf("Event loop: exiting with %v %v", exit.Kind, exit.Rect)
				return exit, nil
			}
		}
	}
}

func (l *Loop) render() {
	l.renderer.Render(Snapshot{
		Selection:           l.ctrl.Selection(),
		Layout:              l.ctrl.Layout(),
		HandleRadius:        l.ctrl.HandleRadius(),
		WindowModeAvailable: l.ctrl.WindowModeAvailable(),
		Pointer:             l.pointer,
		PointerInside:       l.pointerInside,
	})
}

// handle applies msg and reports whether a redraw is needed.
func (l *Loop) handle(msg messages.Message) bool {
	switch m := msg.(type) {
	case messages.PointerEnter:
		l.pointerInside = l.track(m.Surface, m.X, m.Y)
		return true
	case messages.PointerLeave:
		l.pointerInside = false
		return true
	case messages.PointerMotion:
		if !l.track(m.Surface, m.X, m.Y) {
			return false
		}
		l.pointerInside = true
		if l.dragging {
			l.ctrl.Motion(l.pointer)
		}
		return true
	case messages.PointerPress:
		if !l.track(m.Surface, m.X, m.Y) {
			log.Printf("Event loop: press on unknown surface %q", m.Surface)
			return false
		}
		l.dragging = true
		l.ctrl.Press(m.Surface, l.pointer)
		return true
	case messages.PointerRelease:
		l.track(m.Surface, m.X, m.Y)
		l.dragging = false
		l.ctrl.Release()
		return true
	case messages.KeyPressed:
		return l.key(m.Key)
	case messages.SurfaceScale:
		if !l.ctrl.SetSurfaceScale(m.Surface, m.Scale) {
			log.Printf("Event loop: scale for unknown surface %q", m.Surface)
		}
		return false
	case messages.Close:
		l.ctrl.Cancel()
		return false
	default:
		log.Printf("Event loop: ignoring %s", msg.Type())
		return false
	}
}

func (l *Loop) track(surface string, x, y float64) bool {
	pos, ok := l.ctrl.ToGlobal(surface, x, y)
	if ok {
		l.pointer = pos
	}
	return ok
}

func (l *Loop) key(k messages.Key) bool {
	switch k {
	case messages.KeyEscape:
		l.ctrl.Cancel()
		return false
	case messages.KeyTab:
		l.dragging = false
		l.ctrl.CycleMode()
		return true
	case messages.KeyReturn:
		l.ctrl.Confirm()
		return false
	}
	return false
}
