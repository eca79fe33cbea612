package gui

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"region-capture/src/config"
	"region-capture/src/controller"
	"region-capture/src/eventloop"
	"region-capture/src/geometry"
	"region-capture/src/messages"
	"region-capture/src/monitor"
	"region-capture/src/overlay"
	"region-capture/src/window"
)

const (
	appID = "io.github.region-capture"
	// SurfaceID is the input surface of the single overlay window.
	SurfaceID = "overlay"
)

type Options struct {
	Config      *config.Config
	Backend     window.Backend
	PreSelect   controller.PreSelect
	AutoCapture bool
}

// Selector shows the capture in a fullscreen Fyne window and runs one
// selection session. Select must be called from the main goroutine and at
// most once per process.
type Selector struct {
	opts Options
}

func NewSelector(opts Options) *Selector {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	return &Selector{opts: opts}
}

func (s *Selector) Select(ctx context.Context, req overlay.Request) (geometry.Rect, bool, error) {
	if req.Capture == nil {
		return geometry.Rect{}, false, fmt.Errorf("missing capture")
	}

	layout := req.Layout.WithSurface(monitor.Monitor{ID: SurfaceID, Name: "Overlay", Rect: req.Layout.Area, Scale: 1})
	ctrl := controller.New(controller.Options{
		Layout:       layout,
		HandleRadius: s.opts.Config.HandleRadius,
		Backend:      s.opts.Backend,
		PreSelect:    s.opts.PreSelect,
		AutoCapture:  s.opts.AutoCapture,
	})
	if ctrl.Done() {
		log.Printf("OVERLAY: session decided before showing the overlay")
		return result(ctrl.Exit())
	}

	a := app.NewWithID(appID)
	w := a.NewWindow("region-capture")
	view := newSelectionView(req.Capture, req.Layout.Area, overlay.StyleFromConfig(s.opts.Config))
	loop := eventloop.New(ctrl, view)
	view.post = loop.Post

	w.SetPadded(false)
	w.SetFullScreen(true)
	w.SetContent(view)
	w.SetCloseIntercept(func() { loop.Post(messages.Close{}) })
	w.Canvas().Focus(view)

	type outcome struct {
		exit controller.ExitState
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		exit, err := loop.Run(ctx)
		done <- outcome{exit, err}
		fyne.Do(func() {
			w.Close()
			a.Quit()
		})
	}()

	log.Printf("OVERLAY: showing %dx%d capture", req.Capture.Bounds().Dx(), req.Capture.Bounds().Dy())
	w.ShowAndRun()

	// The window can go away without the loop noticing (app quit from outside).
	loop.Post(messages.Close{})
	out := <-done

	if out.err != nil {
		return geometry.Rect{}, false, out.err
	}
	return result(out.exit)
}

func result(exit controller.ExitState) (geometry.Rect, bool, error) {
	switch exit.Kind {
	case controller.ExitWithSelection:
		return exit.Rect, false, nil
	case controller.ExitOnly, controller.ExitNoSelection:
		return geometry.Rect{}, true, nil
	}
	return geometry.Rect{}, false, fmt.Errorf("overlay closed without a result")
}
