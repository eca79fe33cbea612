package overlay

import (
	"context"
	"image"

	"region-capture/src/geometry"
	"region-capture/src/monitor"
)

// Request is what a selector needs to show one session: the frozen capture
// of the combined monitor area and the layout it was taken from.
type Request struct {
	Capture *image.RGBA
	Layout  monitor.Layout
}

// Selector defines a synchronous region-selection API.
// The call is blocking and MUST be invoked from a single goroutine.
// Returns (rect, cancelled, error). rect is image-local (relative to the
// capture's origin). If cancelled is true, rect is undefined and err is nil.
type Selector interface {
	Select(ctx context.Context, req Request) (geometry.Rect, bool, error)
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(ctx context.Context, req Request) (geometry.Rect, bool, error)

func (f SelectorFunc) Select(ctx context.Context, req Request) (geometry.Rect, bool, error) {
	return f(ctx, req)
}
