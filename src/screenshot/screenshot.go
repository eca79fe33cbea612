package screenshot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/kbinani/screenshot"

	"region-capture/src/geometry"
	"region-capture/src/monitor"
)

// DisplaySource is the subset of the capture library the package depends on.
// Tests swap it out for an in-memory desktop.
type DisplaySource interface {
	NumActiveDisplays() int
	GetDisplayBounds(i int) image.Rectangle
	CaptureRect(r image.Rectangle) (*image.RGBA, error)
}

type systemSource struct{}

func (systemSource) NumActiveDisplays() int { return screenshot.NumActiveDisplays() }

func (systemSource) GetDisplayBounds(i int) image.Rectangle { return screenshot.GetDisplayBounds(i) }

func (systemSource) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(r)
}

// System captures from the real desktop.
var System DisplaySource = systemSource{}

// Monitors lists the active displays in global coordinates. IDs are stable
// for the lifetime of one session ("display-0", "display-1", ...).
func Monitors(src DisplaySource) ([]monitor.Monitor, error) {
	n := src.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays found")
	}
	monitors := make([]monitor.Monitor, 0, n)
	for i := 0; i < n; i++ {
		b := src.GetDisplayBounds(i)
		monitors = append(monitors, monitor.Monitor{
			ID:    fmt.Sprintf("display-%d", i),
			Name:  fmt.Sprintf("Display %d", i+1),
			Rect:  FromImageRect(b),
			Scale: 1,
		})
	}
	return monitors, nil
}

// Capture grabs area (global coordinates) as one image whose origin is the
// area's origin.
func Capture(src DisplaySource, area geometry.Rect) (*image.RGBA, error) {
	if area.Empty() {
		return nil, fmt.Errorf("invalid capture area %v", area)
	}
	img, err := src.CaptureRect(ToImageRect(area))
	if err != nil {
		return nil, fmt.Errorf("failed to capture %v: %w", area, err)
	}
	return normalize(img), nil
}

// ErrEmptySelection is returned by Crop for a selection with no width or height.
var ErrEmptySelection = errors.New("selection is empty")

// Crop copies rect (image-local) out of img. The rect is clipped to the image
// first; an error is returned when nothing is left.
func Crop(img *image.RGBA, rect geometry.Rect) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("cannot capture %v: %w", rect, ErrEmptySelection)
	}
	b := img.Bounds()
	clipped := ToImageRect(rect).Add(b.Min).Intersect(b)
	if clipped.Empty() {
		return nil, fmt.Errorf("selection %v lies outside the %dx%d capture", rect, b.Dx(), b.Dy())
	}

	out := image.NewRGBA(image.Rect(0, 0, clipped.Dx(), clipped.Dy()))
	draw.Draw(out, out.Bounds(), img, clipped.Min, draw.Src)
	return out, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %v", err)
	}
	return buf.Bytes(), nil
}

func ToImageRect(r geometry.Rect) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func FromImageRect(r image.Rectangle) geometry.Rect {
	return geometry.NewRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// normalize moves img's bounds to start at 0,0.
func normalize(img *image.RGBA) *image.RGBA {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
