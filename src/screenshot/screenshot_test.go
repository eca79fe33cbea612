package screenshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"region-capture/src/geometry"
)

// fakeDesktop paints every pixel with its global coordinates so crops can be
// checked exactly.
type fakeDesktop struct {
	displays []image.Rectangle
	err      error
	captured []image.Rectangle
}

func (f *fakeDesktop) NumActiveDisplays() int { return len(f.displays) }

func (f *fakeDesktop) GetDisplayBounds(i int) image.Rectangle { return f.displays[i] }

func (f *fakeDesktop) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	f.captured = append(f.captured, r)
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, pixelAt(x, y))
		}
	}
	return img, nil
}

func pixelAt(x, y int) color.RGBA {
	return color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255}
}

func TestMonitors(t *testing.T) {
	src := &fakeDesktop{displays: []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(-1280, 0, 0, 1024),
	}}
	got, err := Monitors(src)
	if err != nil {
		t.Fatalf("Monitors failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 monitors, got %d", len(got))
	}
	if got[1].ID != "display-1" || got[1].Rect != geometry.NewRect(-1280, 0, 1280, 1024) {
		t.Fatalf("Unexpected second monitor %v", got[1])
	}
}

func TestMonitorsNoDisplays(t *testing.T) {
	if _, err := Monitors(&fakeDesktop{}); err == nil {
		t.Fatal("Expected error without displays")
	}
}

func TestCaptureNormalizesOrigin(t *testing.T) {
	src := &fakeDesktop{}
	img, err := Capture(src, geometry.NewRect(-10, -5, 20, 10))
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Fatalf("Expected bounds at origin, got %v", img.Bounds())
	}
	if got, want := img.RGBAAt(0, 0), pixelAt(-10, -5); got != want {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if src.captured[0] != image.Rect(-10, -5, 10, 5) {
		t.Fatalf("Unexpected capture rect %v", src.captured[0])
	}
}

func TestCaptureErrors(t *testing.T) {
	if _, err := Capture(&fakeDesktop{}, geometry.Rect{}); err == nil {
		t.Error("Expected error for empty area")
	}
	boom := errors.New("no X server")
	_, err := Capture(&fakeDesktop{err: boom}, geometry.NewRect(0, 0, 10, 10))
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}

func TestCrop(t *testing.T) {
	img, _ := Capture(&fakeDesktop{}, geometry.NewRect(0, 0, 100, 100))

	tests := []struct {
		name    string
		rect    geometry.Rect
		want    image.Rectangle
		origin  color.RGBA
		wantErr bool
	}{
		{"Inside", geometry.NewRect(10, 20, 30, 40), image.Rect(0, 0, 30, 40), pixelAt(10, 20), false},
		{"Clipped", geometry.NewRect(90, 90, 30, 30), image.Rect(0, 0, 10, 10), pixelAt(90, 90), false},
		{"Negative origin", geometry.NewRect(-5, -5, 10, 10), image.Rect(0, 0, 5, 5), pixelAt(0, 0), false},
		{"Outside", geometry.NewRect(200, 200, 10, 10), image.Rectangle{}, color.RGBA{}, true},
		{"Zero size", geometry.NewRect(10, 10, 0, 0), image.Rectangle{}, color.RGBA{}, true},
		{"Zero width", geometry.NewRect(10, 10, 0, 30), image.Rectangle{}, color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Crop(img, tt.rect)
			if tt.rect.Empty() && !errors.Is(err, ErrEmptySelection) {
				t.Fatalf("Expected ErrEmptySelection, got %v", err)
			}
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %v", out.Bounds())
				}
				return
			}
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if out.Bounds() != tt.want {
				t.Fatalf("Expected bounds %v, got %v", tt.want, out.Bounds())
			}
			if got := out.RGBAAt(0, 0); got != tt.origin {
				t.Fatalf("Expected first pixel %v, got %v", tt.origin, got)
			}
		})
	}
}

func TestEncodePNG(t *testing.T) {
	img, _ := Capture(&fakeDesktop{}, geometry.NewRect(0, 0, 4, 3))
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", cfg.Width, cfg.Height)
	}
}
