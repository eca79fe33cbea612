package monitor

import (
	"testing"

	"region-capture/src/geometry"
)

func dualLayout() Layout {
	return NewLayout([]Monitor{
		{ID: "display-0", Name: "DP-1", Rect: geometry.NewRect(0, 0, 1920, 1080)},
		{ID: "display-1", Name: "HDMI-A-1", Rect: geometry.NewRect(-1280, -200, 1280, 1024)},
	})
}

func TestNewLayoutArea(t *testing.T) {
	l := dualLayout()
	want := geometry.NewRect(-1280, -200, 3200, 1280)
	if l.Area != want {
		t.Fatalf("Expected area %v, got %v", want, l.Area)
	}
}

func TestNewLayoutEmpty(t *testing.T) {
	if l := NewLayout(nil); !l.Area.IsZero() {
		t.Fatalf("Expected zero area, got %v", l.Area)
	}
}

func TestToGlobal(t *testing.T) {
	l := dualLayout()
	tests := []struct {
		name string
		id   string
		x, y float64
		want geometry.Point
		ok   bool
	}{
		{"Primary", "display-0", 100, 100, geometry.Point{X: 100, Y: 100}, true},
		{"Left of primary", "display-1", 10.4, 20.6, geometry.Point{X: -1270, Y: -179}, true},
		{"Unknown surface", "display-9", 1, 1, geometry.Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.ToGlobal(tt.id, tt.x, tt.y)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Expected %v/%v, got %v/%v", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestToGlobalScaled(t *testing.T) {
	m := Monitor{ID: "overlay", Rect: geometry.NewRect(-1280, -200, 3200, 1280), Scale: 2}
	if got, want := m.ToGlobal(10, 15), (geometry.Point{X: -1260, Y: -170}); got != want {
		t.Fatalf("Expected %v, got %v", want, got)
	}
}

func TestAt(t *testing.T) {
	l := dualLayout()
	if m, ok := l.At(geometry.Point{X: -5, Y: 0}); !ok || m.ID != "display-1" {
		t.Fatalf("Expected display-1, got %v/%v", m, ok)
	}
	if m, ok := l.At(geometry.Point{X: 0, Y: 0}); !ok || m.ID != "display-0" {
		t.Fatalf("Expected display-0, got %v/%v", m, ok)
	}
	if _, ok := l.At(geometry.Point{X: -5, Y: 1000}); ok {
		t.Fatal("Expected no monitor below display-1")
	}
}

func TestToImageLocal(t *testing.T) {
	l := dualLayout()
	got := l.ToImageLocal(geometry.NewRect(0, 0, 1920, 1080))
	if want := geometry.NewRect(1280, 200, 1920, 1080); got != want {
		t.Fatalf("Expected %v, got %v", want, got)
	}
}

func TestWithSurface(t *testing.T) {
	base := dualLayout()
	l := base.WithSurface(Monitor{ID: "overlay", Rect: base.Area, Scale: 1})

	got, ok := l.ToGlobal("overlay", 0, 0)
	if !ok || got != (geometry.Point{X: -1280, Y: -200}) {
		t.Fatalf("Expected overlay origin at area origin, got %v/%v", got, ok)
	}
	if _, ok := l.Find("overlay"); ok {
		t.Fatal("Expected overlay surface to stay out of display lookups")
	}
	if _, ok := base.Surface("overlay"); ok {
		t.Fatal("Expected WithSurface to leave the original layout untouched")
	}
}

func TestWithSurfaceReplaces(t *testing.T) {
	base := dualLayout()
	l := base.WithSurface(Monitor{ID: "overlay", Rect: base.Area, Scale: 1})
	l = l.WithSurface(Monitor{ID: "overlay", Rect: base.Area, Scale: 2})

	got, _ := l.ToGlobal("overlay", 10, 10)
	if want := (geometry.Point{X: -1260, Y: -180}); got != want {
		t.Fatalf("Expected the rescaled surface to win, got %v", got)
	}
}
