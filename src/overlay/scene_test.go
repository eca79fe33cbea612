package overlay

import (
	"context"
	"testing"

	"region-capture/src/config"
	"region-capture/src/eventloop"
	"region-capture/src/geometry"
	"region-capture/src/monitor"
	"region-capture/src/selection"
	"region-capture/src/window"
)

func testLayout() monitor.Layout {
	return monitor.NewLayout([]monitor.Monitor{
		{ID: "display-0", Rect: geometry.NewRect(0, 0, 1000, 800)},
		{ID: "display-1", Rect: geometry.NewRect(-500, 0, 500, 400)},
	})
}

func shadeArea(boxes []Box) int {
	total := 0
	for _, b := range boxes {
		total += b.Rect.Width * b.Rect.Height
	}
	return total
}

func TestSceneWithoutSelection(t *testing.T) {
	snap := eventloop.Snapshot{Layout: testLayout(), HandleRadius: 10}
	scene := BuildScene(snap, StyleFromConfig(nil))

	if len(scene.Shade) != 1 || scene.Shade[0].Rect != geometry.NewRect(0, 0, 1500, 800) {
		t.Fatalf("Expected one full-area shade, got %+v", scene.Shade)
	}
	if len(scene.Outlines) != 0 || len(scene.Handles) != 0 {
		t.Fatalf("Expected nothing highlighted, got %+v", scene)
	}
	if len(scene.Labels) != 2 {
		t.Fatalf("Expected a label per monitor, got %d", len(scene.Labels))
	}
}

func TestSceneRectangle(t *testing.T) {
	sel := selection.Rectangle(&selection.RectangleSelection{
		Extents: geometry.Extents{StartX: 300, StartY: 250, EndX: 100, EndY: 100},
	})
	snap := eventloop.Snapshot{Selection: sel, Layout: testLayout(), HandleRadius: 10}
	style := StyleFromConfig(nil)
	scene := BuildScene(snap, style)

	// Global 100,100 maps to image-local 600,100.
	hole := geometry.NewRect(600, 100, 200, 150)
	if len(scene.Outlines) != 1 || scene.Outlines[0].Rect != hole {
		t.Fatalf("Expected outline %v, got %+v", hole, scene.Outlines)
	}
	if scene.Outlines[0].StrokeWidth != style.LineWidth {
		t.Fatalf("Expected line width %d, got %d", style.LineWidth, scene.Outlines[0].StrokeWidth)
	}
	if got, want := shadeArea(scene.Shade), 1500*800-200*150; got != want {
		t.Fatalf("Expected shade area %d, got %d", want, got)
	}
	if len(scene.Handles) != 8 {
		t.Fatalf("Expected 8 handles, got %d", len(scene.Handles))
	}
	if scene.Handles[0].Center != (geometry.Point{X: 600, Y: 175}) || scene.Handles[0].Radius != 10 {
		t.Fatalf("Unexpected left handle %+v", scene.Handles[0])
	}
}

func TestSceneDisplay(t *testing.T) {
	sel := selection.Display(&selection.DisplaySelection{MonitorID: "display-1"})
	snap := eventloop.Snapshot{Selection: sel, Layout: testLayout()}
	style := StyleFromConfig(nil)
	scene := BuildScene(snap, style)

	if len(scene.Outlines) != 1 || scene.Outlines[0].Rect != geometry.NewRect(0, 0, 500, 400) {
		t.Fatalf("Unexpected outline %+v", scene.Outlines)
	}
	if scene.Outlines[0].StrokeWidth != config.DefaultDisplayHighlightWidth {
		t.Fatalf("Expected highlight width, got %d", scene.Outlines[0].StrokeWidth)
	}
	if len(scene.Handles) != 0 {
		t.Fatal("Expected no handles in display mode")
	}
	if got, want := shadeArea(scene.Shade), 1500*800-500*400; got != want {
		t.Fatalf("Expected shade area %d, got %d", want, got)
	}
}

func TestSceneWindow(t *testing.T) {
	sel := selection.Window(&window.Descriptor{Rect: geometry.NewRect(10, 10, 100, 50)})
	snap := eventloop.Snapshot{Selection: sel, Layout: testLayout(), HandleRadius: 10, WindowModeAvailable: true}
	scene := BuildScene(snap, StyleFromConfig(nil))

	if len(scene.Outlines) != 1 || scene.Outlines[0].Rect != geometry.NewRect(510, 10, 100, 50) {
		t.Fatalf("Unexpected outline %+v", scene.Outlines)
	}
	if len(scene.Handles) != 8 {
		t.Fatalf("Expected handles on a window selection, got %d", len(scene.Handles))
	}
	if scene.Labels[0].Text != "Window (Tab: Rectangle)" {
		t.Fatalf("Unexpected label %q", scene.Labels[0].Text)
	}
}

func TestSceneRectanglePastArea(t *testing.T) {
	sel := selection.Rectangle(&selection.RectangleSelection{
		Extents: geometry.Extents{StartX: -600, StartY: -100, EndX: 100, EndY: 100},
	})
	snap := eventloop.Snapshot{Selection: sel, Layout: testLayout(), HandleRadius: 10}
	scene := BuildScene(snap, StyleFromConfig(nil))

	if want := geometry.NewRect(-100, -100, 700, 200); len(scene.Outlines) != 1 || scene.Outlines[0].Rect != want {
		t.Fatalf("Expected unclipped outline %v, got %+v", want, scene.Outlines)
	}
	// Only the part inside the area is left unshaded.
	if got, want := shadeArea(scene.Shade), 1500*800-600*100; got != want {
		t.Fatalf("Expected shade area %d, got %d", want, got)
	}
	for _, b := range scene.Shade {
		if b.Rect.X < 0 || b.Rect.Y < 0 || b.Rect.X+b.Rect.Width > 1500 || b.Rect.Y+b.Rect.Height > 800 {
			t.Fatalf("Shade box %v leaves the area", b.Rect)
		}
	}
}

func TestShadeAroundClipsHole(t *testing.T) {
	area := geometry.NewRect(0, 0, 100, 100)
	boxes := shadeAround(area, geometry.NewRect(-50, -50, 100, 100), nil)
	if got, want := shadeArea(boxes), 100*100-50*50; got != want {
		t.Fatalf("Expected shade area %d, got %d", want, got)
	}

	boxes = shadeAround(area, geometry.NewRect(200, 200, 10, 10), nil)
	if len(boxes) != 1 || boxes[0].Rect != area {
		t.Fatalf("Expected full shade for a hole outside the area, got %+v", boxes)
	}

	boxes = shadeAround(area, geometry.NewRect(50, 50, 100, 100), nil)
	if got, want := shadeArea(boxes), 100*100-50*50; got != want {
		t.Fatalf("Expected far edges clipped to the area, got shade area %d", got)
	}
}

func TestModeText(t *testing.T) {
	tests := []struct {
		mode      selection.Mode
		available bool
		want      string
	}{
		{selection.ModeRectangle, false, "Rectangle (Tab: Display)"},
		{selection.ModeDisplay, false, "Display (Tab: Rectangle)"},
		{selection.ModeDisplay, true, "Display (Tab: Window)"},
		{selection.ModeWindow, true, "Window (Tab: Rectangle)"},
	}
	for _, tt := range tests {
		if got := ModeText(tt.mode, tt.available); got != tt.want {
			t.Errorf("ModeText(%v, %v): expected %q, got %q", tt.mode, tt.available, tt.want, got)
		}
	}
}

func TestSelectorFunc(t *testing.T) {
	want := geometry.NewRect(1, 2, 3, 4)
	var s Selector = SelectorFunc(func(ctx context.Context, req Request) (geometry.Rect, bool, error) {
		return want, false, nil
	})
	got, cancelled, err := s.Select(context.Background(), Request{})
	if err != nil || cancelled || got != want {
		t.Fatalf("Expected %v, got %v/%v/%v", want, got, cancelled, err)
	}
}
