package window

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"sort"

	"region-capture/src/geometry"
)

const hyprlandSignatureEnv = "HYPRLAND_INSTANCE_SIGNATURE"

// CommandRunner runs hyprctl with the given arguments and returns stdout.
type CommandRunner func(args ...string) ([]byte, error)

// HyprlandBackend queries Hyprland through `hyprctl -j`.
type HyprlandBackend struct {
	run CommandRunner
}

type hyprWorkspaceRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type hyprClient struct {
	Address        string           `json:"address"`
	Mapped         bool             `json:"mapped"`
	Hidden         bool             `json:"hidden"`
	At             [2]int           `json:"at"`
	Size           [2]int           `json:"size"`
	Workspace      hyprWorkspaceRef `json:"workspace"`
	Class          string           `json:"class"`
	Title          string           `json:"title"`
	InitialClass   string           `json:"initialClass"`
	InitialTitle   string           `json:"initialTitle"`
	FocusHistoryID int              `json:"focusHistoryID"`
}

type hyprMonitor struct {
	Name             string           `json:"name"`
	ActiveWorkspace  hyprWorkspaceRef `json:"activeWorkspace"`
	SpecialWorkspace hyprWorkspaceRef `json:"specialWorkspace"`
}

type hyprCursor struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewHyprlandBackend returns a backend when a Hyprland instance is running.
func NewHyprlandBackend() (*HyprlandBackend, error) {
	if os.Getenv(hyprlandSignatureEnv) == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrBackendUnavailable, hyprlandSignatureEnv)
	}
	if _, err := exec.LookPath("hyprctl"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return NewHyprlandBackendWithRunner(execHyprctl), nil
}

// NewHyprlandBackendWithRunner builds a backend on a custom command runner.
func NewHyprlandBackendWithRunner(run CommandRunner) *HyprlandBackend {
	return &HyprlandBackend{run: run}
}

func execHyprctl(args ...string) ([]byte, error) {
	cmd := exec.Command("hyprctl", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("hyprctl %v: %w (%s)", args, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

func (h *HyprlandBackend) Name() string { return "hyprland" }

func (h *HyprlandBackend) query(v any, args ...string) error {
	out, err := h.run(append([]string{"-j"}, args...)...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, v); err != nil {
		return fmt.Errorf("failed to decode hyprctl %v output: %w", args, err)
	}
	return nil
}

// Windows returns the mapped, visible clients on the active workspaces,
// most recently focused first.
func (h *HyprlandBackend) Windows() ([]Descriptor, error) {
	var monitors []hyprMonitor
	if err := h.query(&monitors, "monitors"); err != nil {
		return nil, err
	}
	visible := make(map[int]bool, len(monitors)*2)
	for _, m := range monitors {
		visible[m.ActiveWorkspace.ID] = true
		if m.SpecialWorkspace.ID != 0 {
			visible[m.SpecialWorkspace.ID] = true
		}
	}

	var clients []hyprClient
	if err := h.query(&clients, "clients"); err != nil {
		return nil, err
	}

	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].FocusHistoryID < clients[j].FocusHistoryID
	})

	windows := make([]Descriptor, 0, len(clients))
	for _, c := range clients {
		if !c.Mapped || c.Hidden || !visible[c.Workspace.ID] {
			continue
		}
		windows = append(windows, c.descriptor())
	}
	log.Printf("Hyprland: %d visible windows of %d clients", len(windows), len(clients))
	return windows, nil
}

// FocusedWindow returns nil when no window has focus.
func (h *HyprlandBackend) FocusedWindow() (*Descriptor, error) {
	var c hyprClient
	if err := h.query(&c, "activewindow"); err != nil {
		return nil, err
	}
	if c.Address == "" {
		return nil, nil
	}
	d := c.descriptor()
	return &d, nil
}

func (h *HyprlandBackend) MousePosition() (geometry.Point, error) {
	var c hyprCursor
	if err := h.query(&c, "cursorpos"); err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: c.X, Y: c.Y}, nil
}

func (c hyprClient) descriptor() Descriptor {
	return Descriptor{
		Rect:         geometry.NewRect(c.At[0], c.At[1], c.Size[0], c.Size[1]),
		Address:      c.Address,
		Class:        c.Class,
		Title:        c.Title,
		InitialClass: c.InitialClass,
		InitialTitle: c.InitialTitle,
		Workspace:    c.Workspace.Name,
	}
}

// DetectBackend returns the first available compositor backend, or nil.
func DetectBackend() Backend {
	b, err := NewHyprlandBackend()
	if err != nil {
		log.Printf("Window backend: %v", err)
		return nil
	}
	log.Printf("Window backend: using %s", b.Name())
	return b
}
