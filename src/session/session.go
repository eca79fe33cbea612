package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"region-capture/src/clipboard"
	"region-capture/src/geometry"
	"region-capture/src/monitor"
	"region-capture/src/notification"
	"region-capture/src/overlay"
	"region-capture/src/screenshot"
)

var ErrSelectionCancelled = errors.New("selection cancelled")

// Shot is a confirmed selection cut out of the desktop capture.
type Shot struct {
	// Rect is the selection in image-local coordinates of the full capture.
	Rect  geometry.Rect
	Image *image.RGBA
	PNG   []byte
}

type ResultTarget interface {
	OnSuccess(shot Shot) error
	OnFailure(err error) error
}

type Options struct {
	Source   screenshot.DisplaySource
	Selector overlay.Selector
	Targets  []ResultTarget
}

type Result struct {
	Rect   geometry.Rect
	Layout monitor.Layout
}

// Execute captures every monitor, lets the selector pick a region, and hands
// the cropped PNG to each target in order. All targets are attempted; their
// errors are joined.
func Execute(ctx context.Context, opts Options) (Result, error) {
	if opts.Selector == nil {
		return Result{}, errors.New("Selector is required")
	}
	if len(opts.Targets) == 0 {
		return Result{}, errors.New("at least one target is required")
	}
	src := opts.Source
	if src == nil {
		src = screenshot.System
	}

	shot, layout, err := capture(ctx, src, opts.Selector)
	if err != nil {
		failAll(opts.Targets, err)
		return Result{Layout: layout}, err
	}

	var errs []error
	for _, t := range opts.Targets {
		if err := t.OnSuccess(shot); err != nil {
			log.Printf("Session: target %T failed: %v", t, err)
			_ = t.OnFailure(err)
			errs = append(errs, err)
		}
	}
	return Result{Rect: shot.Rect, Layout: layout}, errors.Join(errs...)
}

func capture(ctx context.Context, src screenshot.DisplaySource, selector overlay.Selector) (Shot, monitor.Layout, error) {
	monitors, err := screenshot.Monitors(src)
	if err != nil {
		return Shot{}, monitor.Layout{}, err
	}
	layout := monitor.NewLayout(monitors)
	log.Printf("Session: %d monitor(s), area %v", len(monitors), layout.Area)

	img, err := screenshot.Capture(src, layout.Area)
	if err != nil {
		return Shot{}, layout, err
	}

	rect, cancelled, err := selector.Select(ctx, overlay.Request{Capture: img, Layout: layout})
	if err != nil {
		return Shot{}, layout, fmt.Errorf("failed to select region: %w", err)
	}
	if cancelled {
		return Shot{}, layout, ErrSelectionCancelled
	}

	cropped, err := screenshot.Crop(img, rect)
	if err != nil {
		return Shot{}, layout, err
	}
	data, err := screenshot.EncodePNG(cropped)
	if err != nil {
		return Shot{}, layout, err
	}
	log.Printf("Session: selected %v (%d bytes)", rect, len(data))
	return Shot{Rect: rect, Image: cropped, PNG: data}, layout, nil
}

func failAll(targets []ResultTarget, err error) {
	for _, t := range targets {
		_ = t.OnFailure(err)
	}
}

// ClipboardTarget puts the PNG on the clipboard. When Wait is set, OnSuccess
// blocks until another client takes the clipboard or Wait is closed, so the
// data stays available after the overlay closes.
type ClipboardTarget struct {
	Wait  <-chan struct{}
	write func([]byte) (<-chan struct{}, error)
}

func (t ClipboardTarget) OnSuccess(shot Shot) error {
	write := t.write
	if write == nil {
		write = clipboard.WriteImage
	}
	changed, err := write(shot.PNG)
	if err != nil {
		return fmt.Errorf("clipboard error: %w", err)
	}
	if t.Wait == nil {
		return nil
	}
	log.Printf("Session: serving clipboard until it changes")
	select {
	case <-changed:
		log.Printf("Session: clipboard ownership lost")
	case <-t.Wait:
	}
	return nil
}

func (ClipboardTarget) OnFailure(err error) error {
	return nil
}

// StdoutTarget writes the PNG bytes to Writer (os.Stdout by default).
type StdoutTarget struct {
	Writer io.Writer
}

func (t StdoutTarget) OnSuccess(shot Shot) error {
	w := t.Writer
	if w == nil {
		w = os.Stdout
	}
	_, err := w.Write(shot.PNG)
	return err
}

func (t StdoutTarget) OnFailure(err error) error {
	return nil
}

// Saver is a target that writes the shot to a file and reports where.
type Saver interface {
	Save(shot Shot) (string, error)
}

// FileTarget saves to a fixed path.
type FileTarget struct {
	Path string
}

func (t FileTarget) Save(shot Shot) (string, error) {
	if t.Path == "" {
		return "", errors.New("file target missing path")
	}
	if err := os.WriteFile(t.Path, shot.PNG, 0o644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", t.Path, err)
	}
	return t.Path, nil
}

func (t FileTarget) OnSuccess(shot Shot) error {
	_, err := t.Save(shot)
	return err
}

func (FileTarget) OnFailure(err error) error {
	return nil
}

// DirectoryNameLayout names files saved by DirectoryTarget.
const DirectoryNameLayout = "Screenshot_2006-01-02_15-04-05.png"

// DirectoryTarget saves into Dir under a timestamped name. The directory is
// created when missing.
type DirectoryTarget struct {
	Dir string
	Now func() time.Time
}

func (t DirectoryTarget) Save(shot Shot) (string, error) {
	if t.Dir == "" {
		return "", errors.New("directory target missing directory")
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", t.Dir, err)
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	return FileTarget{Path: filepath.Join(t.Dir, now().Format(DirectoryNameLayout))}.Save(shot)
}

func (t DirectoryTarget) OnSuccess(shot Shot) error {
	_, err := t.Save(shot)
	return err
}

func (DirectoryTarget) OnFailure(err error) error {
	return nil
}

// NotifyingTarget saves through Saver and raises a desktop notification
// naming the file. Notification failures are logged only.
type NotifyingTarget struct {
	Saver    Saver
	Notifier notification.Notifier
}

func (t NotifyingTarget) OnSuccess(shot Shot) error {
	path, err := t.Saver.Save(shot)
	if err != nil {
		return err
	}
	if t.Notifier != nil {
		body := fmt.Sprintf("%s (%dx%d)", path, shot.Rect.Width, shot.Rect.Height)
		if err := t.Notifier.Notify("Screenshot saved", body); err != nil {
			log.Printf("Session: notification failed: %v", err)
		}
	}
	return nil
}

func (t NotifyingTarget) OnFailure(err error) error {
	if t.Notifier == nil || errors.Is(err, ErrSelectionCancelled) {
		return nil
	}
	return t.Notifier.Notify("Screenshot failed", err.Error())
}
