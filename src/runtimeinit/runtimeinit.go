package runtimeinit

import (
	"fmt"
	"log"

	"region-capture/src/clipboard"
	"region-capture/src/config"
	"region-capture/src/notification"
	"region-capture/src/window"
)

type Options struct {
	LoadOptions  config.LoadOptions
	SetupLogging func(enableFileLogging bool)
	// NeedClipboard fails the bootstrap when the clipboard cannot be used.
	NeedClipboard bool
	// NeedNotifier connects to the notification daemon.
	NeedNotifier bool

	// Hooks for tests; nil means the real implementation.
	InitClipboard  func() error
	DetectBackend  func() window.Backend
	DetectNotifier func() notification.Notifier
}

// Runtime is everything a capture session needs besides the capture itself.
type Runtime struct {
	Config   *config.Config
	Backend  window.Backend
	Notifier notification.Notifier
}

func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.SetupLogging != nil {
		opts.SetupLogging(cfg.EnableFileLogging)
	}
	if cfg.Path != "" {
		log.Printf("Config loaded from %s", cfg.Path)
	} else {
		log.Printf("No config file found, using defaults")
	}

	if opts.NeedClipboard {
		initClipboard := opts.InitClipboard
		if initClipboard == nil {
			initClipboard = clipboard.Init
		}
		if err := initClipboard(); err != nil {
			return nil, fmt.Errorf("failed to initialize clipboard: %w", err)
		}
	}

	detectBackend := opts.DetectBackend
	if detectBackend == nil {
		detectBackend = window.DetectBackend
	}
	rt := &Runtime{Config: cfg, Backend: detectBackend()}
	if rt.Backend != nil {
		log.Printf("Compositor backend: %s", rt.Backend.Name())
	}

	if opts.NeedNotifier {
		detectNotifier := opts.DetectNotifier
		if detectNotifier == nil {
			detectNotifier = notification.Detect
		}
		rt.Notifier = detectNotifier()
	}

	return rt, nil
}
