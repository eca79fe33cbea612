package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"region-capture/src/config"
	"region-capture/src/controller"
	"region-capture/src/gui"
	"region-capture/src/logutil"
	"region-capture/src/runtimeinit"
	"region-capture/src/session"
	"region-capture/src/window"
)

type mainOptions struct {
	copy         bool
	stdout       bool
	windowSearch string
	underCursor  bool
	activeWindow bool
	autoCapture  bool
	verbose      bool
	configPath   string
	handleRadius int

	// Set by the save subcommands.
	savePath string
	saveDir  string
}

type runFunc func(ctx context.Context, opts mainOptions) error

func main() {
	// Fyne must own the main OS thread.
	runtime.LockOSThread()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(normalizeLegacyArgs(os.Args), runCapture)
}

func runWithArgs(args []string, fn runFunc) error {
	if len(args) == 0 {
		args = []string{"region-capture"}
	}

	opts := &mainOptions{}
	cmd := newRootCmd(opts, fn)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *mainOptions, fn runFunc) *cobra.Command {
	execute := func(cmd *cobra.Command) error {
		if err := validate(*opts); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return fn(ctx, *opts)
	}

	cmd := &cobra.Command{
		Use:           "region-capture",
		Short:         "Select a region, display or window and capture it",
		Long:          "Freezes every monitor, lets you pick a rectangle, a display or a window, and writes the capture as PNG.\nKeys: Escape cancels, Tab cycles the mode, Return confirms.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.copy, "copy", "c", false, "Copy the capture to the clipboard")
	flags.BoolVarP(&opts.stdout, "stdout", "s", false, "Write the capture to stdout as PNG")
	flags.StringVar(&opts.windowSearch, "window-search", "", "Pre-select a window: class=, title=, initialclass= or initialtitle= followed by a regex")
	flags.BoolVar(&opts.underCursor, "window-under-cursor", false, "Pre-select the window under the cursor")
	flags.BoolVar(&opts.activeWindow, "active-window", false, "Pre-select the focused window")
	flags.BoolVar(&opts.autoCapture, "auto-capture", false, "Capture the pre-selected window without showing the overlay")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")
	flags.StringVar(&opts.configPath, "config", "", "Path to config file (highest precedence)")
	flags.IntVar(&opts.handleRadius, "handle-radius", 0, "Override the handle radius from the config")

	cmd.AddCommand(&cobra.Command{
		Use:   "path <file>",
		Short: "Save the capture to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.savePath = args[0]
			return execute(cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "directory <dir>",
		Short: "Save the capture into a directory under a timestamped name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.saveDir = args[0]
			return execute(cmd)
		},
	})

	return cmd
}

func validate(opts mainOptions) error {
	if !opts.copy && !opts.stdout && opts.savePath == "" && opts.saveDir == "" {
		return errors.New("no output selected: use --copy, --stdout, or the path/directory subcommands")
	}

	preselects := 0
	for _, set := range []bool{opts.windowSearch != "", opts.underCursor, opts.activeWindow} {
		if set {
			preselects++
		}
	}
	if preselects > 1 {
		return errors.New("--window-search, --window-under-cursor and --active-window are mutually exclusive")
	}
	if opts.autoCapture && preselects == 0 {
		return errors.New("--auto-capture needs a window pre-selection")
	}

	if opts.windowSearch != "" {
		if _, err := window.ParseSearchParam(opts.windowSearch); err != nil {
			return err
		}
	}
	return nil
}

func preSelect(opts mainOptions) controller.PreSelect {
	p := controller.PreSelect{UnderCursor: opts.underCursor, ActiveWindow: opts.activeWindow}
	if opts.windowSearch != "" {
		param, err := window.ParseSearchParam(opts.windowSearch)
		if err == nil {
			p.Search = &param
		}
	}
	return p
}

func buildTargets(ctx context.Context, opts mainOptions, rt *runtimeinit.Runtime) []session.ResultTarget {
	var targets []session.ResultTarget
	addSaver := func(s session.Saver, t session.ResultTarget) {
		if rt.Notifier != nil {
			targets = append(targets, session.NotifyingTarget{Saver: s, Notifier: rt.Notifier})
			return
		}
		targets = append(targets, t)
	}

	if opts.savePath != "" {
		t := session.FileTarget{Path: opts.savePath}
		addSaver(t, t)
	}
	if opts.saveDir != "" {
		t := session.DirectoryTarget{Dir: opts.saveDir}
		addSaver(t, t)
	}
	if opts.stdout {
		targets = append(targets, session.StdoutTarget{})
	}
	// Last: it blocks while serving the clipboard.
	if opts.copy {
		targets = append(targets, session.ClipboardTarget{Wait: ctx.Done()})
	}
	return targets
}

func runCapture(ctx context.Context, opts mainOptions) error {
	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{
			PathOverride:         opts.configPath,
			HandleRadiusOverride: opts.handleRadius,
		},
		SetupLogging: func(enableFileLogging bool) {
			logutil.Setup(enableFileLogging, opts.verbose)
		},
		NeedClipboard: opts.copy,
		NeedNotifier:  opts.savePath != "" || opts.saveDir != "",
	})
	if err != nil {
		return err
	}
	if rt.Backend == nil && (opts.windowSearch != "" || opts.underCursor || opts.activeWindow) {
		log.Printf("Window pre-selection requested but no compositor backend is available")
	}

	selector := gui.NewSelector(gui.Options{
		Config:      rt.Config,
		Backend:     rt.Backend,
		PreSelect:   preSelect(opts),
		AutoCapture: opts.autoCapture,
	})

	res, err := session.Execute(ctx, session.Options{
		Selector: selector,
		Targets:  buildTargets(ctx, opts, rt),
	})
	if err != nil {
		return err
	}
	log.Printf("Captured %v", res.Rect)
	return nil
}

var legacyLongFlags = []string{
	"copy", "stdout", "window-search", "window-under-cursor", "active-window",
	"auto-capture", "verbose", "config", "handle-radius",
}

// normalizeLegacyArgs maps single-dash long flags (-copy, -config=x) to their
// double-dash form.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
			continue
		}
		name, value, hasValue := strings.Cut(arg[1:], "=")
		for _, flag := range legacyLongFlags {
			if name != flag {
				continue
			}
			normalized[i] = "--" + name
			if hasValue {
				normalized[i] += "=" + value
			}
			break
		}
	}

	return normalized
}
