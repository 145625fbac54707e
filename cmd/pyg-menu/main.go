// Command pyg-menu shows a popup menu at the mouse cursor and runs the
// command of the clicked item.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	pygmenu "github.com/vrav/pyg-menu"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	settings string
	menu     string
	verbose  bool
	dryRun   bool
}

func init() {
	/* SDL wants every video call on the main thread */
	runtime.LockOSThread()
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.settings, "settings", "s", "",
		"settings file (default: settings.json next to the executable or in the config dir)")
	fs.StringVarP(&opts.menu, "menu", "m", "",
		"menu file (default: menu-base.json next to the executable or in the config dir)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "compute the popup geometry and exit without showing it")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "pyg-menu",
		Short: "Popup menu at the mouse cursor",
		Long: `pyg-menu shows a small borderless menu next to the mouse cursor.
Clicking an item runs its command in the background; escape, clicking
elsewhere or closing the window exits without running anything.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, newLogger(opts.verbose))
		},
	}
	addFlags(cmd.Flags(), &opts)
	return cmd
}

func run(opts options, logger *slog.Logger) error {
	loc := pygmenu.DefaultLocator()

	settings, err := pygmenu.LoadSettings(opts.settings, loc, logger)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	items, err := pygmenu.LoadMenu(opts.menu, loc, logger)
	if err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}

	face, fontPath, err := pygmenu.LoadFace(settings.FontFile, settings.FontSize, loc, logger)
	if err != nil {
		return err
	}
	defer face.Close()
	logger.Debug("font loaded", "path", fontPath, "size", settings.FontSize)

	ts := pygmenu.NewTypesetter(face, settings.TextColor)
	labels := pygmenu.RenderLabels(items, ts, loc, logger)

	display, err := pygmenu.OpenSDL(logger)
	if err != nil {
		return err
	}
	defer display.Close()

	popup, err := pygmenu.Prepare(display, settings, items, labels, logger)
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Printf("monitor %v cursor %v window %v flip-left=%t flip-up=%t\n",
			popup.Monitor, popup.Cursor, popup.Bounds(),
			popup.Placement.FlipLeft, popup.Placement.FlipUp)
		for i, r := range popup.Layout.Items {
			fmt.Printf("%d\t%v\t%q\n", i, r, items[i].Text)
		}
		return nil
	}

	return popup.Show(display, pygmenu.NewShellDispatcher(logger), logger)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("pyg-menu", "error", err)
		os.Exit(1)
	}
}
