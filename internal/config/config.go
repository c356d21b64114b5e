package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
)

// Config holds all runtime configuration. Immutable once parsed.
type Config struct {
	Monitor   int
	FPS       int
	Offscreen bool
	Title     string
	List      bool
}

// Parse reads the command line: flags first, then the monitor index as the
// trailing positional argument. Every diagnostic is written to output as a
// single line; a non-nil error means nothing has been started and the caller
// should exit without creating any window or capture resource.
func Parse(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("screensplit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: screensplit [flags] [monitor-index]")
		fmt.Fprintln(output, "Mirrors a monitor into a window so it can be shared in a video call.")
		fs.PrintDefaults()
	}

	fps := fs.Int("fps", 30, "Target frames per second")
	onscreen := fs.Bool("onscreen", false, "Show the mirror window on screen")
	title := fs.String("title", "", "Window title (default \"Monitor N\")")
	list := fs.Bool("list", false, "List monitors and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err // flag has already written the diagnostic
	}

	monitor := 1
	if fs.NArg() > 0 {
		m, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			return nil, reportf(output, "monitor index must be an integer, got %q", fs.Arg(0))
		}
		monitor = m
	}
	if monitor < 0 {
		return nil, reportf(output, "monitor index must not be negative, got %d", monitor)
	}
	if *fps <= 0 {
		return nil, reportf(output, "target frames per second must be positive, got %d", *fps)
	}

	cfg := &Config{
		Monitor:   monitor,
		FPS:       *fps,
		Offscreen: !*onscreen,
		Title:     *title,
		List:      *list,
	}
	if cfg.Title == "" {
		cfg.Title = fmt.Sprintf("Monitor %d", cfg.Monitor)
	}
	return cfg, nil
}

func reportf(output io.Writer, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	fmt.Fprintln(output, err)
	return err
}
