package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/doublons/internal/doublons"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func (c CLI) logic(ctx context.Context, options options) error {
	enableProgress := options.output == "plain" &&
		!options.Debug &&
		isTerminal(c.stderr)

	if options.Debug {
		fmt.Fprintf(c.stderr, "[debug]: options: %s\n", options)
	}

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(c.stderr, "\033[?25l")
		defer fmt.Fprint(c.stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(c.stderr, "\r\033[2K%s\r", msg)
		}
	}

	report, err := doublons.Run(ctx, options.Options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(c.stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch options.output {
	case "json":
		err = PrintJSON(report, c.stdout)
	default:
		err = PrintPlain(report, c.stdout)
	}

	if err != nil {
		return err
	}

	if options.summary {
		return PrintSummary(report, c.stderr)
	}

	return nil
}
