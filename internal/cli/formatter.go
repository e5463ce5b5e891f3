package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/doublons/internal/doublons"
)

// PrintPlain outputs one line per duplicate class: the member paths, each
// followed by a space, then the permission terminator.
func PrintPlain(report *doublons.Report, writer io.Writer) error {
	w := bufio.NewWriter(writer)

	for _, class := range report.Classes {
		var line strings.Builder
		for _, p := range class.Paths {
			line.WriteString(p)
			line.WriteByte(' ')
		}

		line.WriteString(class.Terminator())

		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}

	return w.Flush()
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *doublons.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintSummary outputs a one-line human-readable summary.
func PrintSummary(report *doublons.Report, writer io.Writer) error {
	_, err := fmt.Fprintf(writer, "%d duplicate groups, %d duplicate files, %s reclaimable (%d files, %s scanned in %v)\n",
		len(report.Classes),
		report.DuplicateFiles(),
		humanize.IBytes(uint64(report.Reclaimable())), //nolint:gosec // Sizes are never negative
		report.FileCount,
		humanize.IBytes(uint64(report.TotalBytes)), //nolint:gosec // Sizes are never negative
		report.Elapsed.Round(time.Millisecond),
	)

	return err
}
