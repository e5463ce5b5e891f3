package doublons

import (
	"context"
	"os"
	"time"
)

// Run searches opt.Path for duplicate files and returns the classes found.
// It walks the tree, sorts the records by size and clusters byte-identical
// files.
//
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook while walking, if provided. Any error aborts the run and no
// report is returned.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	log := logger{enabled: opt.Debug, w: os.Stderr}

	start := time.Now()

	records, err := walk(ctx, opt, progressHook, log)
	if err != nil {
		return nil, err
	}

	log.printf("[debug]: found %d regular files under %s\n", len(records), opt.root())

	report := &Report{Root: opt.root(), FileCount: int64(len(records))}
	for _, r := range records {
		report.TotalBytes += r.Size
	}

	SortBySize(records)

	classes, err := cluster(records, FileComparator{BlockSize: opt.BlockSize}, log)
	if err != nil {
		return nil, err
	}

	report.Classes = classes
	report.Elapsed = time.Since(start)

	return report, nil
}
