package doublons

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides conditional debug output.
type logger struct {
	enabled bool
	w       io.Writer
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(l.w, format, args...)
	}
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// compileExcludes compiles the exclusion patterns.
func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	regexes := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, UsageError("compiling exclusion pattern %q: %v", p, err)
		}

		regexes = append(regexes, re)
	}

	return regexes, nil
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// parseExtensions splits extension filters into include and exclude sets.
// A leading '!' marks an exclusion.
func parseExtensions(extensions []string) (include, exclude map[string]struct{}) {
	include = make(map[string]struct{}, len(extensions))
	exclude = make(map[string]struct{}, len(extensions))

	for _, e := range extensions {
		e = strings.Trim(e, "'\"")

		if strings.HasPrefix(e, "!") {
			exclude[strings.TrimPrefix(e, "!")] = struct{}{}
		} else if e != "" {
			include[e] = struct{}{}
		}
	}

	return include, exclude
}

// shouldIncludeByExtension checks if file should be included based on extension filters.
func shouldIncludeByExtension(path string, include, exclude map[string]struct{}) bool {
	for ext := range exclude {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	if len(include) == 0 {
		return true
	}

	for ext := range include {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

// trimRoot strips trailing separators from root the way fastwalk does before
// handing the root to the callback.
func trimRoot(root string) string {
	trimmed := strings.TrimRight(root, string(filepath.Separator))
	if trimmed == "" {
		return root[:1]
	}

	return trimmed
}

// startProgressReporter invokes hook(files, bytes) on each tick until stopped.
// The returned stop function blocks until no hook call is in flight.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// Walk returns a record for every regular file under opt.Path.
//
// Paths are the root exactly as given joined with the entry names below it.
// Directories are descended into, symlinks are never followed, and every other
// file type is skipped. Files matching opt.Excludes, failing the opt.Extensions
// filter, deeper than opt.Depth or smaller than opt.MinSize are left out. The
// first directory that cannot be read or entry that cannot be stat'ed aborts
// the walk; no partial result is returned.
//
// Record order follows the walker and must not be relied upon.
func Walk(ctx context.Context, opt Options, progressHook func(int64, int64)) ([]FileRecord, error) {
	return walk(ctx, opt, progressHook, logger{enabled: opt.Debug, w: os.Stderr})
}

//nolint:gocognit,funlen,cyclop // Callback carries the filter chain.
func walk(ctx context.Context, opt Options, progressHook func(int64, int64), log logger) ([]FileRecord, error) {
	root := opt.root()

	// validate path exists and is a directory
	if statInfo, err := os.Stat(root); err != nil {
		return nil, &Error{Kind: KindTraversal, Op: "accessing root", Path: root, Err: err}
	} else if !statInfo.IsDir() {
		return nil, &Error{Kind: KindTraversal, Op: "opening root", Path: root, Err: errors.New("not a directory")}
	}

	if opt.Depth < 0 {
		return nil, UsageError("depth cannot be negative")
	}

	excludeRegexes, err := compileExcludes(opt.Excludes)
	if err != nil {
		return nil, err
	}

	extInclude, extExclude := parseExtensions(opt.Extensions)

	log.printf("[debug]: include extensions:\n")

	for ext := range extInclude {
		log.printf("[debug]:   - %s\n", ext)
	}

	log.printf("[debug]: exclude extensions:\n")

	for ext := range extExclude {
		log.printf("[debug]:   - %s\n", ext)
	}

	log.printf("[debug]: exclude regexes:\n")

	for _, re := range excludeRegexes {
		log.printf("[debug]:   - %s\n", re.String())
	}

	collector := newCollector()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopProgress := startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)
	defer stopProgress()

	walkRoot := trimRoot(root)

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.printf("[debug]: error accessing path %s: %v\n", path, err)

			return &Error{Kind: KindTraversal, Op: "reading directory", Path: path, Err: err}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == root || path == walkRoot {
			return nil
		}

		if currentDepth := calculateDepth(path, walkRoot); opt.Depth > 0 && currentDepth > opt.Depth {
			if d.IsDir() {
				log.printf("[debug]: skipping directory (beyond depth %d): %s\n", opt.Depth, path)

				return filepath.SkipDir
			}

			log.printf("[debug]: skipping file (beyond depth %d): %s\n", opt.Depth, path)

			return nil
		}

		if matchedPattern := shouldExcludeByPattern(path, excludeRegexes); matchedPattern != nil {
			if d.IsDir() {
				log.printf("[debug]: excluding directory: %s (matched %s)\n", filepath.ToSlash(path), matchedPattern)

				return filepath.SkipDir
			}

			log.printf("[debug]: excluding file: %s (matched %s)\n", filepath.ToSlash(path), matchedPattern)

			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if !shouldIncludeByExtension(path, extInclude, extExclude) {
			log.printf("[debug]: excluding file (extension filter): %s\n", path)

			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			return &Error{Kind: KindStat, Op: "stat", Path: path, Err: err}
		}

		if fileInfo.Size() < opt.MinSize {
			log.printf("[debug]: skipping file (below min size): %s\n", path)

			return nil
		}

		collector.add(path, fileInfo.Size())

		return nil
	})
	if walkErr != nil {
		var e *Error
		if errors.As(walkErr, &e) || errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			return nil, walkErr
		}

		return nil, &Error{Kind: KindTraversal, Op: "walking", Path: root, Err: walkErr}
	}

	return collector.finalize(), nil
}
