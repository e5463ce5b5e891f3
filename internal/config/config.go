// Package config loads default option values from an ini file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// FileName is the config file name inside the user config directory.
const FileName = "config.ini"

// Config holds defaults read from the config file.
type Config struct {
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Extensions to include (empty = all); a '!' prefix excludes.
	Extensions []string
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// MinSize is the minimum file size, as a human-readable string (e.g. 1KB).
	MinSize string
	// Output is the output format (plain or json).
	Output string
	// Summary indicates whether to print a summary line to stderr.
	Summary bool
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Excludes:   []string{},
		Extensions: []string{},
		MinSize:    "0B",
		Output:     "plain",
	}
}

// DefaultPath returns the config file location under the user config directory,
// or "" if it cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "doublons", FileName)
}

// Load reads path on top of the defaults.
// A missing file is not an error unless required is set.
//
// Recognised keys:
//
//	[scan]
//	exclude  = .*\.git/.*
//	exclude  = a{1,3}\.tmp$
//	ext      = .go, !_test.go
//	depth    = 3
//	min_size = 1KB
//
// exclude holds one regex per line and may be repeated, since regexes use commas.
//
//	[output]
//	format  = plain
//	summary = true
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, path)
	if err != nil {
		return cfg, fmt.Errorf("loading config file %q: %w", path, err)
	}

	if file.HasSection("scan") {
		section := file.Section("scan")
		if section.HasKey("exclude") {
			cfg.Excludes = nonEmpty(section.Key("exclude").ValueWithShadows())
		}

		if section.HasKey("ext") {
			cfg.Extensions = nonEmpty(section.Key("ext").Strings(","))
		}

		if section.HasKey("depth") {
			depth, err := section.Key("depth").Int()
			if err != nil {
				return cfg, fmt.Errorf("config file %q: scan.depth: %w", path, err)
			}

			cfg.Depth = depth
		}

		if section.HasKey("min_size") {
			cfg.MinSize = section.Key("min_size").String()
		}
	}

	if file.HasSection("output") {
		section := file.Section("output")
		if section.HasKey("format") {
			cfg.Output = strings.ToLower(section.Key("format").String())
		}

		if section.HasKey("summary") {
			summary, err := section.Key("summary").Bool()
			if err != nil {
				return cfg, fmt.Errorf("config file %q: output.summary: %w", path, err)
			}

			cfg.Summary = summary
		}
	}

	return cfg, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))

	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
