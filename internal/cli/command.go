package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/doublons/internal/config"
	"github.com/idelchi/doublons/internal/doublons"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version, stdout: os.Stdout, stderr: os.Stderr}
}

// flags holds the raw command-line values before they are merged with the config file.
type flags struct {
	excludes   []string
	extensions []string
	depth      int
	minSize    string
	output     string
	summary    bool
	configPath string
	debug      bool
}

var allowedOutputs = []string{"plain", "json"} //nolint:gochecknoglobals // Config constant

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "doublons [flags] <directory>",
		Short: "Find duplicate files in a directory tree",
		Long: heredoc.Doc(`
			doublons finds regular files with identical content under a directory.

			Each group of duplicates is printed on one line: the paths separated by
			spaces, followed by '=' when every file has the same permission bits,
			or '*' when at least one differs. Unique files print nothing.

			Files are grouped by size first and then compared byte by byte.
			Symbolic links and special files are skipped.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return doublons.UsageError("expected exactly one directory argument, got %d", len(args))
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := resolve(cmd.Flags(), f, args[0])
			if err != nil {
				return err
			}

			return c.logic(cmd.Context(), options)
		},
	}

	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return doublons.UsageError("%v", err)
	})

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringArrayVarP(&f.excludes, "exclude", "e", nil, "Regex pattern to exclude, matched against slash-separated paths (repeatable)")
	fs.StringSliceVarP(
		&f.extensions,
		"ext",
		"x",
		nil,
		"File suffixes to include (e.g., .go,.md). Use '!' prefix to exclude (e.g., !.log,!_test.go)",
	)
	fs.IntVarP(&f.depth, "depth", "d", 0, "Maximum traversal depth (0=unlimited)")
	fs.StringVar(&f.minSize, "min-size", "0B", "Minimum file size (e.g., 1KB)")
	fs.StringVarP(&f.output, "output", "o", "plain", "Output format: plain or json")
	fs.BoolVar(&f.summary, "summary", false, "Print a summary line to stderr")
	fs.StringVar(&f.configPath, "config", config.DefaultPath(), "Path to ini config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug output")

	return cmd
}

// resolve merges the config file with explicitly set flags into run options.
func resolve(fs *pflag.FlagSet, f flags, path string) (options, error) {
	cfg, err := config.Load(f.configPath, fs.Changed("config"))
	if err != nil {
		return options{}, err
	}

	if fs.Changed("exclude") {
		cfg.Excludes = f.excludes
	}

	if fs.Changed("ext") {
		cfg.Extensions = f.extensions
	}

	if fs.Changed("depth") {
		cfg.Depth = f.depth
	}

	if cfg.Depth < 0 {
		return options{}, doublons.UsageError("depth cannot be negative")
	}

	if fs.Changed("min-size") {
		cfg.MinSize = f.minSize
	}

	if fs.Changed("output") {
		cfg.Output = strings.ToLower(f.output)
	}

	if fs.Changed("summary") {
		cfg.Summary = f.summary
	}

	if !slices.Contains(allowedOutputs, cfg.Output) {
		return options{}, doublons.UsageError("invalid output format %q: must be one of %v", cfg.Output, allowedOutputs)
	}

	opt := options{
		Options: doublons.Options{
			Path:       path,
			Excludes:   cfg.Excludes,
			Extensions: cfg.Extensions,
			Depth:      cfg.Depth,
			Debug:      f.debug,
		},
		output:  cfg.Output,
		summary: cfg.Summary,
	}

	if cfg.MinSize != "" {
		size, err := humanize.ParseBytes(cfg.MinSize)
		if err != nil {
			return options{}, doublons.UsageError("invalid min-size: %v", err)
		}

		opt.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	return opt, nil
}

// options extends the search options with presentation settings.
type options struct {
	doublons.Options

	output  string
	summary bool
}

func (o options) String() string {
	return fmt.Sprintf("path=%s output=%s min-size=%d depth=%d ext=%v excludes=%q",
		o.Path, o.output, o.MinSize, o.Depth, o.Extensions, o.Excludes)
}
