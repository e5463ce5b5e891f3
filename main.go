// Command doublons finds duplicate files in a directory tree.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/doublons/internal/cli"
	"github.com/idelchi/doublons/internal/doublons"
)

// version is set at build time with -ldflags.
var version = "unknown - unofficial & generated by unknown" //nolint:gochecknoglobals // Build-time variable

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if doublons.KindOf(err) == doublons.KindUsage {
			fmt.Fprintln(os.Stderr, "usage: doublons [flags] <directory>")
			os.Exit(2)
		}

		os.Exit(1)
	}
}
