// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

// Package cli implements the osh-dir-std command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/woozymasta/dirstd"
	"github.com/woozymasta/dirstd/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// App carries the streams and config lookup of one invocation.
type App struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// configSearchPaths override config.DefaultSearchPaths when non-nil.
	configSearchPaths []string
}

// NewApp returns an App bound to the process streams.
func NewApp() *App {
	return &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// rootFlagValues are the persistent flags shared by all subcommands.
type rootFlagValues struct {
	configFile       string
	catalogs         []string
	standardFiles    []string
	noBuiltin        bool
	inputListing     string
	projDir          string
	ignorePathsRegex string
	generatedExts    []string
	excludes         []string
	output           string
	format           string
	parallelism      int
	quiet            bool
	verbose          bool
}

// selectFlagValues choose the evaluated standards.
type selectFlagValues struct {
	standard string
	all      bool
	bestFit  bool
}

// selection converts the flags into a library selection.
func (s *selectFlagValues) selection() dirstd.Selection {
	return dirstd.NewSelection(s.all, s.bestFit, s.standard)
}

// NewRootCommand builds the command tree.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Rate how well a project follows a directory standard",
		Long: titleStyle.Render(config.AppName) + subtitleStyle.Render(" - directory standard conformance checker") + `

Maps the files and directories of a project to the records of one or more
directory standards and rates how well the project adheres to each of them.
The listing is read from --input-listing ("-" for stdin) or by walking
--proj-dir.

` + subtitleStyle.Render("Examples:") + `
  osh-dir-std rate --best-fit         Rate against the best fitting standard
  osh-dir-std rate --all -f text      Rate against every standard
  git ls-files | osh-dir-std map -I - -s osh
  osh-dir-std standards               List known standards`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is ./"+config.AppName+".yaml or the user config dir)")
	pf.StringSliceVarP(&flags.catalogs, "catalog", "c", nil, "catalog directory with mod/<name>/definition.csv; repeatable, later ones override")
	pf.StringSliceVar(&flags.standardFiles, "standard-file", nil, "single standard definition file (.csv, .yaml); repeatable")
	pf.BoolVar(&flags.noBuiltin, "no-builtin", false, "do not load the bundled standards")
	pf.StringVarP(&flags.inputListing, "input-listing", "I", "", `file with one path per line, "-" for stdin; default walks --proj-dir`)
	pf.StringVarP(&flags.projDir, "proj-dir", "C", ".", "project directory to walk")
	pf.StringVarP(&flags.ignorePathsRegex, "ignore-paths-regex", "i", config.DefaultIgnorePathsRegex, "regex of paths to ignore; empty ignores nothing")
	pf.StringSliceVar(&flags.generatedExts, "generated-ext", nil, "file extensions marking generated content, e.g. stl,gcode")
	pf.StringSliceVar(&flags.excludes, "exclude", nil, "doublestar globs skipped while walking --proj-dir")
	pf.StringVarP(&flags.output, "output", "o", "", `output file, "-" or empty for stdout`)
	pf.StringVarP(&flags.format, "format", "f", config.FormatJSON, "output format: json, yaml or text")
	pf.IntVarP(&flags.parallelism, "parallelism", "j", 0, "standards evaluated concurrently, 0 is unlimited")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "only log warnings and errors")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output")
	root.MarkFlagsMutuallyExclusive("quiet", "verbose")

	root.AddCommand(newRateCommand(app, flags))
	root.AddCommand(newMapCommand(app, flags))
	root.AddCommand(newStandardsCommand(app, flags))
	root.AddCommand(newWatchCommand(app, flags))

	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	return root
}

// addSelectFlags registers the standard selection flags on cmd.
func addSelectFlags(cmd *cobra.Command, sel *selectFlagValues) {
	cmd.Flags().StringVarP(&sel.standard, "standard", "s", "", "evaluate one named standard instead of the default")
	cmd.Flags().BoolVarP(&sel.all, "all", "a", false, "evaluate every standard")
	cmd.Flags().BoolVarP(&sel.bestFit, "best-fit", "b", false, "evaluate every standard and keep the best rated")
	cmd.MarkFlagsMutuallyExclusive("standard", "all", "best-fit")
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	app := NewApp()
	err := fang.Execute(
		ctx,
		NewRootCommand(app),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return 0
	}

	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}

	return ExitFailure
}

// versionString formats version details for --version.
func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}

	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
