// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/woozymasta/dirstd"
	"github.com/woozymasta/dirstd/internal/config"
)

// session is the resolved state shared by the evaluating commands.
type session struct {
	app       *App
	flags     *rootFlagValues
	cfg       *config.Config
	logger    *log.Logger
	catalog   *dirstd.Catalog
	evaluator *dirstd.Evaluator
}

// newSession loads configuration, applies flag overrides and loads the catalog.
func newSession(cmd *cobra.Command, app *App, flags *rootFlagValues) (*session, error) {
	cfg, err := loadConfig(cmd, app, flags)
	if err != nil {
		return nil, exitErr(ExitConfig, err)
	}

	logger := newLogger(app, cfg, flags)

	catalog, err := loadCatalog(cfg, flags, logger)
	if err != nil {
		return nil, exitErr(ExitData, err)
	}

	ignore, err := cfg.IgnoreRegexp()
	if err != nil {
		return nil, exitErr(ExitConfig, err)
	}

	evaluator, err := dirstd.NewEvaluator(catalog, dirstd.EvalOptions{
		Ignore:      ignore,
		Generated:   dirstd.ParseGeneratedExtensions(cfg.GeneratedExtensions),
		Parallelism: cfg.Parallelism,
		Logger:      logger,
	})
	if err != nil {
		return nil, exitErr(ExitData, err)
	}

	return &session{
		app:       app,
		flags:     flags,
		cfg:       cfg,
		logger:    logger,
		catalog:   catalog,
		evaluator: evaluator,
	}, nil
}

// loadConfig reads the config and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command, app *App, flags *rootFlagValues) (*config.Config, error) {
	opts := config.LoadOptions{File: flags.configFile}
	if opts.File == "" {
		opts.SearchPaths = app.configSearchPaths
		if opts.SearchPaths == nil {
			opts.SearchPaths = config.DefaultSearchPaths()
		}
	}

	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("ignore-paths-regex") {
		cfg.IgnorePathsRegex = flags.ignorePathsRegex
	}
	if changed("format") {
		cfg.Format = flags.format
	}
	if changed("parallelism") {
		cfg.Parallelism = flags.parallelism
	}

	cfg.Catalogs = append(cfg.Catalogs, flags.catalogs...)
	cfg.StandardFiles = append(cfg.StandardFiles, flags.standardFiles...)
	cfg.GeneratedExtensions = append(cfg.GeneratedExtensions, flags.generatedExts...)
	cfg.Exclude = append(cfg.Exclude, flags.excludes...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger builds the stderr logger; --quiet and --verbose override the configured level.
func newLogger(app *App, cfg *config.Config, flags *rootFlagValues) *log.Logger {
	level := cfg.Level()
	switch {
	case flags.quiet:
		level = log.WarnLevel
	case flags.verbose:
		level = log.DebugLevel
	}

	return log.NewWithOptions(app.stderr, log.Options{
		Level:           level,
		Prefix:          config.AppName,
		ReportTimestamp: false,
	})
}

// loadCatalog merges the bundled catalog, catalog directories and single
// standard files, later sources overriding earlier ones.
func loadCatalog(cfg *config.Config, flags *rootFlagValues, logger *log.Logger) (*dirstd.Catalog, error) {
	catalogs := make([]*dirstd.Catalog, 0, len(cfg.Catalogs)+2)

	if !flags.noBuiltin {
		builtin, err := dirstd.BuiltinCatalog()
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, builtin)
	}

	for _, dir := range cfg.Catalogs {
		logger.Debug("loading catalog", "dir", dir)
		c, err := dirstd.LoadCatalogDir(dir)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", dir, err)
		}
		catalogs = append(catalogs, c)
	}

	if len(cfg.StandardFiles) > 0 {
		stds, err := dirstd.LoadStandardFiles(cfg.StandardFiles...)
		if err != nil {
			return nil, err
		}

		c, err := dirstd.NewCatalog("", stds...)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, c)
	}

	merged, err := dirstd.MergeCatalogs(catalogs...)
	if err != nil {
		return nil, err
	}

	if merged.Len() == 0 {
		return nil, fmt.Errorf("%w: no standards loaded", dirstd.ErrInvalidCatalog)
	}

	logger.Debug("catalog ready", "standards", merged.Names(), "default", merged.DefaultName())
	return merged, nil
}

// listing reads the listing from --input-listing or walks --proj-dir.
func (s *session) listing(ctx context.Context) ([]string, error) {
	switch s.flags.inputListing {
	case "":
		return s.walk(ctx)
	case "-":
		s.logger.Info("reading listing", "from", "stdin")
		paths, err := dirstd.ReadListing(s.app.stdin)
		if err != nil {
			return nil, exitErr(ExitData, err)
		}

		return dirstd.WithAncestors(paths), nil
	default:
		s.logger.Info("reading listing", "from", s.flags.inputListing)
		f, err := os.Open(s.flags.inputListing)
		if err != nil {
			return nil, fmt.Errorf("open listing: %w", err)
		}
		defer func() { _ = f.Close() }()

		paths, err := dirstd.ReadListing(f)
		if err != nil {
			return nil, exitErr(ExitData, err)
		}

		return dirstd.WithAncestors(paths), nil
	}
}

// walk lists the project directory.
func (s *session) walk(ctx context.Context) ([]string, error) {
	s.logger.Info("walking project", "dir", s.flags.projDir)

	lister, err := s.lister()
	if err != nil {
		return nil, err
	}

	return lister.List(ctx)
}

// lister creates a project lister from the resolved configuration.
func (s *session) lister() (*dirstd.Lister, error) {
	lister, err := dirstd.NewLister(s.flags.projDir, dirstd.ListerOptions{
		Exclude:                  s.cfg.Exclude,
		EnableSymlinkEscapeCheck: s.cfg.SymlinkEscapeCheck,
	})
	if err != nil {
		return nil, exitErr(ExitConfig, err)
	}

	return lister, nil
}
