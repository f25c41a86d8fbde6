// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/woozymasta/dirstd/internal/watch"
)

var errWatchListing = errors.New("watch walks --proj-dir and cannot read --input-listing")

// newWatchCommand creates the watch subcommand.
func newWatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	sel := &selectFlagValues{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-rate the project whenever its files change",
		Long: `Rates --proj-dir once, then watches it and prints a new rating after
every burst of file system changes. Output written to --output is replaced
on each run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.inputListing != "" {
				return exitErr(ExitConfig, errWatchListing)
			}

			s, err := newSession(cmd, app, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debounce") {
				s.cfg.Debounce = debounce
			}

			selection := sel.selection()
			emit := func(ctx context.Context) error {
				results, err := s.rate(ctx, selection, false)
				if err != nil {
					return err
				}
				return s.writeOutput(results, renderRatings(results))
			}

			ctx := cmd.Context()
			if err := emit(ctx); err != nil {
				return err
			}

			w, err := watch.New(watch.Config{
				Root:     s.flags.projDir,
				Exclude:  s.cfg.Exclude,
				Debounce: s.cfg.Debounce,
				Logger:   s.logger,
				OnChange: func(ctx context.Context, changed []string) error {
					s.logger.Info("change detected", "paths", len(changed))
					s.logger.Debug("changed", "paths", changed)
					return emit(ctx)
				},
			})
			if err != nil {
				return exitErr(ExitConfig, err)
			}

			s.logger.Info("watching", "dir", w.Root(), "debounce", s.cfg.Debounce)
			return w.Run(ctx)
		},
	}

	addSelectFlags(cmd, sel)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period after the last change before re-rating")

	return cmd
}
