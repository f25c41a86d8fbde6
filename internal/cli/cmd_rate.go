// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/woozymasta/dirstd"
)

// newRateCommand creates the rate subcommand.
func newRateCommand(app *App, flags *rootFlagValues) *cobra.Command {
	sel := &selectFlagValues{}
	var includeCoverage bool

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Rate the project against the selected standards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, app, flags)
			if err != nil {
				return err
			}

			results, err := s.rate(cmd.Context(), sel.selection(), includeCoverage)
			if err != nil {
				return err
			}

			return s.writeOutput(results, renderRatings(results))
		},
	}

	addSelectFlags(cmd, sel)
	cmd.Flags().BoolVar(&includeCoverage, "include-coverage", false, "include the coverage each rating was computed from")

	return cmd
}

// rate lists the project and rates it.
func (s *session) rate(ctx context.Context, sel dirstd.Selection, includeCoverage bool) ([]dirstd.RatingResult, error) {
	paths, err := s.listing(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("rating", "paths", len(paths), "selection", sel)

	results, err := s.evaluator.RateSelected(ctx, paths, sel)
	if err != nil {
		return nil, evalErr(err)
	}

	if !includeCoverage {
		for i := range results {
			results[i] = results[i].WithoutCoverage()
		}
	}

	for _, r := range results {
		s.logger.Info("rated", "standard", r.Rating.Name, "factor", r.Rating.Factor)
	}

	return results, nil
}

// evalErr classifies evaluation errors into exit codes.
func evalErr(err error) error {
	switch {
	case errors.Is(err, dirstd.ErrUnknownStandard):
		return exitErr(ExitConfig, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return exitErr(ExitData, err)
	}
}
