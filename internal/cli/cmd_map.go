// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import (
	"github.com/spf13/cobra"
)

// newMapCommand creates the map subcommand.
func newMapCommand(app *App, flags *rootFlagValues) *cobra.Command {
	sel := &selectFlagValues{}

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map project paths to the records of the selected standards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, app, flags)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			paths, err := s.listing(ctx)
			if err != nil {
				return err
			}

			coverages, err := s.evaluator.CoverSelected(ctx, paths, sel.selection())
			if err != nil {
				return evalErr(err)
			}

			entries := make([]mapEntry, 0, len(coverages))
			for _, c := range coverages {
				entries = append(entries, mapEntry{
					Name:     c.Name(),
					Coverage: c,
					Records:  c.MatchedRecords(),
				})
			}

			return s.writeOutput(entries, renderMap(entries))
		},
	}

	addSelectFlags(cmd, sel)

	return cmd
}
