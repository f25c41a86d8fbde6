// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import (
	"github.com/spf13/cobra"
)

// newStandardsCommand creates the standards subcommand.
func newStandardsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:     "standards",
		Aliases: []string{"ls"},
		Short:   "List the standards of the loaded catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, app, flags)
			if err != nil {
				return err
			}

			entries := make([]standardEntry, 0, s.catalog.Len())
			for _, name := range s.catalog.Names() {
				std, _ := s.catalog.Standard(name)
				entries = append(entries, standardEntry{
					Name:    name,
					Records: len(std.Records),
					Sum:     std.IndicativenessSum(),
					Default: name == s.catalog.DefaultName(),
				})
			}

			return s.writeOutput(entries, renderStandards(entries))
		},
	}
}
