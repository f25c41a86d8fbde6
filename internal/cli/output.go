// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/dirstd"
	"github.com/woozymasta/dirstd/internal/config"
)

// mapEntry is one standard's coverage as printed by the map command.
type mapEntry struct {
	Coverage *dirstd.Coverage `json:"coverage" yaml:"coverage"`
	Name     string           `json:"name" yaml:"name"`
	Records  []dirstd.Record  `json:"records" yaml:"records"`
}

// standardEntry describes one catalog standard for the standards command.
type standardEntry struct {
	Name    string  `json:"name" yaml:"name"`
	Records int     `json:"records" yaml:"records"`
	Sum     float64 `json:"indicativeness_sum" yaml:"indicativeness_sum"`
	Default bool    `json:"default" yaml:"default"`
}

// textRenderer prints a value in human readable form.
type textRenderer func(w io.Writer) error

// writeOutput serializes v in format to --output or stdout.
func (s *session) writeOutput(v any, text textRenderer) error {
	return writeTo(s.app.stdout, s.flags.output, s.cfg.Format, v, text)
}

// writeTo opens the output target and encodes v into it.
func writeTo(stdout io.Writer, output string, format string, v any, text textRenderer) (err error) {
	w := stdout
	if output != "" && output != "-" {
		f, openErr := os.Create(output)
		if openErr != nil {
			return fmt.Errorf("create output: %w", openErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	return encode(w, format, v, text)
}

// encode writes v to w in format.
func encode(w io.Writer, format string, v any, text textRenderer) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case config.FormatText:
		return text(w)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// renderRatings prints one line per rating with a colored factor.
func renderRatings(results []dirstd.RatingResult) textRenderer {
	return func(w io.Writer) error {
		for _, r := range results {
			factor := factorStyle(r.Rating.Factor).Render(fmt.Sprintf("%.3f", r.Rating.Factor))
			if _, err := fmt.Fprintf(w, "%s %s\n", factor, r.Rating.Name); err != nil {
				return err
			}

			if r.Coverage == nil {
				continue
			}
			if err := renderCoverageSummary(w, r.Coverage, "  "); err != nil {
				return err
			}
		}
		return nil
	}
}

// renderMap prints matched records and unmatched paths per standard.
func renderMap(entries []mapEntry) textRenderer {
	return func(w io.Writer) error {
		for i, e := range entries {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, titleStyle.Render(e.Name)); err != nil {
				return err
			}
			if err := renderCoverage(w, e.Coverage, "  "); err != nil {
				return err
			}
		}
		return nil
	}
}

// renderCoverageSummary prints path counts of c.
func renderCoverageSummary(w io.Writer, c *dirstd.Coverage, indent string) error {
	_, err := fmt.Fprintf(w, "%s%s records %d, out %d, ignored %d, modules %d\n",
		indent,
		subtitleStyle.Render("paths"),
		len(c.In), len(c.Out), len(c.Ignored), len(c.Modules),
	)
	return err
}

// renderCoverage prints each matched record with its paths, then the
// unmatched paths and nested modules.
func renderCoverage(w io.Writer, c *dirstd.Coverage, indent string) error {
	records := make([]string, 0, len(c.In))
	for record := range c.In {
		records = append(records, record)
	}
	sort.Strings(records)

	for _, record := range records {
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, goodStyle.Render(record)); err != nil {
			return err
		}
		for _, p := range c.In[record] {
			if _, err := fmt.Fprintf(w, "%s  %s\n", indent, pathStyle.Render(p)); err != nil {
				return err
			}
		}
	}

	if len(c.Out) > 0 {
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, badStyle.Render("unmatched")); err != nil {
			return err
		}
		for _, p := range c.Out {
			if _, err := fmt.Fprintf(w, "%s  %s\n", indent, pathStyle.Render(p)); err != nil {
				return err
			}
		}
	}

	for _, root := range c.ModuleRoots() {
		if _, err := fmt.Fprintf(w, "%s%s %s\n", indent, fairStyle.Render("module"), root); err != nil {
			return err
		}
		if err := renderCoverage(w, c.Modules[root], indent+"  "); err != nil {
			return err
		}
	}

	return nil
}

// renderStandards prints the catalog table.
func renderStandards(entries []standardEntry) textRenderer {
	return func(w io.Writer) error {
		for _, e := range entries {
			marker := " "
			if e.Default {
				marker = goodStyle.Render("*")
			}
			line := strings.Join([]string{
				marker,
				titleStyle.Render(e.Name),
				subtitleStyle.Render(fmt.Sprintf("%d records", e.Records)),
			}, " ")
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}
