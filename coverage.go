// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"encoding/json"
	"slices"
	"strings"
)

// Coverage records which listing paths are covered by which records of one standard.
type Coverage struct {
	// Standard is the standard coverage was checked for.
	Standard *Standard
	// In maps matched record paths to the listing paths they matched.
	// One listing path may appear under several records.
	In map[string][]string
	// Modules maps module root paths to the coverage of that nested project.
	Modules map[string]*Coverage
	// Ignored are paths matched by the ignore pattern.
	Ignored []string
	// ArbitraryContent are viable paths below an arbitrary content root.
	ArbitraryContent []string
	// GeneratedContent are viable paths below a generated content root.
	// Membership is orthogonal to In, ArbitraryContent and Out.
	GeneratedContent []string
	// Out are viable paths matched by nothing.
	Out []string
	// NumPaths counts viable paths, excluding ignored and module-delegated ones.
	NumPaths int
}

// coverageView is the serialized shape of a Coverage.
type coverageView struct {
	In               map[string][]string  `json:"in" yaml:"in"`
	Modules          map[string]*Coverage `json:"modules" yaml:"modules"`
	Std              string               `json:"std" yaml:"std"`
	Ignored          []string             `json:"ignored" yaml:"ignored"`
	ArbitraryContent []string             `json:"arbitrary_content" yaml:"arbitrary_content"`
	GeneratedContent []string             `json:"generated_content" yaml:"generated_content"`
	Out              []string             `json:"out" yaml:"out"`
	NumPaths         int                  `json:"num_paths" yaml:"num_paths"`
}

// newCoverage returns an empty coverage for std.
func newCoverage(std *Standard) *Coverage {
	return &Coverage{
		Standard:         std,
		In:               make(map[string][]string),
		Modules:          make(map[string]*Coverage),
		Ignored:          []string{},
		ArbitraryContent: []string{},
		GeneratedContent: []string{},
		Out:              []string{},
	}
}

// Name returns the standard name.
func (c *Coverage) Name() string {
	if c.Standard == nil {
		return ""
	}

	return c.Standard.Name
}

// MatchedRecords returns the records with at least one matched path, sorted by path.
func (c *Coverage) MatchedRecords() []Record {
	out := make([]Record, 0, len(c.In))
	if c.Standard == nil {
		return out
	}

	for path, paths := range c.In {
		if len(paths) == 0 {
			continue
		}

		if rec, ok := c.Standard.Record(path); ok {
			out = append(out, *rec)
		}
	}

	slices.SortFunc(out, func(a, b Record) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}

// ModuleDirs returns the listing paths matched by module records, sorted.
func (c *Coverage) ModuleDirs() []string {
	var dirs []string
	if c.Standard == nil {
		return dirs
	}

	for path, paths := range c.In {
		rec, ok := c.Standard.Record(path)
		if !ok || !rec.Module {
			continue
		}

		dirs = append(dirs, paths...)
	}

	slices.Sort(dirs)
	return dirs
}

// ModuleRoots returns the keys of Modules, sorted.
func (c *Coverage) ModuleRoots() []string {
	roots := make([]string, 0, len(c.Modules))
	for root := range c.Modules {
		roots = append(roots, root)
	}

	slices.Sort(roots)
	return roots
}

// OutFiles counts Out entries that are files, i.e. lack the directory marker.
func (c *Coverage) OutFiles() int {
	n := 0
	for _, p := range c.Out {
		if !IsDirPath(p) {
			n++
		}
	}

	return n
}

// view flattens the coverage for serialization.
func (c *Coverage) view() coverageView {
	return coverageView{
		Std:              c.Name(),
		NumPaths:         c.NumPaths,
		In:               c.In,
		Ignored:          c.Ignored,
		ArbitraryContent: c.ArbitraryContent,
		GeneratedContent: c.GeneratedContent,
		Out:              c.Out,
		Modules:          c.Modules,
	}
}

// MarshalJSON serializes the standard as its name and records as their paths.
func (c *Coverage) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.view())
}

// MarshalYAML serializes like MarshalJSON.
func (c *Coverage) MarshalYAML() (any, error) {
	return c.view(), nil
}
