// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Prepared is the compiled, read-only form of one standard.
//
// It is built once and may be shared by any number of concurrent checkers.
type Prepared struct {
	// std is the source standard.
	std *Standard
	// tree is the rule tree with composed record patterns.
	tree *ruleTree
	// modules match module roots as directory prefixes, deduplicated by source.
	modules []*regexp.Regexp
	// arbitrary match content below records flagged with arbitrary content.
	arbitrary []*regexp.Regexp
	// generated match content below records flagged as generated.
	generated []*regexp.Regexp
}

// Prepare validates and compiles one standard.
//
// Records lacking a pattern source and patterns that fail to compile are
// reported here, before any classification run. The Prepared value holds a
// copy of std whose record Directory flags are derived from the paths.
func Prepare(std *Standard) (*Prepared, error) {
	if std == nil {
		return nil, fmt.Errorf("%w: nil standard", ErrEmptyStandard)
	}

	if len(std.Records) == 0 {
		return nil, fmt.Errorf("%w: %s has no records", ErrEmptyStandard, std.Name)
	}

	std = derivedStandard(std)

	tree, err := buildTree(std)
	if err != nil {
		return nil, err
	}

	p := &Prepared{
		std:  std,
		tree: tree,
	}

	for _, leaf := range tree.leaves {
		rec := &std.Records[leaf.record]

		if rec.Module {
			src := anchoredSource(leaf.body)
			if rec.Directory {
				src = dirPrefixSource(leaf.body)
			}

			if !containsPattern(p.modules, src) {
				re, err := compilePattern(src, std.Name, rec)
				if err != nil {
					return nil, err
				}

				p.modules = append(p.modules, re)
			}
		}

		if rec.IsArbitraryContent() {
			re, err := contentPattern(std.Name, rec, leaf)
			if err != nil {
				return nil, err
			}

			p.arbitrary = append(p.arbitrary, re)
		}

		if rec.Generated {
			re, err := contentPattern(std.Name, rec, leaf)
			if err != nil {
				return nil, err
			}

			p.generated = append(p.generated, re)
		}
	}

	return p, nil
}

// derivedStandard copies std with Directory set from the trailing "/" of every path.
func derivedStandard(std *Standard) *Standard {
	out := *std
	out.Records = slices.Clone(std.Records)
	for i := range out.Records {
		out.Records[i].Directory = strings.HasSuffix(out.Records[i].Path, "/")
	}

	return &out
}

// MustPrepare is like Prepare but panics on error; intended for tests and static data.
func MustPrepare(std *Standard) *Prepared {
	p, err := Prepare(std)
	if err != nil {
		panic(err)
	}

	return p
}

// Standard returns the source standard.
func (p *Prepared) Standard() *Standard {
	return p.std
}

// Name returns the standard name.
func (p *Prepared) Name() string {
	return p.std.Name
}

// RecordPattern returns the composed pattern source of the record with the given path.
func (p *Prepared) RecordPattern(path string) (string, bool) {
	for _, leaf := range p.tree.leaves {
		if p.std.Records[leaf.record].Path == path {
			return leaf.pattern.String(), true
		}
	}

	return "", false
}

// contentPattern widens directory rules to everything beneath them; file rules keep their pattern.
func contentPattern(std string, rec *Record, leaf ruleLeaf) (*regexp.Regexp, error) {
	if !rec.Directory {
		return leaf.pattern, nil
	}

	return compilePattern(subtreeSource(leaf.body), std, rec)
}
