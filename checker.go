// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// CheckerOptions controls one classification run.
type CheckerOptions struct {
	// Ignore matches paths excluded from classification; nil ignores nothing.
	Ignore *regexp.Regexp
	// Logger receives debug output; nil discards it.
	Logger *log.Logger
	// Generated are extra generated-content patterns checked after the standard's own.
	Generated []*regexp.Regexp
}

// Checker classifies listing paths against one prepared standard.
//
// A Checker is not safe for concurrent use; run one per goroutine.
type Checker struct {
	// prepared is the shared compiled standard.
	prepared *Prepared
	// coverage is the result in creation.
	coverage *Coverage
	// modules maps module root paths to nested checkers.
	modules map[string]*Checker
	// generated is the standard's generated patterns followed by the extra ones.
	generated []*regexp.Regexp
	// opts are passed on to nested module checkers.
	opts CheckerOptions
}

// NewChecker creates a checker for one run over a prepared standard.
func NewChecker(p *Prepared, opts CheckerOptions) *Checker {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	generated := p.generated
	if len(opts.Generated) > 0 {
		generated = make([]*regexp.Regexp, 0, len(p.generated)+len(opts.Generated))
		generated = append(generated, p.generated...)
		generated = append(generated, opts.Generated...)
	}

	return &Checker{
		prepared:  p,
		coverage:  newCoverage(p.std),
		generated: generated,
		opts:      opts,
	}
}

// Cover classifies one listing path.
//
// Classification order:
// 1. module roots: delegate the remainder to the module checker and stop
// 2. ignore pattern: record as ignored and stop
// 3. every matching record receives the path
// 4. arbitrary content, only when no record matched
// 5. generated content, independent of 3 and 4
// 6. otherwise the path is out
func (c *Checker) Cover(raw string) {
	p := normalizeListingPath(raw)
	if p == "" {
		c.coverage.Ignored = append(c.coverage.Ignored, raw)
		return
	}

	candidate := matchablePath(p)

	if c.delegate(p, candidate) {
		return
	}

	if c.opts.Ignore != nil && c.opts.Ignore.MatchString(candidate) {
		c.coverage.Ignored = append(c.coverage.Ignored, p)
		return
	}

	c.coverage.NumPaths++

	matched := false
	for _, leaf := range c.prepared.tree.leaves {
		if !leaf.pattern.MatchString(candidate) {
			continue
		}

		matched = true
		key := c.prepared.std.Records[leaf.record].Path
		c.coverage.In[key] = append(c.coverage.In[key], p)
	}

	if !matched && firstMatch(c.prepared.arbitrary, candidate) >= 0 {
		matched = true
		c.coverage.ArbitraryContent = append(c.coverage.ArbitraryContent, p)
	}

	if firstMatch(c.generated, candidate) >= 0 {
		matched = true
		c.coverage.GeneratedContent = append(c.coverage.GeneratedContent, p)
	}

	if !matched {
		c.coverage.Out = append(c.coverage.Out, p)
	}
}

// CoverAll classifies every path of a listing in order.
func (c *Checker) CoverAll(paths []string) {
	for _, p := range paths {
		c.Cover(p)
	}
}

// Finish consumes the checker and returns its coverage with nested module coverage.
//
// The checker must not be used afterwards.
func (c *Checker) Finish() *Coverage {
	cov := c.coverage
	cov.Modules = make(map[string]*Coverage, len(c.modules))
	for root, child := range c.modules {
		cov.Modules[root] = child.Finish()
	}

	c.coverage = nil
	c.modules = nil
	return cov
}

// delegate routes a path below a module root to the nested checker for that root.
func (c *Checker) delegate(p string, candidate string) bool {
	for _, re := range c.prepared.modules {
		loc := re.FindStringIndex(candidate)
		if loc == nil {
			continue
		}

		root := strings.TrimSuffix(candidate[:loc[1]], "/")
		rest := p[loc[1]:]
		if root == "" || matchablePath(rest) == "" {
			continue
		}

		child, ok := c.modules[root]
		if !ok {
			c.opts.Logger.Debug("module detected", "std", c.prepared.std.Name, "root", root)
			child = NewChecker(c.prepared, c.opts)
			if c.modules == nil {
				c.modules = make(map[string]*Checker)
			}
			c.modules[root] = child
		}

		child.Cover(rest)
		return true
	}

	return false
}
