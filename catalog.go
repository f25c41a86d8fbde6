// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"fmt"
	"slices"
)

// Catalog is an immutable, validated set of named standards.
//
// All standards are compiled when the catalog is created, so invalid data
// fails before any classification run. A Catalog is safe for concurrent use.
type Catalog struct {
	// prepared maps standard names to compiled standards.
	prepared map[string]*Prepared
	// defaultName is the designated default standard, empty when none.
	defaultName string
	// names are the standard names, sorted.
	names []string
}

// NewCatalog validates and compiles standards into a catalog.
//
// An empty defaultName selects the only standard of a single-standard
// catalog; otherwise the catalog has no default.
func NewCatalog(defaultName string, stds ...*Standard) (*Catalog, error) {
	prepared := make([]*Prepared, 0, len(stds))
	for _, std := range stds {
		p, err := Prepare(std)
		if err != nil {
			return nil, err
		}

		prepared = append(prepared, p)
	}

	return newCatalogPrepared(defaultName, prepared)
}

// newCatalogPrepared assembles a catalog from already compiled standards.
func newCatalogPrepared(defaultName string, prepared []*Prepared) (*Catalog, error) {
	c := &Catalog{
		prepared: make(map[string]*Prepared, len(prepared)),
		names:    make([]string, 0, len(prepared)),
	}

	for _, p := range prepared {
		name := p.Name()
		if name == "" {
			return nil, fmt.Errorf("%w: standard without name", ErrInvalidCatalog)
		}

		if _, dup := c.prepared[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStandard, name)
		}

		c.prepared[name] = p
		c.names = append(c.names, name)
	}

	slices.Sort(c.names)

	if defaultName == "" && len(c.names) == 1 {
		defaultName = c.names[0]
	}

	if defaultName != "" {
		if _, ok := c.prepared[defaultName]; !ok {
			return nil, fmt.Errorf("%w: default %q", ErrUnknownStandard, defaultName)
		}
	}

	c.defaultName = defaultName
	return c, nil
}

// Names returns the sorted standard names.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}

	return slices.Clone(c.names)
}

// DefaultName returns the default standard name, empty when none is designated.
func (c *Catalog) DefaultName() string {
	if c == nil {
		return ""
	}

	return c.defaultName
}

// Len returns the number of standards.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.names)
}

// Standard returns the named standard.
func (c *Catalog) Standard(name string) (*Standard, bool) {
	p, err := c.Prepared(name)
	if err != nil {
		return nil, false
	}

	return p.Standard(), true
}

// Prepared returns the compiled form of the named standard.
func (c *Catalog) Prepared(name string) (*Prepared, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}

	p, ok := c.prepared[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStandard, name)
	}

	return p, nil
}

// Default returns the compiled default standard.
func (c *Catalog) Default() (*Prepared, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}

	if c.defaultName == "" {
		return nil, fmt.Errorf("%w: no default standard designated", ErrUnknownStandard)
	}

	return c.Prepared(c.defaultName)
}

// all returns every compiled standard in name order.
func (c *Catalog) all() []*Prepared {
	out := make([]*Prepared, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.prepared[name])
	}

	return out
}
