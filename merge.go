// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

// MergeCatalogs merges catalogs preserving input order.
//
// A standard of a later catalog replaces an earlier one with the same name.
// The default is taken from the last catalog that designates one.
func MergeCatalogs(catalogs ...*Catalog) (*Catalog, error) {
	total := 0
	for _, c := range catalogs {
		total += c.Len()
	}

	byName := make(map[string]*Prepared, total)
	order := make([]string, 0, total)
	defaultName := ""
	for _, c := range catalogs {
		if c == nil {
			continue
		}

		for _, name := range c.names {
			if _, ok := byName[name]; !ok {
				order = append(order, name)
			}
			byName[name] = c.prepared[name]
		}

		if c.defaultName != "" {
			defaultName = c.defaultName
		}
	}

	prepared := make([]*Prepared, 0, len(order))
	for _, name := range order {
		prepared = append(prepared, byName[name])
	}

	return newCatalogPrepared(defaultName, prepared)
}
