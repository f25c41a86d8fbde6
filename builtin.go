// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed catalog
var builtinFS embed.FS

// BuiltinCatalogFS returns the bundled catalog laid out as LoadCatalogFS expects.
func BuiltinCatalogFS() fs.FS {
	sub, err := fs.Sub(builtinFS, "catalog")
	if err != nil {
		// embed.FS always contains the directory named in the directive.
		panic(err)
	}

	return sub
}

// BuiltinCatalog loads and validates the bundled catalog.
func BuiltinCatalog() (*Catalog, error) {
	c, err := LoadCatalogFS(BuiltinCatalogFS())
	if err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}

	return c, nil
}
