// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStandard builds a normalized standard from literal records.
func newTestStandard(t testing.TB, name string, records ...Record) *Standard {
	t.Helper()

	std := &Standard{Name: name, Records: records}
	require.NoError(t, normalizeStandard(std))
	return std
}

// sourceDocsStandard has a directory for sources, one for docs and a readme file.
func sourceDocsStandard(t testing.TB) *Standard {
	t.Helper()

	return newTestStandard(t, "src-docs",
		Record{Path: "src/", Variations: []string{"src"}, Indicativeness: 0.5},
		Record{Path: "docs/", Variations: []string{"docs"}, Indicativeness: 0.3},
		Record{Path: "readme", Regex: `readme(\.md)?`, Indicativeness: 0.2},
	)
}

// partsStandard nests projects below "parts/<name>/".
func partsStandard(t testing.TB) *Standard {
	t.Helper()

	return newTestStandard(t, "parts",
		Record{Path: "parts/", Variations: []string{"parts"}, Indicativeness: 1},
		Record{Path: "parts/*/", Regex: `[^/]+`, Module: true, Indicativeness: 1},
		Record{Path: "src/", Variations: []string{"src"}, Indicativeness: 2},
		Record{Path: "build/", Variations: []string{"build", "out"}, Generated: true, Indicativeness: 1},
		Record{Path: "assets/", Variations: []string{"assets"}, ArbitraryContent: OptTrue, Indicativeness: 1},
	)
}

func writeTestFile(t *testing.T, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
