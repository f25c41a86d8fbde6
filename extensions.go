// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"regexp"
	"strings"
)

// ParseGeneratedExtensions converts an extension list to generated-content patterns.
//
// Accepted extension forms:
//   - "stl"
//   - ".stl"
//   - "*.stl"
//
// Empty values and duplicates are skipped. Patterns match files with that
// extension anywhere in the listing, case-insensitively, and preserve input order.
func ParseGeneratedExtensions(exts []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exts))
	seen := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		ext = strings.ToLower(ext)
		if ext == "" {
			continue
		}

		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}

		out = append(out, regexp.MustCompile(patternFlags+`^(?:.*/)?[^/]+\.`+regexp.QuoteMeta(ext)+`$`))
	}

	return out
}
