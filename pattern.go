// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"fmt"
	"regexp"
	"strings"
)

// Case-insensitive flag prepended to every compiled path pattern.
const patternFlags = `(?i)`

// segmentPattern returns the regex source matching the final path segment of one record.
//
// Variations render as a literal alternation "(a|b|c)", an explicit regex is
// wrapped in a non-capturing group so its alternations stay local to the segment.
func segmentPattern(std string, rec *Record) (string, error) {
	hasVariations := len(rec.Variations) > 0
	hasRegex := rec.Regex != ""

	switch {
	case hasVariations && hasRegex:
		return "", fmt.Errorf("%w: %s: %q has both variations and regex", ErrInvalidRecord, std, rec.Path)
	case hasVariations:
		return "(" + strings.Join(rec.Variations, "|") + ")", nil
	case hasRegex:
		if _, err := regexp.Compile(rec.Regex); err != nil {
			return "", fmt.Errorf("%w: %s: %q regex %q: %v", ErrInvalidPattern, std, rec.Path, rec.Regex, err)
		}

		return "(?:" + rec.Regex + ")", nil
	default:
		return "", fmt.Errorf("%w: %s: %q has neither variations nor regex", ErrInvalidRecord, std, rec.Path)
	}
}

// anchoredSource wraps a composed path body into a whole-path match.
func anchoredSource(body string) string {
	return patternFlags + `^(?:` + body + `)$`
}

// dirPrefixSource wraps a composed directory body into a "directory plus separator" prefix match.
func dirPrefixSource(body string) string {
	return patternFlags + `^(?:` + body + `)/`
}

// subtreeSource wraps a composed directory body into a match of everything beneath it.
func subtreeSource(body string) string {
	return patternFlags + `^(?:` + body + `)/.*$`
}

// compilePattern compiles one assembled pattern with standard/record context on failure.
func compilePattern(src string, std string, rec *Record) (*regexp.Regexp, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %q assembled pattern %q: %v", ErrInvalidPattern, std, rec.Path, src, err)
	}

	return re, nil
}

// containsPattern reports whether a pattern with the same source is already present.
func containsPattern(list []*regexp.Regexp, src string) bool {
	for _, re := range list {
		if re.String() == src {
			return true
		}
	}

	return false
}

// firstMatch returns the index of the first pattern matching candidate, -1 if none.
func firstMatch(list []*regexp.Regexp, candidate string) int {
	for i, re := range list {
		if re.MatchString(candidate) {
			return i
		}
	}

	return -1
}
