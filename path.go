// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"path"
	"strings"
)

// normalizeListingPath normalizes a listing path to slash-separated relative
// clean form, keeping a trailing "/" as directory marker.
func normalizeListingPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}

	raw = strings.TrimPrefix(raw, "./")
	raw = strings.TrimPrefix(raw, "/")
	if raw == "" || raw == "." {
		return ""
	}

	dir := strings.HasSuffix(raw, "/")

	// Fast path for already-normalized relative paths.
	body := strings.TrimSuffix(raw, "/")
	if !isSimpleNormalizedPath(body) {
		body = path.Clean("/" + body)
		body = strings.TrimPrefix(body, "/")
		if body == "." || body == "" {
			return ""
		}
	}

	if dir {
		return body + "/"
	}

	return body
}

// isSimpleNormalizedPath reports whether path is already normalized enough to skip path.Clean.
func isSimpleNormalizedPath(path string) bool {
	if path == "" ||
		path == "." ||
		path == ".." ||
		strings.HasPrefix(path, "/") ||
		strings.HasSuffix(path, "/") ||
		strings.HasPrefix(path, "./") ||
		strings.HasPrefix(path, "../") ||
		strings.Contains(path, "//") ||
		strings.Contains(path, "/./") ||
		strings.Contains(path, "/../") ||
		strings.HasSuffix(path, "/..") {
		return false
	}

	return true
}

// IsDirPath reports whether a listing path carries the directory marker.
func IsDirPath(p string) bool {
	return strings.HasSuffix(p, "/")
}

// matchablePath strips the directory marker so that directory entries match
// the anchored record patterns.
func matchablePath(p string) string {
	return strings.TrimSuffix(p, "/")
}

// ancestorDirs returns the ancestor directories of a normalized listing path,
// outermost first, each with the directory marker.
func ancestorDirs(p string) []string {
	body := matchablePath(p)
	n := strings.Count(body, "/")
	if n == 0 {
		return nil
	}

	out := make([]string, 0, n)
	for i := 0; i < len(body); i++ {
		if body[i] == '/' {
			out = append(out, body[:i+1])
		}
	}

	return out
}
