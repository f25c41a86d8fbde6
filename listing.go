// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ReadListing reads a listing of relative paths, one per line.
//
// Semantics:
// - blank lines and lines starting with "#" are skipped
// - leading "./" or ".\" is removed, "\" separators become "/"
// - a trailing "/" is kept as directory marker
// - absolute paths and paths escaping the root are rejected
func ReadListing(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	out := make([]string, 0, 64)

	for line := 1; s.Scan(); line++ {
		raw := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(raw) == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		p, err := cleanListingPath(raw)
		if err != nil {
			return nil, fmt.Errorf("listing line %d: %w", line, err)
		}

		out = append(out, p)
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan listing: %w", err)
	}

	return out, nil
}

// WithAncestors adds the ancestor directories of every path, before the path itself.
//
// Paths are deduplicated by their matchable form, so "src" and "src/" are
// one entry; an entry that turns out to be an ancestor keeps the directory
// marker. The dedupe set lives only for this call.
func WithAncestors(paths []string) []string {
	seen := make(map[string]int, len(paths)*2)
	out := make([]string, 0, len(paths)*2)

	add := func(p string) {
		key := matchablePath(p)
		if i, ok := seen[key]; ok {
			if IsDirPath(p) && !IsDirPath(out[i]) {
				out[i] = p
			}
			return
		}
		seen[key] = len(out)
		out = append(out, p)
	}

	for _, p := range paths {
		p = normalizeListingPath(p)
		if p == "" {
			continue
		}

		for _, dir := range ancestorDirs(p) {
			add(dir)
		}
		add(p)
	}

	return out
}

// ListerOptions configures a file-system Lister.
type ListerOptions struct {
	// Exclude are doublestar glob patterns, relative to the root, of paths that
	// are neither listed nor descended into.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	// EnableSymlinkEscapeCheck skips symlinks that resolve outside the root.
	EnableSymlinkEscapeCheck bool `json:"enable_symlink_escape_check,omitempty" yaml:"enable_symlink_escape_check,omitempty"`
}

// Lister produces a listing by walking a project directory.
type Lister struct {
	// root is the absolute project root.
	root string
	// resolvedRoot is root with symlinks resolved when possible.
	resolvedRoot string
	// exclude are validated doublestar patterns.
	exclude []string
	// enableSymlinkEscapeCheck enables resolved-path root boundary validation.
	enableSymlinkEscapeCheck bool
}

// NewLister creates a lister rooted at rootDir.
func NewLister(rootDir string, opts ListerOptions) (*Lister, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("abs root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root %s is not a directory", ErrInvalidListingPath, absRoot)
	}

	resolvedRoot := absRoot
	if opts.EnableSymlinkEscapeCheck {
		resolvedRoot, err = resolvePathOrAbs(absRoot)
		if err != nil {
			return nil, fmt.Errorf("resolve root: %w", err)
		}
	}

	// Validate globs eagerly so that typos fail before the walk.
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: exclude glob %q", ErrInvalidPattern, pattern)
		}
	}

	return &Lister{
		root:                     absRoot,
		resolvedRoot:             resolvedRoot,
		exclude:                  opts.Exclude,
		enableSymlinkEscapeCheck: opts.EnableSymlinkEscapeCheck,
	}, nil
}

// Root returns the absolute project root.
func (l *Lister) Root() string {
	return l.root
}

// List walks the root and returns every file and directory below it, in
// lexical walk order, directories with a trailing "/".
func (l *Lister) List(ctx context.Context) ([]string, error) {
	out := make([]string, 0, 256)

	err := filepath.WalkDir(l.root, func(full string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if full == l.root {
			return nil
		}

		rel, err := filepath.Rel(l.root, full)
		if err != nil {
			return fmt.Errorf("rel %s: %w", full, err)
		}
		rel = filepath.ToSlash(rel)

		if l.excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		isDir := d.IsDir()
		if d.Type()&fs.ModeSymlink != 0 {
			target, ok, err := l.symlinkTarget(full)
			if err != nil {
				return err
			}

			if !ok {
				return nil
			}

			isDir = target.IsDir()
		}

		if isDir {
			rel += "/"
		}

		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.root, err)
	}

	return out, nil
}

// excluded reports whether rel matches one of the exclude globs.
func (l *Lister) excluded(rel string) bool {
	for _, pattern := range l.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// symlinkTarget stats a symlink target; ok is false for dangling links and,
// with the escape check enabled, for links leaving the root.
func (l *Lister) symlinkTarget(full string) (fs.FileInfo, bool, error) {
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("stat %s: %w", full, err)
	}

	if !l.enableSymlinkEscapeCheck {
		return info, true, nil
	}

	resolved, err := resolvePathOrAbs(full)
	if err != nil {
		return nil, false, fmt.Errorf("resolve %s: %w", full, err)
	}

	return info, isPathWithinRoot(l.resolvedRoot, resolved), nil
}

// cleanListingPath normalizes and validates one listing path.
func cleanListingPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidListingPath
	}

	if filepath.IsAbs(trimmed) || strings.HasPrefix(filepath.ToSlash(trimmed), "/") {
		return "", fmt.Errorf("%w: absolute path %q", ErrInvalidListingPath, raw)
	}

	slashed := strings.ReplaceAll(trimmed, `\`, `/`)
	body := strings.TrimSuffix(slashed, "/")
	if body == ".." || strings.HasPrefix(body, "../") || strings.Contains(body, "/../") || strings.HasSuffix(body, "/..") {
		return "", fmt.Errorf("%w: %q escapes the root", ErrInvalidListingPath, raw)
	}

	p := normalizeListingPath(slashed)
	if p == "" {
		return "", fmt.Errorf("%w: empty path %q", ErrInvalidListingPath, raw)
	}

	return p, nil
}

// resolvePathOrAbs resolves symlinks/junctions and falls back to absolute path for non-link paths.
func resolvePathOrAbs(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}

	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		return "", absErr
	}

	if os.IsNotExist(err) {
		return abs, nil
	}

	return "", err
}

// isPathWithinRoot reports whether target path is inside root path.
func isPathWithinRoot(root string, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}

	if rel == "." {
		return true
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	return true
}
