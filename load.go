// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// catalogModDir holds one sub-directory per standard.
	catalogModDir = "mod"
	// catalogDefaultFile names the default standard.
	catalogDefaultFile = "default_mod.csv"
	// definitionStem is the file name stem of a standard definition.
	definitionStem = "definition"
)

// definitionExts are the supported definition file extensions, in lookup order.
var definitionExts = []string{".csv", ".yaml", ".yml", ".toml"}

// LoadStandardFile reads and parses a standard definition file.
//
// The parser is chosen by extension (.csv, .yaml, .yml, .toml). The standard
// is named after the parent directory for "definition.*" files, after the
// file stem otherwise; a YAML or TOML name field takes precedence.
func LoadStandardFile(path string) (*Standard, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs standard path: %w", err)
	}

	dir, base := filepath.Split(abs)
	return loadStandardFS(os.DirFS(dir), base, standardName(filepath.ToSlash(abs)))
}

// LoadStandardFiles reads standards from files in the given order.
func LoadStandardFiles(paths ...string) ([]*Standard, error) {
	out := make([]*Standard, 0, len(paths))
	for _, path := range paths {
		std, err := LoadStandardFile(path)
		if err != nil {
			return nil, err
		}

		out = append(out, std)
	}

	return out, nil
}

// LoadCatalogDir loads a catalog directory from disk, see LoadCatalogFS.
func LoadCatalogDir(dir string) (*Catalog, error) {
	return LoadCatalogFS(os.DirFS(dir))
}

// LoadCatalogFS loads and validates a catalog laid out as
//
//	default_mod.csv              name of the default standard (optional)
//	mod/<name>/definition.csv    one definition per standard (or .yaml/.yml)
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, catalogModDir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidCatalog, catalogModDir, err)
	}

	stds := make([]*Standard, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		def, found, err := findDefinition(fsys, path.Join(catalogModDir, entry.Name()))
		if err != nil {
			return nil, err
		}

		if !found {
			continue
		}

		std, err := loadStandardFS(fsys, def, entry.Name())
		if err != nil {
			return nil, err
		}

		stds = append(stds, std)
	}

	if len(stds) == 0 {
		return nil, fmt.Errorf("%w: no standard definitions below %s", ErrInvalidCatalog, catalogModDir)
	}

	defaultName, err := readDefaultName(fsys)
	if err != nil {
		return nil, err
	}

	return NewCatalog(defaultName, stds...)
}

// loadStandardFS parses one definition file from fsys.
func loadStandardFS(fsys fs.FS, name string, stdName string) (*Standard, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open standard file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var std *Standard
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		std, err = ParseStandardCSV(stdName, f)
	case ".yaml", ".yml":
		std, err = ParseStandardYAML(stdName, f)
	case ".toml":
		std, err = ParseStandardTOML(stdName, f)
	default:
		return nil, fmt.Errorf("%w: unsupported definition format %q", ErrInvalidCatalog, name)
	}

	if err != nil {
		return nil, fmt.Errorf("parse standard file %s: %w", name, err)
	}

	return std, nil
}

// findDefinition returns the definition file inside one standard directory.
func findDefinition(fsys fs.FS, dir string) (string, bool, error) {
	for _, ext := range definitionExts {
		name := path.Join(dir, definitionStem+ext)
		info, err := fs.Stat(fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return "", false, fmt.Errorf("stat %s: %w", name, err)
		}

		if !info.IsDir() {
			return name, true, nil
		}
	}

	return "", false, nil
}

// readDefaultName reads the default standard name; a missing file means none.
func readDefaultName(fsys fs.FS) (string, error) {
	content, err := fs.ReadFile(fsys, catalogDefaultFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}

		return "", fmt.Errorf("read %s: %w", catalogDefaultFile, err)
	}

	return strings.TrimSpace(string(content)), nil
}

// standardName derives a standard name from a slash separated definition path.
func standardName(p string) string {
	base := path.Base(p)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == definitionStem {
		if parent := path.Base(path.Dir(p)); parent != "." && parent != "/" {
			return parent
		}
	}

	return stem
}
