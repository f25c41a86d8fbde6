// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// defaultIgnoreTest mirrors the command-line default ignore pattern.
var defaultIgnoreTest = regexp.MustCompile(`(^|.*/)(\..+)$`)

func coverListing(p *Prepared, opts CheckerOptions, paths ...string) *Coverage {
	c := NewChecker(p, opts)
	c.CoverAll(paths)
	return c.Finish()
}

func TestCheckerSourceDocsScenario(t *testing.T) {
	t.Parallel()

	p := MustPrepare(sourceDocsStandard(t))
	cov := coverListing(p, CheckerOptions{},
		"src/", "src/main.rs", "docs/", "readme.md", "random.txt",
	)

	assert.Equal(t, map[string][]string{
		"src/":   {"src/"},
		"docs/":  {"docs/"},
		"readme": {"readme.md"},
	}, cov.In)
	assert.Equal(t, []string{"src/main.rs", "random.txt"}, cov.Out)
	assert.Empty(t, cov.Ignored)
	assert.Empty(t, cov.Modules)
	assert.Equal(t, 5, cov.NumPaths)
	assert.Equal(t, 2, cov.OutFiles())

	assert.InDelta(t, 0.6, Rate(cov), 1e-9)
}

func TestCheckerModuleScenario(t *testing.T) {
	t.Parallel()

	p := MustPrepare(partsStandard(t))
	cov := coverListing(p, CheckerOptions{},
		"parts/",
		"parts/widget-a/",
		"parts/widget-a/src/",
		"parts/widget-a/src/main.c",
		"src/",
		"readme.txt",
	)

	require.Equal(t, []string{"parts/widget-a"}, cov.ModuleRoots())
	assert.Equal(t, 4, cov.NumPaths)
	assert.Equal(t, []string{"readme.txt"}, cov.Out)
	assert.Equal(t, []string{"parts/widget-a/"}, cov.In["parts/*/"])
	assert.Equal(t, []string{"parts/widget-a/"}, cov.ModuleDirs())
	assert.NotContains(t, cov.In["src/"], "parts/widget-a/src/")

	mod := cov.Modules["parts/widget-a"]
	require.NotNil(t, mod)
	assert.Same(t, cov.Standard, mod.Standard)
	assert.Equal(t, 2, mod.NumPaths)
	assert.Equal(t, []string{"src/"}, mod.In["src/"])
	assert.Equal(t, []string{"src/main.c"}, mod.Out)

	// five records, so one unmatched file weighs 1/5
	own := (4.0 / 6) / (4.0/6 + 1.0/5)
	module := (2.0 / 6) / (2.0/6 + 1.0/5)
	want := (own*4 + module*2) / 6
	assert.InDelta(t, want, Rate(cov), 1e-9)
}

func TestCheckerNestedModules(t *testing.T) {
	t.Parallel()

	p := MustPrepare(partsStandard(t))
	cov := coverListing(p, CheckerOptions{},
		"parts/a/parts/b/src/",
		"parts/a/src/",
	)

	require.Equal(t, []string{"parts/a"}, cov.ModuleRoots())
	outer := cov.Modules["parts/a"]
	require.Equal(t, []string{"parts/b"}, outer.ModuleRoots())
	assert.Equal(t, []string{"src/"}, outer.In["src/"])
	assert.Equal(t, []string{"src/"}, outer.Modules["parts/b"].In["src/"])
	assert.Zero(t, cov.NumPaths)
}

func TestCheckerIgnore(t *testing.T) {
	t.Parallel()

	p := MustPrepare(sourceDocsStandard(t))
	cov := coverListing(p, CheckerOptions{Ignore: defaultIgnoreTest},
		".git/", ".git/HEAD", "src/.env", "src/", "", "./",
	)

	assert.Equal(t, []string{".git/", ".git/HEAD", "src/.env", "", "./"}, cov.Ignored)
	assert.Equal(t, 1, cov.NumPaths)
	assert.Empty(t, cov.Out)
}

func TestCheckerNilIgnoreKeepsDotFiles(t *testing.T) {
	t.Parallel()

	p := MustPrepare(sourceDocsStandard(t))
	cov := coverListing(p, CheckerOptions{}, ".editorconfig")

	assert.Empty(t, cov.Ignored)
	assert.Equal(t, []string{".editorconfig"}, cov.Out)
}

func TestCheckerArbitraryAndGeneratedContent(t *testing.T) {
	t.Parallel()

	p := MustPrepare(partsStandard(t))
	cov := coverListing(p, CheckerOptions{},
		"assets/", "assets/img/", "assets/img/a.png",
		"out/", "out/app.bin",
		"misc.txt",
	)

	assert.Equal(t, []string{"assets/"}, cov.In["assets/"])
	assert.Equal(t, []string{"out/"}, cov.In["build/"])
	assert.Equal(t, []string{"assets/img/", "assets/img/a.png"}, cov.ArbitraryContent)
	assert.Equal(t, []string{"out/app.bin"}, cov.GeneratedContent)
	assert.Equal(t, []string{"misc.txt"}, cov.Out)
	assert.Equal(t, 6, cov.NumPaths)
}

func TestCheckerGeneratedIsOrthogonalToRecords(t *testing.T) {
	t.Parallel()

	p := MustPrepare(sourceDocsStandard(t))
	cov := coverListing(p, CheckerOptions{Generated: ParseGeneratedExtensions([]string{"md", "*.STL"})},
		"readme.md", "src/model.stl", "src/main.rs",
	)

	assert.Equal(t, []string{"readme.md"}, cov.In["readme"])
	assert.Equal(t, []string{"readme.md", "src/model.stl"}, cov.GeneratedContent)
	assert.Equal(t, []string{"src/main.rs"}, cov.Out)
}

func TestCheckerOverlappingRecords(t *testing.T) {
	t.Parallel()

	std := newTestStandard(t, "overlap",
		Record{Path: "src/", Variations: []string{"src"}, Indicativeness: 1},
		Record{Path: "any/", Regex: `[a-z]+`, Indicativeness: 1},
	)

	cov := coverListing(MustPrepare(std), CheckerOptions{}, "src/")

	assert.Equal(t, []string{"src/"}, cov.In["src/"])
	assert.Equal(t, []string{"src/"}, cov.In["any/"])
	assert.Equal(t, 1, cov.NumPaths)
}

func TestCheckerNormalizesPaths(t *testing.T) {
	t.Parallel()

	p := MustPrepare(sourceDocsStandard(t))
	cov := coverListing(p, CheckerOptions{}, `.\SRC\`, "./Docs/", "/README.MD")

	assert.Equal(t, []string{"SRC/"}, cov.In["src/"])
	assert.Equal(t, []string{"Docs/"}, cov.In["docs/"])
	assert.Equal(t, []string{"README.MD"}, cov.In["readme"])
}

func TestCoverageMarshal(t *testing.T) {
	t.Parallel()

	p := MustPrepare(sourceDocsStandard(t))
	cov := coverListing(p, CheckerOptions{}, "src/", "random.txt")

	data, err := json.Marshal(cov)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "src-docs", got["std"])
	assert.EqualValues(t, 2, got["num_paths"])
	assert.Equal(t, []any{"random.txt"}, got["out"])
	assert.Equal(t, []any{}, got["ignored"])

	out, err := yaml.Marshal(cov)
	require.NoError(t, err)
	assert.Contains(t, string(out), "std: src-docs")
	assert.Contains(t, string(out), "num_paths: 2")
}

func TestCoverageMatchedRecords(t *testing.T) {
	t.Parallel()

	p := MustPrepare(sourceDocsStandard(t))
	cov := coverListing(p, CheckerOptions{}, "readme", "docs/")

	recs := cov.MatchedRecords()
	require.Len(t, recs, 2)
	assert.Equal(t, "docs/", recs[0].Path)
	assert.Equal(t, "readme", recs[1].Path)
}

func TestCheckerIgnoreInsideModuleStaysInModule(t *testing.T) {
	t.Parallel()

	p := MustPrepare(partsStandard(t))
	cov := coverListing(p, CheckerOptions{Ignore: defaultIgnoreTest},
		"parts/", "parts/a/", "parts/a/.git/", "parts/a/.git/HEAD", "parts/a/src/", ".env",
	)

	// Each path is counted once: delegated, ignored or viable at one level.
	assert.Equal(t, []string{".env"}, cov.Ignored)
	assert.Equal(t, 2, cov.NumPaths)
	assert.Equal(t, map[string][]string{
		"parts/":   {"parts/"},
		"parts/*/": {"parts/a/"},
	}, cov.In)

	require.Contains(t, cov.Modules, "parts/a")
	mod := cov.Modules["parts/a"]
	assert.Equal(t, []string{".git/", ".git/HEAD"}, mod.Ignored)
	assert.Equal(t, 1, mod.NumPaths)
	assert.Equal(t, map[string][]string{"src/": {"src/"}}, mod.In)
	assert.Empty(t, mod.Out)
}

func TestCheckerFileModuleRecordDoesNotDelegate(t *testing.T) {
	t.Parallel()

	p := MustPrepare(newTestStandard(t, "bundles",
		Record{Path: "bundle", Regex: `bundle\.zip`, Module: true, Indicativeness: 1},
		Record{Path: "src/", Variations: []string{"src"}, Indicativeness: 1},
	))
	cov := coverListing(p, CheckerOptions{}, "bundle.zip", "src/")

	assert.Empty(t, cov.Modules)
	assert.Equal(t, 2, cov.NumPaths)
	assert.Equal(t, map[string][]string{
		"bundle": {"bundle.zip"},
		"src/":   {"src/"},
	}, cov.In)
}
