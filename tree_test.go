// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"errors"
	"testing"
)

func TestBuildTreeComposesAncestorPatterns(t *testing.T) {
	t.Parallel()

	std := newTestStandard(t, "nested",
		Record{Path: "src/lib/", Variations: []string{"lib"}, Indicativeness: 1},
		Record{Path: "src/", Variations: []string{"src", "source"}, Indicativeness: 1},
		Record{Path: "docs/api/", Variations: []string{"api"}, Indicativeness: 1},
		Record{Path: "src/lib/mod.go", Regex: `[a-z]+\.go`, Indicativeness: 1},
	)

	p, err := Prepare(std)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"src/", `(?i)^(?:(src|source))$`},
		{"src/lib/", `(?i)^(?:(src|source)/(lib))$`},
		// "docs" has no record, the intermediate node is skipped.
		{"docs/api/", `(?i)^(?:(api))$`},
		{"src/lib/mod.go", `(?i)^(?:(src|source)/(lib)/(?:[a-z]+\.go))$`},
	}

	for _, tt := range tests {
		got, ok := p.RecordPattern(tt.path)
		if !ok {
			t.Fatalf("RecordPattern(%q) not found", tt.path)
		}

		if got != tt.want {
			t.Fatalf("RecordPattern(%q)=%q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestBuildTreeOrdersLeavesByDepth(t *testing.T) {
	t.Parallel()

	std := newTestStandard(t, "order",
		Record{Path: "a/b/c", Variations: []string{"c"}, Indicativeness: 1},
		Record{Path: "a/", Variations: []string{"a"}, Indicativeness: 1},
		Record{Path: "a/b/", Variations: []string{"b"}, Indicativeness: 1},
		Record{Path: "x/", Variations: []string{"x"}, Indicativeness: 1},
	)

	tree, err := buildTree(std)
	if err != nil {
		t.Fatalf("buildTree: %v", err)
	}

	want := []string{"a/", "x/", "a/b/", "a/b/c"}
	if len(tree.leaves) != len(want) {
		t.Fatalf("leaves=%d, want %d", len(tree.leaves), len(want))
	}

	for i, leaf := range tree.leaves {
		if got := std.Records[leaf.record].Path; got != want[i] {
			t.Fatalf("leaf[%d]=%q, want %q", i, got, want[i])
		}
	}

	// root + a + b + c + x
	if len(tree.nodes) != 5 {
		t.Fatalf("nodes=%d, want 5", len(tree.nodes))
	}
}

func TestBuildTreeDirectoryAndFileShareNode(t *testing.T) {
	t.Parallel()

	std := newTestStandard(t, "shared",
		Record{Path: "bin/", Variations: []string{"bin"}, Indicativeness: 1},
		Record{Path: "bin", Variations: []string{"bin"}, Indicativeness: 1},
	)

	tree, err := buildTree(std)
	if err != nil {
		t.Fatalf("buildTree: %v", err)
	}

	if len(tree.leaves) != 2 {
		t.Fatalf("leaves=%d, want 2", len(tree.leaves))
	}

	if tree.leaves[0].node != tree.leaves[1].node {
		t.Fatalf("bin and bin/ must share a tree node")
	}
}

func TestBuildTreeRejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  Record
		want error
	}{
		{"no pattern source", Record{Path: "src/"}, ErrInvalidRecord},
		{"both sources", Record{Path: "src/", Regex: "src", Variations: []string{"src"}}, ErrInvalidRecord},
		{"bad regex", Record{Path: "src/", Regex: "src("}, ErrInvalidPattern},
		{"empty segment", Record{Path: "src//lib/", Variations: []string{"lib"}}, ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.rec.Indicativeness = 1
			std := newTestStandard(t, "bad", tt.rec)
			if _, err := Prepare(std); !errors.Is(err, tt.want) {
				t.Fatalf("Prepare err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildTreeRejectsDuplicatePaths(t *testing.T) {
	t.Parallel()

	std := newTestStandard(t, "dup",
		Record{Path: "src/", Variations: []string{"src"}, Indicativeness: 1},
		Record{Path: "src/", Variations: []string{"source"}, Indicativeness: 1},
	)

	if _, err := buildTree(std); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("buildTree err=%v, want ErrInvalidRecord", err)
	}
}

func TestPrepareRejectsEmptyStandard(t *testing.T) {
	t.Parallel()

	if _, err := Prepare(nil); !errors.Is(err, ErrEmptyStandard) {
		t.Fatalf("Prepare(nil) err=%v, want ErrEmptyStandard", err)
	}

	if _, err := Prepare(&Standard{Name: "empty"}); !errors.Is(err, ErrEmptyStandard) {
		t.Fatalf("Prepare(empty) err=%v, want ErrEmptyStandard", err)
	}
}

func TestPrepareDerivesContentPatterns(t *testing.T) {
	t.Parallel()

	p := MustPrepare(partsStandard(t))

	if len(p.modules) != 1 {
		t.Fatalf("modules=%d, want 1", len(p.modules))
	}

	if got, want := p.modules[0].String(), `(?i)^(?:(parts)/(?:[^/]+))/`; got != want {
		t.Fatalf("module pattern=%q, want %q", got, want)
	}

	if len(p.generated) != 1 || !p.generated[0].MatchString("out/app.bin") {
		t.Fatalf("generated patterns must match content below build dirs")
	}

	if len(p.arbitrary) != 1 || !p.arbitrary[0].MatchString("Assets/Images/a.png") {
		t.Fatalf("arbitrary patterns must match content below assets case-insensitively")
	}

	if p.arbitrary[0].MatchString("assets") {
		t.Fatalf("arbitrary pattern must not match the directory itself")
	}
}

func TestPrepareDerivesDirectoryFromPath(t *testing.T) {
	t.Parallel()

	// Built in code: Directory is neither set for "src/" nor correct for "lib".
	std := &Standard{
		Name: "code",
		Records: []Record{
			{Path: "src/", Variations: []string{"src"}, Indicativeness: 0.5},
			{Path: "lib", Variations: []string{"lib"}, Directory: true, Indicativeness: 0.5},
		},
	}

	p, err := Prepare(std)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	if !p.Standard().Records[0].Directory {
		t.Fatalf(`"src/" must be a directory record`)
	}

	if p.Standard().Records[1].Directory {
		t.Fatalf(`"lib" must be a file record`)
	}

	if !std.Records[1].Directory || std.Records[0].Directory {
		t.Fatalf("Prepare must not modify the caller's standard")
	}

	cov := coverListing(p, CheckerOptions{}, "src/", "lib")
	if got := cov.In["src/"]; len(got) != 1 || got[0] != "src/" {
		t.Fatalf(`In["src/"]=%v, want [src/]`, got)
	}

	if got := cov.In["lib"]; len(got) != 1 || got[0] != "lib" {
		t.Fatalf(`In["lib"]=%v, want [lib]`, got)
	}

	if _, err := NewCatalog("", std); err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
}
