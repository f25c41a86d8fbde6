// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"fmt"
	"regexp"
	"slices"
)

// rootNode is the arena index of the tree root.
const rootNode = 0

// ruleNode is one path segment of the rule tree.
type ruleNode struct {
	// children maps segment text to child arena index.
	children map[string]int
	// segment is the raw path template segment.
	segment string
	// segPattern is the rendered pattern of the record owning this node, empty for intermediate nodes.
	segPattern string
	// parent is the arena index of the parent, -1 for the root.
	parent int
	// record is the index of the first record terminating here, -1 for intermediate nodes.
	record int
}

// ruleLeaf is one record-bearing position in the tree with its composed pattern.
type ruleLeaf struct {
	// pattern is the anchored, case-insensitive composed path pattern.
	pattern *regexp.Regexp
	// body is the composed pattern source without anchors.
	body string
	// node is the arena index of the terminal node.
	node int
	// record is the index into Standard.Records.
	record int
}

// ruleTree mirrors the directory hierarchy implied by the record paths.
type ruleTree struct {
	// nodes is the arena; parent and child links are indices into it.
	nodes []ruleNode
	// leaves lists record-bearing positions in creation order.
	leaves []ruleLeaf
}

// buildTree compiles the flat record list of one standard into a rule tree.
//
// Records are inserted by ascending segment count, so every ancestor record is
// attached before the records nested below it are composed.
func buildTree(std *Standard) (*ruleTree, error) {
	order := make([]int, len(std.Records))
	depth := make([]int, len(std.Records))
	seen := make(map[string]struct{}, len(std.Records))
	for i := range std.Records {
		rec := &std.Records[i]
		if _, dup := seen[rec.Path]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate record path %q", ErrInvalidRecord, std.Name, rec.Path)
		}
		seen[rec.Path] = struct{}{}

		order[i] = i
		depth[i] = len(rec.segments())
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return depth[a] - depth[b]
	})

	t := &ruleTree{
		nodes:  []ruleNode{{parent: -1, record: -1}},
		leaves: make([]ruleLeaf, 0, len(std.Records)),
	}

	for _, ri := range order {
		rec := &std.Records[ri]
		segs := rec.segments()
		if slices.Contains(segs, "") {
			return nil, fmt.Errorf("%w: %s: empty path segment in %q", ErrInvalidRecord, std.Name, rec.Path)
		}

		segPattern, err := segmentPattern(std.Name, rec)
		if err != nil {
			return nil, err
		}

		node := rootNode
		for _, seg := range segs {
			node = t.child(node, seg)
		}

		if t.nodes[node].record < 0 {
			t.nodes[node].record = ri
			t.nodes[node].segPattern = segPattern
		}

		body := t.compose(node, segPattern)
		re, err := compilePattern(anchoredSource(body), std.Name, rec)
		if err != nil {
			return nil, err
		}

		t.leaves = append(t.leaves, ruleLeaf{
			pattern: re,
			body:    body,
			node:    node,
			record:  ri,
		})
	}

	return t, nil
}

// child returns the child of parent for segment, creating it on demand.
func (t *ruleTree) child(parent int, segment string) int {
	if idx, ok := t.nodes[parent].children[segment]; ok {
		return idx
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, ruleNode{
		segment: segment,
		parent:  parent,
		record:  -1,
	})

	if t.nodes[parent].children == nil {
		t.nodes[parent].children = make(map[string]int)
	}
	t.nodes[parent].children[segment] = idx

	return idx
}

// compose prepends the segment pattern of every record-bearing ancestor,
// joined by "/"; intermediate ancestors are skipped.
func (t *ruleTree) compose(node int, own string) string {
	body := own
	for p := t.nodes[node].parent; p >= 0; p = t.nodes[p].parent {
		if t.nodes[p].record < 0 {
			continue
		}

		body = t.nodes[p].segPattern + "/" + body
	}

	return body
}
