// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

/*
Package dirstd checks how well a project directory layout conforms to
weighted directory standards for open-hardware projects.

A Standard is an ordered list of Records. Each Record describes one path
(file or directory) by a regex or by literal variations of its final segment
and carries an indicativeness weight. Records nest: the pattern of
"src/main/" is composed from the patterns of every ancestor record.

Basic flow:
  - load standards from CSV, YAML or TOML (`LoadStandardFile`, `LoadCatalogDir`)
    or use the bundled set (`BuiltinCatalog`)
  - build a validated catalog (`NewCatalog`), which compiles every standard
  - produce a listing (`ReadListing`, `WithAncestors` or `Lister.List`)
  - classify paths (`NewChecker` + `Cover` + `Finish`) or use `Evaluator`
  - score the result (`Rate`, `RateCoverage`, `BestFit`)

Listing paths are slash separated and relative to the project root.
Directory entries end with "/"; every other entry counts as a file.

Paths below a module record (for example "parts/<name>/") are delegated to a
nested checker for the same standard and rated as independent sub-projects.
*/
package dirstd
