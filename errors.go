// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import "errors"

// Sentinel errors for dirstd operations.
var (
	// ErrInvalidRecord indicates malformed record data, e.g. neither variations nor regex set.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidPattern indicates a record or composed path pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrEmptyStandard indicates a standard without records or with zero total indicativeness.
	ErrEmptyStandard = errors.New("empty standard")
	// ErrDuplicateStandard indicates two standards with the same name in one catalog.
	ErrDuplicateStandard = errors.New("duplicate standard")
	// ErrUnknownStandard indicates a lookup of a standard name not present in the catalog.
	ErrUnknownStandard = errors.New("unknown standard")
	// ErrInvalidCatalog indicates a catalog source that cannot be loaded.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrNoViableRating indicates best-fit selection over an empty rating list.
	ErrNoViableRating = errors.New("no viable rating")
	// ErrInvalidListingPath indicates a listing path that is absolute or escapes the root.
	ErrInvalidListingPath = errors.New("invalid listing path")
	// ErrNilCatalog indicates a nil Catalog receiver.
	ErrNilCatalog = errors.New("catalog is nil")
)
