// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import "fmt"

// Exit codes returned by the command line.
const (
	// ExitFailure is any unclassified failure.
	ExitFailure = 1
	// ExitConfig reports invalid configuration or flags.
	ExitConfig = 2
	// ExitData reports an invalid catalog, standard or listing.
	ExitData = 3
)

// ExitError signals a non-zero exit code without calling os.Exit in RunE handlers.
type ExitError struct {
	Err  error
	Code int
}

// Error returns the message of the wrapped error.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitErr wraps err with code; nil stays nil.
func exitErr(code int, err error) error {
	if err == nil {
		return nil
	}

	return &ExitError{Code: code, Err: err}
}
