// SPDX-License-Identifier: MPL-2.0
// Derived from the invowk project, internal/watch (MPL-2.0).
// Source: github.com/woozymasta/dirstd

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatalFsnotifyError reports inotify resource exhaustion: watch limit,
// per-process and system-wide descriptor limits.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
