// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

// Command osh-dir-std rates how well a project follows a directory standard.
package main

import (
	"context"
	"os"

	"github.com/woozymasta/dirstd/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
