// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/deskfolio/main.go
// Summary: Entry point for the deskfolio command.
// Usage: Run `deskfolio` for the terminal desktop, or one of the headless
//   subcommands (serve, mcp, screenshot).

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
