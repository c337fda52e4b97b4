// contrastcraft - accessible accent colour scales
//
// contrastcraft builds a 12-step accent scale from one base colour, scores
// every step against light and dark text with the WCAG 2.x contrast formula
// and exports the result as design tokens.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/contrastcraft/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
