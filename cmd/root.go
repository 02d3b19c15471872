// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gofea",
	Short: "3D frame and plate finite element analysis",
	Long: `gofea - structural finite element analysis

A direct-stiffness solver for 3D structures:
  - frame members with end releases and shear deformation
  - plate/shell elements (quads and triangles)
  - spring elements and elastic supports
  - tension-only / compression-only members
  - load cases, combinations and enforced displacements

Models are defined in JSON files; see 'gofea analyze --help'.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
