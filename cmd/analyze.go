// Copyright 2025 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gofea/gofea/fem"
	"github.com/gofea/gofea/inp"
	"github.com/gofea/gofea/out"
)

var (
	analyzeSolver   string
	analyzeWorkers  int
	analyzeMaxIt    int
	analyzeCombos   []string
	analyzeMembers  []string
	analyzeStations int
	analyzeVerbose  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <model.json>",
	Short: "Solve a structural model for its load combinations",
	Long: `Read a JSON model definition, solve the selected load combinations
and print support reactions, a global equilibrium check and, optionally,
internal force diagrams for selected members.

Examples:
  # Solve every combination defined in the model
  gofea analyze frame.json

  # Solve two combinations with 4 workers and print diagrams for a member
  gofea analyze frame.json --combo ULS --combo SLS --workers 4 --member BEAM`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeSolver, "solver", "umfpack", "Linear solver name")
	analyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 1, "Concurrent combination workers")
	analyzeCmd.Flags().IntVar(&analyzeMaxIt, "maxit", 30, "Maximum tension/compression-only iterations")
	analyzeCmd.Flags().StringArrayVar(&analyzeCombos, "combo", nil, "Combination to solve (repeatable; default all)")
	analyzeCmd.Flags().StringArrayVar(&analyzeMembers, "member", nil, "Member to print diagrams for (repeatable)")
	analyzeCmd.Flags().IntVar(&analyzeStations, "stations", 11, "Diagram stations per member")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print solver progress")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	m, err := inp.ReadModel(args[0])
	if err != nil {
		return err
	}

	sv := fem.NewSolver(m)
	sv.LinSolName = analyzeSolver
	sv.NWorkers = analyzeWorkers
	sv.MaxIter = analyzeMaxIt
	sv.Verbose = analyzeVerbose
	if err := sv.Analyze(context.Background(), analyzeCombos...); err != nil {
		return err
	}

	for _, combo := range m.SolvedCombos() {
		fmt.Printf("\ncombination %q\n", combo)
		printReactions(m, combo)
		res, err := sv.CheckStatics(combo)
		if err != nil {
			return err
		}
		fmt.Printf("  equilibrium residual: F=(%.3e %.3e %.3e) M=(%.3e %.3e %.3e)\n",
			res[0], res[1], res[2], res[3], res[4], res[5])
		for _, name := range analyzeMembers {
			dg, err := out.Member(m, name, combo, analyzeStations)
			if err != nil {
				return err
			}
			printDiagram(dg)
		}
	}
	return nil
}

func printReactions(m *fem.Model, combo string) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  node\tFx\tFy\tFz\tMx\tMy\tMz")
	for _, nod := range m.Nodes {
		restrained := false
		for dof := 0; dof < 6; dof++ {
			if nod.Restrained(dof) {
				restrained = true
			}
		}
		if !restrained {
			continue
		}
		r, err := m.NodeReaction(nod.Name, combo)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			nod.Name, r[0], r[1], r[2], r[3], r[4], r[5])
	}
	w.Flush()
}

func printDiagram(dg *out.Diagram) {
	fmt.Printf("  member %q", dg.Member)
	if !dg.Active {
		fmt.Printf(" (inactive)")
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  x\tN\tV1\tM2\tV2\tM1\tD1\tD2")
	for k := range dg.X {
		fmt.Fprintf(w, "  %.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			dg.X[k], dg.N[k], dg.V1[k], dg.M2[k], dg.V2[k], dg.M1[k], dg.D1[k], dg.D2[k])
	}
	w.Flush()
}
