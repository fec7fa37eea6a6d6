// Command cplsolve is a thin driver over pkg/compile: it reads a CPL
// source file (optionally preceded by library files whose text is
// concatenated verbatim ahead of it, per spec §6's "library files are
// plain text concatenated to user input"), compiles it, and reports
// SAT/UNSAT with the chosen procedure. The driver itself — flag
// parsing, file I/O, result formatting — is explicitly out of the
// core's scope (spec §1); this file exists only to give that external
// collaborator a real, if small, home.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/arrowsmith/cplsat/pkg/compile"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		procedure string
		includes  []string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "cplsolve SOURCE.cpl",
		Short: "Decide satisfiability of a CPL constraint program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := loadWithIncludes(args[0], includes)
			if err != nil {
				return err
			}

			level := hclog.Warn
			if verbose {
				level = hclog.Trace
			}
			logger := hclog.New(&hclog.LoggerOptions{Name: "cplsolve", Level: level})
			p := compile.NewPipeline(logger)

			return runProcedure(cmd, p, procedure, source)
		},
	}

	cmd.Flags().StringVarP(&procedure, "procedure", "p", "cdcl", "decision procedure to run: dp, dpll, or cdcl")
	cmd.Flags().StringSliceVarP(&includes, "include", "I", nil, "library file(s) to prepend to SOURCE, in order")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "emit trace-level solver logging")
	return cmd
}

func loadWithIncludes(sourcePath string, includes []string) (string, error) {
	var b strings.Builder
	for _, inc := range includes {
		text, err := os.ReadFile(inc)
		if err != nil {
			return "", fmt.Errorf("reading library file %s: %w", inc, err)
		}
		b.Write(text)
		b.WriteByte('\n')
	}
	text, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", sourcePath, err)
	}
	b.Write(text)
	return b.String(), nil
}

func runProcedure(cmd *cobra.Command, p *compile.Pipeline, procedure, source string) error {
	switch strings.ToLower(procedure) {
	case "dp":
		sat, err := p.SolveByDP(source, nil)
		if err != nil {
			return err
		}
		printVerdict(cmd, sat, nil)
	case "dpll":
		result, err := p.SolveByDPLL(source, nil)
		if err != nil {
			return err
		}
		printVerdict(cmd, result.Sat, result.Model)
	case "cdcl":
		result, err := p.SolveByCDCL(source, nil)
		if err != nil {
			return err
		}
		printVerdict(cmd, result.Sat, result.Model)
	default:
		return fmt.Errorf("unknown procedure %q: expected dp, dpll, or cdcl", procedure)
	}
	return nil
}

func printVerdict(cmd *cobra.Command, sat bool, model map[int]bool) {
	if !sat {
		fmt.Fprintln(cmd.OutOrStdout(), "UNSAT")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "SAT")
	if model == nil {
		return
	}
	ids := make([]int, 0, len(model))
	for id := range model {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d = %v\n", id, model[id])
	}
}
