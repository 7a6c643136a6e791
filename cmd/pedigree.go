/*
Copyright © 2025 skippy

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/pedigree"
	"github.com/skippy/farm/pkg/records"
	"github.com/spf13/cobra"
)

// getPedigreeCmd returns the pedigree command with its subcommands.
func getPedigreeCmd() *cobra.Command {
	var depth int

	pedigreeCmd := &cobra.Command{
		Use:   "pedigree",
		Short: "Analyze herd lineage and inbreeding risk",
		Long: `Pedigree works on the stored herd. Parents are followed by animal id,
parents that are not registered in the herd end a lineage.

Subcommands:
  ancestors   list ancestors of an animal
  offspring   list registered offspring of an animal
  inbreeding  coefficient of a potential offspring of two animals
  check       report lineage problems of the herd
  tree        print the lineage tree of an animal`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pedigreeCmd.PersistentFlags().IntVarP(&depth, "depth", "d", 0,
		"generations to traverse (default: pedigree.max_depth of config)")

	pedigreeCmd.AddCommand(
		&cobra.Command{
			Use:   "ancestors <animal>",
			Short: "List ancestors of an animal",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return runAncestors(depth, args[0])
			},
		},
		&cobra.Command{
			Use:   "offspring <animal>",
			Short: "List registered offspring of an animal",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return runOffspring(depth, args[0])
			},
		},
		&cobra.Command{
			Use:   "inbreeding <animal> <animal>",
			Short: "Inbreeding coefficient of a potential offspring",
			Long: `Inbreeding prints the coefficient of a potential offspring of two
animals and the common ancestors it comes from. Parent and offspring or
full siblings give 0.25, half siblings 0.125, first cousins 0.0625.`,
			Args: cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return runInbreeding(depth, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Report lineage problems of the herd",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runCheck(depth)
			},
		},
		&cobra.Command{
			Use:   "tree <animal>",
			Short: "Print the lineage tree of an animal",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return runTree(depth, args[0])
			},
		},
	)

	return pedigreeCmd
}

func analyzer(depth int) (*pedigree.Analyzer, error) {
	runner, store, err := openRunner()
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return runner.Pedigree(context.Background(), depth)
}

func runAncestors(depth int, id string) error {
	a, err := analyzer(depth)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	ids := make([]string, 0)
	for k := range a.Ancestors(id) {
		ids = append(ids, k)
	}
	slices.Sort(ids)
	if len(ids) == 0 {
		gn.Info("No registered ancestors of <em>%s</em>", id)
		return nil
	}
	for _, v := range ids {
		fmt.Println(v)
	}
	return nil
}

func runOffspring(depth int, id string) error {
	a, err := analyzer(depth)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	ids := a.Offspring(id)
	if len(ids) == 0 {
		gn.Info("No registered offspring of <em>%s</em>", id)
		return nil
	}
	now := time.Now()
	for _, v := range ids {
		rec, _ := a.Animal(v)
		age := "-"
		if years, ok := rec.AgeYears(now); ok {
			age = fmt.Sprintf("%.1f", years)
		}
		fmt.Printf("%-20s %-20s %-8s %-6s %s\n",
			v, rec.Label(), rec.Sex, age, rec.MobName())
	}
	return nil
}

func runInbreeding(depth int, idA, idB string) error {
	a, err := analyzer(depth)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	res, err := a.InbreedingCoefficient(idA, idB)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	printInbreeding(res)
	return nil
}

func printInbreeding(res records.InbreedingResult) {
	fmt.Printf("%s x %s: %.4f (%.2f%%)\n",
		res.IDA, res.IDB, res.Coefficient, res.Coefficient*100)
	for _, p := range res.Paths {
		fmt.Printf("  %s: %s | %s contributes %.4f\n",
			p.AncestorID,
			strings.Join(p.PathA, " > "),
			strings.Join(p.PathB, " > "),
			p.Contribution,
		)
	}
}

func runCheck(depth int) error {
	a, err := analyzer(depth)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	issues := a.Validate()
	if len(issues) == 0 {
		gn.Info("No lineage problems found")
		return nil
	}
	for _, v := range issues {
		fmt.Printf("%-20s %-18s %s\n", v.AnimalID, v.Kind, v.Message)
	}
	return nil
}

func runTree(depth int, id string) error {
	a, err := analyzer(depth)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fmt.Print(a.Tree(id, depth).String())
	return nil
}
