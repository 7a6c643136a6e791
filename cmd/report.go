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
	"path/filepath"
	"time"

	"github.com/gnames/gn"
	"github.com/skippy/farm/internal/ioreport"
	"github.com/spf13/cobra"
)

// getReportCmd returns the report command.
func getReportCmd() *cobra.Command {
	var rng rangeFlags
	var paddocks []string
	var output string

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Export growth, feed and lineage results to XLSX",
		Long: `Report writes an XLSX workbook with daily growth of paddocks over the
date range, a growth summary with paddock locations, feed on offer at the
last day of the range, the herd with ages at the last day and lineage
problems of the herd.

Examples:
  farm report -o april.xlsx --from 2025-04-01 --to 2025-04-30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(rng, paddocks, output)
		},
	}

	rng.add(reportCmd)
	reportCmd.Flags().StringSliceVarP(&paddocks, "paddock", "p", nil,
		"paddock ids or names (default: all paddocks)")
	reportCmd.Flags().StringVarP(&output, "output", "o", "farm-report.xlsx",
		"path of the workbook")

	return reportCmd
}

func runReport(rf rangeFlags, paddocks []string, output string) error {
	ctx := context.Background()
	rng, err := rf.dateRange(time.Now())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	runner, store, err := openRunner()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer store.Close()

	growth, err := runner.Growth(ctx, rng, paddocks, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	feed, err := runner.Feed(ctx, rng.To, paddocks)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	a, err := runner.Pedigree(ctx, 0)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	herd, err := store.Herd(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	rep, err := ioreport.New()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer rep.Close()
	if err = rep.Growth(growth); err == nil {
		if err = rep.Feed(feed); err == nil {
			if err = rep.Herd(herd, rng.To); err == nil {
				err = rep.Lineage(a.Validate())
			}
		}
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = rep.Save(output); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	abs, _ := filepath.Abs(output)
	gn.Info("Report saved to <em>%s</em>", abs)
	return nil
}
