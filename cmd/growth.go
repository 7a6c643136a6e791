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
	"time"

	"github.com/gnames/gn"
	"github.com/skippy/farm/internal/ioarchive"
	"github.com/skippy/farm/internal/iorun"
	"github.com/skippy/farm/pkg/config"
	"github.com/spf13/cobra"
)

type growthFlags struct {
	rng        rangeFlags
	paddocks   []string
	forecast   bool
	hemisphere string
	json       bool
	archive    bool
	dryRun     bool
}

// getGrowthCmd returns the growth command.
func getGrowthCmd() *cobra.Command {
	var f growthFlags

	growthCmd := &cobra.Command{
		Use:   "growth",
		Short: "Estimate daily pasture growth of paddocks",
		Long: `Growth estimates daily pasture growth (kg DM/ha/day) of paddocks from
stored weather and soil profiles. Station weather is preferred over
modeled weather for the same day. Days without weather are reported as a
data gap, estimates of the other days are kept.

With --forecast, estimates continue past --to on modeled weather and
then on climatology of the stored history.

Examples:
  farm growth --from 2025-04-01 --to 2025-04-30
  farm growth -p "Home paddock" --forecast
  farm growth --archive --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrowth(f)
		},
	}

	f.rng.add(growthCmd)
	growthCmd.Flags().StringSliceVarP(&f.paddocks, "paddock", "p", nil,
		"paddock ids or names (default: all paddocks)")
	growthCmd.Flags().BoolVar(&f.forecast, "forecast", false,
		"project growth past the last day")
	growthCmd.Flags().StringVar(&f.hemisphere, "hemisphere", "",
		"override configured hemisphere: north or south")
	growthCmd.Flags().BoolVar(&f.json, "json", false,
		"print daily estimates as JSON")
	growthCmd.Flags().BoolVar(&f.archive, "archive", false,
		"save estimates to the PostgreSQL archive")
	growthCmd.Flags().BoolVar(&f.dryRun, "dry-run", false,
		"with --archive, show what would be saved")

	return growthCmd
}

func runGrowth(f growthFlags) error {
	ctx := context.Background()
	if f.hemisphere != "" {
		cfg.Update([]config.Option{config.OptGrowthHemisphere(f.hemisphere)})
	}

	rng, err := f.rng.dateRange(time.Now())
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

	res, err := runner.Growth(ctx, rng, f.paddocks, f.forecast)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if f.json {
		if err = printJSON(res); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	} else {
		printGrowth(res)
	}

	if f.archive {
		return archiveGrowthResults(ctx, res, f.dryRun)
	}
	return nil
}

func printGrowth(res []iorun.PaddockGrowth) {
	fmt.Printf("%-20s %5s %10s %8s %8s %8s\n",
		"paddock", "days", "total", "avg", "min", "max")
	for _, v := range res {
		s := v.Summary
		fmt.Printf("%-20s %5d %10.1f %8.1f %8.1f %8.1f\n",
			v.Paddock.Name, s.Days, s.TotalKgHa,
			s.AvgKgHaDay, s.MinKgHaDay, s.MaxKgHaDay)
		if v.Err != nil {
			gn.Warn("%s: %s", v.Paddock.Name, v.Err.Error())
		}
	}
}

func archiveGrowthResults(
	ctx context.Context,
	res []iorun.PaddockGrowth,
	dryRun bool,
) error {
	cfg.Update([]config.Option{config.OptSyncDryRun(dryRun)})

	op, err := archiveOperator(ctx, dryRun)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	sum, err := ioarchive.New(cfg, op).ArchiveGrowth(ctx, archiveGrowth(res))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Growth %s", summaryLine(sum))
	return nil
}
