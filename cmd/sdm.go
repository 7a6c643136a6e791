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

type sdmFlags struct {
	date     string
	paddocks []string
	json     bool
	archive  bool
	dryRun   bool
}

// getSDMCmd returns the sdm command.
func getSDMCmd() *cobra.Command {
	var f sdmFlags

	sdmCmd := &cobra.Command{
		Use:   "sdm",
		Short: "Estimate standing dry matter and feed on offer",
		Long: `SDM converts the latest NDVI composite of each paddock, up to --date,
to standing dry matter (kg DM/ha) with seasonal calibration curves. The
tree canopy signal is removed first. Feed on offer is the grazeable
share of it, corrected for grazing pressure of animals currently in the
paddock.

Calibration curves are read from sdm.calibration_file of config.yaml.

Examples:
  farm sdm
  farm sdm --date 2025-05-01 -p Home --json
  farm sdm --archive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSDM(f)
		},
	}

	sdmCmd.Flags().StringVar(&f.date, "date", "",
		"use composites up to this day, YYYY-MM-DD (default: today)")
	sdmCmd.Flags().StringSliceVarP(&f.paddocks, "paddock", "p", nil,
		"paddock ids or names (default: all paddocks)")
	sdmCmd.Flags().BoolVar(&f.json, "json", false,
		"print results as JSON")
	sdmCmd.Flags().BoolVar(&f.archive, "archive", false,
		"save readings to the PostgreSQL archive")
	sdmCmd.Flags().BoolVar(&f.dryRun, "dry-run", false,
		"with --archive, show what would be saved")

	return sdmCmd
}

func runSDM(f sdmFlags) error {
	ctx := context.Background()
	day, err := parseDay(f.date, time.Now())
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

	res, err := runner.Feed(ctx, day, f.paddocks)
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
		printFeed(res)
	}

	if !f.archive {
		return nil
	}
	cfg.Update([]config.Option{config.OptSyncDryRun(f.dryRun)})
	op, err := archiveOperator(ctx, f.dryRun)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	sum, err := ioarchive.New(cfg, op).ArchiveFeed(ctx, archiveFeed(res))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Feed %s", summaryLine(sum))
	return nil
}

func printFeed(res []iorun.PaddockFeed) {
	fmt.Printf("%-20s %10s %6s %9s %9s %9s\n",
		"paddock", "date", "ndvi", "sdm", "foo", "pressure")
	for _, v := range res {
		if v.Err != nil {
			gn.Warn("%s: %s", v.Paddock.Name, v.Err.Error())
			continue
		}
		fo := v.Feed
		fmt.Printf("%-20s %10s %6.3f %9.0f %9.0f %9.1f\n",
			v.Paddock.Name, fo.Date.Format(time.DateOnly), fo.NDVI,
			fo.SDMKgHa, fo.FOOKgHa, v.PressureKgHaDay)
		for _, flag := range fo.Flags {
			gn.Warn("%s: %s", v.Paddock.Name, flag)
		}
	}
}
