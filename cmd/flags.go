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
	"github.com/gnames/gnfmt"
	"github.com/skippy/farm/internal/iocalib"
	"github.com/skippy/farm/internal/iodb"
	"github.com/skippy/farm/internal/iorun"
	"github.com/skippy/farm/internal/iostore"
	"github.com/skippy/farm/pkg/config"
	"github.com/skippy/farm/pkg/db"
	"github.com/skippy/farm/pkg/lifecycle"
	"github.com/skippy/farm/pkg/records"
	"github.com/spf13/cobra"
)

// defaultRangeDays is the length of the default estimate range.
const defaultRangeDays = 30

type rangeFlags struct {
	from, to string
}

func (r *rangeFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "",
		"first day of estimates, YYYY-MM-DD (default: 30 days before --to)")
	cmd.Flags().StringVar(&r.to, "to", "",
		"last day of estimates, YYYY-MM-DD (default: today)")
}

// dateRange parses the flags. Missing ends default to the last
// defaultRangeDays days.
func (r *rangeFlags) dateRange(now time.Time) (records.DateRange, error) {
	to := records.Day(now)
	var err error
	if r.to != "" {
		if to, err = records.ParseDay(r.to); err != nil {
			return records.DateRange{}, err
		}
	}
	from := to.AddDate(0, 0, -(defaultRangeDays - 1))
	if r.from != "" {
		if from, err = records.ParseDay(r.from); err != nil {
			return records.DateRange{}, err
		}
	}
	return records.NewDateRange(from, to)
}

func parseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return records.Day(now), nil
	}
	return records.ParseDay(s)
}

// openRunner opens the record store and loads the calibration.
func openRunner() (*iorun.Runner, *iostore.Store, error) {
	cal, err := iocalib.Load(cfg.CalibrationFilePath())
	if err != nil {
		return nil, nil, err
	}
	store, err := iostore.Open(config.StorePath(cfg.HomeDir))
	if err != nil {
		return nil, nil, err
	}
	return iorun.New(cfg, store, cal), store, nil
}

// connect opens the estimate archive.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}

// archiveOperator connects to the archive. A dry run goes on without
// connection when the archive is unreachable.
func archiveOperator(ctx context.Context, dryRun bool) (db.Operator, error) {
	op, err := connect(ctx)
	if err == nil {
		return op, nil
	}
	if !dryRun {
		return nil, err
	}
	gn.Warn("Archive is unreachable, comparing with an empty archive")
	return iodb.NewPgxOperator(), nil
}

func printJSON(v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(v)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func archiveGrowth(res []iorun.PaddockGrowth) []lifecycle.PaddockGrowth {
	out := make([]lifecycle.PaddockGrowth, 0, len(res))
	for _, v := range res {
		if len(v.Estimates) == 0 {
			continue
		}
		out = append(out, lifecycle.PaddockGrowth{
			Paddock:   v.Paddock,
			Estimates: v.Estimates,
		})
	}
	return out
}

func archiveFeed(res []iorun.PaddockFeed) []lifecycle.PaddockFeed {
	out := make([]lifecycle.PaddockFeed, 0, len(res))
	for _, v := range res {
		if v.Err != nil {
			continue
		}
		out = append(out, lifecycle.PaddockFeed{
			Paddock:    v.Paddock,
			Feed:       v.Feed,
			GrowthRate: v.GrowthRate,
		})
	}
	return out
}

func summaryLine(s lifecycle.ArchiveSummary) string {
	res := fmt.Sprintf("run %s: %d paddocks, %d rows written, %d within tolerance",
		s.RunID, s.Paddocks, s.Written, s.Skipped)
	if s.DryRun {
		res += " (dry run)"
	}
	return res
}
