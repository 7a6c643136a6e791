// Package ioarchive writes computed growth and feed estimates to the
// PostgreSQL archive read by the upstream push job. It implements
// lifecycle.Archiver.
package ioarchive

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	farm "github.com/skippy/farm/pkg"
	"github.com/skippy/farm/pkg/config"
	"github.com/skippy/farm/pkg/db"
	"github.com/skippy/farm/pkg/lifecycle"
	"github.com/skippy/farm/pkg/schema"
)

const (
	growthTable = "growth_rates"
	feedTable   = "feed_readings"
)

var growthColumns = []string{
	"id", "run_id", "paddock_id", "paddock_name", "date", "kg_ha_day",
	"temp_factor", "moisture_factor", "seasonal_factor", "soil_factor",
	"season", "forecast", "pushed", "updated_at",
}

var feedColumns = []string{
	"id", "run_id", "paddock_id", "paddock_name", "date", "season",
	"ndvi", "pasture_ndvi", "sdm_kg_ha", "foo_kg_ha", "correction",
	"growth_rate", "flags", "pushed", "updated_at",
}

type archiver struct {
	cfg *config.Config
	op  db.Operator
}

// New creates an Archiver. The operator must be connected unless
// cfg.Sync.DryRun is set; a dry run without connection compares
// estimates against an empty archive.
func New(cfg *config.Config, op db.Operator) lifecycle.Archiver {
	return &archiver{cfg: cfg, op: op}
}

func (a *archiver) connected() bool {
	return a.op != nil && a.op.Pool() != nil
}

// ArchiveGrowth writes daily growth rates. Rates within
// Sync.GrowthRateTolerance of the archived value are skipped, changed
// rates replace the archived row and reset its pushed mark.
func (a *archiver) ArchiveGrowth(
	ctx context.Context,
	growth []lifecycle.PaddockGrowth,
) (lifecycle.ArchiveSummary, error) {
	dryRun := a.cfg.Sync.DryRun
	if !dryRun && !a.connected() {
		return lifecycle.ArchiveSummary{}, NotConnectedError()
	}

	now := time.Now().UTC()
	runID := uuid.New().String()
	rows := growthRows(runID, growth, now)
	res := lifecycle.ArchiveSummary{
		RunID:    runID,
		Paddocks: len(growth),
		DryRun:   dryRun,
	}

	archived := make(map[string]float64)
	if a.connected() {
		ids := make([]string, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		var err error
		if archived, err = a.archivedGrowth(ctx, ids); err != nil {
			return res, err
		}
	}

	rows, res.Skipped = changedGrowth(rows, archived, a.cfg.Sync.GrowthRateTolerance)
	res.Written = len(rows)
	if dryRun {
		slog.Info("Dry run, growth rates not archived",
			"changed", humanize.Comma(int64(res.Written)),
			"skipped", humanize.Comma(int64(res.Skipped)),
		)
		return res, nil
	}

	dates := make([]time.Time, len(rows))
	for i := range rows {
		dates[i] = rows[i].Date
	}
	run := a.run(runID, "growth", dates, res, now)
	if err := a.insertRun(ctx, run); err != nil {
		return res, err
	}

	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = []any{
			r.ID, r.RunID, r.PaddockID, r.PaddockName, r.Date, r.KgHaDay,
			r.TempFactor, r.MoistureFactor, r.SeasonalFactor, r.SoilFactor,
			r.Season, r.Forecast, false, r.UpdatedAt,
		}
	}
	if err := a.upsert(ctx, growthTable, growthColumns, values); err != nil {
		return res, err
	}

	slog.Info("Growth rates archived",
		"run_id", runID,
		"written", humanize.Comma(int64(res.Written)),
		"skipped", humanize.Comma(int64(res.Skipped)),
	)
	return res, nil
}

// ArchiveFeed writes feed on offer readings. A reading replaces the
// archived one of the same paddock and day.
func (a *archiver) ArchiveFeed(
	ctx context.Context,
	feed []lifecycle.PaddockFeed,
) (lifecycle.ArchiveSummary, error) {
	dryRun := a.cfg.Sync.DryRun
	if !dryRun && !a.connected() {
		return lifecycle.ArchiveSummary{}, NotConnectedError()
	}

	now := time.Now().UTC()
	runID := uuid.New().String()
	rows := feedRows(runID, feed, now)
	res := lifecycle.ArchiveSummary{
		RunID:    runID,
		Paddocks: len(feed),
		Written:  len(rows),
		DryRun:   dryRun,
	}
	if dryRun {
		slog.Info("Dry run, feed readings not archived",
			"readings", humanize.Comma(int64(res.Written)))
		return res, nil
	}

	dates := make([]time.Time, len(rows))
	for i := range rows {
		dates[i] = rows[i].Date
	}
	run := a.run(runID, "feed", dates, res, now)
	if err := a.insertRun(ctx, run); err != nil {
		return res, err
	}

	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = []any{
			r.ID, r.RunID, r.PaddockID, r.PaddockName, r.Date, r.Season,
			r.NDVI, r.PastureNDVI, r.SDMKgHa, r.FOOKgHa, r.Correction,
			r.GrowthRate, r.Flags, false, r.UpdatedAt,
		}
	}
	if err := a.upsert(ctx, feedTable, feedColumns, values); err != nil {
		return res, err
	}

	slog.Info("Feed readings archived",
		"run_id", runID,
		"written", humanize.Comma(int64(res.Written)),
	)
	return res, nil
}

func (a *archiver) run(
	runID, kind string,
	dates []time.Time,
	sum lifecycle.ArchiveSummary,
	now time.Time,
) schema.ArchiveRun {
	from, to := span(dates)
	return schema.ArchiveRun{
		ID:        runID,
		Kind:      kind,
		DateFrom:  from,
		DateTo:    to,
		Paddocks:  sum.Paddocks,
		Rows:      sum.Written,
		Skipped:   sum.Skipped,
		Version:   farm.Version,
		CreatedAt: now,
	}
}

func (a *archiver) insertRun(ctx context.Context, r schema.ArchiveRun) error {
	q := `INSERT INTO archive_runs (
		id, kind, date_from, date_to, paddocks, rows, skipped, version, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var from, to any
	if !r.DateFrom.IsZero() {
		from, to = r.DateFrom, r.DateTo
	}
	_, err := a.op.Pool().Exec(ctx, q,
		r.ID, r.Kind, from, to, r.Paddocks, r.Rows, r.Skipped,
		r.Version, r.CreatedAt,
	)
	if err != nil {
		return ArchiveRunError(r.Kind, err)
	}
	return nil
}

// archivedGrowth returns archived growth rates by row id.
func (a *archiver) archivedGrowth(
	ctx context.Context,
	ids []string,
) (map[string]float64, error) {
	res := make(map[string]float64, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	rows, err := a.op.Pool().Query(ctx,
		`SELECT id::text, kg_ha_day FROM growth_rates WHERE id = ANY($1::uuid[])`,
		ids,
	)
	if err != nil {
		return nil, ArchiveQueryError(growthTable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var rate float64
		if err = rows.Scan(&id, &rate); err != nil {
			return nil, ArchiveQueryError(growthTable, err)
		}
		res[id] = rate
	}
	if err = rows.Err(); err != nil {
		return nil, ArchiveQueryError(growthTable, err)
	}
	return res, nil
}

// upsert inserts rows in batches. Rows with an archived id are replaced.
func (a *archiver) upsert(
	ctx context.Context,
	table string,
	columns []string,
	values [][]any,
) error {
	if len(values) == 0 {
		return nil
	}
	size := batchRows(a.cfg.Database.BatchSize, len(columns))

	var updates []string
	for _, c := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	suffix := fmt.Sprintf(" ON CONFLICT (id) DO UPDATE SET %s",
		strings.Join(updates, ", "))

	bar := pb.Full.Start(len(values))
	bar.Set("prefix", fmt.Sprintf("Archiving %s: ", table))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := 0; i < len(values); i += size {
		end := min(i+size, len(values))
		batch := values[i:end]

		var placeholders []string
		var args []any
		argIdx := 1
		for _, row := range batch {
			ps := make([]string, len(row))
			for j := range row {
				ps[j] = fmt.Sprintf("$%d", argIdx)
				argIdx++
			}
			placeholders = append(placeholders, "("+strings.Join(ps, ", ")+")")
			args = append(args, row...)
		}

		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s%s",
			table, strings.Join(columns, ", "),
			strings.Join(placeholders, ", "), suffix,
		)
		if _, err := a.op.Pool().Exec(ctx, q, args...); err != nil {
			return ArchiveInsertError(table, err)
		}
		bar.Add(len(batch))
	}
	return nil
}

// Pending returns the number of archived rows not yet pushed upstream.
func Pending(ctx context.Context, op db.Operator) (growth, feed int, err error) {
	if op == nil || op.Pool() == nil {
		return 0, 0, NotConnectedError()
	}
	q := `SELECT
		(SELECT count(*) FROM growth_rates WHERE NOT pushed),
		(SELECT count(*) FROM feed_readings WHERE NOT pushed)`
	if err = op.Pool().QueryRow(ctx, q).Scan(&growth, &feed); err != nil {
		return 0, 0, ArchiveQueryError(growthTable, err)
	}
	return growth, feed, nil
}
