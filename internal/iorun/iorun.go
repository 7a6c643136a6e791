// Package iorun loads records from the local store and runs the growth,
// SDM and pedigree components over them. Paddocks are estimated
// concurrently, at most JobsNumber at a time.
package iorun

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/skippy/farm/internal/iostore"
	"github.com/skippy/farm/pkg/config"
	"github.com/skippy/farm/pkg/growth"
	"github.com/skippy/farm/pkg/pedigree"
	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/sdm"
	"github.com/skippy/farm/pkg/weather"
	"golang.org/x/sync/errgroup"
)

// Runner feeds stored records to the estimators.
type Runner struct {
	cfg    *config.Config
	store  *iostore.Store
	growth *growth.Estimator
	sdm    *sdm.Estimator
}

// New creates a Runner. A nil calibration means built-in curves.
func New(cfg *config.Config, store *iostore.Store, cal sdm.Calibration) *Runner {
	return &Runner{
		cfg:    cfg,
		store:  store,
		growth: growth.New(cfg.Growth),
		sdm:    sdm.New(cfg.SDM, cal),
	}
}

// Hemisphere returns the configured hemisphere.
func (r *Runner) Hemisphere() records.Hemisphere {
	if r.cfg.Growth.Hemisphere == string(records.South) {
		return records.South
	}
	return records.North
}

// Paddocks returns stored paddocks with the given ids or names, or all of
// them when ids is empty. A paddock selected twice is returned once.
// Unknown ids return InvalidInputError.
func (r *Runner) Paddocks(
	ctx context.Context,
	ids []string,
) ([]records.Paddock, error) {
	all, err := r.store.Paddocks(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return all, nil
	}
	res := make([]records.Paddock, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		i := slices.IndexFunc(all, func(p records.Paddock) bool {
			return p.ID == id || p.Name == id
		})
		if i < 0 {
			return nil, records.InvalidInputError("unknown paddock '%s'", id)
		}
		if _, ok := seen[all[i].ID]; ok {
			continue
		}
		seen[all[i].ID] = struct{}{}
		res = append(res, all[i])
	}
	return res, nil
}

// Weather returns stored station and modeled weather reconciled into one
// daily series.
func (r *Runner) Weather(ctx context.Context) ([]records.WeatherSample, error) {
	station, err := r.store.Weather(ctx, records.SourceStation)
	if err != nil {
		return nil, err
	}
	model, err := r.store.Weather(ctx, records.SourceModel)
	if err != nil {
		return nil, err
	}
	return weather.Reconcile(station, model)
}

// Pedigree returns an analyzer of the stored herd. A non-positive
// maxDepth uses the configured depth.
func (r *Runner) Pedigree(
	ctx context.Context,
	maxDepth int,
) (*pedigree.Analyzer, error) {
	herd, err := r.store.Herd(ctx)
	if err != nil {
		return nil, err
	}
	if maxDepth <= 0 {
		maxDepth = r.cfg.Pedigree.MaxDepth
	}
	return pedigree.New(herd, maxDepth), nil
}

// each runs fn for every paddock with at most JobsNumber in flight.
func (r *Runner) each(
	ctx context.Context,
	paddocks []records.Paddock,
	fn func(i int, p records.Paddock) error,
) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.cfg.JobsNumber))
	for i, p := range paddocks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			return fn(i, p)
		})
	}
	return g.Wait()
}

func logDone(msg string, n int, start time.Time) {
	slog.Info(msg,
		"paddocks", n,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
}
