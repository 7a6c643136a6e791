// Package ioimport reads JSON exports of the upstream services (livestock
// API, field boundaries, USDA soils, NDVI history, Open-Meteo and NCEI
// weather) and saves them in the local record store.
package ioimport

import (
	"context"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/skippy/farm/internal/iofs"
	"github.com/skippy/farm/internal/iostore"
)

// Result describes one imported file.
type Result struct {
	Path    string
	Format  Format
	Records int
}

// Importer loads export files into a store.
type Importer struct {
	store *iostore.Store
}

// New creates an Importer writing to store.
func New(store *iostore.Store) *Importer {
	return &Importer{store: store}
}

// Import reads one file. An empty format is detected from the file name.
func (im *Importer) Import(
	ctx context.Context,
	path string,
	format Format,
) (Result, error) {
	res := Result{Path: path, Format: format}
	var err error
	if res.Format == "" {
		if res.Format, err = Detect(path); err != nil {
			return res, err
		}
	}

	data, err := iofs.ReadFile(path)
	if err != nil {
		return res, err
	}

	res.Records, err = im.save(ctx, data, res.Format)
	if err != nil {
		if _, ok := err.(decodeErr); ok {
			return res, ImportDecodeError(path, res.Format, err)
		}
		return res, err
	}
	if res.Records == 0 {
		return res, ImportEmptyError(path)
	}

	slog.Info("Imported records",
		"file", path,
		"format", res.Format,
		"count", humanize.Comma(int64(res.Records)),
	)
	return res, nil
}

// ImportAll reads files in order and stops at the first error.
func (im *Importer) ImportAll(
	ctx context.Context,
	paths []string,
	format Format,
) ([]Result, error) {
	bar := pb.Full.Start(len(paths))
	bar.Set("prefix", "Importing files: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	res := make([]Result, 0, len(paths))
	for _, v := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		r, err := im.Import(ctx, v, format)
		if err != nil {
			return res, err
		}
		res = append(res, r)
		bar.Increment()
	}
	return res, nil
}

// decodeErr marks failures of the JSON decoders.
type decodeErr struct {
	error
}

func (d decodeErr) Unwrap() error { return d.error }

func (im *Importer) save(
	ctx context.Context,
	data []byte,
	format Format,
) (int, error) {
	switch format {
	case FormatAnimals:
		v, err := decodeAnimals(data)
		if err != nil {
			return 0, decodeErr{err}
		}
		return im.store.PutAnimals(ctx, v)
	case FormatFields:
		v, err := decodeFields(data)
		if err != nil {
			return 0, decodeErr{err}
		}
		return im.store.PutPaddocks(ctx, v)
	case FormatSoils:
		v, err := decodeSoils(data)
		if err != nil {
			return 0, decodeErr{err}
		}
		return im.store.PutSoils(ctx, v)
	case FormatNDVI:
		v, err := decodeNDVI(data)
		if err != nil {
			return 0, decodeErr{err}
		}
		return im.store.PutNDVI(ctx, v)
	case FormatOpenMeteo:
		v, err := decodeOpenMeteo(data)
		if err != nil {
			return 0, decodeErr{err}
		}
		return im.store.PutWeather(ctx, v)
	case FormatNCEI:
		v, err := decodeNCEI(data)
		if err != nil {
			return 0, decodeErr{err}
		}
		return im.store.PutWeather(ctx, v)
	default:
		return 0, ImportKindError(string(format))
	}
}
