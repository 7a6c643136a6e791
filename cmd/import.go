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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/skippy/farm/internal/ioimport"
	"github.com/skippy/farm/internal/iostore"
	"github.com/skippy/farm/pkg/config"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var format string

	importCmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import exported records into the local store",
		Long: `Import reads JSON exports and saves their records to the local store
(~/.cache/farm/records.db). Re-importing a record replaces it.

Supported formats and the file names they are detected from:
  animals      animals.json          livestock service animals
  fields       fields.json           paddock boundaries (list or GeoJSON)
  soils        paddock_soils.json    soil profiles by paddock
  ndvi         ndvi_historical.json  NDVI composites by paddock
  open-meteo   open_meteo.json       modeled daily weather
  ncei         ncei.json             weather station daily summaries

Use --format when a file name does not reveal its format.

Examples:
  farm import animals.json fields.json
  farm import -f ncei station_2024.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, format)
		},
	}

	importCmd.Flags().StringVarP(&format, "format", "f", "",
		"format of all files (default: detect from file name)")

	return importCmd
}

func runImport(_ *cobra.Command, args []string, format string) error {
	ctx := context.Background()

	var f ioimport.Format
	var err error
	if format != "" {
		if f, err = ioimport.ParseFormat(format); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	store, err := iostore.Open(config.StorePath(cfg.HomeDir))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer store.Close()

	res, err := ioimport.New(store).ImportAll(ctx, args, f)
	for _, v := range res {
		gn.Info("<em>%s</em>: %s %s records",
			v.Path, humanize.Comma(int64(v.Records)), v.Format)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	for _, k := range iostore.Kinds {
		fmt.Printf("%-8s %s\n", k, humanize.Comma(int64(counts[k])))
	}
	return nil
}
