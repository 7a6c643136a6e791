// Package ioreport exports growth, feed and lineage results to an XLSX
// workbook.
package ioreport

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/skippy/farm/internal/iorun"
	"github.com/skippy/farm/pkg/pedigree"
	"github.com/skippy/farm/pkg/records"
	"github.com/xuri/excelize/v2"
)

const (
	SheetGrowth  = "Growth"
	SheetSummary = "Growth summary"
	SheetFeed    = "Feed on offer"
	SheetHerd    = "Herd"
	SheetLineage = "Lineage issues"
)

// Report is an XLSX workbook with one sheet per result kind.
type Report struct {
	f      *excelize.File
	header int
	sheets []string
	closed bool
}

// New creates an empty report.
func New() (*Report, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		_ = f.Close()
		return nil, ReportSheetError("styles", err)
	}
	return &Report{f: f, header: header}, nil
}

// Sheets returns names of written sheets in order.
func (r *Report) Sheets() []string {
	return r.sheets
}

// Growth writes daily estimates and per paddock summaries.
func (r *Report) Growth(res []iorun.PaddockGrowth) error {
	var rows [][]any
	var summary [][]any
	for _, pg := range res {
		for _, e := range pg.Estimates {
			rows = append(rows, []any{
				pg.Paddock.ID, pg.Paddock.Name, e.Date.Format(time.DateOnly),
				round(e.GrowthKgHaDay), round(e.TempFactor),
				round(e.MoistureFactor), round(e.SeasonalFactor),
				round(e.SoilFactor), e.Season.String(), e.Forecast,
				strings.Join(e.Notes, "; "),
			})
		}
		s := pg.Summary
		status := "ok"
		if pg.Err != nil {
			status = pg.Err.Error()
		}
		var lon, lat any = "", ""
		if c, err := pg.Paddock.Centroid(); err == nil {
			lon, lat = round6(c.Lon()), round6(c.Lat())
		}
		summary = append(summary, []any{
			pg.Paddock.ID, pg.Paddock.Name, s.Days, round(s.TotalKgHa),
			round(s.AvgKgHaDay), round(s.MinKgHaDay), round(s.MaxKgHaDay),
			s.ForecastDays, status, round(pg.Paddock.Area()), lon, lat,
		})
	}

	err := r.sheet(SheetGrowth, []string{
		"Paddock ID", "Paddock", "Date", "Growth kg/ha/day", "Temperature",
		"Moisture", "Seasonal", "Soil", "Season", "Forecast", "Notes",
	}, rows)
	if err != nil {
		return err
	}
	return r.sheet(SheetSummary, []string{
		"Paddock ID", "Paddock", "Days", "Total kg/ha", "Average kg/ha/day",
		"Min kg/ha/day", "Max kg/ha/day", "Forecast days", "Status",
		"Area ha", "Longitude", "Latitude",
	}, summary)
}

// Feed writes feed on offer of paddocks.
func (r *Report) Feed(res []iorun.PaddockFeed) error {
	var rows [][]any
	for _, pf := range res {
		f := pf.Feed
		if pf.Err != nil {
			rows = append(rows, []any{
				pf.Paddock.ID, pf.Paddock.Name, "", "", "", "", "", "", "", "",
				pf.Err.Error(),
			})
			continue
		}
		var rate any = ""
		if pf.GrowthRate != nil {
			rate = round(*pf.GrowthRate)
		}
		rows = append(rows, []any{
			pf.Paddock.ID, pf.Paddock.Name, f.Date.Format(time.DateOnly),
			round(f.NDVI), round(f.SDMKgHa), round(f.FOOKgHa),
			round(f.Correction), round(pf.PressureKgHaDay), rate,
			f.Season.String(), strings.Join(f.Flags, ", "),
			round(f.MossCorrection), round(pf.Moss.Fraction),
		})
	}
	return r.sheet(SheetFeed, []string{
		"Paddock ID", "Paddock", "Date", "NDVI", "SDM kg/ha", "FOO kg/ha",
		"Correction", "Pressure kg/ha/day", "Growth kg/ha/day", "Season",
		"Flags", "Moss correction", "Moss fraction",
	}, rows)
}

// Herd writes animals of the herd with their age at the day t.
func (r *Report) Herd(herd records.Herd, t time.Time) error {
	ids := herd.IDs()
	rows := make([][]any, len(ids))
	for i, id := range ids {
		a := herd[id]
		var age any = ""
		if years, ok := a.AgeYears(t); ok {
			age = math.Round(years*10) / 10
		}
		var sire, dam string
		if p, ok := a.Parent(records.Sire); ok {
			sire = p.AnimalID
		}
		if p, ok := a.Parent(records.Dam); ok {
			dam = p.AnimalID
		}
		rows[i] = []any{
			id, a.Label(), a.Sex, a.AgeClass, age, a.MobName(), a.Location(),
			sire, dam, a.OnFarm,
		}
	}
	return r.sheet(SheetHerd, []string{
		"Animal ID", "Animal", "Sex", "Age class", "Age years", "Mob",
		"Paddock ID", "Sire ID", "Dam ID", "On farm",
	}, rows)
}

// Lineage writes lineage issues of a herd.
func (r *Report) Lineage(issues []pedigree.Issue) error {
	rows := make([][]any, len(issues))
	for i, v := range issues {
		rows[i] = []any{v.AnimalID, string(v.Kind), v.Message}
	}
	return r.sheet(SheetLineage, []string{"Animal ID", "Issue", "Message"}, rows)
}

func (r *Report) sheet(name string, header []string, rows [][]any) error {
	idx, err := r.f.NewSheet(name)
	if err != nil {
		return ReportSheetError(name, err)
	}
	if len(r.sheets) == 0 {
		r.f.SetActiveSheet(idx)
	}

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return ReportSheetError(name, err)
		}
		if err = r.f.SetCellValue(name, cell, h); err != nil {
			return ReportSheetError(name, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return ReportSheetError(name, err)
	}
	if err = r.f.SetCellStyle(name, "A1", last, r.header); err != nil {
		return ReportSheetError(name, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return ReportSheetError(name, err)
	}
	if err = r.f.SetColWidth(name, "A", lastCol, 16); err != nil {
		return ReportSheetError(name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return ReportSheetError(name, err)
		}
		if err = r.f.SetSheetRow(name, cell, &row); err != nil {
			return ReportSheetError(name, err)
		}
	}
	r.sheets = append(r.sheets, name)
	return nil
}

// Save writes the workbook to path and closes it.
func (r *Report) Save(path string) error {
	defer r.Close()
	if len(r.sheets) > 0 {
		_ = r.f.DeleteSheet("Sheet1")
	}
	if err := r.f.SaveAs(path); err != nil {
		return ReportSaveError(path, err)
	}
	slog.Info("Report saved", "path", path, "sheets", strings.Join(r.sheets, ", "))
	return nil
}

// Close releases the workbook. It is safe to call after Save.
func (r *Report) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.f.Close()
}

func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

func round(f float64) float64 {
	return math.Round(f*1000) / 1000
}
