package ioimport

import (
	"path/filepath"
	"strings"
)

// Format of an upstream export file.
type Format string

const (
	// FormatAnimals is a list of livestock API animals.
	FormatAnimals Format = "animals"
	// FormatFields is a list of livestock API fields with GeoJSON geometry.
	FormatFields Format = "fields"
	// FormatSoils is the paddock soils file built from USDA map units.
	FormatSoils Format = "soils"
	// FormatNDVI is the per paddock NDVI history.
	FormatNDVI Format = "ndvi"
	// FormatOpenMeteo is an Open-Meteo daily response.
	FormatOpenMeteo Format = "open-meteo"
	// FormatNCEI is an NCEI daily-summaries response in standard units.
	FormatNCEI Format = "ncei"
)

var formats = []Format{
	FormatAnimals,
	FormatFields,
	FormatSoils,
	FormatNDVI,
	FormatOpenMeteo,
	FormatNCEI,
}

// known file names of exports written by the upstream fetch jobs.
var knownFiles = map[string]Format{
	"animals.json":         FormatAnimals,
	"fields.json":          FormatFields,
	"paddock_soils.json":   FormatSoils,
	"ndvi_historical.json": FormatNDVI,
	"open_meteo.json":      FormatOpenMeteo,
	"openmeteo.json":       FormatOpenMeteo,
	"ncei.json":            FormatNCEI,
}

// ParseFormat converts a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range formats {
		if string(v) == s {
			return v, nil
		}
	}
	return "", ImportKindError(s)
}

// Detect guesses the format from the file name.
func Detect(path string) (Format, error) {
	base := strings.ToLower(filepath.Base(path))
	if f, ok := knownFiles[base]; ok {
		return f, nil
	}
	return "", ImportKindError(base)
}

func formatNames() string {
	res := make([]string, len(formats))
	for i, v := range formats {
		res[i] = string(v)
	}
	return strings.Join(res, ", ")
}
