package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/streetlight-dashboard/internal/config"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
)

// columnIndex holds header positions; -1 means absent.
type columnIndex struct {
	year, month, asset, lat, lon int
	names                        config.Columns
}

func (c columnIndex) hasCoordinates() bool {
	return c.lat >= 0 && c.lon >= 0
}

// resolveColumns matches configured names against the header, ignoring case,
// accents and surrounding whitespace.
func resolveColumns(header []string, names config.Columns) (columnIndex, error) {
	folded := make(map[string]int, len(header))
	for i, h := range header {
		key := domain.Fold(h)
		if _, dup := folded[key]; !dup {
			folded[key] = i
		}
	}

	find := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := folded[domain.Fold(name)]; ok {
			return i
		}
		return -1
	}

	c := columnIndex{
		year:  find(names.Year),
		month: find(names.Month),
		asset: find(names.Asset),
		lat:   find(names.Latitude),
		lon:   find(names.Longitude),
		names: names,
	}

	for _, req := range []struct {
		idx  int
		name string
	}{
		{c.year, names.Year},
		{c.month, names.Month},
		{c.asset, names.Asset},
	} {
		if req.idx < 0 {
			return columnIndex{}, fmt.Errorf("%w %q", ErrMissingColumn, req.name)
		}
	}
	return c, nil
}

// rowParser converts raw rows into incidents.
type rowParser struct {
	cols         columnIndex
	decimalComma bool
}

func (p rowParser) parse(r row) (domain.Incident, error) {
	field := func(i int) string {
		if i < 0 || i >= len(r.fields) {
			return ""
		}
		return strings.TrimSpace(r.fields[i])
	}

	yearRaw := field(p.cols.year)
	year, err := parseYear(yearRaw)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("line %d: invalid %s %q", r.line, p.cols.names.Year, yearRaw)
	}

	assetRaw := field(p.cols.asset)
	assets, err := p.parseAssets(assetRaw)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("line %d: invalid %s %q", r.line, p.cols.names.Asset, assetRaw)
	}

	inc := domain.Incident{
		Year:       year,
		Month:      field(p.cols.month),
		Assets:     assets,
		AssetLabel: assetRaw,
		Line:       r.line,
	}

	if p.cols.hasCoordinates() {
		lat, okLat := p.parseCoordinate(field(p.cols.lat))
		lon, okLon := p.parseCoordinate(field(p.cols.lon))
		if okLat && okLon {
			g := domain.Geo{Lat: lat, Lon: lon}
			if g.Valid() {
				inc.Geo = &g
			}
		}
	}
	return inc, nil
}

// parseYear accepts "2023" and the "2023.0" spreadsheet tools emit.
func parseYear(s string) (int, error) {
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return 0, errors.New("empty year")
	}
	return strconv.Atoi(s)
}

// parseAssets treats empty and NaN cells as zero.
func (p rowParser) parseAssets(s string) (float64, error) {
	if isNull(s) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(p.normalizeDecimal(s), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// parseCoordinate reports false for null, non-numeric and non-finite values.
func (p rowParser) parseCoordinate(s string) (float64, bool) {
	if isNull(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.normalizeDecimal(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (p rowParser) normalizeDecimal(s string) string {
	if p.decimalComma && !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		return strings.Replace(s, ",", ".", 1)
	}
	return s
}

func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "n/a", "na":
		return true
	}
	return false
}
