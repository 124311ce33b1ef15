package domain

import (
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// FallbackCenter is where the map centers when no drawable point exists (Bogotá).
var FallbackCenter = Geo{Lat: 4.6097, Lon: -74.0817}

// MonthlyTotal is the aggregated asset count for one month of one year.
type MonthlyTotal struct {
	Month  string  `json:"month"`
	Assets float64 `json:"assets"`
	Rows   int     `json:"rows"`
}

// YearSeries holds the monthly totals of one selected year, in axis order.
// A year without rows has no months.
type YearSeries struct {
	Year   int            `json:"year"`
	Months []MonthlyTotal `json:"months"`
}

// GeoPoint is a drawable incident location with its hover label.
type GeoPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// GeoSubset is the drawable points of one selected year.
type GeoSubset struct {
	Year   int        `json:"year"`
	Points []GeoPoint `json:"points"`
}

// View is the derived data for one selection. It is recomputed on every
// selection change and never stored.
type View struct {
	Selection Selection    `json:"selection"`
	Rows      []Incident   `json:"-"`
	Months    []string     `json:"months"`
	Series    []YearSeries `json:"series"`
	Geo       []GeoSubset  `json:"geo"` // nil when the dataset has no coordinate columns
	Center    Geo          `json:"center"`
	Fallback  bool         `json:"center_fallback"`
}

// BuildView filters the dataset by sel and derives the monthly series, the
// per-year point subsets and the map center. It is a pure function of its inputs.
func BuildView(ds *Dataset, sel Selection) View {
	sel = sel.Normalize(ds.DefaultSelection())
	rows := Filter(ds, sel)
	months, series := MonthlySeries(rows, sel)

	v := View{
		Selection: sel,
		Rows:      rows,
		Months:    months,
		Series:    series,
	}
	if ds.HasCoordinates() {
		v.Geo = GeoSubsets(rows, sel)
	}
	v.Center, v.Fallback = MapCenter(rows)
	return v
}

// Filter returns copies of the incidents whose year is selected, in file order.
func Filter(ds *Dataset, sel Selection) []Incident {
	want := make(map[int]bool, len(sel))
	for _, y := range sel {
		want[y] = true
	}

	out := make([]Incident, 0)
	for _, r := range ds.rows {
		if want[r.Year] {
			out = append(out, r.clone())
		}
	}
	return out
}

// FilterCoordinates keeps the incidents with a valid coordinate pair.
// Applying it twice yields the same rows.
func FilterCoordinates(rows []Incident) []Incident {
	out := make([]Incident, 0, len(rows))
	for _, r := range rows {
		if r.Geo != nil && r.Geo.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// MonthlySeries sums assets per (year, month). The returned axis lists every
// month present in rows (see MonthOrder); each series follows the selection
// order and lists only the months that year has.
func MonthlySeries(rows []Incident, sel Selection) ([]string, []YearSeries) {
	type key struct {
		year  int
		month string
	}

	totals := make(map[key]*MonthlyTotal)
	var labels []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.Month] {
			seen[r.Month] = true
			labels = append(labels, r.Month)
		}
		k := key{year: r.Year, month: r.Month}
		t, ok := totals[k]
		if !ok {
			t = &MonthlyTotal{Month: r.Month}
			totals[k] = t
		}
		t.Assets += r.Assets
		t.Rows++
	}

	axis := MonthOrder(labels)
	series := make([]YearSeries, 0, len(sel))
	for _, y := range sel {
		ys := YearSeries{Year: y, Months: []MonthlyTotal{}}
		for _, m := range axis {
			if t, ok := totals[key{year: y, month: m}]; ok {
				ys.Months = append(ys.Months, *t)
			}
		}
		series = append(series, ys)
	}
	return axis, series
}

// GeoSubsets returns one subset per selected year, in selection order, holding
// that year's drawable points. Years without points get an empty subset.
func GeoSubsets(rows []Incident, sel Selection) []GeoSubset {
	byYear := make(map[int][]GeoPoint, len(sel))
	for _, r := range FilterCoordinates(rows) {
		byYear[r.Year] = append(byYear[r.Year], GeoPoint{
			Lat:   r.Geo.Lat,
			Lon:   r.Geo.Lon,
			Label: r.AssetLabel,
		})
	}

	out := make([]GeoSubset, 0, len(sel))
	for _, y := range sel {
		pts := byYear[y]
		if pts == nil {
			pts = []GeoPoint{}
		}
		out = append(out, GeoSubset{Year: y, Points: pts})
	}
	return out
}

// MapCenter is the mean of the valid coordinate pairs in rows. When there are
// none it returns FallbackCenter and true.
func MapCenter(rows []Incident) (Geo, bool) {
	valid := FilterCoordinates(rows)
	if len(valid) == 0 {
		return FallbackCenter, true
	}

	lats := make([]float64, len(valid))
	lons := make([]float64, len(valid))
	for i, r := range valid {
		lats[i] = r.Geo.Lat
		lons[i] = r.Geo.Lon
	}
	return Geo{Lat: stat.Mean(lats, nil), Lon: stat.Mean(lons, nil)}, false
}

// YearLabel formats a year for legends and series names.
func YearLabel(year int) string {
	return strconv.Itoa(year)
}
