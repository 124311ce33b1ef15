package domain

import (
	"slices"
	"time"
)

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the pair lies inside WGS-84 bounds.
func (g Geo) Valid() bool {
	return g.Lat >= -90 && g.Lat <= 90 && g.Lon >= -180 && g.Lon <= 180
}

// Incident is one row of the source dataset.
type Incident struct {
	Year       int     `json:"year"`
	Month      string  `json:"month"`
	Assets     float64 `json:"assets"`
	AssetLabel string  `json:"asset_label"`
	Geo        *Geo    `json:"geo,omitempty"` // nil when either coordinate is missing or invalid
	Line       int     `json:"-"`
}

// clone returns a copy that shares no memory with r.
func (r Incident) clone() Incident {
	if r.Geo != nil {
		g := *r.Geo
		r.Geo = &g
	}
	return r
}

func cloneRows(rows []Incident) []Incident {
	out := make([]Incident, len(rows))
	for i, r := range rows {
		out[i] = r.clone()
	}
	return out
}

// Dataset is the immutable in-memory incident table. It is built once at
// startup and shared read-only by every render.
type Dataset struct {
	rows        []Incident
	years       []int
	defaultYear int
	hasCoords   bool
	source      string
	loadedAt    time.Time
}

// NewDataset copies rows and derives the distinct year set.
// hasCoords reports whether the source carried both coordinate columns.
func NewDataset(rows []Incident, hasCoords bool, source string) *Dataset {
	ds := &Dataset{
		rows:      cloneRows(rows),
		hasCoords: hasCoords,
		source:    source,
		loadedAt:  clock.Now(),
	}

	seen := make(map[int]bool)
	for i, r := range rows {
		if i == 0 {
			ds.defaultYear = r.Year
		}
		if !seen[r.Year] {
			seen[r.Year] = true
			ds.years = append(ds.years, r.Year)
		}
	}
	slices.Sort(ds.years)

	if !hasCoords {
		for i := range ds.rows {
			ds.rows[i].Geo = nil
		}
	}
	return ds
}

// Len returns the number of incidents.
func (d *Dataset) Len() int { return len(d.rows) }

// Row returns a copy of the i-th incident.
func (d *Dataset) Row(i int) Incident { return d.rows[i].clone() }

// Rows returns a copy of all incidents in file order.
func (d *Dataset) Rows() []Incident { return cloneRows(d.rows) }

// Years returns the sorted distinct years.
func (d *Dataset) Years() []int { return slices.Clone(d.years) }

// HasYear reports whether any incident belongs to year.
func (d *Dataset) HasYear(year int) bool {
	_, ok := slices.BinarySearch(d.years, year)
	return ok
}

// DefaultSelection is the first year encountered in the file, as a
// single-element selection. Empty datasets have no default.
func (d *Dataset) DefaultSelection() Selection {
	if len(d.rows) == 0 {
		return nil
	}
	return Selection{d.defaultYear}
}

// HasCoordinates reports whether the source carried latitude and longitude columns.
func (d *Dataset) HasCoordinates() bool { return d.hasCoords }

// Source is the path the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// LoadedAt is when the dataset was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }
