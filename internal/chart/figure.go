// Package chart turns a domain.View into renderer-neutral figure
// descriptions. Adapters under internal/adapter draw them.
package chart

import "github.com/couchcryptid/streetlight-dashboard/internal/domain"

// BarFigure is a grouped bar chart: months on the x axis, assets on the y
// axis, one colored series per selected year.
type BarFigure struct {
	Title      string      `json:"title"`
	XAxis      string      `json:"x_axis"`
	YAxis      string      `json:"y_axis"`
	BarMode    string      `json:"bar_mode"` // always "group"
	Categories []string    `json:"categories"`
	Series     []BarSeries `json:"series"`
	ShowLegend bool        `json:"show_legend"`
}

// BarSeries is one year's bars. Points only list months the year has.
type BarSeries struct {
	Name   string     `json:"name"`
	Year   int        `json:"year"`
	Color  string     `json:"color"`
	Points []BarPoint `json:"points"`
}

// BarPoint is one bar.
type BarPoint struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Empty reports whether the series draws nothing.
func (s BarSeries) Empty() bool { return len(s.Points) == 0 }

// Value returns the bar height for category, and whether the series has it.
func (s BarSeries) Value(category string) (float64, bool) {
	for _, p := range s.Points {
		if p.Category == category {
			return p.Value, true
		}
	}
	return 0, false
}

// MapFigure is a point map: one trace of markers per selected year.
type MapFigure struct {
	Title      string     `json:"title,omitempty"`
	Style      string     `json:"style"`
	Center     domain.Geo `json:"center"`
	Fallback   bool       `json:"center_fallback"`
	Zoom       float64    `json:"zoom"`
	Height     int        `json:"height"`
	ShowLegend bool       `json:"show_legend"`
	Traces     []MapTrace `json:"traces"`
}

// MapTrace is one year's markers.
type MapTrace struct {
	Name       string     `json:"name"`
	Year       int        `json:"year"`
	Color      string     `json:"color"`
	MarkerSize int        `json:"marker_size"`
	Points     []MapPoint `json:"points"`
}

// MapPoint is one marker with its hover text.
type MapPoint struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	HoverText string  `json:"hover_text"`
}

// Empty reports whether the trace draws nothing.
func (t MapTrace) Empty() bool { return len(t.Points) == 0 }

// Markers counts the points across all traces.
func (m MapFigure) Markers() int {
	n := 0
	for _, t := range m.Traces {
		n += len(t.Points)
	}
	return n
}
