package chart

import "github.com/couchcryptid/streetlight-dashboard/internal/domain"

// Options tune the figures without affecting the computed data.
type Options struct {
	BarTitle   string
	MapStyle   string
	Zoom       float64
	MapHeight  int
	MarkerSize int
	ShowLegend bool
}

// DefaultOptions matches the production dashboard layout.
func DefaultOptions() Options {
	return Options{
		BarTitle:   "Hurtos de Luminarias por Mes",
		MapStyle:   "open-street-map",
		Zoom:       10,
		MapHeight:  600,
		MarkerSize: 10,
		ShowLegend: true,
	}
}

// BuildBar produces the grouped bar figure. Series follow the selection
// order; a year's color is its selection index in the palette.
func BuildBar(v domain.View, o Options) BarFigure {
	fig := BarFigure{
		Title:      o.BarTitle,
		XAxis:      "Mes",
		YAxis:      "Farola",
		BarMode:    "group",
		Categories: append([]string{}, v.Months...),
		Series:     make([]BarSeries, 0, len(v.Series)),
		ShowLegend: o.ShowLegend,
	}

	for _, ys := range v.Series {
		s := BarSeries{
			Name:   domain.YearLabel(ys.Year),
			Year:   ys.Year,
			Color:  ColorFor(v.Selection.Index(ys.Year)),
			Points: make([]BarPoint, 0, len(ys.Months)),
		}
		for _, m := range ys.Months {
			s.Points = append(s.Points, BarPoint{Category: m.Month, Value: m.Assets})
		}
		fig.Series = append(fig.Series, s)
	}
	return fig
}

// BuildMap produces the point map figure centered on the view's center.
// A view without coordinate data yields a figure with no traces.
func BuildMap(v domain.View, o Options) MapFigure {
	fig := MapFigure{
		Style:      o.MapStyle,
		Center:     v.Center,
		Fallback:   v.Fallback,
		Zoom:       o.Zoom,
		Height:     o.MapHeight,
		ShowLegend: o.ShowLegend,
		Traces:     make([]MapTrace, 0, len(v.Geo)),
	}

	for _, g := range v.Geo {
		t := MapTrace{
			Name:       domain.YearLabel(g.Year),
			Year:       g.Year,
			Color:      ColorFor(v.Selection.Index(g.Year)),
			MarkerSize: o.MarkerSize,
			Points:     make([]MapPoint, 0, len(g.Points)),
		}
		for _, p := range g.Points {
			t.Points = append(t.Points, MapPoint{Lat: p.Lat, Lon: p.Lon, HoverText: p.Label})
		}
		fig.Traces = append(fig.Traces, t)
	}
	return fig
}
