// Package geojson exports map figures as GeoJSON feature collections.
package geojson

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/streetlight-dashboard/internal/chart"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Encode returns one Point feature per marker, in trace order. Each feature
// carries the year, hover label and trace color.
func Encode(fig chart.MapFigure) ([]byte, error) {
	fc := geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, fig.Markers()),
	}

	for _, t := range fig.Traces {
		for _, p := range t.Points {
			fc.Features = append(fc.Features, &geojson.Feature{
				Geometry: geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat}),
				Properties: map[string]interface{}{
					"year":  t.Year,
					"label": p.HoverText,
					"color": t.Color,
				},
			})
		}
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return data, nil
}
