package geojson

import (
	"encoding/json"
	"testing"

	"github.com/couchcryptid/streetlight-dashboard/internal/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	} `json:"features"`
}

func TestEncode(t *testing.T) {
	fig := chart.MapFigure{
		Traces: []chart.MapTrace{
			{Name: "2022", Year: 2022, Color: "#636EFA", Points: []chart.MapPoint{{Lat: 4.65, Lon: -74.05, HoverText: "3"}}},
			{Name: "2023", Year: 2023, Color: "#EF553B", Points: []chart.MapPoint{{Lat: 4.71, Lon: -74.11, HoverText: "2"}}},
		},
	}

	data, err := Encode(fig)
	require.NoError(t, err)

	var fc featureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{-74.05, 4.65}, f.Geometry.Coordinates, "GeoJSON order is lon, lat")
	assert.Equal(t, float64(2022), f.Properties["year"])
	assert.Equal(t, "3", f.Properties["label"])
	assert.Equal(t, "#636EFA", f.Properties["color"])
	assert.Equal(t, "#EF553B", fc.Features[1].Properties["color"])
}

func TestEncode_NoMarkers(t *testing.T) {
	data, err := Encode(chart.MapFigure{Traces: []chart.MapTrace{{Year: 2022, Points: []chart.MapPoint{}}}})
	require.NoError(t, err)

	var fc featureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Empty(t, fc.Features)
}
