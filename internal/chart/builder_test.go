package chart_test

import (
	"testing"

	"github.com/couchcryptid/streetlight-dashboard/internal/chart"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() *domain.Dataset {
	return domain.NewDataset([]domain.Incident{
		{Year: 2022, Month: "Enero", Assets: 3, AssetLabel: "F-101", Geo: &domain.Geo{Lat: 4.65, Lon: -74.05}},
		{Year: 2022, Month: "Febrero", Assets: 5, AssetLabel: "F-102"},
		{Year: 2023, Month: "Enero", Assets: 2, AssetLabel: "F-201", Geo: &domain.Geo{Lat: 4.71, Lon: -74.11}},
	}, true, "scenario.csv")
}

func TestColorFor_WrapsPalette(t *testing.T) {
	assert.Equal(t, chart.Palette[0], chart.ColorFor(0))
	assert.Equal(t, chart.Palette[3], chart.ColorFor(3))
	assert.Equal(t, chart.Palette[0], chart.ColorFor(len(chart.Palette)))
	assert.Equal(t, chart.Palette[1], chart.ColorFor(len(chart.Palette)+1))
}

func TestBuildBar_SingleYear(t *testing.T) {
	v := domain.BuildView(scenario(), domain.Selection{2022})

	fig := chart.BuildBar(v, chart.DefaultOptions())

	assert.Equal(t, "group", fig.BarMode)
	assert.Equal(t, "Hurtos de Luminarias por Mes", fig.Title)
	assert.Equal(t, []string{"Enero", "Febrero"}, fig.Categories)
	require.Len(t, fig.Series, 1)
	assert.Equal(t, "2022", fig.Series[0].Name)
	assert.Equal(t, chart.Palette[0], fig.Series[0].Color)
	assert.Equal(t, []chart.BarPoint{
		{Category: "Enero", Value: 3},
		{Category: "Febrero", Value: 5},
	}, fig.Series[0].Points)
}

func TestBuildBar_TwoYearsGrouped(t *testing.T) {
	v := domain.BuildView(scenario(), domain.Selection{2022, 2023})

	fig := chart.BuildBar(v, chart.DefaultOptions())

	require.Len(t, fig.Series, 2)
	entries := len(fig.Series[0].Points) + len(fig.Series[1].Points)
	assert.Equal(t, 3, entries)
	assert.NotEqual(t, fig.Series[0].Color, fig.Series[1].Color)

	val, ok := fig.Series[1].Value("Enero")
	assert.True(t, ok)
	assert.Equal(t, 2.0, val)
	_, ok = fig.Series[1].Value("Febrero")
	assert.False(t, ok)
}

func TestBuildBar_YearWithoutRows(t *testing.T) {
	v := domain.BuildView(scenario(), domain.Selection{2030})

	fig := chart.BuildBar(v, chart.DefaultOptions())

	assert.Empty(t, fig.Categories)
	require.Len(t, fig.Series, 1)
	assert.True(t, fig.Series[0].Empty())
}

func TestBuildMap_Scenario(t *testing.T) {
	t.Run("single year has one marker", func(t *testing.T) {
		v := domain.BuildView(scenario(), domain.Selection{2022})
		fig := chart.BuildMap(v, chart.DefaultOptions())

		require.Len(t, fig.Traces, 1)
		assert.Equal(t, 1, fig.Markers())
		tr := fig.Traces[0]
		assert.Equal(t, "2022", tr.Name)
		assert.Equal(t, 10, tr.MarkerSize)
		assert.Equal(t, []chart.MapPoint{{Lat: 4.65, Lon: -74.05, HoverText: "F-101"}}, tr.Points)
		assert.Equal(t, domain.Geo{Lat: 4.65, Lon: -74.05}, fig.Center)
		assert.Equal(t, 10.0, fig.Zoom)
		assert.Equal(t, "open-street-map", fig.Style)
	})

	t.Run("two years have distinct colors", func(t *testing.T) {
		v := domain.BuildView(scenario(), domain.Selection{2022, 2023})
		fig := chart.BuildMap(v, chart.DefaultOptions())

		require.Len(t, fig.Traces, 2)
		assert.Equal(t, 2, fig.Markers())
		assert.NotEqual(t, fig.Traces[0].Color, fig.Traces[1].Color)
	})

	t.Run("year without rows", func(t *testing.T) {
		v := domain.BuildView(scenario(), domain.Selection{2030})
		fig := chart.BuildMap(v, chart.DefaultOptions())

		require.Len(t, fig.Traces, 1)
		assert.True(t, fig.Traces[0].Empty())
		assert.Equal(t, domain.FallbackCenter, fig.Center)
		assert.True(t, fig.Fallback)
	})
}

func TestBuildMap_NoCoordinateColumns(t *testing.T) {
	ds := domain.NewDataset([]domain.Incident{{Year: 2022, Month: "Enero", Assets: 1}}, false, "")
	fig := chart.BuildMap(domain.BuildView(ds, domain.Selection{2022}), chart.DefaultOptions())

	assert.Empty(t, fig.Traces)
	assert.Equal(t, domain.FallbackCenter, fig.Center)
}

func TestColors_FollowSelectionPosition(t *testing.T) {
	ds := scenario()
	opts := chart.DefaultOptions()

	forward := domain.Selection{2022, 2023}
	reverse := domain.Selection{2023, 2022}

	barF := chart.BuildBar(domain.BuildView(ds, forward), opts)
	barR := chart.BuildBar(domain.BuildView(ds, reverse), opts)
	mapF := chart.BuildMap(domain.BuildView(ds, forward), opts)

	assert.Equal(t, chart.Palette[0], barF.Series[0].Color)
	assert.Equal(t, 2022, barF.Series[0].Year)
	assert.Equal(t, chart.Palette[0], barR.Series[0].Color)
	assert.Equal(t, 2023, barR.Series[0].Year)

	// Bar and map agree on the color of each year.
	for i := range barF.Series {
		assert.Equal(t, barF.Series[i].Color, mapF.Traces[i].Color)
		assert.Equal(t, barF.Series[i].Year, mapF.Traces[i].Year)
	}

	again := chart.BuildBar(domain.BuildView(ds, forward), opts)
	if diff := cmp.Diff(barF, again); diff != "" {
		t.Errorf("same selection produced different figures (-first +second):\n%s", diff)
	}
}

func TestColors_WrapBeyondPalette(t *testing.T) {
	rows := make([]domain.Incident, 0, 12)
	sel := make(domain.Selection, 0, 12)
	for i := range 12 {
		y := 2000 + i
		rows = append(rows, domain.Incident{Year: y, Month: "Enero", Assets: 1})
		sel = append(sel, y)
	}
	ds := domain.NewDataset(rows, false, "")

	fig := chart.BuildBar(domain.BuildView(ds, sel), chart.DefaultOptions())

	require.Len(t, fig.Series, 12)
	assert.Equal(t, fig.Series[0].Color, fig.Series[10].Color)
	assert.Equal(t, fig.Series[1].Color, fig.Series[11].Color)
}
