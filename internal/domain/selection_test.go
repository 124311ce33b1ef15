package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSelection(t *testing.T) {
	assert.Equal(t, Selection{2022, 2023}, ParseSelection([]string{"2022", "2023"}))
	assert.Equal(t, Selection{2022, 2024}, ParseSelection([]string{"2022, 2024"}))
	assert.Equal(t, Selection{2023}, ParseSelection([]string{"abc", "2023", ""}))
	assert.Nil(t, ParseSelection(nil))
}

func TestSelection_Normalize(t *testing.T) {
	fallback := Selection{2022}

	assert.Equal(t, Selection{2023, 2022}, Selection{2023, 2022, 2023}.Normalize(fallback))
	assert.Equal(t, Selection{2022}, Selection{}.Normalize(fallback))
	assert.Equal(t, Selection{2022}, Selection(nil).Normalize(fallback))

	// The fallback is copied, not aliased.
	got := Selection(nil).Normalize(fallback)
	got[0] = 1999
	assert.Equal(t, Selection{2022}, fallback)
}

func TestSelection_IndexAndStrings(t *testing.T) {
	sel := Selection{2024, 2022}
	assert.Equal(t, 0, sel.Index(2024))
	assert.Equal(t, 1, sel.Index(2022))
	assert.Equal(t, -1, sel.Index(2023))
	assert.True(t, sel.Contains(2022))
	assert.False(t, sel.Contains(2025))
	assert.Equal(t, []string{"2024", "2022"}, sel.Strings())
}

func TestGeo_Valid(t *testing.T) {
	assert.True(t, Geo{Lat: 4.6, Lon: -74.1}.Valid())
	assert.True(t, Geo{Lat: -90, Lon: 180}.Valid())
	assert.False(t, Geo{Lat: 91, Lon: 0}.Valid())
	assert.False(t, Geo{Lat: 0, Lon: -181}.Valid())
}
