package facility

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesValid(t *testing.T) {
	cases := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{"uberlandia", Coordinates{Lat: -18.91, Lng: -48.27}, true},
		{"origin", Coordinates{}, false},
		{"zero lat", Coordinates{Lat: 0, Lng: -48.27}, false},
		{"zero lng", Coordinates{Lat: -18.91, Lng: 0}, false},
		{"nan", Coordinates{Lat: math.NaN(), Lng: -48.27}, false},
		{"inf", Coordinates{Lat: -18.91, Lng: math.Inf(1)}, false},
		{"out of range", Coordinates{Lat: 120, Lng: -48.27}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c.Valid())
		})
	}
}

func TestPlacedExcludesUnplacedAndKeepsOrder(t *testing.T) {
	items := []Facility{
		{Name: "a", Location: &Coordinates{Lat: -18.9, Lng: -48.2}},
		{Name: "missing"},
		{Name: "origin", Location: &Coordinates{}},
		{Name: "b", Location: &Coordinates{Lat: -18.8, Lng: -48.3}},
	}

	placed := Placed(items)
	require.Len(t, placed, 2)
	assert.Equal(t, "a", placed[0].Name)
	assert.Equal(t, "b", placed[1].Name)
}

func TestSectorLabelPrefersSegment(t *testing.T) {
	assert.Equal(t, "AgTech", Facility{Sector: "Agro", Segment: "AgTech"}.SectorLabel())
	assert.Equal(t, "Agro", Facility{Sector: "Agro", Segment: "  "}.SectorLabel())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facilities.json")
	raw := `[{"name":" Alpha ","sector":"Saúde","phase":"Tração","location":{"lat":-18.9,"lng":-48.2}},{"name":"Beta","sector":"Agro"}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	catalog, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, catalog.List(), 2)
	require.Len(t, catalog.Placed(), 1)
	assert.Equal(t, "Alpha", catalog.Placed()[0].Name)
}

func TestLoadFileRejectsNamelessEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facilities.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"sector":"Agro"}]`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestSeedHasUnplacedEntry(t *testing.T) {
	catalog, err := LoadFile("")
	require.NoError(t, err)
	assert.Less(t, len(catalog.Placed()), len(catalog.List()))
}
