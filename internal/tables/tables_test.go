package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, tbl, again)

	assert.Equal(t, "gab", tbl.RoofShapes["gable"])
	assert.Equal(t, "flt", tbl.RoofShapes["Flat"])
	assert.Equal(t, "ows", tbl.RoofSystems["OWSJ"])
	assert.Equal(t, "E", tbl.DesignLevels["ME"])
	assert.Equal(t, "Masonry", tbl.BuildingTypeCodes[3004])
	assert.Equal(t, "AO", tbl.FloodZoneCodes[6105])
	assert.Equal(t, "RES3A", tbl.OccupancyAliases["RES3"])
	assert.Equal(t, 15, tbl.DefaultRoughness)
	assert.Contains(t, tbl.Keys("YearBuilt"), "YearBuiltNJDEP")
	assert.Equal(t, []string{"Unlisted"}, tbl.Keys("Unlisted"))
}

func TestMatch(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)

	tests := []struct {
		code int
		want int
		ok   bool
	}{
		{5400, 3, true},
		{7600, 3, true},
		{2100, 15, true},
		{1120, 35, true},
		{6251, 35, true},
		{4200, 70, true},
		{1600, 70, true},
		{9999, 0, false},
	}
	for _, tt := range tests {
		got, ok := Match(tbl.LULCTerrain, tt.code)
		assert.Equal(t, tt.ok, ok, "code %d", tt.code)
		assert.Equal(t, tt.want, got, "code %d", tt.code)
	}
}

func TestZoneSetContains(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)

	for _, zone := range []string{"V", "VE", "A", "AE", "A99"} {
		assert.True(t, tbl.OpenExposureZones.Contains(zone), zone)
	}
	for _, zone := range []string{"X", "AO", "AH", "D"} {
		assert.False(t, tbl.OpenExposureZones.Contains(zone), zone)
	}
}

func TestJurisdictionLookup(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)

	j, ok := tbl.Jurisdiction("cape may County")
	require.True(t, ok)
	assert.InDelta(t, 120.0, j.DesignWindSpeed, 0.001)
	assert.True(t, j.HurricaneProne)

	_, ok = tbl.Jurisdiction("Nowhere")
	assert.False(t, ok)

	year, ok := tbl.FIRMYear("Margate City")
	require.True(t, ok)
	assert.Equal(t, 1974, year)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	content := `
aliases:
  BuildingType: [BuildingType]
  YearBuilt: [YearBuilt]
  NumberOfStories: [NumberOfStories]
  PlanArea: [PlanArea]
  RoofShape: [RoofShape]
roof_shapes:
  gable: gab
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gab", tbl.RoofShapes["gable"])
	assert.Equal(t, 15, tbl.DefaultRoughness)
}

func TestParseRejectsInvalidTables(t *testing.T) {
	_, err := Parse([]byte("roof_shapes: {}"))
	assert.Error(t, err)

	_, err = Parse([]byte(`
aliases:
  BuildingType: [BuildingType]
  YearBuilt: [YearBuilt]
  NumberOfStories: [NumberOfStories]
  PlanArea: [PlanArea]
  RoofShape: [RoofShape]
roof_shapes: {gable: gab}
lulc_terrain:
  - {min: 10, max: 5, roughness: 3}
`))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
