package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/tables"
)

func newNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	tbl, err := tables.Default()
	require.NoError(t, err)
	return New(tbl)
}

func loadFixture(t *testing.T, name string) domain.RawRecord {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	var doc struct {
		GI domain.RawRecord `json:"GI"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc.GI
}

func normalizeFixtures(t *testing.T, n int) []*domain.Building {
	t.Helper()
	norm := newNormalizer(t)
	out := make([]*domain.Building, 0, n)
	for i := 1; i <= n; i++ {
		b, err := norm.Normalize(loadFixture(t, fmt.Sprintf("parse_bim_%d.json", i)))
		require.NoError(t, err, "fixture %d", i)
		out = append(out, b)
	}
	return out
}

func TestHazardProneRegion(t *testing.T) {
	buildings := normalizeFixtures(t, 4)

	want := []bool{true, false, true, false}
	for i, b := range buildings {
		assert.Equal(t, want[i], b.HazardProneRegion, "fixture %d", i+1)
	}
}

func TestWindBorneDebris(t *testing.T) {
	buildings := normalizeFixtures(t, 8)

	want := []bool{false, false, false, false, true, true, true, true}
	for i, b := range buildings {
		assert.Equal(t, want[i], b.WindBorneDebris, "fixture %d", i+1)
	}
}

func TestTerrainRoughness(t *testing.T) {
	buildings := normalizeFixtures(t, 8)

	want := []int{3, 15, 35, 70, 3, 15, 35, 70}
	for i, b := range buildings {
		assert.Equal(t, want[i], b.TerrainRoughness, "fixture %d", i+1)
	}
}

func TestTerrainSources(t *testing.T) {
	norm := newNormalizer(t)
	base := func() domain.RawRecord {
		return domain.RawRecord{
			"BuildingType":    "Wood",
			"YearBuilt":       2000.0,
			"NumberOfStories": 1.0,
			"PlanArea":        1200.0,
			"DesignWindSpeed": 100.0,
			"RoofShape":       "hip",
		}
	}

	tests := []struct {
		name  string
		extra domain.RawRecord
		want  int
	}{
		{"explicit z0", domain.RawRecord{"z0": 0.5, "LULC": 5400.0}, 50},
		{"coastal zone wins over land use", domain.RawRecord{"LULC": 4200.0, "FloodZone": "VE"}, 3},
		{"land use", domain.RawRecord{"LULC": 7600.0}, 3},
		{"unlisted land use", domain.RawRecord{"LULC": 9000.0}, 15},
		{"terrain code", domain.RawRecord{"Terrain": 42.0}, 70},
		{"terrain code in A zone", domain.RawRecord{"Terrain": 42.0, "FloodZone": "A"}, 3},
		{"terrain code suburban", domain.RawRecord{"Terrain": 11.0}, 35},
		{"terrain code open", domain.RawRecord{"Terrain": 61.0}, 3},
		{"nothing known", nil, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := base()
			for k, v := range tt.extra {
				raw[k] = v
			}
			b, err := norm.Normalize(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.TerrainRoughness)
		})
	}
}

func TestDefaults(t *testing.T) {
	norm := newNormalizer(t)
	b, err := norm.Normalize(domain.RawRecord{
		"BuildingType":    3004.0,
		"yearBuilt":       "1987",
		"stories":         "3",
		"area":            2500.0,
		"DesignWindSpeed": 115.0,
		"RoofShape":       "Flat",
		"OccupancyClass":  "res3",
	})
	require.NoError(t, err)

	assert.Equal(t, "Masonry", b.BuildingType)
	assert.Equal(t, "RES3A", b.OccupancyClass)
	assert.Equal(t, 1987, b.YearBuilt)
	assert.Equal(t, 3, b.NumberOfStories)
	assert.Equal(t, "flt", b.RoofShape)
	assert.Equal(t, "X", b.FloodZone)
	assert.Equal(t, "below", b.AvgJanTemp)
	assert.Equal(t, "trs", b.RoofSystem)
	assert.Equal(t, "E", b.DesignLevel)
	assert.Equal(t, "NA", b.City)
	assert.Equal(t, "I", b.WindZone)
	assert.Equal(t, 3501, b.FoundationType)
	assert.Equal(t, 1, b.NumberOfUnits)
	assert.InDelta(t, 0.25, b.RoofSlope, 1e-9)
	assert.InDelta(t, 1.0, b.SheathingThickness, 1e-9)
	assert.InDelta(t, -1.0, b.Garage, 1e-9)
	assert.InDelta(t, 15.0, b.MeanRoofHeight, 1e-9)
	assert.InDelta(t, 0.20, b.WindowArea, 1e-9)
	assert.InDelta(t, 10.0, b.FirstFloorElevation, 1e-9)
	assert.InDelta(t, -1.0, b.CoastDistance, 1e-9)
	assert.InDelta(t, 100.0, b.ReplacementCost, 1e-9)
	assert.InDelta(t, 115.0*math.Sqrt(0.6), b.VAsd, 1e-9)
	assert.False(t, b.SplitLevel)
}

func TestCodeTranslation(t *testing.T) {
	norm := newNormalizer(t)
	b, err := norm.Normalize(domain.RawRecord{
		"BuildingType":    "3005",
		"YearBuilt":       1990.0,
		"NumberOfStories": 1.0,
		"PlanArea":        900.0,
		"DesignWindSpeed": 100.0,
		"RoofShape":       "gab",
		"FloodZone":       6105.0,
		"RoofSystem":      "OWSJ",
		"DesignLevel":     "ME",
		"AvgJanTemp":      "Above",
		"SplitLevel":      "YES",
	})
	require.NoError(t, err)

	assert.Equal(t, "Manufactured", b.BuildingType)
	assert.Equal(t, "AO", b.FloodZone)
	assert.Equal(t, "gab", b.RoofShape)
	assert.Equal(t, "ows", b.RoofSystem)
	assert.Equal(t, "E", b.DesignLevel)
	assert.Equal(t, "above", b.AvgJanTemp)
	assert.True(t, b.SplitLevel)
}

func TestCountyFallbacks(t *testing.T) {
	norm := newNormalizer(t)
	b, err := norm.Normalize(domain.RawRecord{
		"BuildingType":    "Wood",
		"YearBuilt":       2018.0,
		"NumberOfStories": 2.0,
		"PlanArea":        1600.0,
		"RoofShape":       "hip",
		"County":          "Ocean",
	})
	require.NoError(t, err)

	assert.InDelta(t, 115.0, b.VUlt, 1e-9)
	// 115 does not exceed the 2016 limit but the county is listed.
	assert.True(t, b.HazardProneRegion)
	assert.False(t, b.WindBorneDebris)
}

func TestExplicitFlagsOverride(t *testing.T) {
	norm := newNormalizer(t)
	b, err := norm.Normalize(domain.RawRecord{
		"BuildingType":      "Wood",
		"YearBuilt":         2010.0,
		"NumberOfStories":   2.0,
		"PlanArea":          1600.0,
		"RoofShape":         "hip",
		"DesignWindSpeed":   80.0,
		"HazardProneRegion": "YES",
		"WBD":               true,
	})
	require.NoError(t, err)

	assert.True(t, b.HazardProneRegion)
	assert.True(t, b.WindBorneDebris)
}

func TestFloodZoneProxyForCoast(t *testing.T) {
	norm := newNormalizer(t)
	b, err := norm.Normalize(domain.RawRecord{
		"BuildingType":    "Wood",
		"YearBuilt":       2010.0,
		"NumberOfStories": 2.0,
		"PlanArea":        1600.0,
		"RoofShape":       "hip",
		"DesignWindSpeed": 112.0,
		"FloodZone":       "AE",
	})
	require.NoError(t, err)
	assert.True(t, b.WindBorneDebris)

	b, err = norm.Normalize(domain.RawRecord{
		"BuildingType":    "Wood",
		"YearBuilt":       2010.0,
		"NumberOfStories": 2.0,
		"PlanArea":        1600.0,
		"RoofShape":       "hip",
		"DesignWindSpeed": 112.0,
		"FloodZone":       "AE",
		"CoastDistance":   3.0,
	})
	require.NoError(t, err)
	assert.False(t, b.WindBorneDebris)
}

func TestNormalizeErrors(t *testing.T) {
	norm := newNormalizer(t)
	valid := func() domain.RawRecord {
		return domain.RawRecord{
			"BuildingType":    "Wood",
			"YearBuilt":       2000.0,
			"NumberOfStories": 2.0,
			"PlanArea":        1600.0,
			"RoofShape":       "hip",
			"DesignWindSpeed": 100.0,
		}
	}

	t.Run("missing year", func(t *testing.T) {
		raw := valid()
		delete(raw, "YearBuilt")
		_, err := norm.Normalize(raw)

		var missing *domain.MissingRequiredFieldError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "YearBuilt", missing.Field)
		assert.Contains(t, missing.Aliases, "YearBuiltMODIV")
	})

	t.Run("missing wind speed without county", func(t *testing.T) {
		raw := valid()
		delete(raw, "DesignWindSpeed")
		_, err := norm.Normalize(raw)

		var missing *domain.MissingRequiredFieldError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "DesignWindSpeed", missing.Field)
	})

	t.Run("null roof shape", func(t *testing.T) {
		raw := valid()
		raw["RoofShape"] = nil
		_, err := norm.Normalize(raw)

		var missing *domain.MissingRequiredFieldError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "RoofShape", missing.Field)
	})

	t.Run("unknown roof shape", func(t *testing.T) {
		raw := valid()
		raw["RoofShape"] = "mansard"
		_, err := norm.Normalize(raw)

		var bad *domain.UnknownAttributeValueError
		require.True(t, errors.As(err, &bad))
		assert.Equal(t, "RoofShape", bad.Field)
		assert.Equal(t, "mansard", bad.Value)
	})

	t.Run("unknown structure code", func(t *testing.T) {
		raw := valid()
		raw["BuildingType"] = 3999.0
		_, err := norm.Normalize(raw)

		var bad *domain.UnknownAttributeValueError
		require.True(t, errors.As(err, &bad))
		assert.Equal(t, "BuildingType", bad.Field)
	})

	t.Run("no stories", func(t *testing.T) {
		for _, stories := range []float64{0, -1} {
			raw := valid()
			raw["NumberOfStories"] = stories
			_, err := norm.Normalize(raw)

			var bad *domain.UnknownAttributeValueError
			require.True(t, errors.As(err, &bad), "stories %g", stories)
			assert.Equal(t, "NumberOfStories", bad.Field)
		}
	})

	t.Run("non numeric stories", func(t *testing.T) {
		raw := valid()
		raw["NumberOfStories"] = "two"
		_, err := norm.Normalize(raw)

		var bad *domain.UnknownAttributeValueError
		require.True(t, errors.As(err, &bad))
		assert.Equal(t, "NumberOfStories", bad.Field)
	})
}

func TestNormalizeIsPure(t *testing.T) {
	norm := newNormalizer(t)
	raw := loadFixture(t, "parse_bim_5.json")
	before := len(raw)

	a, err := norm.Normalize(raw)
	require.NoError(t, err)
	b, err := norm.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
	assert.Len(t, raw, before)
}
