// Package tables holds the read-only lookup tables consulted by the
// normalizer and the flood rulesets. Tables load once per process and are
// never mutated afterwards.
package tables

import (
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed hazus_nj.yaml
var embedded []byte

// Tables is the parsed lookup table set.
type Tables struct {
	Aliases map[string][]string `yaml:"aliases"`

	BuildingTypeCodes map[int]string    `yaml:"building_type_codes"`
	FloodZoneCodes    map[int]string    `yaml:"flood_zone_codes"`
	OccupancyAliases  map[string]string `yaml:"occupancy_aliases"`
	RoofShapes        map[string]string `yaml:"roof_shapes"`
	RoofSystems       map[string]string `yaml:"roof_systems"`
	DesignLevels      map[string]string `yaml:"design_levels"`
	JanTemperatures   map[string]string `yaml:"jan_temperatures"`

	OpenExposureZones ZoneSet    `yaml:"open_exposure_zones"`
	LULCTerrain       []RangeRow `yaml:"lulc_terrain"`
	TerrainCodes      []RangeRow `yaml:"terrain_codes"`
	DefaultRoughness  int        `yaml:"default_terrain_roughness"`

	Jurisdictions  map[string]Jurisdiction `yaml:"jurisdictions"`
	FIRMYears      map[string]int          `yaml:"firm_years"`
	FloodOccupancy map[string]string       `yaml:"flood_occupancy"`
}

// RangeRow maps an inclusive code range to a terrain roughness.
type RangeRow struct {
	Min       int `yaml:"min"`
	Max       int `yaml:"max"`
	Roughness int `yaml:"roughness"`
}

// ZoneSet matches flood zones by prefix or exact designation.
type ZoneSet struct {
	Prefixes []string `yaml:"prefixes"`
	Exact    []string `yaml:"exact"`
}

// Jurisdiction holds county-level wind design data.
type Jurisdiction struct {
	DesignWindSpeed float64 `yaml:"design_wind_speed"`
	HurricaneProne  bool    `yaml:"hurricane_prone"`
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the embedded table set, parsed on first use.
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Parse(embedded)
	})
	return defaultTables, defaultErr
}

// Load reads a table set from path. An empty path returns Default.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tables: read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML table set.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrap(err, "tables: decode yaml")
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) validate() error {
	if len(t.RoofShapes) == 0 {
		return eris.New("tables: roof_shapes is empty")
	}
	for _, field := range []string{"BuildingType", "YearBuilt", "NumberOfStories", "PlanArea", "RoofShape"} {
		if len(t.Aliases[field]) == 0 {
			return eris.Errorf("tables: no aliases for required field %s", field)
		}
	}
	for _, rows := range [][]RangeRow{t.LULCTerrain, t.TerrainCodes} {
		for _, r := range rows {
			if r.Min > r.Max {
				return eris.Errorf("tables: range %d-%d is inverted", r.Min, r.Max)
			}
		}
	}
	if t.DefaultRoughness == 0 {
		t.DefaultRoughness = 15
	}
	return nil
}

// Keys returns the accepted raw attribute names for field, falling back to
// the field name itself.
func (t *Tables) Keys(field string) []string {
	if keys, ok := t.Aliases[field]; ok && len(keys) > 0 {
		return keys
	}
	return []string{field}
}

// Match returns the roughness of the first row containing code.
func Match(rows []RangeRow, code int) (int, bool) {
	for _, r := range rows {
		if code >= r.Min && code <= r.Max {
			return r.Roughness, true
		}
	}
	return 0, false
}

// Contains reports whether zone belongs to the set.
func (z ZoneSet) Contains(zone string) bool {
	for _, p := range z.Prefixes {
		if strings.HasPrefix(zone, p) {
			return true
		}
	}
	for _, e := range z.Exact {
		if zone == e {
			return true
		}
	}
	return false
}

// Jurisdiction looks up a county, ignoring case and a trailing "County".
func (t *Tables) Jurisdiction(county string) (Jurisdiction, bool) {
	name := strings.TrimSpace(county)
	name = strings.TrimSuffix(strings.TrimSuffix(name, " County"), " county")
	for k, j := range t.Jurisdictions {
		if strings.EqualFold(k, name) {
			return j, true
		}
	}
	return Jurisdiction{}, false
}

// FIRMYear returns the FIRM adoption year of a municipality.
func (t *Tables) FIRMYear(city string) (int, bool) {
	y, ok := t.FIRMYears[strings.TrimSpace(city)]
	return y, ok
}
