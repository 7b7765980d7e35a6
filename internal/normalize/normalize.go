// Package normalize turns raw inventory records into fully populated
// buildings: defaults fill gaps, lookup tables translate inventory codes and
// the hazard flags (hurricane-prone region, wind-borne debris region,
// terrain roughness) are derived.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/tables"
)

// Engineering defaults for attributes an inventory may omit.
const (
	DefaultOccupancy       = "RES1"
	DefaultFloodZone       = "X"
	DefaultJanTemp         = "Below"
	DefaultRoofSlope       = 0.25
	DefaultSheathing       = 1.0
	DefaultRoofSystem      = "Wood"
	DefaultMeanRoofHeight  = 15.0
	DefaultDesignLevel     = "E"
	DefaultUnits           = 1
	DefaultWindowArea      = 0.20
	DefaultFirstFloorHt    = 10.0
	DefaultFoundationType  = 3501
	DefaultCity            = "NA"
	DefaultWindZone        = "I"
	DefaultReplacementCost = 100.0
	unknown                = -1
)

// Code edition limits (mph) for the hazard flags. IRC 2015 applies to
// buildings from 2016 on, IRC 2009 and earlier before that.
const (
	codeEditionYear = 2016

	hprLimitCurrent = 115.0
	hprLimitLegacy  = 90.0

	wbdFloodLimitCurrent   = 130.0
	wbdGeneralLimitCurrent = 140.0
	wbdFloodLimitLegacy    = 110.0
	wbdGeneralLimitLegacy  = 120.0

	// Debris region reach from the coastal mean high water line.
	coastReachMiles = 1.0
)

// Normalizer derives buildings from raw records using a fixed table set.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	tables *tables.Tables
}

// New creates a Normalizer over t.
func New(t *tables.Tables) *Normalizer {
	return &Normalizer{tables: t}
}

// Normalize derives a fully populated building from raw. It fails with
// *domain.MissingRequiredFieldError when a required attribute is absent and
// *domain.UnknownAttributeValueError when a value cannot be translated.
func (n *Normalizer) Normalize(raw domain.RawRecord) (*domain.Building, error) {
	r := &reader{raw: raw, tables: n.tables}

	b := &domain.Building{}
	b.ID, _ = raw.String(n.tables.Keys("ID")...)

	b.OccupancyClass = r.occupancy()
	b.BuildingType = r.buildingType()
	b.YearBuilt = r.requiredInt("YearBuilt")
	b.NumberOfStories = r.requiredInt("NumberOfStories")
	if b.NumberOfStories <= 0 {
		r.fail(&domain.UnknownAttributeValueError{Field: "NumberOfStories", Value: b.NumberOfStories})
	}
	b.PlanArea = r.requiredFloat("PlanArea")
	b.FloodZone = r.floodZone()
	b.County = r.str("County", "")
	b.VUlt = r.windSpeed(b.County)
	b.VAsd = b.VUlt * math.Sqrt(0.6)
	b.AvgJanTemp = r.mapped("AvgJanTemp", DefaultJanTemp, n.tables.JanTemperatures)
	b.RoofShape = r.mappedRequired("RoofShape", n.tables.RoofShapes)
	b.RoofSlope = r.float("RoofSlope", DefaultRoofSlope)
	b.SheathingThickness = r.float("SheathingThickness", DefaultSheathing)
	b.RoofSystem = r.mapped("RoofSystem", DefaultRoofSystem, n.tables.RoofSystems)
	b.Garage = r.float("Garage", unknown)
	b.LULC = r.int("LULC", unknown)
	b.Z0 = r.float("z0", unknown)
	b.TerrainCode = r.int("Terrain", unknown)
	b.MeanRoofHeight = r.float("MeanRoofHt", DefaultMeanRoofHeight)
	b.DesignLevel = r.mapped("DesignLevel", DefaultDesignLevel, n.tables.DesignLevels)
	b.NumberOfUnits = r.int("NoUnits", DefaultUnits)
	b.WindowArea = r.float("WindowArea", DefaultWindowArea)
	b.FirstFloorElevation = r.float("FirstFloorElevation", DefaultFirstFloorHt)
	b.SplitLevel = r.boolean("SplitLevel", false)
	b.FoundationType = r.int("FoundationType", DefaultFoundationType)
	b.City = r.str("City", DefaultCity)
	b.WindZone = r.str("WindZone", DefaultWindZone)
	b.CoastDistance = r.float("CoastDistance", unknown)
	b.ReplacementCost = r.float("ReplacementCost", DefaultReplacementCost)

	if r.err != nil {
		return nil, r.err
	}

	b.HazardProneRegion = n.hazardProne(b)
	if v, ok := r.override("HazardProneRegion"); ok {
		b.HazardProneRegion = v
	}
	b.WindBorneDebris = n.windBorneDebris(b)
	if v, ok := r.override("WindBorneDebris"); ok {
		b.WindBorneDebris = v
	}
	b.TerrainRoughness = n.terrainRoughness(b)

	if r.err != nil {
		return nil, r.err
	}
	return b, nil
}

// hazardProne flags the Atlantic and Gulf coast areas where the ultimate
// design wind speed exceeds the code limit of the building's era, plus
// counties the jurisdiction table lists as hurricane-prone.
func (n *Normalizer) hazardProne(b *domain.Building) bool {
	limit := hprLimitLegacy
	if b.YearBuilt >= codeEditionYear {
		limit = hprLimitCurrent
	}
	if b.VUlt > limit {
		return true
	}
	if j, ok := n.tables.Jurisdiction(b.County); ok && j.HurricaneProne {
		return true
	}
	return false
}

// windBorneDebris applies the two debris region conditions inside a
// hurricane-prone region: within a mile of the coast above the flood limit,
// or anywhere above the general limit.
func (n *Normalizer) windBorneDebris(b *domain.Building) bool {
	if !b.HazardProneRegion {
		return false
	}

	floodLim, generalLim := wbdFloodLimitLegacy, wbdGeneralLimitLegacy
	if b.YearBuilt >= codeEditionYear {
		floodLim, generalLim = wbdFloodLimitCurrent, wbdGeneralLimitCurrent
	}

	return (nearCoast(b) && b.VUlt >= floodLim) || b.VUlt >= generalLim
}

// nearCoast uses the measured coast distance when known. Otherwise coastal
// and riverine flood zones stand in for the one mile band.
func nearCoast(b *domain.Building) bool {
	if b.CoastDistance >= 0 {
		return b.CoastDistance < coastReachMiles
	}
	return strings.HasPrefix(b.FloodZone, "A") || strings.HasPrefix(b.FloodZone, "V")
}

// terrainRoughness returns the surface roughness (z0 in cm): 3 open,
// 15 light suburban, 35 suburban, 70 light trees.
func (n *Normalizer) terrainRoughness(b *domain.Building) int {
	if b.Z0 > 0 {
		return int(100 * b.Z0)
	}

	rows, code := n.tables.TerrainCodes, b.TerrainCode
	if b.LULC > 0 {
		rows, code = n.tables.LULCTerrain, b.LULC
	} else if b.TerrainCode <= 0 {
		return n.tables.DefaultRoughness
	}

	if n.tables.OpenExposureZones.Contains(b.FloodZone) {
		return 3
	}
	if z, ok := tables.Match(rows, code); ok {
		return z
	}
	return n.tables.DefaultRoughness
}

// reader pulls typed attributes out of a raw record and keeps the first
// failure so Normalize can report it once.
type reader struct {
	raw    domain.RawRecord
	tables *tables.Tables
	err    error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) missing(field string) {
	keys := r.tables.Keys(field)
	aliases := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != field {
			aliases = append(aliases, k)
		}
	}
	r.fail(&domain.MissingRequiredFieldError{Field: field, Aliases: aliases})
}

func (r *reader) float(field string, def float64) float64 {
	v, ok, err := r.raw.Float(r.tables.Keys(field)...)
	if err != nil {
		r.fail(err)
		return def
	}
	if !ok {
		return def
	}
	return v
}

func (r *reader) requiredFloat(field string) float64 {
	v, ok, err := r.raw.Float(r.tables.Keys(field)...)
	if err != nil {
		r.fail(err)
		return 0
	}
	if !ok {
		r.missing(field)
	}
	return v
}

func (r *reader) int(field string, def int) int {
	v, ok, err := r.raw.Int(r.tables.Keys(field)...)
	if err != nil {
		r.fail(err)
		return def
	}
	if !ok {
		return def
	}
	return v
}

func (r *reader) requiredInt(field string) int {
	v, ok, err := r.raw.Int(r.tables.Keys(field)...)
	if err != nil {
		r.fail(err)
		return 0
	}
	if !ok {
		r.missing(field)
	}
	return v
}

func (r *reader) str(field, def string) string {
	v, ok := r.raw.String(r.tables.Keys(field)...)
	if !ok {
		return def
	}
	return v
}

func (r *reader) boolean(field string, def bool) bool {
	v, ok, err := r.raw.Bool(r.tables.Keys(field)...)
	if err != nil {
		r.fail(err)
		return def
	}
	if !ok {
		return def
	}
	return v
}

func (r *reader) override(field string) (bool, bool) {
	v, ok, err := r.raw.Bool(r.tables.Keys(field)...)
	if err != nil {
		r.fail(err)
		return false, false
	}
	return v, ok
}

// mapped translates a value through table. Values already in the table's
// output vocabulary pass through unchanged.
func (r *reader) mapped(field, def string, table map[string]string) string {
	return r.translate(field, r.str(field, def), table)
}

func (r *reader) mappedRequired(field string, table map[string]string) string {
	v, ok := r.raw.String(r.tables.Keys(field)...)
	if !ok {
		r.missing(field)
		return ""
	}
	return r.translate(field, v, table)
}

func (r *reader) translate(field, v string, table map[string]string) string {
	if out, ok := table[v]; ok {
		return out
	}
	for _, out := range table {
		if out == v {
			return out
		}
	}
	r.fail(&domain.UnknownAttributeValueError{Field: field, Value: v})
	return ""
}

func (r *reader) occupancy() string {
	occ := strings.ToUpper(r.str("OccupancyClass", DefaultOccupancy))
	if alias, ok := r.tables.OccupancyAliases[occ]; ok {
		return alias
	}
	return occ
}

// buildingType accepts either a material name or an NJDEP structure code.
func (r *reader) buildingType() string {
	v, ok := r.raw.String(r.tables.Keys("BuildingType")...)
	if !ok {
		r.missing("BuildingType")
		return ""
	}
	if code, err := strconv.Atoi(v); err == nil {
		if material, ok := r.tables.BuildingTypeCodes[code]; ok {
			return material
		}
		r.fail(&domain.UnknownAttributeValueError{Field: "BuildingType", Value: code})
		return ""
	}
	return v
}

// floodZone accepts a FEMA designation or an NJDEP flood zone code.
func (r *reader) floodZone() string {
	v := r.str("FloodZone", DefaultFloodZone)
	if code, err := strconv.Atoi(v); err == nil {
		if zone, ok := r.tables.FloodZoneCodes[code]; ok {
			return zone
		}
		r.fail(&domain.UnknownAttributeValueError{Field: "FloodZone", Value: code})
		return ""
	}
	return strings.ToUpper(v)
}

// windSpeed prefers the record's design wind speed and falls back to the
// county design speed.
func (r *reader) windSpeed(county string) float64 {
	v, ok, err := r.raw.Float(r.tables.Keys("DesignWindSpeed")...)
	if err != nil {
		r.fail(err)
		return 0
	}
	if ok {
		return v
	}
	if j, found := r.tables.Jurisdiction(county); found && county != "" {
		return j.DesignWindSpeed
	}
	r.missing("DesignWindSpeed")
	return 0
}
