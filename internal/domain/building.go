package domain

// Building is the fully populated attribute record produced by the
// normalizer. Every field consumed by the classifier, the configuration
// builders and the flood rulesets is set.
type Building struct {
	ID string `json:"id,omitempty"`

	// Occupancy and structure
	OccupancyClass  string  `json:"OccupancyClass"`
	BuildingType    string  `json:"BuildingType"`
	YearBuilt       int     `json:"YearBuilt"`
	NumberOfStories int     `json:"NumberOfStories"`
	PlanArea        float64 `json:"PlanArea"`
	DesignLevel     string  `json:"DesignLevel"`
	NumberOfUnits   int     `json:"NoUnits"`
	WindowArea      float64 `json:"WindowArea"`
	MeanRoofHeight  float64 `json:"MeanRoofHt"`

	// Roof
	RoofShape          string  `json:"RoofShape"`
	RoofSlope          float64 `json:"RoofSlope"`
	RoofSystem         string  `json:"RoofSystem"`
	SheathingThickness float64 `json:"SheathingThickness"`
	Garage             float64 `json:"Garage"`

	// Flood
	FloodZone           string  `json:"FloodZone"`
	FirstFloorElevation float64 `json:"FirstFloorElevation"`
	SplitLevel          bool    `json:"SplitLevel"`
	FoundationType      int     `json:"FoundationType"`

	// Site and hazard
	City          string  `json:"City"`
	County        string  `json:"County,omitempty"`
	WindZone      string  `json:"WindZone"`
	AvgJanTemp    string  `json:"AvgJanTemp"`
	VUlt          float64 `json:"V_ult"`
	VAsd          float64 `json:"V_asd"`
	LULC          int     `json:"LULC"`
	TerrainCode   int     `json:"Terrain"`
	Z0            float64 `json:"z0"`
	CoastDistance float64 `json:"CoastDistance"`

	// Derived flags
	HazardProneRegion bool `json:"HazardProneRegion"`
	WindBorneDebris   bool `json:"WindBorneDebris"`
	TerrainRoughness  int  `json:"TerrainRoughness"`

	ReplacementCost float64 `json:"ReplacementCost"`
}

// IsResidentialMultiUnit reports whether the occupancy is RES3A through RES3F.
func (b *Building) IsResidentialMultiUnit() bool {
	switch b.OccupancyClass {
	case "RES3A", "RES3B", "RES3C", "RES3D", "RES3E", "RES3F":
		return true
	}
	return false
}

// Stories caps the story count at limit, the way class keys encode height.
func (b *Building) Stories(limit int) int {
	return min(b.NumberOfStories, limit)
}
