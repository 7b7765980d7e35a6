package domain

// MethodHazusHU identifies the Hazus hurricane damage and loss method.
const MethodHazusHU = "HAZUS MH HU"

// DamageLossModel describes the damage and loss assessment of one building.
// Field names and nesting are consumed verbatim by the loss simulation.
type DamageLossModel struct {
	Method       string                 `json:"_method"`
	LossModel    LossModel              `json:"LossModel"`
	Components   map[string][]Component `json:"Components"`
	Combinations []string               `json:"Combinations"`
}

// LossModel holds the loss model settings.
type LossModel struct {
	DecisionVariables DecisionVariables `json:"DecisionVariables"`
	ReplacementCost   float64           `json:"ReplacementCost"`
}

// DecisionVariables selects the loss quantities to compute.
type DecisionVariables struct {
	ReconstructionCost bool `json:"ReconstructionCost"`
}

// Component places one fragility group on the building.
type Component struct {
	Location       string `json:"location"`
	Direction      string `json:"direction"`
	MedianQuantity string `json:"median_quantity"`
	Unit           string `json:"unit"`
	Distribution   string `json:"distribution"`
}

// SingleComponent is one deterministic unit on the first floor.
func SingleComponent() Component {
	return Component{
		Location:       "1",
		Direction:      "1",
		MedianQuantity: "1.0",
		Unit:           "ea",
		Distribution:   "N/A",
	}
}

// Configuration is the output of a configuration ruleset: the fragility
// lookup key and the attribute values that produced it.
type Configuration struct {
	Key      string            `json:"key"`
	Features map[string]string `json:"features,omitempty"`
}

// Assembly names the loss compositions combined for a building.
type Assembly struct {
	Hurricane string `json:"hurricane"`
	Flood     string `json:"flood"`
}

// Assessment is the full result of auto-populating one building.
type Assessment struct {
	ID       string             `json:"id,omitempty"`
	Building *Building          `json:"BIM"`
	Class    BuildingClass      `json:"BuildingClass"`
	Wind     Configuration      `json:"WindConfiguration"`
	Flood    Configuration      `json:"FloodConfiguration"`
	Assembly Assembly           `json:"Assembly"`
	Model    *DamageLossModel   `json:"DL"`
	Metadata AssessmentMetadata `json:"metadata"`
}

// AssessmentMetadata records how an assessment was produced.
type AssessmentMetadata struct {
	TraceID       string `json:"traceId,omitempty"`
	RuleID        string `json:"ruleId"`
	ReferenceYear int    `json:"referenceYear"`
	EngineVersion string `json:"engineVersion,omitempty"`
}
