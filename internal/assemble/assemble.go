// Package assemble combines the outputs of the rulesets into the damage and
// loss model of a building and the assessment that reports it.
package assemble

import (
	"sort"

	"github.com/google/uuid"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// EngineVersion is stamped on every assessment.
const EngineVersion = "autopop-1.0"

// Processor turns ruleset results into assessments.
type Processor struct {
	// ReconstructionCost requests repair cost as a decision variable.
	ReconstructionCost bool
}

// NewProcessor creates a processor with default settings.
func NewProcessor() *Processor {
	return &Processor{ReconstructionCost: true}
}

// Input contains everything the rulesets produced for one building.
type Input struct {
	TraceID       string
	RuleID        string
	ReferenceYear int
	Building      *domain.Building
	Class         domain.BuildingClass
	Wind          domain.Configuration
	Flood         domain.Configuration
	Assembly      domain.Assembly
}

// Process builds the damage and loss model and wraps it in an assessment.
// Buildings without an ID get a random one.
func (p *Processor) Process(input *Input) *domain.Assessment {
	id := input.Building.ID
	if id == "" {
		id = uuid.New().String()
	}

	return &domain.Assessment{
		ID:       id,
		Building: input.Building,
		Class:    input.Class,
		Wind:     input.Wind,
		Flood:    input.Flood,
		Assembly: input.Assembly,
		Model:    p.Build(input.Wind, input.Flood, input.Assembly, input.Building.ReplacementCost),
		Metadata: domain.AssessmentMetadata{
			TraceID:       input.TraceID,
			RuleID:        input.RuleID,
			ReferenceYear: input.ReferenceYear,
			EngineVersion: EngineVersion,
		},
	}
}

// Build returns the damage and loss model: one unit of the wind and flood
// fragility groups, combined through the two surge assemblies.
func (p *Processor) Build(wind, flood domain.Configuration, assembly domain.Assembly, replacementCost float64) *domain.DamageLossModel {
	return &domain.DamageLossModel{
		Method: domain.MethodHazusHU,
		LossModel: domain.LossModel{
			DecisionVariables: domain.DecisionVariables{ReconstructionCost: p.ReconstructionCost},
			ReplacementCost:   replacementCost,
		},
		Components: map[string][]domain.Component{
			wind.Key:  {domain.SingleComponent()},
			flood.Key: {domain.SingleComponent()},
		},
		Combinations: []string{assembly.Hurricane, assembly.Flood},
	}
}

// ComponentKeys returns the fragility groups of m in sorted order.
func ComponentKeys(m *domain.DamageLossModel) []string {
	keys := make([]string, 0, len(m.Components))
	for k := range m.Components {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
