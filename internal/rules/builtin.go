package rules

import "github.com/opensource-finance/hurricane-autopop/internal/domain"

const (
	multiUnitResidential = `["RES3A", "RES3B", "RES3C", "RES3D", "RES3E", "RES3F"]`
	commercial           = `["COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9", "COM10"]`
	industrial           = `["IND1", "IND2", "IND3", "IND4", "IND5", "IND6"]`
)

// HazusClassRules returns the Hazus hurricane building classification
// table. Order matters: the first matching row wins, so broad fallbacks for
// each material come after their specific rows.
func HazusClassRules() []*domain.ClassRule {
	return []*domain.ClassRule{
		// Wood
		{
			ID:         "wood-single-family",
			Name:       "Wood single-family",
			Expression: `material == "Wood" && (occupancy == "RES1" || (roof_shape != "flt" && occupancy == ""))`,
			Class:      domain.ClassWSF,
			Enabled:    true,
		},
		{
			ID:          "wood-multi-unit",
			Name:        "Wood multi-unit housing",
			Description: "Every other wood building, including flat-roofed ones of unknown occupancy.",
			Expression:  `material == "Wood"`,
			Class:       domain.ClassWMUH,
			Enabled:     true,
		},

		// Steel
		{
			ID:         "steel-engineered-residential",
			Name:       "Steel engineered residential",
			Expression: `material == "Steel" && design_level == "E" && occupancy in ` + multiUnitResidential,
			Class:      domain.ClassSERB,
			Enabled:    true,
		},
		{
			ID:         "steel-engineered-commercial",
			Name:       "Steel engineered commercial",
			Expression: `material == "Steel" && design_level == "E" && occupancy in ` + commercial,
			Class:      domain.ClassSECB,
			Enabled:    true,
		},
		{
			ID:         "steel-pre-engineered",
			Name:       "Steel pre-engineered metal building",
			Expression: `material == "Steel" && design_level == "PE" && !(occupancy in ` + multiUnitResidential + `)`,
			Class:      domain.ClassSPMB,
			Enabled:    true,
		},
		{
			ID:         "steel-default",
			Name:       "Steel fallback",
			Expression: `material == "Steel"`,
			Class:      domain.ClassSECB,
			Enabled:    true,
		},

		// Concrete
		{
			ID:         "concrete-engineered-residential",
			Name:       "Concrete engineered residential",
			Expression: `material == "Concrete" && design_level == "E" && (occupancy in ` + multiUnitResidential + ` || occupancy in ["RES5", "RES6"])`,
			Class:      domain.ClassCERB,
			Enabled:    true,
		},
		{
			ID:         "concrete-engineered-commercial",
			Name:       "Concrete engineered commercial",
			Expression: `material == "Concrete" && design_level == "E" && occupancy in ` + commercial,
			Class:      domain.ClassCECB,
			Enabled:    true,
		},
		{
			ID:         "concrete-default",
			Name:       "Concrete fallback",
			Expression: `material == "Concrete"`,
			Class:      domain.ClassCECB,
			Enabled:    true,
		},

		// Masonry
		{
			ID:         "masonry-single-family",
			Name:       "Masonry single-family",
			Expression: `material == "Masonry" && occupancy == "RES1"`,
			Class:      domain.ClassMSF,
			Enabled:    true,
		},
		{
			ID:         "masonry-engineered-residential",
			Name:       "Masonry engineered residential",
			Expression: `material == "Masonry" && occupancy in ` + multiUnitResidential + ` && design_level == "E"`,
			Class:      domain.ClassMERB,
			Enabled:    true,
		},
		{
			ID:         "masonry-engineered-commercial",
			Name:       "Masonry engineered commercial",
			Expression: `material == "Masonry" && occupancy in ` + commercial + ` && design_level == "E"`,
			Class:      domain.ClassMECB,
			Enabled:    true,
		},
		{
			ID:         "masonry-industrial",
			Name:       "Masonry low-rise industrial",
			Expression: `material == "Masonry" && occupancy in ` + industrial,
			Class:      domain.ClassMLRI,
			Enabled:    true,
		},
		{
			ID:         "masonry-multi-unit",
			Name:       "Masonry multi-unit housing",
			Expression: `material == "Masonry" && (occupancy in ` + multiUnitResidential + ` || occupancy in ["RES5", "RES6", "COM8"])`,
			Class:      domain.ClassMMUH,
			Enabled:    true,
		},
		{
			ID:         "masonry-strip-mall",
			Name:       "Masonry low-rise strip mall",
			Expression: `material == "Masonry" && stories == 1 && occupancy in ["COM1", "COM2"]`,
			Class:      domain.ClassMLRM,
			Enabled:    true,
		},
		{
			ID:         "masonry-default",
			Name:       "Masonry fallback",
			Expression: `material == "Masonry"`,
			Class:      domain.ClassMECB,
			Enabled:    true,
		},

		// Manufactured housing
		{
			ID:         "manufactured-home",
			Name:       "Manufactured home",
			Expression: `material == "Manufactured"`,
			Class:      domain.ClassMH,
			Enabled:    true,
		},
	}
}
