package wind

import (
	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Homes built before the 1994 HUD wind standard: shutters and tie-downs are
// unknown.
var (
	mhShuttersDraw = chance.Draw{Name: "MH.Shutters", P: 0.45}
	mhTieDownsDraw = chance.Draw{Name: "MH.TieDowns", P: 0.45}
)

var mhRuleset = &ruleset{
	class: domain.ClassMH,
	draws: []chance.Draw{mhShuttersDraw, mhTieDownsDraw},
	build: buildMH,
}

// buildMH returns {MHPHUD|MH76HUD|MH94HUD<zone>}_{shutters}_{tiedowns}_{terrain}.
func buildMH(b *domain.Building, env Env) (domain.Configuration, error) {
	var (
		head               string
		shutters, tieDowns bool
	)

	switch {
	case b.YearBuilt <= 1976:
		head = "MHPHUD"
		shutters = env.Chance.Bernoulli(mhShuttersDraw)
		tieDowns = env.Chance.Bernoulli(mhTieDownsDraw)
	case b.YearBuilt <= 1994:
		head = "MH76HUD"
		shutters = env.Chance.Bernoulli(mhShuttersDraw)
		tieDowns = env.Chance.Bernoulli(mhTieDownsDraw)
	default:
		switch b.WindZone {
		case "I", "II", "III":
		default:
			return domain.Configuration{}, &domain.UnknownAttributeValueError{Field: "WindZone", Value: b.WindZone, Class: domain.ClassMH}
		}
		head = "MH94HUD" + b.WindZone
		shutters = b.VUlt >= 100.0
		tieDowns = b.VUlt >= 70.0
	}

	return newKey(head).
		add("Shutters", flag(shutters)).
		add("TieDowns", flag(tieDowns)).
		terrain(b).
		configuration(), nil
}
