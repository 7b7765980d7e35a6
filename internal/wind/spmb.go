package wind

import (
	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

var spmbShuttersDraw = chance.Draw{Name: "SPMB.Shutters", P: 0.46}

var spmbRuleset = &ruleset{
	class: domain.ClassSPMB,
	draws: []chance.Draw{spmbShuttersDraw},
	build: buildSPMB,
}

// buildSPMB returns SPMB{S|M|L}_{quality}_{shutters}_{MRDA}_{terrain}.
// The size suffix comes from the plan area in square feet.
func buildSPMB(b *domain.Building, env Env) (domain.Configuration, error) {
	if _, err := roofShape(b, domain.ClassSPMB); err != nil {
		return domain.Configuration{}, err
	}

	size := "L"
	switch {
	case b.PlanArea <= 4000:
		size = "S"
	case b.PlanArea <= 50000:
		size = "M"
	}

	return newKey("SPMB"+size).
		add("RoofDeckAge", deckAge(b, env.ReferenceYear)).
		add("Shutters", flag(protectedOpenings(b, env, spmbShuttersDraw))).
		add("MetalRoofDeckAttachment", metalDeckAttachment(b)).
		terrain(b).
		configuration(), nil
}
