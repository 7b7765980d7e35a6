package wind

import "github.com/opensource-finance/hurricane-autopop/internal/domain"

var mlriRuleset = &ruleset{
	class: domain.ClassMLRI,
	build: buildMLRI,
}

// buildMLRI returns MLRI_{quality}_{shutters}_{MR}_{MRDA}_{terrain}.
// Industrial buildings are assumed unshuttered.
func buildMLRI(b *domain.Building, env Env) (domain.Configuration, error) {
	roof, err := roofShape(b, domain.ClassMLRI)
	if err != nil {
		return domain.Configuration{}, err
	}
	_, quality := roofCoverAndQuality(b, roof, env.ReferenceYear)

	return newKey("MLRI").
		add("RoofQuality", quality).
		add("Shutters", flag(false)).
		add("MasonryReinforcing", "1").
		add("MetalRoofDeckAttachment", metalDeckAttachment(b)).
		terrain(b).
		configuration(), nil
}
