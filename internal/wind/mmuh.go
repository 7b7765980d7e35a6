package wind

import (
	"strconv"

	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

var (
	mmuhSWRDraw      = chance.Draw{Name: "MMUH.SecondaryWaterResistance", P: 0.6}
	mmuhShuttersDraw = chance.Draw{Name: "MMUH.Shutters", P: 0.46}
)

var mmuhRuleset = &ruleset{
	class: domain.ClassMMUH,
	draws: []chance.Draw{mmuhSWRDraw, mmuhShuttersDraw},
	build: buildMMUH,
}

// buildMMUH returns
// MMUH{stories}_{roof}_{SWR}_{cover}_{quality}_{RDA}_{RWC}_{shutters}_{MR}_{terrain}.
func buildMMUH(b *domain.Building, env Env) (domain.Configuration, error) {
	roof, err := roofShape(b, domain.ClassMMUH)
	if err != nil {
		return domain.Configuration{}, err
	}

	swr := null
	if roof != roofFlat {
		swr = flag(env.Chance.Bernoulli(mmuhSWRDraw))
	}

	cover, quality := roofCoverAndQuality(b, roof, env.ReferenceYear)

	return newKey("MMUH"+strconv.Itoa(b.Stories(3))).
		add("RoofShape", roof).
		add("SecondaryWaterResistance", swr).
		add("RoofCover", cover).
		add("RoofQuality", quality).
		add("RoofDeckAttachment", deckNailsByTerrain(b)).
		add("RoofToWallConnection", strapsAbove(b, 110.0)).
		add("Shutters", flag(protectedOpenings(b, env, mmuhShuttersDraw))).
		add("MasonryReinforcing", "1").
		terrain(b).
		configuration(), nil
}
