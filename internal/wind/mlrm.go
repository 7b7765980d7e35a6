package wind

import (
	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Joist spacing of taller strip malls is unknown in parcel data: 4 ft or
// 6 ft with equal odds.
var mlrmJoistSpacingDraw = chance.Draw{Name: "MLRM.JoistSpacing.4ft", P: 0.5}

var mlrmRuleset = &ruleset{
	class: domain.ClassMLRM,
	draws: []chance.Draw{mlrmJoistSpacingDraw},
	build: buildMLRM,
}

// buildMLRM returns, for roofs under 15 ft,
// MLRM1_{cover}_{RDA}_{DQ}_{RFT}_{RWC}_{shutters}_{WIDD}_{MR}_{MRDA}_{terrain}
// and otherwise
// MLRM2_{cover}_{RDA}_{DQ}_{RFT}_{JSPA}_{RWC}_{shutters}_{WIDD}_{unit}_{MR}_{MRDA}_{terrain}.
//
// Strip malls in the inventory are open web steel joist roofs, so the wood
// deck attachment and roof-to-wall connection are null.
func buildMLRM(b *domain.Building, env Env) (domain.Configuration, error) {
	if _, err := roofShape(b, domain.ClassMLRM); err != nil {
		return domain.Configuration{}, err
	}

	const roofSystem = "ows"
	cover := flatRoofCover(b)
	quality := deckAge(b, env.ReferenceYear)
	shutters := flag(b.WindBorneDebris)
	widd := windDebrisEnvironment(b)
	mrda := metalDeckAttachment(b)

	if b.MeanRoofHeight < 15.0 {
		return newKey("MLRM1").
			add("RoofCover", cover).
			add("RoofDeckAttachment", null).
			add("RoofDeckAge", quality).
			add("RoofFrameType", roofSystem).
			add("RoofToWallConnection", null).
			add("Shutters", shutters).
			add("WindDebrisEnvironment", widd).
			add("MasonryReinforcing", "1").
			add("MetalRoofDeckAttachment", mrda).
			terrain(b).
			configuration(), nil
	}

	spacing := "6"
	if env.Chance.Bernoulli(mlrmJoistSpacingDraw) {
		spacing = "4"
	}
	unit := "mlt"
	if b.NumberOfUnits == 1 {
		unit = "sgl"
	}

	return newKey("MLRM2").
		add("RoofCover", cover).
		add("RoofDeckAttachment", null).
		add("RoofDeckAge", quality).
		add("RoofFrameType", roofSystem).
		add("JoistSpacing", spacing).
		add("RoofToWallConnection", null).
		add("Shutters", shutters).
		add("WindDebrisEnvironment", widd).
		add("UnitType", unit).
		add("MasonryReinforcing", "1").
		add("MetalRoofDeckAttachment", mrda).
		terrain(b).
		configuration(), nil
}
