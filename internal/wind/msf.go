package wind

import (
	"strconv"

	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Masonry single-family draws.
var (
	msfSWRDraw      = chance.Draw{Name: "MSF.SecondaryWaterResistance", P: 0.6}
	msfShuttersDraw = chance.Draw{Name: "MSF.Shutters", P: 0.45}
	// Steel joist roofs: cap sheet versus metal cover.
	msfCapSheetDraw = chance.Draw{Name: "MSF.RoofCover.CapSheet", P: 0.85}
)

var msfRuleset = &ruleset{
	class: domain.ClassMSF,
	draws: []chance.Draw{msfSWRDraw, msfShuttersDraw, msfCapSheetDraw},
	build: buildMSF,
}

// buildMSF returns
// MSF{stories}_{roof}_{RWC}_{RFT}_{RDA}_{shutters}_{SWR}_{garage}_{MR}_{MRDA}_{terrain}.
// Truss roofs leave MRDA null, steel joist roofs leave garage and MR null.
func buildMSF(b *domain.Building, env Env) (domain.Configuration, error) {
	roof, err := roofShape(b, domain.ClassMSF)
	if err != nil {
		return domain.Configuration{}, err
	}
	year := b.YearBuilt

	rwc := "tnail"
	if b.HazardProneRegion {
		rwc = "strap"
	}

	rft := b.RoofSystem
	if rft != "trs" && rft != "ows" {
		return domain.Configuration{}, &domain.UnknownAttributeValueError{Field: "RoofSystem", Value: rft, Class: domain.ClassMSF}
	}

	shutters := b.WindBorneDebris
	if year <= 2000 {
		shutters = b.WindBorneDebris && env.Chance.Bernoulli(msfShuttersDraw)
	}

	k := newKey("MSF"+strconv.Itoa(b.Stories(2))).
		add("RoofShape", roof).
		add("RoofToWallConnection", rwc).
		add("RoofFrameType", rft)

	if rft == "trs" {
		rda := deckNailsByWindSpeed(b)
		swr := env.Chance.Bernoulli(msfSWRDraw)

		// Same garage and shutter pairing as wood single-family.
		var garage string
		switch {
		case b.Garage < 0:
			garage, shutters = "std", false
		case b.Garage < 1:
			garage = "no"
		case shutters:
			garage = "sup"
		case year > env.ReferenceYear-30:
			garage = "std"
		default:
			garage = "wkd"
		}

		return k.add("RoofDeckAttachment", rda).
			add("Shutters", flag(shutters)).
			add("SecondaryWaterResistance", flag(swr)).
			add("Garage", garage).
			add("MasonryReinforcing", "1").
			slot(null).
			terrain(b).
			configuration(), nil
	}

	rda := "std"
	if b.VUlt > 142.0 {
		rda = "sup"
	}
	swr := null
	if roof == roofFlat {
		swr = flag(env.Chance.Bernoulli(msfSWRDraw))
	}
	cover := "smtl"
	if env.Chance.Bernoulli(msfCapSheetDraw) {
		cover = "cshl"
	}
	k.features["RoofCover"] = cover

	return k.add("RoofDeckAttachment", rda).
		add("Shutters", flag(shutters)).
		add("SecondaryWaterResistance", swr).
		slot(null).
		slot(null).
		add("MetalRoofDeckAttachment", metalDeckAttachment(b)).
		terrain(b).
		configuration(), nil
}
