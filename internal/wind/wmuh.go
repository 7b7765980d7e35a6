package wind

import (
	"strconv"

	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Wood multi-unit housing draws.
var (
	wmuhSWRDraw       = chance.Draw{Name: "WMUH.SecondaryWaterResistance", P: 0.6}
	wmuhLegacySWRDraw = chance.Draw{Name: "WMUH.SecondaryWaterResistance.Pre1988", P: 0.3}
	wmuhShuttersDraw  = chance.Draw{Name: "WMUH.Shutters", P: 0.46}
)

var wmuhRuleset = &ruleset{
	class: domain.ClassWMUH,
	draws: []chance.Draw{wmuhSWRDraw, wmuhLegacySWRDraw, wmuhShuttersDraw},
	build: buildWMUH,
}

// buildWMUH returns
// WMUH{stories}_{roof}_{cover}_{quality}_{SWR}_{RDA}_{RWC}_{shutters}_{terrain}.
func buildWMUH(b *domain.Building, env Env) (domain.Configuration, error) {
	roof, err := roofShape(b, domain.ClassWMUH)
	if err != nil {
		return domain.Configuration{}, err
	}
	year := b.YearBuilt

	// Flat roofs have no secondary water resistance question.
	swr := null
	if roof != roofFlat {
		switch {
		case year > 2000:
			swr = flag(env.Chance.Bernoulli(wmuhSWRDraw))
		case year > 1987:
			swr = flag(b.RoofSlope < 0.33 || b.AvgJanTemp == "below")
		default:
			swr = flag(env.Chance.Bernoulli(wmuhLegacySWRDraw))
		}
	}

	cover, quality := roofCoverAndQuality(b, roof, env.ReferenceYear)

	var rda string
	switch {
	case year > 2009:
		limit := 142.0
		if b.TerrainRoughness >= 35 {
			limit = 168.0
		}
		rda = "8d"
		if b.VUlt > limit {
			rda = "8s"
		}
	case year > 2000:
		rda = "8d"
	case year > 1996:
		rda = "8d"
		if b.VUlt >= 103.0 && b.MeanRoofHeight >= 25.0 {
			rda = "8s"
		}
	case year > 1993:
		rda = "8s"
		if b.SheathingThickness <= 1.0 {
			rda = "8d"
		}
	default:
		rda = "8d"
		if b.SheathingThickness <= 0.5 {
			rda = "6d"
		}
	}

	rwc := "tnail"
	if year > 2000 {
		rwc = strapsAbove(b, 142.0)
	}

	shutters := b.WindBorneDebris
	if year <= 2000 {
		shutters = b.WindBorneDebris && env.Chance.Bernoulli(wmuhShuttersDraw)
	}

	return newKey("WMUH"+strconv.Itoa(b.Stories(3))).
		add("RoofShape", roof).
		add("RoofCover", cover).
		add("RoofQuality", quality).
		add("SecondaryWaterResistance", swr).
		add("RoofDeckAttachment", rda).
		add("RoofToWallConnection", rwc).
		add("Shutters", flag(shutters)).
		terrain(b).
		configuration(), nil
}
