package wind

import (
	"strconv"

	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Wood single-family draws.
var (
	// Post-2000 roofs: secondary water resistance is a code-plus practice.
	wsfSWRDraw = chance.Draw{Name: "WSF.SecondaryWaterResistance", P: 0.6}
	// 1946 to 2000: voluntary shutter use.
	wsfShuttersDraw = chance.Draw{Name: "WSF.Shutters", P: 0.45}
)

var wsfRuleset = &ruleset{
	class: domain.ClassWSF,
	draws: []chance.Draw{wsfSWRDraw, wsfShuttersDraw},
	build: buildWSF,
}

// buildWSF returns WSF{stories}_{roof}_{SWR}_{RDA}_{RWC}_{garage}_{shutters}_{terrain}.
func buildWSF(b *domain.Building, env Env) (domain.Configuration, error) {
	roof, err := roofShape(b, domain.ClassWSF)
	if err != nil {
		return domain.Configuration{}, err
	}
	// Hazus has no flat-roofed wood single-family fragilities.
	if roof == roofFlat {
		roof = roofGable
	}
	year := b.YearBuilt

	var swr bool
	switch {
	case year > 2000:
		swr = env.Chance.Bernoulli(wsfSWRDraw)
	case year > 1983:
		// Underlayment requirements for low slopes and cold Januaries.
		switch {
		case b.RoofShape == roofFlat:
			swr = true
		case b.RoofSlope <= 0.17:
			swr = true
		case b.RoofSlope < 0.33:
			swr = b.AvgJanTemp == "below"
		}
	}

	var rda string
	switch {
	case year > 2000:
		rda = deckNailsByWindSpeed(b)
	case year > 1995:
		rda = nailsBySheathing(b.SheathingThickness, 0.59375, 1.125)
	case year > 1986:
		rda = nailsBySheathing(b.SheathingThickness, 0.59375, 1.0)
	default:
		rda = nailsBySheathing(b.SheathingThickness, 0.625, 1.0)
	}

	rwc := "tnail"
	switch {
	case year > 2015:
		rwc = strapsAbove(b, 115.0)
	case year > 1992:
		rwc = strapsAbove(b, 110.0)
	}

	var shutters bool
	switch {
	case year > 2000:
		shutters = b.WindBorneDebris
	case year > 1945:
		shutters = env.Chance.Bernoulli(wsfShuttersDraw)
	}

	// Hazus ties garage door strength to shutter use.
	var garage string
	switch {
	case b.Garage < 0:
		garage, shutters = "std", false
	case b.Garage < 1:
		garage = "no"
	case year > 2000 && shutters:
		garage = "sup"
	case year > env.ReferenceYear-30 || year > 2000:
		garage, shutters = "std", false
	default:
		garage, shutters = "wkd", false
	}

	return newKey("WSF"+strconv.Itoa(b.Stories(2))).
		add("RoofShape", roof).
		add("SecondaryWaterResistance", flag(swr)).
		add("RoofDeckAttachment", rda).
		add("RoofToWallConnection", rwc).
		add("Garage", garage).
		add("Shutters", flag(shutters)).
		terrain(b).
		configuration(), nil
}

// nailsBySheathing picks the deck nail of a pre-2001 deck from the
// sheathing thickness in inches: 8d inside [lo8, hi8], 6d otherwise.
func nailsBySheathing(t, lo8, hi8 float64) string {
	if lo8 <= t && t <= hi8 {
		return "8d"
	}
	return "6d"
}
