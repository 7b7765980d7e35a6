package wind

import (
	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Rules shared by several classes.

// deckNailLimit is the wind speed above which post-2000 wood decks use
// 8d ring-shank nails.
func deckNailLimit(year int) float64 {
	if year >= 2016 {
		return 130.0
	}
	return 100.0
}

// deckNailsByWindSpeed applies the post-2000 deck attachment rule.
func deckNailsByWindSpeed(b *domain.Building) string {
	if b.VUlt > deckNailLimit(b.YearBuilt) {
		return "8s"
	}
	return "8d"
}

// deckNailsByTerrain applies the masonry deck rule: rougher terrain
// tolerates higher wind speeds before ring-shank nails are required.
func deckNailsByTerrain(b *domain.Building) string {
	limit := 110.0
	if b.TerrainRoughness >= 35 {
		limit = 130.0
	}
	if b.VUlt > limit {
		return "8s"
	}
	return "8d"
}

// strapsAbove returns the roof-to-wall connection for a strap threshold.
func strapsAbove(b *domain.Building, limit float64) string {
	if b.VUlt > limit {
		return "strap"
	}
	return "tnail"
}

// metalDeckAttachment is the metal roof deck attachment of steel joist roofs.
func metalDeckAttachment(b *domain.Building) string {
	if b.VUlt > 142.0 {
		return "std"
	}
	return "sup"
}

// flatRoofCover returns the cover of a low-slope roof: single-ply membranes
// from 1975 on, built-up roofs before.
func flatRoofCover(b *domain.Building) string {
	if b.YearBuilt >= 1975 {
		return "spm"
	}
	return "bur"
}

// roofCoverAndQuality returns cover and quality for classes that only rate
// low-slope roofs. Pitched roofs carry null for both.
func roofCoverAndQuality(b *domain.Building, roof string, referenceYear int) (string, string) {
	if roof != roofFlat {
		return null, null
	}
	cover := flatRoofCover(b)
	// Membranes last about 35 years, built-up roofs about 30.
	life := 30
	if cover == "spm" {
		life = 35
	}
	if b.YearBuilt >= referenceYear-life {
		return cover, "god"
	}
	return cover, "por"
}

// engineeredRoofCover returns the cover used by the engineered classes,
// which treat pitched roofs as built-up.
func engineeredRoofCover(b *domain.Building, roof string) string {
	if roof != roofFlat {
		return "bur"
	}
	return flatRoofCover(b)
}

// deckAge rates roof deck quality by age against a 50 year service life.
func deckAge(b *domain.Building, referenceYear int) string {
	if b.YearBuilt >= referenceYear-50 {
		return "god"
	}
	return "por"
}

// protectedOpenings applies the shutter rule of the engineered and masonry
// classes: required in debris regions from 2000 on, otherwise drawn.
func protectedOpenings(b *domain.Building, env Env, draw chance.Draw) bool {
	if b.YearBuilt >= 2000 {
		return b.WindBorneDebris
	}
	return b.WindBorneDebris && env.Chance.Bernoulli(draw)
}

// windDebrisEnvironment returns the Hazus debris class: C residential,
// D none, A mixed residential and commercial.
func windDebrisEnvironment(b *domain.Building) string {
	switch b.OccupancyClass {
	case "RES1", "RES2", "RES3A", "RES3B", "RES3C", "RES3D":
		return "C"
	case "AGR1":
		return "D"
	}
	return "A"
}

// windowWallRatio buckets the window area ratio.
func windowWallRatio(b *domain.Building) string {
	switch {
	case b.WindowArea < 0.33:
		return "low"
	case b.WindowArea < 0.5:
		return "med"
	}
	return "hig"
}

// heightTag returns the low, mid and high-rise suffix.
func heightTag(b *domain.Building) string {
	switch {
	case b.NumberOfStories <= 2:
		return "L"
	case b.NumberOfStories <= 5:
		return "M"
	}
	return "H"
}
