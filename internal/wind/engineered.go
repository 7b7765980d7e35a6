package wind

import (
	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Engineered residential and commercial buildings share one ruleset shape:
// {class}{L|M|H}_{cover}_{WWR}_{shutters}_{WIDD}[_{MRDA}]_{terrain}.
// Concrete classes have no metal deck segment.

var (
	merbRuleset = engineeredRuleset(domain.ClassMERB, true)
	mecbRuleset = engineeredRuleset(domain.ClassMECB, true)
	cerbRuleset = engineeredRuleset(domain.ClassCERB, false)
	cecbRuleset = engineeredRuleset(domain.ClassCECB, false)
	serbRuleset = engineeredRuleset(domain.ClassSERB, true)
	secbRuleset = engineeredRuleset(domain.ClassSECB, true)
)

func engineeredRuleset(class domain.BuildingClass, metalDeck bool) *ruleset {
	shuttersDraw := chance.Draw{Name: class.String() + ".Shutters", P: 0.46}

	return &ruleset{
		class: class,
		draws: []chance.Draw{shuttersDraw},
		build: func(b *domain.Building, env Env) (domain.Configuration, error) {
			roof, err := roofShape(b, class)
			if err != nil {
				return domain.Configuration{}, err
			}

			k := newKey(class.String()+heightTag(b)).
				add("RoofCover", engineeredRoofCover(b, roof)).
				add("WindowAreaRatio", windowWallRatio(b)).
				add("Shutters", flag(protectedOpenings(b, env, shuttersDraw))).
				add("WindDebrisEnvironment", windDebrisEnvironment(b))
			if metalDeck {
				k.add("MetalRoofDeckAttachment", metalDeckAttachment(b))
			}
			return k.terrain(b).configuration(), nil
		},
	}
}
