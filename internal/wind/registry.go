package wind

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// registry is indexed by class. Every valid class must have an entry;
// init refuses to start otherwise.
var registry = [domain.NumBuildingClasses]Builder{
	domain.ClassWSF:  wsfRuleset,
	domain.ClassWMUH: wmuhRuleset,
	domain.ClassMSF:  msfRuleset,
	domain.ClassMMUH: mmuhRuleset,
	domain.ClassMLRM: mlrmRuleset,
	domain.ClassMLRI: mlriRuleset,
	domain.ClassMERB: merbRuleset,
	domain.ClassMECB: mecbRuleset,
	domain.ClassCECB: cecbRuleset,
	domain.ClassCERB: cerbRuleset,
	domain.ClassSPMB: spmbRuleset,
	domain.ClassSECB: secbRuleset,
	domain.ClassSERB: serbRuleset,
	domain.ClassMH:   mhRuleset,
}

func init() {
	if err := verify(registry[:]); err != nil {
		panic(err)
	}
}

// verify checks that every class has a builder registered under its own tag.
func verify(builders []Builder) error {
	var missing []string
	for _, c := range domain.AllBuildingClasses() {
		if int(c) >= len(builders) || builders[c] == nil {
			missing = append(missing, c.String())
			continue
		}
		if got := builders[c].Class(); got != c {
			return eris.Errorf("wind: builder for %s reports class %s", c, got)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("wind: no builder for %s", strings.Join(missing, ", "))
	}
	return nil
}

// For returns the builder of class. It fails with
// *domain.UnsupportedBuildingClassError for values outside the enumeration.
func For(class domain.BuildingClass) (Builder, error) {
	if !class.Valid() || registry[class] == nil {
		return nil, &domain.UnsupportedBuildingClassError{Class: class}
	}
	return registry[class], nil
}

// Classes lists the registered classes in enumeration order.
func Classes() []domain.BuildingClass {
	out := make([]domain.BuildingClass, 0, len(registry))
	for _, c := range domain.AllBuildingClasses() {
		if registry[c] != nil {
			out = append(out, c)
		}
	}
	return out
}

// Candidates enumerates every configuration key the class ruleset can
// produce for b and the probability of each.
func Candidates(b *domain.Building, class domain.BuildingClass, referenceYear int) ([]chance.Candidate, error) {
	builder, err := For(class)
	if err != nil {
		return nil, err
	}
	return chance.Enumerate(func(c chance.Chance) (string, error) {
		cfg, err := builder.Build(b, Env{ReferenceYear: referenceYear, Chance: c})
		if err != nil {
			return "", err
		}
		return cfg.Key, nil
	})
}
