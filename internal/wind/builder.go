// Package wind builds the Hazus hurricane configuration of a building: one
// ruleset per building class, each producing the fragility lookup key from
// the building's construction era, hazard flags and geometry.
package wind

import (
	"strconv"
	"strings"

	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Env carries the inputs a ruleset needs beyond the building itself.
type Env struct {
	// ReferenceYear is the "current" year of the age-based rules.
	ReferenceYear int
	Chance        chance.Chance
}

// Builder produces the configuration of one building class.
type Builder interface {
	Class() domain.BuildingClass
	// Draws lists the tie-breaking draws the ruleset may make.
	Draws() []chance.Draw
	Build(b *domain.Building, env Env) (domain.Configuration, error)
}

type ruleset struct {
	class domain.BuildingClass
	draws []chance.Draw
	build func(b *domain.Building, env Env) (domain.Configuration, error)
}

func (r *ruleset) Class() domain.BuildingClass { return r.class }

func (r *ruleset) Draws() []chance.Draw {
	out := make([]chance.Draw, len(r.draws))
	copy(out, r.draws)
	return out
}

func (r *ruleset) Build(b *domain.Building, env Env) (domain.Configuration, error) {
	return r.build(b, env)
}

// Roof shape tokens.
const (
	roofGable = "gab"
	roofHip   = "hip"
	roofFlat  = "flt"
)

const null = "null"

func roofShape(b *domain.Building, class domain.BuildingClass) (string, error) {
	switch b.RoofShape {
	case roofGable, roofHip, roofFlat:
		return b.RoofShape, nil
	}
	return "", &domain.UnknownAttributeValueError{Field: "RoofShape", Value: b.RoofShape, Class: class}
}

// key accumulates the segments of a configuration string together with the
// named attributes behind them.
type key struct {
	parts    []string
	features map[string]string
}

func newKey(head string) *key {
	return &key{parts: []string{head}, features: make(map[string]string)}
}

func (k *key) add(name, token string) *key {
	k.parts = append(k.parts, token)
	k.features[name] = token
	return k
}

// slot appends a fixed token that carries no attribute.
func (k *key) slot(token string) *key {
	k.parts = append(k.parts, token)
	return k
}

func (k *key) terrain(b *domain.Building) *key {
	return k.add("TerrainRoughness", strconv.Itoa(b.TerrainRoughness))
}

func (k *key) configuration() domain.Configuration {
	return domain.Configuration{Key: strings.Join(k.parts, "_"), Features: k.features}
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
