// Package chance provides the injectable randomness used to break ties when
// a building record underspecifies an attribute. Every draw is a named
// Bernoulli trial with a documented probability.
package chance

import (
	"math/rand/v2"
)

// Draw is a documented tie-breaking draw: P is the probability that the
// named attribute comes out true.
type Draw struct {
	Name string  `json:"name" yaml:"name"`
	P    float64 `json:"p" yaml:"p"`
}

// Chance decides draws. Implementations are not safe for concurrent use.
type Chance interface {
	Bernoulli(d Draw) bool
}

// Seeded draws from a PCG stream. Equal (seed, stream) pairs replay the
// same outcomes.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a source for one stream of seed.
func NewSeeded(seed, stream uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(seed, stream))}
}

// Bernoulli returns true with probability d.P.
func (s *Seeded) Bernoulli(d Draw) bool {
	return s.rng.Float64() < d.P
}

// Fixed answers every draw with Default unless Outcomes names it.
type Fixed struct {
	Default  bool
	Outcomes map[string]bool
}

// Always returns a source answering every draw with v.
func Always(v bool) *Fixed {
	return &Fixed{Default: v}
}

// Bernoulli returns the fixed outcome for d.
func (f *Fixed) Bernoulli(d Draw) bool {
	if v, ok := f.Outcomes[d.Name]; ok {
		return v
	}
	return f.Default
}

// Recorder wraps a source and keeps every draw it answered.
type Recorder struct {
	Source Chance
	Trace  []Outcome
}

// Outcome is one answered draw.
type Outcome struct {
	Draw  Draw `json:"draw"`
	Value bool `json:"value"`
}

// Bernoulli forwards to the wrapped source and records the answer.
func (r *Recorder) Bernoulli(d Draw) bool {
	v := r.Source.Bernoulli(d)
	r.Trace = append(r.Trace, Outcome{Draw: d, Value: v})
	return v
}
