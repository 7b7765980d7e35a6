package chance

import (
	"sort"

	"github.com/rotisserie/eris"
)

// maxPaths bounds the outcome tree explored by Enumerate.
const maxPaths = 1 << 12

// Candidate is one reachable result of a randomized computation and the
// probability of reaching it.
type Candidate struct {
	Key         string  `json:"key"`
	Probability float64 `json:"probability"`
}

// Enumerate runs fn once per distinct path through its draws and returns
// every reachable key with its total probability, most likely first.
// fn must be deterministic apart from the draws it makes on c.
func Enumerate(fn func(c Chance) (string, error)) ([]Candidate, error) {
	totals := make(map[string]float64)

	pending := [][]bool{nil}
	for runs := 0; len(pending) > 0; runs++ {
		if runs >= maxPaths {
			return nil, eris.Errorf("chance: more than %d outcome paths", maxPaths)
		}

		prefix := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		s := &script{prefix: prefix, probability: 1}
		key, err := fn(s)
		if err != nil {
			return nil, err
		}
		totals[key] += s.probability

		// Branch on every draw made past the replayed prefix. Unscripted
		// draws answered false, so each branch flips one of them.
		for i := len(prefix); i < len(s.made); i++ {
			branch := make([]bool, i+1)
			copy(branch, s.made[:i])
			branch[i] = true
			pending = append(pending, branch)
		}
	}

	out := make([]Candidate, 0, len(totals))
	for k, p := range totals {
		out = append(out, Candidate{Key: k, Probability: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// script replays a scripted prefix of outcomes and answers false after it.
type script struct {
	prefix      []bool
	made        []bool
	probability float64
}

func (s *script) Bernoulli(d Draw) bool {
	v := false
	if i := len(s.made); i < len(s.prefix) {
		v = s.prefix[i]
	}
	s.made = append(s.made, v)
	if v {
		s.probability *= d.P
	} else {
		s.probability *= 1 - d.P
	}
	return v
}
