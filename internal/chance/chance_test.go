package chance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testShutters = Draw{Name: "shutters", P: 0.45}
	testSWR      = Draw{Name: "swr", P: 0.6}
)

func TestSeededIsReproducible(t *testing.T) {
	a := NewSeeded(42, 7)
	b := NewSeeded(42, 7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Bernoulli(testSWR), b.Bernoulli(testSWR), "draw %d", i)
	}
}

func TestSeededFrequency(t *testing.T) {
	s := NewSeeded(1, 0)
	hits := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if s.Bernoulli(testShutters) {
			hits++
		}
	}
	assert.InDelta(t, 0.45, float64(hits)/n, 0.02)
}

func TestSeededExtremes(t *testing.T) {
	s := NewSeeded(3, 3)
	for i := 0; i < 50; i++ {
		assert.False(t, s.Bernoulli(Draw{Name: "never", P: 0}))
		assert.True(t, s.Bernoulli(Draw{Name: "always", P: 1}))
	}
}

func TestFixed(t *testing.T) {
	f := &Fixed{Default: true, Outcomes: map[string]bool{"swr": false}}
	assert.True(t, f.Bernoulli(testShutters))
	assert.False(t, f.Bernoulli(testSWR))
	assert.False(t, Always(false).Bernoulli(testShutters))
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Source: Always(true)}
	r.Bernoulli(testSWR)
	r.Bernoulli(testShutters)

	require.Len(t, r.Trace, 2)
	assert.Equal(t, "swr", r.Trace[0].Draw.Name)
	assert.True(t, r.Trace[1].Value)
}

func TestEnumerate(t *testing.T) {
	candidates, err := Enumerate(func(c Chance) (string, error) {
		key := "a"
		if c.Bernoulli(testSWR) {
			key += "1"
		} else {
			key += "0"
		}
		// The second draw only happens on one branch.
		if key == "a1" && c.Bernoulli(testShutters) {
			key += "s"
		}
		return key, nil
	})
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	byKey := map[string]float64{}
	total := 0.0
	for _, c := range candidates {
		byKey[c.Key] = c.Probability
		total += c.Probability
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.InDelta(t, 0.4, byKey["a0"], 1e-9)
	assert.InDelta(t, 0.6*0.55, byKey["a1"], 1e-9)
	assert.InDelta(t, 0.6*0.45, byKey["a1s"], 1e-9)
	assert.Equal(t, "a0", candidates[0].Key)
}

func TestEnumerateMergesEqualKeys(t *testing.T) {
	candidates, err := Enumerate(func(c Chance) (string, error) {
		c.Bernoulli(testSWR)
		return "same", nil
	})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.InDelta(t, 1.0, candidates[0].Probability, 1e-9)
}

func TestEnumerateWithoutDraws(t *testing.T) {
	candidates, err := Enumerate(func(c Chance) (string, error) {
		return "only", nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{Key: "only", Probability: 1}}, candidates)
}

func TestEnumeratePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Enumerate(func(c Chance) (string, error) {
		if c.Bernoulli(testSWR) {
			return "", boom
		}
		return "ok", nil
	})
	assert.ErrorIs(t, err, boom)
}
