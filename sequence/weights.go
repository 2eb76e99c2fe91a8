package sequence

import (
	"math"
	"math/rand/v2"
)

// Weights holds one selection weight per direction, indexed by Direction
type Weights [directionCount]float64

// WeightParams shapes the weighted ("smart") selection relative to the partial sequence
type WeightParams struct {
	Repeat       float64 `yaml:"repeat"`        // Applied to the last direction
	Opposite     float64 `yaml:"opposite"`      // Applied to the opposite of the last direction
	TripleRepeat float64 `yaml:"triple_repeat"` // Applied again when the last two entries are equal
}

// UniformWeights gives every direction weight 1
func UniformWeights() Weights {
	return Weights{1, 1, 1, 1}
}

// For computes the weights for the next entry following partial
func (p WeightParams) For(partial Sequence) Weights {
	w := UniformWeights()
	if len(partial) == 0 {
		return w
	}

	last := partial[len(partial)-1]
	if !last.Valid() {
		return w
	}
	w[last] *= p.Repeat
	w[last.Opposite()] *= p.Opposite

	if n := len(partial); n >= 2 && partial[n-2] == last {
		w[last] *= p.TripleRepeat
	}
	return w
}

// Total returns the sum of weights, 0 if any weight is negative or not finite
func (w Weights) Total() float64 {
	total := 0.0
	for _, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		total += v
	}
	return total
}

// Pick draws a direction by cumulative sum
// Degenerate weights fall back to a uniform draw
func (w Weights) Pick(rng *rand.Rand) Direction {
	total := w.Total()
	if total <= 0 {
		return Directions[rng.IntN(len(Directions))]
	}

	r := rng.Float64() * total
	for i, v := range w {
		r -= v
		if r < 0 {
			return Direction(i)
		}
	}

	// Float rounding can leave r at exactly zero; take the last non-zero weight
	for i := len(w) - 1; i >= 0; i-- {
		if w[i] > 0 {
			return Direction(i)
		}
	}
	return Directions[rng.IntN(len(Directions))]
}
