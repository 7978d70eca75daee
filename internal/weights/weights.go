// Package weights implements the five-category scoring distribution that
// steers kit generation. A distribution assigns each category an integer
// percentage, and the sum across all categories is always exactly 100.
//
// All functions are pure: they take a distribution and return a new one,
// leaving the input untouched. The caller owns sequencing and persistence.
package weights

import (
	"errors"
	"fmt"
	"math"
)

// Categories is the canonical ordered set of scoring categories. Rounding
// and drift correction iterate in this order, which keeps results
// deterministic regardless of map iteration order.
var Categories = []string{
	"Clarity & Relevance",
	"Emotional Impact",
	"Curiosity Gap",
	"Visual Appeal",
	"SEO Strength",
}

// Distribution maps each category name to an integer percentage.
// A valid distribution has exactly one entry per canonical category
// and its values sum to 100.
type Distribution map[string]int

// ErrUnknownCategory indicates a category name outside the canonical set.
var ErrUnknownCategory = errors.New("unknown category")

// IsCategory reports whether name is one of the canonical categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Default returns the even split over all categories (20 each for 5).
// If 100 does not divide evenly, the remainder goes to the earliest
// categories in canonical order so the sum is still exactly 100.
func Default() Distribution {
	d := make(Distribution, len(Categories))
	even := 100 / len(Categories)
	for _, c := range Categories {
		d[c] = even
	}
	for i := 0; i < 100-even*len(Categories); i++ {
		d[Categories[i]]++
	}
	return d
}

// Sum returns the total of all category values in d.
func Sum(d Distribution) int {
	total := 0
	for _, v := range d {
		total += v
	}
	return total
}

// Validate checks that d is a complete distribution: one entry per canonical
// category, every value in [0, 100], no extra keys, and a total of exactly 100.
func Validate(d Distribution) error {
	for _, c := range Categories {
		v, ok := d[c]
		if !ok {
			return fmt.Errorf("distribution missing category %q", c)
		}
		if v < 0 || v > 100 {
			return fmt.Errorf("category %q out of range: %d", c, v)
		}
	}
	if len(d) != len(Categories) {
		for name := range d {
			if !IsCategory(name) {
				return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
			}
		}
	}
	if total := Sum(d); total != 100 {
		return fmt.Errorf("distribution sums to %d, must sum to 100", total)
	}
	return nil
}

// Redistribute sets changed to newValue and divides the remaining budget
// among the other categories in proportion to their previous relative
// weights, so a category that held twice another's weight still does after
// the change. If the changed category previously held all 100 points there
// is no ratio to preserve and the remainder is split evenly.
//
// newValue is clamped to [0, 100]; the clamp is part of the contract, so
// callers do not need to pre-validate slider input. The changed category
// must be one of the canonical categories, and current must be a valid
// distribution (the sum invariant is what makes the proportional math hold).
func Redistribute(current Distribution, changed string, newValue int) (Distribution, error) {
	if !IsCategory(changed) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, changed)
	}

	if newValue < 0 {
		newValue = 0
	}
	if newValue > 100 {
		newValue = 100
	}

	oldWeight := current[changed]
	remaining := float64(100 - newValue)
	sumOthers := float64(100 - oldWeight)

	exact := make([]float64, len(Categories))
	for i, c := range Categories {
		switch {
		case c == changed:
			exact[i] = float64(newValue)
		case sumOthers > 0:
			exact[i] = float64(current[c]) / sumOthers * remaining
		default:
			// Changed category held everything; even split is the only
			// well-defined fallback.
			exact[i] = remaining / float64(len(Categories)-1)
		}
	}

	return quantize(exact), nil
}

// Normalize scales raw per-category scores (arbitrary scale, need not sum
// to 100) into a valid distribution. Negative scores count as zero. If the
// total is zero the even split is returned rather than dividing by zero.
// Categories absent from raw are treated as scoring zero.
func Normalize(raw map[string]float64) Distribution {
	total := 0.0
	for _, c := range Categories {
		if v := raw[c]; v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return Default()
	}

	exact := make([]float64, len(Categories))
	for i, c := range Categories {
		v := raw[c]
		if v < 0 {
			v = 0
		}
		exact[i] = v / total * 100
	}

	return quantize(exact)
}

// quantize rounds each exact value (indexed by canonical category order) to
// the nearest integer, then applies the whole rounding drift to the category
// holding the largest rounded value, first in canonical order on ties. The
// result always sums to exactly 100; the absorbing category may shift by a
// point or two from its exact proportional value.
func quantize(exact []float64) Distribution {
	rounded := make([]int, len(exact))
	total := 0
	for i, v := range exact {
		rounded[i] = int(math.Round(v))
		total += rounded[i]
	}

	if diff := 100 - total; diff != 0 {
		largest := 0
		for i, v := range rounded {
			if v > rounded[largest] {
				largest = i
			}
		}
		rounded[largest] += diff
	}

	d := make(Distribution, len(Categories))
	for i, c := range Categories {
		d[c] = rounded[i]
	}
	return d
}
