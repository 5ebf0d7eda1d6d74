// Copyright 2024 The PyQUBO-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reducer implements the order reducer (spec §4.F): it repeatedly
// finds the most-frequent co-occurring pair of variables among
// degree-greater-than-2 terms, introduces a fresh auxiliary variable
// standing for their product, and folds in the Rosenberg AND-penalty that
// constrains the auxiliary to actually equal that product. Grounded on
// cuishuang-gnark's newR1C/addConstraint emission pair, generalised from
// "emit one R1C" to "emit one AND-penalty polynomial".
package reducer

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
	"github.com/pyqubo-go/pyqubo/encoder"
	"github.com/pyqubo-go/pyqubo/varpoly"
)

// pair is an unordered pair of distinct encoder indices, stored with i < j.
type pair [2]int

// Reduce lowers poly to a polynomial of degree <= 2, issuing auxiliary
// variables through enc. strength scales every AND-penalty term; it may be
// symbolic (a placeholder polynomial), in which case it is only checked for
// non-positivity when it happens to be a concrete scalar (reducer never
// fails on a symbolic strength — that's compilepkg.Compile's job, which
// validates a literal non-positive strength before calling Reduce).
func Reduce(poly *varpoly.Polynomial, enc *encoder.Encoder, strength *coeffalgebra.Polynomial, log zerolog.Logger) *varpoly.Polynomial {
	if v, ok := strength.AsScalar(); ok && v <= 0 {
		log.Warn().Float64("strength", v).Msg("reducer: non-positive strength may not dominate the objective for all inputs")
	}

	current := poly
	for {
		highDegree := highDegreeTerms(current)
		if len(highDegree) == 0 {
			return current
		}

		p, count := pickPair(highDegree)
		zLabel := enc.LabelOf(p[0]) + "*" + enc.LabelOf(p[1])
		z := enc.IndexOf(zLabel)

		log.Debug().
			Int("x", p[0]).Int("y", p[1]).Int("z", z).
			Str("z_label", zLabel).Int("count", count).
			Msg("reducer: introducing auxiliary variable")

		current = substitutePair(current, p[0], p[1], z)
		current = current.Add(andPenalty(strength, p[0], p[1], z))
	}
}

func highDegreeTerms(poly *varpoly.Polynomial) []varpoly.Term {
	var out []varpoly.Term
	for _, t := range poly.Terms() {
		if t.Product.Len() > 2 {
			out = append(out, t)
		}
	}
	return out
}

// pickPair counts, across all terms in highDegree, how many terms each
// unordered pair of distinct indices co-occurs in (once per term, not once
// per polynomial), and returns the pair with the largest count. Ties break
// lexicographically on (i, j), smallest first — spec's recommended and
// this implementation's frozen default (DESIGN.md Open Question 2).
func pickPair(highDegree []varpoly.Term) (pair, int) {
	counts := make(map[pair]int)
	for _, t := range highDegree {
		idxs := t.Product.Indices()
		for a := 0; a < len(idxs); a++ {
			for b := a + 1; b < len(idxs); b++ {
				counts[pair{idxs[a], idxs[b]}]++
			}
		}
	}

	keys := make([]pair, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	best := keys[0]
	bestCount := counts[best]
	for _, k := range keys[1:] {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best, bestCount
}

// substitutePair replaces every occurrence of both i and j within the same
// (size > 2) product by a single occurrence of z, leaving every other term
// — including already-quadratic ones — untouched.
func substitutePair(poly *varpoly.Polynomial, i, j, z int) *varpoly.Polynomial {
	out := varpoly.Zero()
	for _, t := range poly.Terms() {
		if t.Product.Len() > 2 && t.Product.Contains(i) && t.Product.Contains(j) {
			idxs := t.Product.Indices()
			replaced := make([]int, 0, len(idxs)-1)
			for _, idx := range idxs {
				if idx == i || idx == j {
					continue
				}
				replaced = append(replaced, idx)
			}
			replaced = append(replaced, z)
			out = out.AddTerm(varpoly.FromIndices(replaced), t.Coeff)
		} else {
			out = out.AddTerm(t.Product, t.Coeff)
		}
	}
	return out
}

// andPenalty returns S*(3z - 2xz - 2yz + xy), the standard Rosenberg
// penalty minimised exactly at z == x*y (spec §4.F step 5, property P6).
func andPenalty(strength *coeffalgebra.Polynomial, x, y, z int) *varpoly.Polynomial {
	zTerm := varpoly.FromTerm(varpoly.Single(z), strength.Scale(3))
	xzTerm := varpoly.FromTerm(varpoly.FromIndices([]int{x, z}), strength.Scale(-2))
	yzTerm := varpoly.FromTerm(varpoly.FromIndices([]int{y, z}), strength.Scale(-2))
	xyTerm := varpoly.FromTerm(varpoly.FromIndices([]int{x, y}), strength.Scale(1))
	return zTerm.Add(xzTerm).Add(yzTerm).Add(xyTerm)
}
