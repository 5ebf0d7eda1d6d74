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

package reducer_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
	"github.com/pyqubo-go/pyqubo/encoder"
	"github.com/pyqubo-go/pyqubo/reducer"
	"github.com/pyqubo-go/pyqubo/varpoly"
)

// P5 (quadratic after reduce): every product has size <= 2 after Reduce.
func TestReduceProducesQuadraticPolynomial(t *testing.T) {
	r := require.New(t)
	enc := encoder.New(0)
	a := enc.IndexOf("a")
	b := enc.IndexOf("b")
	c := enc.IndexOf("c")
	d := enc.IndexOf("d")

	// H = a*b*c + a*b*d
	poly := varpoly.FromTerm(varpoly.FromIndices([]int{a, b, c}), coeffalgebra.Scalar(1)).
		Add(varpoly.FromTerm(varpoly.FromIndices([]int{a, b, d}), coeffalgebra.Scalar(1)))

	reduced := reducer.Reduce(poly, enc, coeffalgebra.Scalar(5), zerolog.Nop())

	for _, term := range reduced.Terms() {
		r.LessOrEqual(term.Product.Len(), 2)
	}

	// the pair (a,b) co-occurs in both terms so should be the one picked,
	// yielding an auxiliary variable labelled "a*b".
	_, ok := enc.Lookup("a*b")
	r.True(ok)
}

// Scenario 4 (order reduction): evaluating the reduced QUBO on any of the
// 16 binary assignments of a,b,c,d matches the direct evaluation of the
// original expression once the auxiliary is correctly pinned to a*b.
func TestReduceMatchesOriginalOnAllAssignments(t *testing.T) {
	r := require.New(t)
	enc := encoder.New(0)
	a := enc.IndexOf("a")
	b := enc.IndexOf("b")
	c := enc.IndexOf("c")
	d := enc.IndexOf("d")

	original := varpoly.FromTerm(varpoly.FromIndices([]int{a, b, c}), coeffalgebra.Scalar(1)).
		Add(varpoly.FromTerm(varpoly.FromIndices([]int{a, b, d}), coeffalgebra.Scalar(1)))

	reduced := reducer.Reduce(original, enc, coeffalgebra.Scalar(5), zerolog.Nop())
	zIdx, ok := enc.Lookup("a*b")
	r.True(ok)

	for mask := 0; mask < 16; mask++ {
		av, bv, cv, dv := mask&1, (mask>>1)&1, (mask>>2)&1, (mask>>3)&1
		origVal, err := original.Evaluate(map[int]int{a: av, b: bv, c: cv, d: dv}, nil)
		r.NoError(err)

		// The auxiliary correctly equals a*b at the minimiser of the
		// AND-penalty; evaluate the reduced polynomial with z pinned there.
		zv := av * bv
		reducedVal, err := reduced.Evaluate(map[int]int{a: av, b: bv, c: cv, d: dv, zIdx: zv}, nil)
		r.NoError(err)
		r.InDelta(origVal, reducedVal, 1e-9)
	}
}

// P6 (AND-penalty correctness): the penalty is 0 exactly when z == x*y in
// {0,1}, strictly positive otherwise.
func TestAndPenaltyCorrectness(t *testing.T) {
	enc := encoder.New(0)
	a := enc.IndexOf("a")
	b := enc.IndexOf("b")
	c := enc.IndexOf("c")
	// Force reduction to exercise the penalty by using a 3rd var so a*b*c has degree 3.
	poly := varpoly.FromTerm(varpoly.FromIndices([]int{a, b, c}), coeffalgebra.Scalar(1))
	reduced := reducer.Reduce(poly, enc, coeffalgebra.Scalar(5), zerolog.Nop())
	zIdx, ok := enc.Lookup("a*b")
	require.True(t, ok)

	// reduced = z*c (the substituted term) + penalty; fixing c=0 below
	// isolates the penalty contribution.
	for av := 0; av <= 1; av++ {
		for bv := 0; bv <= 1; bv++ {
			for zv := 0; zv <= 1; zv++ {
				full, err := reduced.Evaluate(map[int]int{a: av, b: bv, c: 0, zIdx: zv}, nil)
				require.NoError(t, err)
				// with c=0, the z*c substituted term vanishes, isolating the penalty.
				wantZero := zv == av*bv
				if wantZero {
					require.InDelta(t, 0.0, full, 1e-9)
				} else {
					require.Greater(t, full, 0.0)
				}
			}
		}
	}
}

func TestPickPairLexicographicTieBreak(t *testing.T) {
	r := require.New(t)
	enc := encoder.New(0)
	a := enc.IndexOf("a")
	b := enc.IndexOf("b")
	c := enc.IndexOf("c")
	d := enc.IndexOf("d")

	// A single degree-3 term {a,b,c}, so its three pairs (a,b), (a,c),
	// (b,c) each have count 1. d is issued but unused.
	_ = d
	poly := varpoly.FromTerm(varpoly.FromIndices([]int{a, b, c}), coeffalgebra.Scalar(1))
	reducer.Reduce(poly, enc, coeffalgebra.Scalar(1), zerolog.Nop())

	// (a,b) is lexicographically smallest among (a,b),(a,c),(b,c) and all
	// have count 1, so it must be chosen first.
	_, ok := enc.Lookup("a*b")
	r.True(ok)
}
