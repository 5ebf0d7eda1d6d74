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

package varpoly_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
	"github.com/pyqubo-go/pyqubo/varpoly"
)

func TestProductUnionDedups(t *testing.T) {
	r := require.New(t)
	x := varpoly.Single(3)
	union := x.Union(x)
	r.True(union.Equal(x))
	r.Equal(1, union.Len())
}

func TestProductUnionMerges(t *testing.T) {
	r := require.New(t)
	p := varpoly.FromIndices([]int{5, 1, 1, 3})
	r.Equal([]int{1, 3, 5}, p.Indices())

	q := varpoly.Single(2)
	u := p.Union(q)
	r.Equal([]int{1, 2, 3, 5}, u.Indices())
}

// P2 (polynomial canonicity): no two distinct entries with equal products.
func TestAddProducesCanonicalPolynomial(t *testing.T) {
	r := require.New(t)
	p := varpoly.FromTerm(varpoly.Single(1), coeffalgebra.Scalar(2))
	q := varpoly.FromTerm(varpoly.Single(1), coeffalgebra.Scalar(3))
	sum := p.Add(q)
	r.Equal(1, sum.Len())
	terms := sum.Terms()
	v, err := terms[0].Coeff.Evaluate(nil)
	r.NoError(err)
	r.Equal(5.0, v)
}

func TestAddPrunesExactZero(t *testing.T) {
	r := require.New(t)
	p := varpoly.FromTerm(varpoly.Single(1), coeffalgebra.Scalar(2))
	q := varpoly.FromTerm(varpoly.Single(1), coeffalgebra.Scalar(-2))
	sum := p.Add(q)
	r.Equal(0, sum.Len())
}

// P3 (idempotent variables): binary variables self-multiply without
// growing the product (x*x == x at the product level, via Union).
func TestMulOfBinaryIsIdempotent(t *testing.T) {
	r := require.New(t)
	x := varpoly.FromTerm(varpoly.Single(0), coeffalgebra.Scalar(1))
	xSquared := x.Mul(x)
	r.Equal(1, xSquared.Len())
	r.Equal(1, xSquared.MaxDegree())
}

func TestEvaluate(t *testing.T) {
	r := require.New(t)
	// p = 2*x0 + 3*x0*x1
	p := varpoly.FromTerm(varpoly.Single(0), coeffalgebra.Scalar(2)).
		Add(varpoly.FromTerm(varpoly.FromIndices([]int{0, 1}), coeffalgebra.Scalar(3)))

	v, err := p.Evaluate(map[int]int{0: 1, 1: 1}, nil)
	r.NoError(err)
	r.Equal(5.0, v)

	v, err = p.Evaluate(map[int]int{0: 1, 1: 0}, nil)
	r.NoError(err)
	r.Equal(2.0, v)

	v, err = p.Evaluate(map[int]int{0: 0, 1: 1}, nil)
	r.NoError(err)
	r.Equal(0.0, v)
}
