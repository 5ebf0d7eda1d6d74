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

package coeffalgebra_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
	"github.com/pyqubo-go/pyqubo/errkinds"
)

func TestScalarEvaluatesToItself(t *testing.T) {
	p := coeffalgebra.Scalar(3.5)
	v, err := p.Evaluate(nil)
	require.NoError(t, err)
	require.Equal(t, 3.5, v)
}

func TestZeroPruned(t *testing.T) {
	p := coeffalgebra.Scalar(5).Add(coeffalgebra.Scalar(-5))
	require.True(t, p.IsZero())
	require.Empty(t, p.Terms())
}

func TestMissingPlaceholderFails(t *testing.T) {
	p := coeffalgebra.Param("M")
	_, err := p.Evaluate(map[string]float64{})
	require.Error(t, err)
	require.ErrorIs(t, err, errkinds.ErrMissingPlaceholder)
	require.Contains(t, err.Error(), "M")
}

func TestMulConvolution(t *testing.T) {
	p := coeffalgebra.Param("M").Add(coeffalgebra.Scalar(1)) // M + 1
	q := coeffalgebra.Param("M")                             // M
	prod := p.Mul(q)                                         // M^2 + M
	v, err := prod.Evaluate(map[string]float64{"M": 3})
	require.NoError(t, err)
	require.Equal(t, 9.0+3.0, v)
}

func genFiniteFloat() gopter.Gen {
	return gen.Float64Range(-1e6, 1e6)
}

// P7 (placeholder linearity of evaluation):
// evaluate(p + q, β) == evaluate(p, β) + evaluate(q, β)
// evaluate(c·p, β) == c·evaluate(p, β)
func TestEvaluateLinearityProperty(t *testing.T) {
	props := gopter.NewProperties(nil)

	props.Property("evaluate(p+q) == evaluate(p)+evaluate(q)", prop.ForAll(
		func(cp, cq, m float64) bool {
			binding := map[string]float64{"M": m}
			p := coeffalgebra.Param("M").Scale(cp)
			q := coeffalgebra.Param("M").Scale(cq)
			sumVal, err := p.Add(q).Evaluate(binding)
			if err != nil {
				return false
			}
			pv, _ := p.Evaluate(binding)
			qv, _ := q.Evaluate(binding)
			return math.Abs(sumVal-(pv+qv)) < 1e-6
		},
		genFiniteFloat(), genFiniteFloat(), genFiniteFloat(),
	))

	props.Property("evaluate(c*p) == c*evaluate(p)", prop.ForAll(
		func(c, cp, m float64) bool {
			binding := map[string]float64{"M": m}
			p := coeffalgebra.Param("M").Scale(cp)
			scaledVal, err := p.Scale(c).Evaluate(binding)
			if err != nil {
				return false
			}
			pv, _ := p.Evaluate(binding)
			return math.Abs(scaledVal-c*pv) < 1e-6
		},
		genFiniteFloat(), genFiniteFloat(), genFiniteFloat(),
	))

	props.TestingRun(t)
}
