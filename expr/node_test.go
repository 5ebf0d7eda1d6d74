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

package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyqubo-go/pyqubo/expr"
)

func TestConstantFolding(t *testing.T) {
	r := require.New(t)

	sum := expr.Const(2).Add(expr.Const(3))
	r.Equal(expr.Numeric, sum.Kind())
	r.Equal(5.0, sum.Value())

	prod := expr.Const(2).Mul(expr.Const(3))
	r.Equal(expr.Numeric, prod.Kind())
	r.Equal(6.0, prod.Value())

	a := expr.Var("a")
	r.True(expr.Const(0).Add(a).Equal(a))
	r.True(a.Add(expr.Const(0)).Equal(a))
	r.True(expr.Const(1).Mul(a).Equal(a))
	r.True(a.Mul(expr.Const(1)).Equal(a))
	r.True(expr.Const(0).Mul(a).Equal(expr.Const(0)))
}

func TestStructuralEquality(t *testing.T) {
	r := require.New(t)

	a1 := expr.Var("a")
	a2 := expr.Var("a")
	b := expr.Var("b")

	r.True(a1.Equal(a2))
	r.False(a1.Equal(b))

	sum1 := a1.Add(b)
	sum2 := a2.Add(expr.Var("b"))
	r.True(sum1.Equal(sum2))

	// Operand order matters structurally: a+b is not required to equal b+a
	// at the DAG level (that equivalence only emerges after expansion).
	sum3 := b.Add(a1)
	r.False(sum1.Equal(sum3))
}

func TestLeafInterning(t *testing.T) {
	r := require.New(t)
	a1 := expr.Var("unique-label-for-interning-test")
	a2 := expr.Var("unique-label-for-interning-test")
	r.Same(a1, a2)
}

func TestPowRejectsNonPositiveExponent(t *testing.T) {
	a := expr.Var("a")
	_, err := a.Pow(0)
	require.Error(t, err)
	_, err = a.Pow(-1)
	require.Error(t, err)
}

func TestPowExpands(t *testing.T) {
	a := expr.Var("a")
	cubed, err := a.Pow(3)
	require.NoError(t, err)
	require.Equal(t, expr.Mul, cubed.Kind())
}

func TestDivRejectsZero(t *testing.T) {
	a := expr.Var("a")
	_, err := a.Div(0)
	require.Error(t, err)
}

func TestDefaultPredicateIsEqualsZero(t *testing.T) {
	require.True(t, expr.DefaultPredicate(0.0))
	require.False(t, expr.DefaultPredicate(0.1))
}

func TestWithPenaltyCarriesPenaltyChild(t *testing.T) {
	r := require.New(t)
	main := expr.Var("a")
	penalty := expr.Var("b")
	wp := main.WithPenalty(penalty, "pen")
	r.Equal(expr.WithPenalty, wp.Kind())
	r.True(wp.Left().Equal(main))
	r.True(wp.Right().Equal(penalty))
	r.Equal("pen", wp.Label())
}
