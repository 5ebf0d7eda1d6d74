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

// Package pyqubotest collects testify-based assertion helpers shared by
// the pipeline's package tests, grounded on vck3000-gnark/test/assert.go's
// embedded-*require.Assertions idiom.
package pyqubotest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
	"github.com/pyqubo-go/pyqubo/model"
)

// Assert embeds *require.Assertions and adds a handful of domain-specific
// checks used across this repository's package tests.
type Assert struct {
	*require.Assertions
	t *testing.T
}

// New wraps t in an Assert.
func New(t *testing.T) *Assert {
	return &Assert{Assertions: require.New(t), t: t}
}

// EnergyEquals asserts m.Energy(sample, vartype, binding) equals want
// within an absolute tolerance of 1e-9, the tolerance this repository uses
// throughout for floating-point energy comparisons.
func (a *Assert) EnergyEquals(want float64, m *model.Model, sample model.Sample, vartype model.Vartype, binding map[string]float64) {
	a.t.Helper()
	got, err := m.Energy(sample, vartype, binding)
	a.NoError(err)
	a.InDelta(want, got, 1e-9)
}

// ScalarEquals asserts p evaluates, with no binding required, to want —
// i.e. p is a pure constant equal to want.
func (a *Assert) ScalarEquals(want float64, p *coeffalgebra.Polynomial) {
	a.t.Helper()
	got, ok := p.AsScalar()
	a.True(ok, "polynomial is not a pure scalar")
	a.InDelta(want, got, 1e-9)
}

// QUBOKeyEquals asserts qubo[key] equals want within the package's
// standard floating-point tolerance.
func (a *Assert) QUBOKeyEquals(want float64, qubo map[model.QUBOKey]float64, key model.QUBOKey) {
	a.t.Helper()
	a.InDelta(want, qubo[key], 1e-9)
}
