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

// Package coeffalgebra implements the placeholder coefficient algebra (spec
// §4.C): polynomials over placeholder names, each raised to a non-negative
// integer exponent, with floating-point scalar coefficients. Grounded on
// go-corset's generic Polynomial[S,T,P] add/mul/eval shape, specialised to
// string-named placeholder monomials instead of abstract terms.
package coeffalgebra

import (
	"sort"
	"strconv"
	"strings"
)

// Monomial maps a placeholder name to its (positive) exponent. An empty
// Monomial is the scalar monomial (exponent of every placeholder is 0).
type Monomial map[string]int

// Mul returns the product of two monomials: exponents are summed per shared
// placeholder name.
func (m Monomial) Mul(other Monomial) Monomial {
	result := make(Monomial, len(m)+len(other))
	for name, exp := range m {
		result[name] = exp
	}
	for name, exp := range other {
		result[name] += exp
	}
	return result
}

// Key returns a canonical string representation of m, suitable for use as a
// map key: names sorted lexicographically, "name^exponent" joined by ",".
func (m Monomial) Key() string {
	if len(m) == 0 {
		return ""
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(m[name]))
	}
	return b.String()
}

// Names returns the placeholder names referenced by m, unordered.
func (m Monomial) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}
