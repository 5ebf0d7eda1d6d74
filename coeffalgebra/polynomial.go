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

package coeffalgebra

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pyqubo-go/pyqubo/errkinds"
)

type entry struct {
	mono  Monomial
	coeff float64
}

// Polynomial is a sum of scalar-coefficient placeholder monomials (spec
// §4.C "coefficient"). The zero value is not usable; use Zero or Scalar.
// A Polynomial with no entries represents the scalar 0, and is the result
// every arithmetic operation prunes towards once a term's coefficient
// collapses to exactly zero (spec §9 open question: zero entries are
// pruned, never retained).
type Polynomial struct {
	terms map[string]entry
}

// Zero returns the additive identity.
func Zero() *Polynomial {
	return &Polynomial{terms: make(map[string]entry)}
}

// Scalar returns the constant polynomial c (the common, fast "plain number"
// case: a single entry keyed by the empty monomial).
func Scalar(c float64) *Polynomial {
	p := Zero()
	if c != 0 {
		p.terms[""] = entry{mono: Monomial{}, coeff: c}
	}
	return p
}

// FromMonomial returns the single-term polynomial coeff * mono.
func FromMonomial(mono Monomial, coeff float64) *Polynomial {
	p := Zero()
	if coeff != 0 {
		p.terms[mono.Key()] = entry{mono: mono, coeff: coeff}
	}
	return p
}

// Param returns the polynomial 1*name (a bare placeholder reference).
func Param(name string) *Polynomial {
	return FromMonomial(Monomial{name: 1}, 1)
}

// IsZero reports whether p has no non-zero terms.
func (p *Polynomial) IsZero() bool {
	return len(p.terms) == 0
}

// AsScalar reports whether p is a pure scalar (no placeholders) and returns
// its value. Used by callers on the hot "everything is a plain number" path
// (e.g. a Hamiltonian with no placeholders at all) to skip Evaluate's
// binding lookup entirely.
func (p *Polynomial) AsScalar() (float64, bool) {
	switch len(p.terms) {
	case 0:
		return 0, true
	case 1:
		e, ok := p.terms[""]
		if ok {
			return e.coeff, true
		}
	}
	return 0, false
}

func (p *Polynomial) clone() *Polynomial {
	out := &Polynomial{terms: make(map[string]entry, len(p.terms))}
	for k, e := range p.terms {
		out.terms[k] = e
	}
	return out
}

func (p *Polynomial) prune() {
	for k, e := range p.terms {
		if e.coeff == 0 {
			delete(p.terms, k)
		}
	}
}

// Add returns p + q.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	out := p.clone()
	for k, e := range q.terms {
		if existing, ok := out.terms[k]; ok {
			out.terms[k] = entry{mono: e.mono, coeff: existing.coeff + e.coeff}
		} else {
			out.terms[k] = e
		}
	}
	out.prune()
	return out
}

// Scale returns c * p.
func (p *Polynomial) Scale(c float64) *Polynomial {
	if c == 0 {
		return Zero()
	}
	out := &Polynomial{terms: make(map[string]entry, len(p.terms))}
	for k, e := range p.terms {
		out.terms[k] = entry{mono: e.mono, coeff: e.coeff * c}
	}
	out.prune()
	return out
}

// Mul returns p * q via the usual convolution.
func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	out := Zero()
	for _, pe := range p.terms {
		for _, qe := range q.terms {
			mono := pe.mono.Mul(qe.mono)
			key := mono.Key()
			coeff := pe.coeff * qe.coeff
			if existing, ok := out.terms[key]; ok {
				out.terms[key] = entry{mono: mono, coeff: existing.coeff + coeff}
			} else {
				out.terms[key] = entry{mono: mono, coeff: coeff}
			}
		}
	}
	out.prune()
	return out
}

// Evaluate returns p's value under binding, a mapping from placeholder name
// to a finite scalar. Fails with errkinds.ErrMissingPlaceholder, naming the
// offending placeholder, if any name referenced in p is absent from
// binding.
func (p *Polynomial) Evaluate(binding map[string]float64) (float64, error) {
	keys := maps.Keys(p.terms)
	slices.Sort(keys) // deterministic summation order regardless of map iteration
	var total float64
	for _, k := range keys {
		e := p.terms[k]
		term := e.coeff
		for _, name := range e.mono.Names() {
			v, ok := binding[name]
			if !ok {
				return 0, fmt.Errorf("coeffalgebra: evaluate: placeholder %q not bound: %w", name, errkinds.ErrMissingPlaceholder)
			}
			exp := e.mono[name]
			for i := 0; i < exp; i++ {
				term *= v
			}
		}
		total += term
	}
	return total, nil
}

// Term is a single monomial/coefficient pair, as returned by Terms.
type Term struct {
	Mono  Monomial
	Coeff float64
}

// Terms returns the monomial/coefficient pairs of p, in a deterministic
// (lexicographic by canonical key) order.
func (p *Polynomial) Terms() []Term {
	keys := maps.Keys(p.terms)
	slices.Sort(keys)
	out := make([]Term, 0, len(keys))
	for _, k := range keys {
		e := p.terms[k]
		out = append(out, Term{Mono: e.mono, Coeff: e.coeff})
	}
	return out
}
