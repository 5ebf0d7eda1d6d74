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

package varpoly

import (
	"sort"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
)

type term struct {
	product Product
	coeff   *coeffalgebra.Polynomial
}

// Polynomial maps products to placeholder-coefficients. The canonical-form
// invariant (spec §3 invariant 2: no two entries with equal products) holds
// by construction: every mutator upserts by Product.Key and prunes
// zero-coefficient terms.
type Polynomial struct {
	terms map[string]term
}

// Zero returns the additive identity.
func Zero() *Polynomial {
	return &Polynomial{terms: make(map[string]term)}
}

// FromTerm returns the single-term polynomial coeff * product.
func FromTerm(product Product, coeff *coeffalgebra.Polynomial) *Polynomial {
	p := Zero()
	if !coeff.IsZero() {
		p.terms[product.Key()] = term{product: product, coeff: coeff}
	}
	return p
}

// Len returns the number of non-zero terms.
func (p *Polynomial) Len() int {
	return len(p.terms)
}

func (p *Polynomial) prune() {
	for k, t := range p.terms {
		if t.coeff.IsZero() {
			delete(p.terms, k)
		}
	}
}

// Add returns p + q. Per spec §4.D, iterates the smaller operand and
// upserts into a clone of the larger; building the clone copies every term
// of the larger operand, so the total cost is O(|p|+|q|) map operations.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	small, large := p, q
	if len(p.terms) > len(q.terms) {
		small, large = q, p
	}
	out := &Polynomial{terms: make(map[string]term, len(large.terms)+len(small.terms))}
	for k, t := range large.terms {
		out.terms[k] = t
	}
	for k, t := range small.terms {
		if existing, ok := out.terms[k]; ok {
			out.terms[k] = term{product: existing.product, coeff: existing.coeff.Add(t.coeff)}
		} else {
			out.terms[k] = t
		}
	}
	out.prune()
	return out
}

// Scale returns c * p for a placeholder-coefficient c.
func (p *Polynomial) Scale(c *coeffalgebra.Polynomial) *Polynomial {
	out := Zero()
	if c.IsZero() {
		return out
	}
	for k, t := range p.terms {
		out.terms[k] = term{product: t.product, coeff: t.coeff.Mul(c)}
	}
	out.prune()
	return out
}

// Mul returns p * q: the double loop over products (sorted-set union) and
// coefficients (convolution), accumulated by upsert.
func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	out := Zero()
	for _, pt := range p.terms {
		for _, qt := range q.terms {
			product := pt.product.Union(qt.product)
			coeff := pt.coeff.Mul(qt.coeff)
			key := product.Key()
			if existing, ok := out.terms[key]; ok {
				out.terms[key] = term{product: product, coeff: existing.coeff.Add(coeff)}
			} else {
				out.terms[key] = term{product: product, coeff: coeff}
			}
		}
	}
	out.prune()
	return out
}

// AddTerm returns p with coeff*product added in (a convenience over
// constructing a single-term Polynomial and calling Add).
func (p *Polynomial) AddTerm(product Product, coeff *coeffalgebra.Polynomial) *Polynomial {
	return p.Add(FromTerm(product, coeff))
}

// Term is a single product/coefficient pair, as returned by Terms.
type Term struct {
	Product Product
	Coeff   *coeffalgebra.Polynomial
}

// Terms returns p's terms sorted by Product (deterministic: shorter
// products first, then lexicographic on indices), satisfying spec §5's
// requirement that hash-iteration order never leak into output ordering.
func (p *Polynomial) Terms() []Term {
	out := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, Term{Product: t.product, Coeff: t.coeff})
	}
	SortTerms(out)
	return out
}

// SortTerms sorts terms in place by their Product order.
func SortTerms(terms []Term) {
	sort.Slice(terms, func(i, j int) bool { return Less(terms[i].Product, terms[j].Product) })
}

// MaxDegree returns the largest product size among p's terms, 0 if p is
// zero.
func (p *Polynomial) MaxDegree() int {
	max := 0
	for _, t := range p.terms {
		if d := t.product.Len(); d > max {
			max = d
		}
	}
	return max
}

// Evaluate substitutes a binary assignment (index -> 0/1) and a placeholder
// binding, returning the resulting scalar. A product evaluates to the
// product of the assignment bits of its indices (0 if any bit is 0).
func (p *Polynomial) Evaluate(assignment map[int]int, binding map[string]float64) (float64, error) {
	var total float64
	for _, t := range p.Terms() {
		bit := 1
		for _, idx := range t.Product.Indices() {
			bit *= assignment[idx]
		}
		if bit == 0 {
			continue
		}
		v, err := t.Coeff.Evaluate(binding)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
