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

package expand

import (
	"github.com/pyqubo-go/pyqubo/expr"
	"github.com/pyqubo-go/pyqubo/varpoly"
)

// SubHRecord is a labelled sub-Hamiltonian: its pre-reduction polynomial,
// recoverable by label after decode (spec §3 "Sub-Hamiltonian record").
type SubHRecord struct {
	Label string
	Poly  *varpoly.Polynomial
}

// ConstraintRecord extends SubHRecord with a satisfaction predicate (spec
// §3 "Constraint record").
type ConstraintRecord struct {
	Label     string
	Poly      *varpoly.Polynomial
	Satisfied expr.Predicate
}

// Tables holds the mutable side tables the expander threads through the
// recursive walk by reference (spec §9 "Mutable side tables during
// expansion"): sub-Hamiltonians and constraints keyed by first-use label,
// and the set of with-penalty labels already folded into the accumulated
// penalty.
type Tables struct {
	SubH        []SubHRecord
	Constraints []ConstraintRecord

	subhSeen       map[string]int
	constraintSeen map[string]int
	penaltySeen    map[string]bool
}

func newTables() *Tables {
	return &Tables{
		subhSeen:       make(map[string]int),
		constraintSeen: make(map[string]int),
		penaltySeen:    make(map[string]bool),
	}
}

// recordSubH records (label, poly) the first time label is seen; later
// calls with the same label are no-ops (first-write-wins, spec §3
// invariant 5).
func (t *Tables) recordSubH(label string, poly *varpoly.Polynomial) {
	if _, ok := t.subhSeen[label]; ok {
		return
	}
	t.subhSeen[label] = len(t.SubH)
	t.SubH = append(t.SubH, SubHRecord{Label: label, Poly: poly})
}

// recordConstraint records (label, poly, pred) the first time label is
// seen.
func (t *Tables) recordConstraint(label string, poly *varpoly.Polynomial, pred expr.Predicate) {
	if _, ok := t.constraintSeen[label]; ok {
		return
	}
	t.constraintSeen[label] = len(t.Constraints)
	t.Constraints = append(t.Constraints, ConstraintRecord{Label: label, Poly: poly, Satisfied: pred})
}

// sawPenalty reports whether label's with-penalty contribution has already
// been folded in, marking it seen as a side effect of the first check.
func (t *Tables) sawPenalty(label string) bool {
	if t.penaltySeen[label] {
		return true
	}
	t.penaltySeen[label] = true
	return false
}
