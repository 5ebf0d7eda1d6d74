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

// Package model implements the compiled model (spec §4.G): the quadratic
// polynomial plus the sub-Hamiltonian/constraint side tables and the
// encoder, immutable after compilepkg.Compile returns and safe to evaluate
// repeatedly under different placeholder bindings, including concurrently
// (spec §5).
package model

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pyqubo-go/pyqubo/encoder"
	"github.com/pyqubo-go/pyqubo/errkinds"
	"github.com/pyqubo-go/pyqubo/expr"
	"github.com/pyqubo-go/pyqubo/varpoly"
)

// SubHamiltonian is a labelled sub-expression whose pre-reduction polynomial
// is recoverable after decode (spec §3).
type SubHamiltonian struct {
	Label string
	Poly  *varpoly.Polynomial
}

// Constraint extends SubHamiltonian with a satisfaction predicate.
type Constraint struct {
	Label     string
	Poly      *varpoly.Polynomial
	Satisfied expr.Predicate
}

// Model is the immutable artifact returned by compilepkg.Compile.
type Model struct {
	quadratic   *varpoly.Polynomial
	subh        []SubHamiltonian
	constraints []Constraint
	enc         *encoder.Encoder
}

// New assembles a Model. Exposed for compilepkg; end users obtain a Model
// exclusively through compilepkg.Compile.
func New(quadratic *varpoly.Polynomial, subh []SubHamiltonian, constraints []Constraint, enc *encoder.Encoder) *Model {
	return &Model{quadratic: quadratic, subh: subh, constraints: constraints, enc: enc}
}

// Quadratic returns the compiled degree<=2 polynomial.
func (m *Model) Quadratic() *varpoly.Polynomial { return m.quadratic }

// SubHamiltonians returns the recorded sub-Hamiltonian side table, in
// first-use order.
func (m *Model) SubHamiltonians() []SubHamiltonian { return m.subh }

// Constraints returns the recorded constraint side table, in first-use
// order.
func (m *Model) Constraints() []Constraint { return m.constraints }

// Encoder returns the model's variable encoder.
func (m *Model) Encoder() *encoder.Encoder { return m.enc }

// VariableOrder returns every variable's label, in encoder (first-use)
// order.
func (m *Model) VariableOrder() []string {
	return m.enc.Labels()
}

// Vartype selects the sample domain: BINARY ({0,1}) or SPIN ({-1,+1}).
type Vartype string

const (
	Binary Vartype = "BINARY"
	Spin   Vartype = "SPIN"
)

// ParseVartype parses the external string tag "BINARY"/"SPIN".
func ParseVartype(s string) (Vartype, error) {
	switch Vartype(s) {
	case Binary:
		return Binary, nil
	case Spin:
		return Spin, nil
	default:
		return "", fmt.Errorf("model: unrecognised vartype %q: %w", s, errkinds.ErrInvalidArgument)
	}
}

// Sample maps a variable's label to its assigned value: 0/1 for Binary,
// -1/+1 for Spin.
type Sample map[string]int

// NormalizeSample validates sample against vartype and this model's
// variable set, returning a binary (0/1) assignment keyed by encoder index.
// Fails with errkinds.ErrInvalidArgument if a model variable is missing
// from sample, sample names a label outside the model, or a value is
// outside the vartype's domain.
func (m *Model) NormalizeSample(sample Sample, vartype Vartype) (map[int]int, error) {
	assignment := make(map[int]int, m.enc.Len())
	seen := make(map[string]bool, len(sample))

	for label, v := range sample {
		idx, ok := m.enc.Lookup(label)
		if !ok {
			return nil, fmt.Errorf("model: sample label %q not present in model: %w", label, errkinds.ErrInvalidArgument)
		}
		seen[label] = true

		switch vartype {
		case Binary:
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("model: sample value %d for %q outside {0,1}: %w", v, label, errkinds.ErrInvalidArgument)
			}
			assignment[idx] = v
		case Spin:
			if v != -1 && v != 1 {
				return nil, fmt.Errorf("model: sample value %d for %q outside {-1,+1}: %w", v, label, errkinds.ErrInvalidArgument)
			}
			assignment[idx] = (v + 1) / 2
		default:
			return nil, fmt.Errorf("model: unrecognised vartype %q: %w", vartype, errkinds.ErrInvalidArgument)
		}
	}

	for _, label := range m.enc.Labels() {
		if !seen[label] {
			return nil, fmt.Errorf("model: sample missing variable %q: %w", label, errkinds.ErrInvalidArgument)
		}
	}

	return assignment, nil
}

// Energy evaluates the compiled quadratic polynomial on sample under
// binding.
func (m *Model) Energy(sample Sample, vartype Vartype, binding map[string]float64) (float64, error) {
	assignment, err := m.NormalizeSample(sample, vartype)
	if err != nil {
		return 0, err
	}
	return m.quadratic.Evaluate(assignment, binding)
}

func idKey(enc *encoder.Encoder, idx int, useIndices bool) string {
	if useIndices {
		return strconv.Itoa(idx)
	}
	return enc.LabelOf(idx)
}

// QUBOKey is an unordered pair of ids (labels, or stringified dense indices
// when useIndices is set); a diagonal term has A == B.
type QUBOKey struct {
	A, B string
}

// ToQUBO evaluates the compiled polynomial's coefficients under binding and
// returns the resulting QUBO map and constant offset (spec §4.G). Diagonal
// entries (size-1 terms) are keyed with A == B; off-diagonal entries keep
// the encoder's ascending index order so A < B under index comparison.
func (m *Model) ToQUBO(binding map[string]float64, useIndices bool) (map[QUBOKey]float64, float64, error) {
	qubo := make(map[QUBOKey]float64)
	var offset float64

	for _, t := range m.quadratic.Terms() {
		coeff, err := t.Coeff.Evaluate(binding)
		if err != nil {
			return nil, 0, err
		}
		idxs := t.Product.Indices()
		switch len(idxs) {
		case 0:
			offset += coeff
		case 1:
			k := idKey(m.enc, idxs[0], useIndices)
			qubo[QUBOKey{A: k, B: k}] += coeff
		case 2:
			ka := idKey(m.enc, idxs[0], useIndices)
			kb := idKey(m.enc, idxs[1], useIndices)
			qubo[QUBOKey{A: ka, B: kb}] += coeff
		default:
			return nil, 0, fmt.Errorf("model: to_qubo: polynomial has a degree-%d term; compile must reduce to degree<=2 first", len(idxs))
		}
	}
	return qubo, offset, nil
}

// ToIsing derives the Ising form (linear h, quadratic J, offset) from
// ToQUBO via the standard x=(s+1)/2 substitution, guaranteeing
// to_qubo∘spin_to_binary == to_ising∘binary_to_spin up to offset by
// construction (spec §4.G guarantee, property P9).
func (m *Model) ToIsing(binding map[string]float64, useIndices bool) (h map[string]float64, j map[QUBOKey]float64, offset float64, err error) {
	qubo, quboOffset, err := m.ToQUBO(binding, useIndices)
	if err != nil {
		return nil, nil, 0, err
	}

	h = make(map[string]float64)
	j = make(map[QUBOKey]float64)
	offset = quboOffset

	for k, v := range qubo {
		if k.A == k.B {
			h[k.A] += v / 2
			offset += v / 2
		} else {
			j[k] += v / 4
			h[k.A] += v / 4
			h[k.B] += v / 4
			offset += v / 4
		}
	}
	return h, j, offset, nil
}

// QUBOEntry is one (key, value) pair of a QUBO map, used by SortedQUBO to
// give callers that need a reproducible textual/JSON rendering a
// deterministic order without depending on Go's unordered map iteration.
type QUBOEntry struct {
	Key   QUBOKey
	Value float64
}

// SortedQUBO renders qubo as a slice ordered lexicographically by
// (Key.A, Key.B), using golang.org/x/exp's maps/slices helpers for the
// deterministic-iteration idiom the spec's Concurrency section requires of
// to_qubo/to_ising output (spec §5).
func SortedQUBO(qubo map[QUBOKey]float64) []QUBOEntry {
	keys := maps.Keys(qubo)
	slices.SortFunc(keys, func(a, b QUBOKey) int {
		if a.A != b.A {
			return strings.Compare(a.A, b.A)
		}
		return strings.Compare(a.B, b.B)
	})

	entries := make([]QUBOEntry, len(keys))
	for i, k := range keys {
		entries[i] = QUBOEntry{Key: k, Value: qubo[k]}
	}
	return entries
}
