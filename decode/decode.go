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

// Package decode implements the decoder (spec §4.H): given a compiled
// model and a concrete sample, it recovers total energy, every recorded
// sub-Hamiltonian's value and every recorded constraint's value and
// satisfaction, grounded on vck3000-gnark/test/assert.go's witness
// inspection idiom of walking a solved assignment back through named
// intermediate values.
//
// DecodeSample takes the model explicitly (rather than living as a method
// on *model.Model) so that package model never has to import package
// decode: model owns the compiled data, decode owns the read-only
// inspection built on top of it.
package decode

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/icza/bitio"
	"golang.org/x/sync/errgroup"

	"github.com/pyqubo-go/pyqubo/errkinds"
	"github.com/pyqubo-go/pyqubo/internal/bitpack"
	"github.com/pyqubo-go/pyqubo/model"
)

// ConstraintResult is one constraint's evaluated value and whether its
// predicate accepts that value.
type ConstraintResult struct {
	Value     float64
	Satisfied bool
}

// DecodedSample is the result of decoding a single sample against a
// model: its total energy, every sub-Hamiltonian's value, and every
// constraint's value and satisfaction.
type DecodedSample struct {
	Sample      model.Sample
	Energy      float64
	SubH        map[string]float64
	Constraints map[string]ConstraintResult

	// Ones is the Hamming weight of the sample's normalised binary
	// assignment, computed off a bit-packed encoding of the assignment
	// rather than a per-variable map scan.
	Ones int
}

// packAssignment bit-packs a normalised (0/1) assignment over variables
// 0..n-1 into a compact byte buffer, the representation the spec's
// resource-bound notes (§5, §10.6) call for ahead of a bulk evaluation
// pass over many variables.
func packAssignment(assignment map[int]int, n int) []byte {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i < n; i++ {
		w.WriteBool(assignment[i] == 1)
	}
	w.Close()
	return buf.Bytes()
}

// Array indexes into an array-style variable family packed by label, e.g.
// labels "x[0][1]", "x[1][0]" decoded via Array("x", 0, 1). Fails with
// errkinds.ErrInvalidArgument if the constructed label was not part of the
// original sample.
func (d *DecodedSample) Array(name string, indices ...int) (int, error) {
	var b strings.Builder
	b.WriteString(name)
	for _, i := range indices {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(']')
	}
	label := b.String()
	v, ok := d.Sample[label]
	if !ok {
		return 0, fmt.Errorf("decode: no variable named %q in sample: %w", label, errkinds.ErrInvalidArgument)
	}
	return v, nil
}

// BrokenConstraints returns only the constraints whose predicate rejected
// the evaluated value.
func (d *DecodedSample) BrokenConstraints() map[string]ConstraintResult {
	return d.filterConstraints(false)
}

// SatisfiedConstraints returns only the constraints whose predicate
// accepted the evaluated value.
func (d *DecodedSample) SatisfiedConstraints() map[string]ConstraintResult {
	return d.filterConstraints(true)
}

func (d *DecodedSample) filterConstraints(satisfied bool) map[string]ConstraintResult {
	out := make(map[string]ConstraintResult)
	for label, c := range d.Constraints {
		if c.Satisfied == satisfied {
			out[label] = c
		}
	}
	return out
}

// DecodeSample evaluates m's quadratic polynomial and every recorded
// sub-Hamiltonian/constraint against sample, normalised as vartype, under
// binding.
func DecodeSample(m *model.Model, sample model.Sample, vartype model.Vartype, binding map[string]float64) (*DecodedSample, error) {
	assignment, err := m.NormalizeSample(sample, vartype)
	if err != nil {
		return nil, err
	}

	energy, err := m.Quadratic().Evaluate(assignment, binding)
	if err != nil {
		return nil, err
	}

	subh := make(map[string]float64, len(m.SubHamiltonians()))
	for _, s := range m.SubHamiltonians() {
		v, err := s.Poly.Evaluate(assignment, binding)
		if err != nil {
			return nil, fmt.Errorf("decode: sub-hamiltonian %q: %w", s.Label, err)
		}
		subh[s.Label] = v
	}

	constraints := make(map[string]ConstraintResult, len(m.Constraints()))
	for _, c := range m.Constraints() {
		v, err := c.Poly.Evaluate(assignment, binding)
		if err != nil {
			return nil, fmt.Errorf("decode: constraint %q: %w", c.Label, err)
		}
		constraints[c.Label] = ConstraintResult{Value: v, Satisfied: c.Satisfied(v)}
	}

	packed := packAssignment(assignment, m.Encoder().Len())
	ones := bitpack.PopCount(packed)

	return &DecodedSample{Sample: sample, Energy: energy, SubH: subh, Constraints: constraints, Ones: ones}, nil
}

// DecodeSamples decodes every sample in samples concurrently, since the
// compiled model is immutable and safe to evaluate from multiple
// goroutines (spec §5). The returned slice preserves samples' order; the
// first error encountered aborts the remaining decodes and is returned.
func DecodeSamples(m *model.Model, samples []model.Sample, vartype model.Vartype, binding map[string]float64) ([]*DecodedSample, error) {
	results := make([]*DecodedSample, len(samples))

	var g errgroup.Group
	for i, sample := range samples {
		i, sample := i, sample
		g.Go(func() error {
			d, err := DecodeSample(m, sample, vartype, binding)
			if err != nil {
				return fmt.Errorf("decode: sample %d: %w", i, err)
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
