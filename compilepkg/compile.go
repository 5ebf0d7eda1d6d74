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

// Package compilepkg is the single entry point that orchestrates the
// compile pipeline (spec §4): expand the expression DAG into a variable
// polynomial and side tables, reduce it to degree <= 2, and assemble the
// immutable Model. Grounded on gnark/frontend.Compile's role as the one
// function that wires a builder, a constraint system and compile options
// into a finished artifact.
package compilepkg

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
	"github.com/pyqubo-go/pyqubo/encoder"
	"github.com/pyqubo-go/pyqubo/errkinds"
	"github.com/pyqubo-go/pyqubo/expand"
	"github.com/pyqubo-go/pyqubo/expr"
	"github.com/pyqubo-go/pyqubo/internal/diagnostics"
	"github.com/pyqubo-go/pyqubo/model"
	"github.com/pyqubo-go/pyqubo/reducer"
)

type options struct {
	logger      zerolog.Logger
	capacity    int
	tieBreak    func(a, b [2]int) bool
	diagnostics *diagnostics.Recorder
}

// Option configures Compile. The zero-value configuration uses a
// zerolog.Nop logger, no pre-sized encoder capacity, and the reducer's
// built-in lexicographic tie-break.
type Option func(*options)

// WithLogger directs compile-time structured log events (expansion
// skips, reduction steps, final statistics) to log instead of discarding
// them.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithCapacity pre-sizes the variable encoder for an expected variable
// count, avoiding map growth during expansion.
func WithCapacity(capacity int) Option {
	return func(o *options) { o.capacity = capacity }
}

// WithReduceTieBreak overrides the order reducer's pair tie-break rule.
// Reserved for callers that need a different deterministic tie-break than
// the default lexicographic-smallest-pair rule; unused until the reducer
// grows a pluggable tie-break hook.
func WithReduceTieBreak(f func(a, b [2]int) bool) Option {
	return func(o *options) { o.tieBreak = f }
}

// WithDiagnostics records a term-count sample after expansion and after
// reduction into r, letting a caller inspect where a Hamiltonian's
// polynomial grew with `go tool pprof`. Omit for zero diagnostic
// overhead.
func WithDiagnostics(r *diagnostics.Recorder) Option {
	return func(o *options) { o.diagnostics = r }
}

// Compile runs the full pipeline over root and returns the immutable
// compiled Model. strength scales every AND-penalty term introduced by
// order reduction; it fails with errkinds.ErrInvalidArgument if strength
// is a concrete, non-positive scalar. A symbolic (placeholder-valued)
// strength is accepted unconditionally — it can only be checked for sign
// once a binding is supplied at evaluation time.
func Compile(root *expr.Node, strength *coeffalgebra.Polynomial, opts ...Option) (*model.Model, error) {
	cfg := options{logger: zerolog.Nop()}
	for _, o := range opts {
		o(&cfg)
	}

	if strength == nil {
		strength = coeffalgebra.Scalar(1)
	}
	if v, ok := strength.AsScalar(); ok && v <= 0 {
		return nil, fmt.Errorf("compilepkg: strength must be strictly positive, got %v: %w", v, errkinds.ErrInvalidArgument)
	}

	start := time.Now()
	enc := encoder.New(cfg.capacity)

	expanded := expand.Run(root, enc, cfg.logger)
	cfg.diagnostics.Record("expand", expanded.Polynomial.Len(), time.Now())

	reduced := reducer.Reduce(expanded.Polynomial, enc, strength, cfg.logger)
	cfg.diagnostics.Record("reduce", reduced.Len(), time.Now())

	subh := make([]model.SubHamiltonian, len(expanded.Tables.SubH))
	for i, rec := range expanded.Tables.SubH {
		subh[i] = model.SubHamiltonian{Label: rec.Label, Poly: rec.Poly}
	}
	constraints := make([]model.Constraint, len(expanded.Tables.Constraints))
	for i, rec := range expanded.Tables.Constraints {
		constraints[i] = model.Constraint{Label: rec.Label, Poly: rec.Poly, Satisfied: rec.Satisfied}
	}

	m := model.New(reduced, subh, constraints, enc)

	cfg.logger.Info().
		Int("variables", enc.Len()).
		Int("terms", reduced.Len()).
		Int("sub_hamiltonians", len(subh)).
		Int("constraints", len(constraints)).
		Dur("elapsed", time.Since(start)).
		Msg("compilepkg: compile finished")

	return m, nil
}
