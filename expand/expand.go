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

// Package expand implements the expander (spec §4.E): a recursive walk of
// the expression DAG that produces a variable polynomial plus the
// sub-Hamiltonian and constraint side tables, grounded on
// vck3000-gnark/frontend/compile.go's recursive Define-then-reduce walk and
// its pattern of threading mutable side tables by reference through
// recursion.
package expand

import (
	"github.com/rs/zerolog"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
	"github.com/pyqubo-go/pyqubo/encoder"
	"github.com/pyqubo-go/pyqubo/expr"
	"github.com/pyqubo-go/pyqubo/varpoly"
)

// Result is the outcome of expanding a Hamiltonian: the polynomial to feed
// into order reduction (main + accumulated penalty) and the populated side
// tables.
type Result struct {
	Polynomial *varpoly.Polynomial
	Tables     *Tables
}

// Run expands root against enc (which accumulates any new binary/spin
// labels it encounters) and returns the combined polynomial plus side
// tables. log receives structured debug events for every first-write-wins
// skip; pass zerolog.Nop() to disable.
func Run(root *expr.Node, enc *encoder.Encoder, log zerolog.Logger) Result {
	tables := newTables()
	w := &walker{enc: enc, tables: tables, log: log}
	main, penalty := w.walk(root)
	return Result{Polynomial: main.Add(penalty), Tables: tables}
}

type walker struct {
	enc    *encoder.Encoder
	tables *Tables
	log    zerolog.Logger
}

func (w *walker) walk(n *expr.Node) (main, penalty *varpoly.Polynomial) {
	switch n.Kind() {
	case expr.Binary:
		idx := w.enc.IndexOf(n.Label())
		main = varpoly.FromTerm(varpoly.Single(idx), coeffalgebra.Scalar(1))
		return main, varpoly.Zero()

	case expr.Spin:
		idx := w.enc.IndexOf(n.Label())
		main = varpoly.FromTerm(varpoly.Single(idx), coeffalgebra.Scalar(2)).
			Add(varpoly.FromTerm(varpoly.Empty(), coeffalgebra.Scalar(-1)))
		return main, varpoly.Zero()

	case expr.Placeholder:
		main = varpoly.FromTerm(varpoly.Empty(), coeffalgebra.Param(n.Label()))
		return main, varpoly.Zero()

	case expr.Numeric:
		main = varpoly.FromTerm(varpoly.Empty(), coeffalgebra.Scalar(n.Value()))
		return main, varpoly.Zero()

	case expr.Add:
		lm, lp := w.walk(n.Left())
		rm, rp := w.walk(n.Right())
		return lm.Add(rm), lp.Add(rp)

	case expr.Mul:
		lm, lp := w.walk(n.Left())
		rm, rp := w.walk(n.Right())
		// Penalties never multiply into the result; they are always
		// accumulated additively (spec §4.E mul variant).
		return lm.Mul(rm), lp.Add(rp)

	case expr.SubH:
		m, p := w.walk(n.Left())
		if _, already := w.tables.subhSeen[n.Label()]; already {
			w.log.Debug().Str("label", n.Label()).Msg("expand: subh label already recorded, skipping")
		}
		w.tables.recordSubH(n.Label(), m)
		return m, p

	case expr.Constraint:
		m, p := w.walk(n.Left())
		if _, already := w.tables.constraintSeen[n.Label()]; already {
			w.log.Debug().Str("label", n.Label()).Msg("expand: constraint label already recorded, skipping")
		}
		w.tables.recordConstraint(n.Label(), m, n.Predicate())
		return m, p

	case expr.WithPenalty:
		m, p := w.walk(n.Left())
		pm, pp := w.walk(n.Right())
		if w.tables.sawPenalty(n.Label()) {
			w.log.Debug().Str("label", n.Label()).Msg("expand: with_penalty label already applied, skipping its contribution")
			return m, p
		}
		return m, p.Add(pm).Add(pp)

	case expr.UserDefined:
		return w.walk(n.Left())

	default:
		panic("expand: unhandled expr.Kind")
	}
}
