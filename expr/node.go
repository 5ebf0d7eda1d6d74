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

// Package expr implements the expression DAG (spec §4.B): immutable,
// structurally-hashable nodes representing binary/spin variables,
// placeholders, numeric literals, and the algebraic and bookkeeping
// operators composed over them. Nodes are built bottom-up by the caller and
// never mutated after construction, so sharing a *Node across multiple
// Hamiltonians (or goroutines) is always safe.
package expr

import (
	"fmt"
	"sync"

	"github.com/pyqubo-go/pyqubo/errkinds"
	"github.com/pyqubo-go/pyqubo/internal/canon"
)

// Kind tags a Node's variant. Dispatch throughout the compile pipeline is a
// switch on Kind, not dynamic interface dispatch: the ten variants are
// closed and known up front.
type Kind uint8

const (
	Binary Kind = iota
	Spin
	Placeholder
	Numeric
	Add
	Mul
	SubH
	Constraint
	WithPenalty
	UserDefined
)

func (k Kind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Spin:
		return "spin"
	case Placeholder:
		return "placeholder"
	case Numeric:
		return "numeric"
	case Add:
		return "add"
	case Mul:
		return "mul"
	case SubH:
		return "subh"
	case Constraint:
		return "constraint"
	case WithPenalty:
		return "with_penalty"
	case UserDefined:
		return "user_defined"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Predicate reports whether a sub-Hamiltonian's evaluated value counts as
// satisfying a constraint. The default, DefaultPredicate, is "equals zero".
type Predicate func(value float64) bool

// DefaultPredicate is x == 0.0, the constraint default per spec §3.
func DefaultPredicate(value float64) bool {
	return value == 0.0
}

// Node is one immutable expression DAG node. The zero value is not usable;
// construct via the package-level functions (Var, VarSpin, Param,
// Const) and the methods below.
type Node struct {
	kind      Kind
	label     string // Binary/Spin label, Placeholder name, SubH/Constraint/WithPenalty label
	value     float64
	left      *Node // Add/Mul left, SubH/Constraint/WithPenalty/UserDefined inner
	right     *Node // Add/Mul right, WithPenalty penalty
	predicate Predicate
	key       canon.Key
}

var leafCache sync.Map // canon.Key -> *Node

func internLeaf(key canon.Key, build func() *Node) *Node {
	if v, ok := leafCache.Load(key); ok {
		return v.(*Node)
	}
	n := build()
	actual, _ := leafCache.LoadOrStore(key, n)
	return actual.(*Node)
}

// Var constructs a binary variable node for label.
func Var(label string) *Node {
	key := canon.Hash(uint8(Binary), label)
	return internLeaf(key, func() *Node {
		return &Node{kind: Binary, label: label, key: key}
	})
}

// VarSpin constructs a spin variable node for label.
func VarSpin(label string) *Node {
	key := canon.Hash(uint8(Spin), label)
	return internLeaf(key, func() *Node {
		return &Node{kind: Spin, label: label, key: key}
	})
}

// Param constructs a placeholder node for name, bound to a concrete value
// only at evaluation time.
func Param(name string) *Node {
	key := canon.Hash(uint8(Placeholder), name)
	return internLeaf(key, func() *Node {
		return &Node{kind: Placeholder, label: name, key: key}
	})
}

// Const constructs a numeric literal node. value must be finite.
func Const(value float64) *Node {
	key := canon.Hash(uint8(Numeric), value)
	return internLeaf(key, func() *Node {
		return &Node{kind: Numeric, value: value, key: key}
	})
}

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

// Label returns the label/name carried by Binary, Spin, Placeholder, SubH,
// Constraint and WithPenalty nodes. Empty for other kinds.
func (n *Node) Label() string { return n.label }

// Value returns the literal value carried by a Numeric node. Zero for other
// kinds.
func (n *Node) Value() float64 { return n.value }

// Left returns the left/only child of Add, Mul, SubH, Constraint,
// WithPenalty and UserDefined nodes. Nil for leaves.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child of Add and Mul nodes, or the penalty child
// of WithPenalty nodes. Nil otherwise.
func (n *Node) Right() *Node { return n.right }

// Predicate returns the satisfaction predicate of a Constraint node.
func (n *Node) Predicate() Predicate { return n.predicate }

// Key returns the node's structural interning key. Two nodes built from
// equal sub-expressions always share a Key, independent of pointer
// identity.
func (n *Node) Key() canon.Key { return n.key }

// Equal reports whether two nodes are structurally identical.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.key.Equal(other.key)
}

func binOp(kind Kind, a, b *Node) *Node {
	key := canon.Hash(uint8(kind), nil, a.key, b.key)
	return &Node{kind: kind, left: a, right: b, key: key}
}

// Add returns a + b, with constant folding when both sides are numeric and
// the permitted-but-not-required 0+x -> x simplification.
func (a *Node) Add(b *Node) *Node {
	if a.kind == Numeric && a.value == 0 {
		return b
	}
	if b.kind == Numeric && b.value == 0 {
		return a
	}
	if a.kind == Numeric && b.kind == Numeric {
		return Const(a.value + b.value)
	}
	return binOp(Add, a, b)
}

// Sub returns a - b.
func (a *Node) Sub(b *Node) *Node {
	return a.Add(b.Neg())
}

// Mul returns a * b, with constant folding and the permitted 1*x -> x,
// 0*x -> 0 simplifications.
func (a *Node) Mul(b *Node) *Node {
	if a.kind == Numeric {
		switch a.value {
		case 0:
			return Const(0)
		case 1:
			return b
		}
	}
	if b.kind == Numeric {
		switch b.value {
		case 0:
			return Const(0)
		case 1:
			return a
		}
	}
	if a.kind == Numeric && b.kind == Numeric {
		return Const(a.value * b.value)
	}
	return binOp(Mul, a, b)
}

// Neg returns -a.
func (a *Node) Neg() *Node {
	if a.kind == Numeric {
		return Const(-a.value)
	}
	return a.Mul(Const(-1))
}

// Pow returns a^k for an integer exponent k >= 1. k < 1 fails with
// errkinds.ErrInvalidArgument: the spec classifies this as a construction
// failure, surfaced immediately rather than deferred to compile.
func (a *Node) Pow(k int) (*Node, error) {
	if k < 1 {
		return nil, fmt.Errorf("expr: pow exponent %d must be >= 1: %w", k, errkinds.ErrInvalidArgument)
	}
	result := a
	for i := 1; i < k; i++ {
		result = result.Mul(a)
	}
	return result, nil
}

// Div returns a / c for a non-zero scalar c. c == 0 fails with
// errkinds.ErrInvalidArgument.
func (a *Node) Div(c float64) (*Node, error) {
	if c == 0 {
		return nil, fmt.Errorf("expr: div by zero: %w", errkinds.ErrInvalidArgument)
	}
	return a.Mul(Const(1 / c)), nil
}

// WrapSubH labels a as a sub-Hamiltonian: its (pre-reduction) value is
// recoverable by label after decode, independent of the rest of the
// Hamiltonian it's embedded in.
func (a *Node) WrapSubH(label string) *Node {
	key := canon.Hash(uint8(SubH), label, a.key)
	return &Node{kind: SubH, label: label, left: a, key: key}
}

// WrapConstraint labels a as a constraint. pred decides satisfaction from
// a's evaluated value; nil uses DefaultPredicate (equals zero).
func (a *Node) WrapConstraint(label string, pred Predicate) *Node {
	if pred == nil {
		pred = DefaultPredicate
	}
	key := canon.Hash(uint8(Constraint), label, a.key)
	return &Node{kind: Constraint, label: label, left: a, predicate: pred, key: key}
}

// WithPenalty adds penalty into the top-level Hamiltonian's accumulated
// penalty term at expansion time, while a's own value (and the recursive
// structure a carries, such as nested sub-Hamiltonians) is otherwise
// unaffected. Repeated WithPenalty nodes sharing the same label contribute
// their penalty only once (first occurrence wins), matching the
// sub-Hamiltonian/constraint deduplication rule.
func (a *Node) WithPenalty(penalty *Node, label string) *Node {
	key := canon.Hash(uint8(WithPenalty), label, a.key, penalty.key)
	return &Node{kind: WithPenalty, label: label, left: a, right: penalty, key: key}
}

// WrapUserDefined passes a through unchanged; it exists purely so
// higher-level, user-authored composite expressions (unary/one-hot/log/order
// encodings, built entirely from the primitives above) can tag their root
// for documentation purposes without changing expansion semantics.
func (a *Node) WrapUserDefined() *Node {
	key := canon.Hash(uint8(UserDefined), nil, a.key)
	return &Node{kind: UserDefined, left: a, key: key}
}
