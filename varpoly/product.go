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

// Package varpoly implements the variable polynomial (spec §4.D): a mapping
// from product-of-variable-indices to a placeholder coefficient.
package varpoly

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/pyqubo-go/pyqubo/internal/compress"
)

// Product is an ordered, repetition-free sequence of variable indices: the
// spec's "sorted multiset with no repetition" (binary x²=x and spin s²=1
// are what make repetition impossible once expansion and multiplication go
// through Union below). The empty Product is the constant term.
type Product struct {
	idx compress.IndexBuffer
	key string
}

// Empty returns the constant-term product.
func Empty() Product {
	return Product{idx: compress.NewIndexBuffer(nil), key: ""}
}

// Single returns the one-variable product {index}.
func Single(index int) Product {
	return FromIndices([]int{index})
}

// FromIndices builds a Product from indices, sorting and de-duplicating
// them. Most products in practice have 0, 1 or 2 entries; the expander
// builds its products with Single, Empty and Union, and FromIndices is the
// path the order reducer uses for substituted and AND-penalty products.
func FromIndices(indices []int) Product {
	dedup := bitset.New(0)
	for _, i := range indices {
		dedup.Set(uint(i))
	}
	sorted := make([]uint32, 0, dedup.Count())
	for i, ok := dedup.NextSet(0); ok; i, ok = dedup.NextSet(i + 1) {
		sorted = append(sorted, uint32(i))
	}
	return Product{idx: compress.NewIndexBuffer(sorted), key: keyOf(sorted)}
}

func keyOf(sorted []uint32) string {
	if len(sorted) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return b.String()
}

// Indices returns the sorted, repetition-free variable indices of p.
func (p Product) Indices() []int {
	raw := p.idx.Unpack()
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = int(v)
	}
	return out
}

// Len returns the product's degree (number of distinct indices).
func (p Product) Len() int {
	return p.idx.Len()
}

// Key returns a canonical string key for p, usable as a map key; equal
// products always produce equal keys and vice versa.
func (p Product) Key() string {
	return p.key
}

// Equal reports whether p and other reference the same set of indices.
func (p Product) Equal(other Product) bool {
	return p.key == other.key
}

// Union returns the sorted-set union of p and other: the product you get by
// multiplying the two and then collapsing x²=x / s²=1 repeats. The indices
// of both operands are set in a bitset, and the merged sorted slice is
// read back from its set bits.
func (p Product) Union(other Product) Product {
	bs := bitset.New(0)
	for _, v := range p.idx.Unpack() {
		bs.Set(uint(v))
	}
	for _, v := range other.idx.Unpack() {
		bs.Set(uint(v))
	}
	sorted := make([]uint32, 0, bs.Count())
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		sorted = append(sorted, uint32(i))
	}
	return Product{idx: compress.NewIndexBuffer(sorted), key: keyOf(sorted)}
}

// Contains reports whether index appears in p.
func (p Product) Contains(index int) bool {
	for _, v := range p.idx.Unpack() {
		if int(v) == index {
			return true
		}
	}
	return false
}

// Less defines a total order over products, used wherever output must be
// deterministic (Polynomial.Terms, and so to_qubo iteration): shorter products
// first, then lexicographic on indices.
func Less(a, b Product) bool {
	ai, bi := a.Indices(), b.Indices()
	if len(ai) != len(bi) {
		return len(ai) < len(bi)
	}
	for i := range ai {
		if ai[i] != bi[i] {
			return ai[i] < bi[i]
		}
	}
	return false
}

// SortProducts sorts a slice of Products in place using Less.
func SortProducts(products []Product) {
	sort.Slice(products, func(i, j int) bool { return Less(products[i], products[j]) })
}
