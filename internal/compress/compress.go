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

// Package compress bit-packs the variable-index buffers that a compiled
// model's sub-Hamiltonian and constraint side tables keep alive for their
// entire lifetime (spec §5 "Resource bounds": large, dense Hamiltonians are
// the expected blowup point). Small buffers are kept raw — intcomp's
// bit-packing codec only pays for itself once there's enough repetition to
// amortise its block overhead.
package compress

import "github.com/ronanh/intcomp"

// packThreshold is the buffer length below which compression isn't worth
// the codec's fixed per-block overhead.
const packThreshold = 64

// IndexBuffer holds a []uint32 either raw or bit-packed, transparently.
type IndexBuffer struct {
	packed bool
	data   []uint32
	n      int // logical length, meaningful when packed
}

// NewIndexBuffer packs (or stores raw) a copy of indices.
func NewIndexBuffer(indices []uint32) IndexBuffer {
	if len(indices) < packThreshold {
		raw := make([]uint32, len(indices))
		copy(raw, indices)
		return IndexBuffer{data: raw, n: len(raw)}
	}
	packed := intcomp.CompressUint32(indices, nil)
	return IndexBuffer{packed: true, data: packed, n: len(indices)}
}

// Len returns the logical number of indices stored.
func (b IndexBuffer) Len() int {
	return b.n
}

// Unpack returns the original index slice.
func (b IndexBuffer) Unpack() []uint32 {
	if !b.packed {
		out := make([]uint32, len(b.data))
		copy(out, b.data)
		return out
	}
	out := intcomp.UncompressUint32(b.data, nil)
	if len(out) > b.n {
		out = out[:b.n]
	}
	return out
}
