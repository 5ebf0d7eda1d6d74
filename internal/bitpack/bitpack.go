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

// Package bitpack holds small byte-oriented helpers for working with
// bit-packed binary samples (spec §10.6). PopCount echoes, rather than
// copies, the byte-at-a-time lookup-table technique used to decompose a
// field element into bits one byte at a time.
package bitpack

var popcountTable [256]byte

func init() {
	for i := range popcountTable {
		var c byte
		for v := i; v != 0; v >>= 1 {
			c += byte(v & 1)
		}
		popcountTable[i] = c
	}
}

// PopCount returns the number of set bits across data, using the
// precomputed byte lookup table rather than per-bit shifting.
func PopCount(data []byte) int {
	n := 0
	for _, b := range data {
		n += int(popcountTable[b])
	}
	return n
}
