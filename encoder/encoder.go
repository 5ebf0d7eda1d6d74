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

// Package encoder implements the process-local bijection between
// user-supplied variable labels and the dense integer indices a compile
// assigns them, in first-seen order. An Encoder is owned exclusively by one
// compilation; there is no shared mutable state across compiles.
package encoder

import (
	"fmt"

	"github.com/pyqubo-go/pyqubo/errkinds"
)

// Encoder maps labels to dense indices 0..N-1, insertion ordered. The zero
// value is not usable; construct with New.
type Encoder struct {
	indexOf map[string]int
	labels  []string
}

// New returns an empty Encoder, optionally pre-sized for capacity labels.
func New(capacity int) *Encoder {
	return &Encoder{
		indexOf: make(map[string]int, capacity),
		labels:  make([]string, 0, capacity),
	}
}

// IndexOf returns the dense index for label, assigning a fresh one in
// insertion order if label has not been seen before.
func (e *Encoder) IndexOf(label string) int {
	if idx, ok := e.indexOf[label]; ok {
		return idx
	}
	idx := len(e.labels)
	e.indexOf[label] = idx
	e.labels = append(e.labels, label)
	return idx
}

// Lookup returns the index already assigned to label, and whether label has
// been seen. Unlike IndexOf, it never inserts.
func (e *Encoder) Lookup(label string) (int, bool) {
	idx, ok := e.indexOf[label]
	return idx, ok
}

// LabelOf returns the label for index. index out of [0, Len()) is a
// programmer error: the encoder is the only authority on indices within a
// single compiled model, so an out-of-range index means the caller is
// holding an index from a different encoder. Fatal, per spec: LabelOf
// panics with an error wrapping errkinds.ErrInternal.
func (e *Encoder) LabelOf(index int) string {
	if index < 0 || index >= len(e.labels) {
		panic(fmt.Errorf("encoder: label_of: index %d out of range [0,%d): %w", index, len(e.labels), errkinds.ErrInternal))
	}
	return e.labels[index]
}

// Labels returns all labels in index order. The returned slice must not be
// mutated by the caller.
func (e *Encoder) Labels() []string {
	return e.labels
}

// Len returns the number of labels assigned so far.
func (e *Encoder) Len() int {
	return len(e.labels)
}
