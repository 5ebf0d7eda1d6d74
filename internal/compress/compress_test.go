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

package compress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyqubo-go/pyqubo/internal/compress"
)

func TestIndexBufferRoundTripsBelowThreshold(t *testing.T) {
	r := require.New(t)
	indices := []uint32{3, 1, 4, 1, 5}
	b := compress.NewIndexBuffer(indices)
	r.Equal(len(indices), b.Len())
	r.Equal(indices, b.Unpack())
}

func TestIndexBufferRoundTripsAbovePackThreshold(t *testing.T) {
	r := require.New(t)
	indices := make([]uint32, 200)
	for i := range indices {
		indices[i] = uint32(i % 7)
	}
	b := compress.NewIndexBuffer(indices)
	r.Equal(len(indices), b.Len())
	r.Equal(indices, b.Unpack())
}
