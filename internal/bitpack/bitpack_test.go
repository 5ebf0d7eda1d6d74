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

package bitpack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyqubo-go/pyqubo/internal/bitpack"
)

func TestPopCount(t *testing.T) {
	r := require.New(t)
	r.Equal(0, bitpack.PopCount([]byte{0x00}))
	r.Equal(8, bitpack.PopCount([]byte{0xFF}))
	r.Equal(4, bitpack.PopCount([]byte{0x0F}))
	r.Equal(12, bitpack.PopCount([]byte{0xFF, 0x0F}))
}
