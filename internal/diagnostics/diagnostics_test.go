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

package diagnostics_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/pprof/profile"
	"github.com/stretchr/testify/require"

	"github.com/pyqubo-go/pyqubo/internal/diagnostics"
)

func TestRecorderNilIsNoOp(t *testing.T) {
	var r *diagnostics.Recorder
	require.NotPanics(t, func() { r.Record("expand", 10, time.Unix(0, 0)) })
}

func TestWriteProfileRoundTrips(t *testing.T) {
	r := require.New(t)
	start := time.Unix(1000, 0)
	rec := diagnostics.NewRecorder(start)
	rec.Record("expand", 12, start.Add(time.Millisecond))
	rec.Record("reduce", 20, start.Add(2*time.Millisecond))

	var buf bytes.Buffer
	r.NoError(rec.WriteProfile(&buf))

	p, err := profile.Parse(&buf)
	r.NoError(err)
	r.Len(p.Sample, 2)
	r.Equal(int64(12), p.Sample[0].Value[0])
	r.Equal(int64(20), p.Sample[1].Value[0])
}
