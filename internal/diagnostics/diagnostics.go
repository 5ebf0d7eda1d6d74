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

// Package diagnostics records an opt-in "term growth" profile across the
// compile pipeline's stages (spec §5's resource-bound concern): one
// sample per stage, valued at that stage's term count, written in pprof's
// profile.proto format so it can be inspected with `go tool pprof`.
// Disabled (zero cost beyond a nil check) unless a caller supplies a
// non-nil *Recorder to compilepkg.Compile.
package diagnostics

import (
	"io"
	"time"

	"github.com/google/pprof/profile"
)

// Recorder accumulates one term-count sample per named compile stage.
type Recorder struct {
	samples []sample
	start   time.Time
}

type sample struct {
	stage string
	terms int64
	at    time.Duration
}

// NewRecorder starts a recorder; startedAt fixes the zero point used to
// timestamp each recorded stage (passed in rather than taken from
// time.Now so the recorder stays deterministic to call with a fixed
// clock in tests).
func NewRecorder(startedAt time.Time) *Recorder {
	return &Recorder{start: startedAt}
}

// Record appends one stage/term-count sample. Safe to call on a nil
// *Recorder, in which case it is a no-op — this lets compilepkg.Compile
// call r.Record(...) unconditionally without branching on whether
// diagnostics were requested.
func (r *Recorder) Record(stage string, terms int, now time.Time) {
	if r == nil {
		return
	}
	r.samples = append(r.samples, sample{stage: stage, terms: int64(terms), at: now.Sub(r.start)})
}

// WriteProfile renders the recorded samples as a gzip-compressed
// pprof profile and writes it to w. The profile has one sample type,
// "terms", and one location per distinct stage name; each sample's value
// is that stage's term count and its timestamp offset in nanoseconds is
// carried as a label for ordering in `go tool pprof -traces`.
func (r *Recorder) WriteProfile(w io.Writer) error {
	locationsByStage := make(map[string]*profile.Location)
	functionsByStage := make(map[string]*profile.Function)

	p := &profile.Profile{
		SampleType: []*profile.ValueType{{Type: "terms", Unit: "count"}},
		TimeNanos:  r.start.UnixNano(),
	}

	var nextID uint64 = 1
	for _, s := range r.samples {
		fn, ok := functionsByStage[s.stage]
		if !ok {
			fn = &profile.Function{ID: nextID, Name: s.stage}
			nextID++
			functionsByStage[s.stage] = fn
			p.Function = append(p.Function, fn)
		}
		loc, ok := locationsByStage[s.stage]
		if !ok {
			loc = &profile.Location{ID: nextID, Line: []profile.Line{{Function: fn}}}
			nextID++
			locationsByStage[s.stage] = loc
			p.Location = append(p.Location, loc)
		}

		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{s.terms},
			Label:    map[string][]string{"stage": {s.stage}},
			NumLabel: map[string][]int64{"offset_ns": {s.at.Nanoseconds()}},
		})
	}

	return p.Write(w)
}
