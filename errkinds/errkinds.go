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

// Package errkinds classifies the error kinds raised across the compile
// pipeline so callers can distinguish "fix your input" from "fix your
// binding" failures with errors.Is, without depending on any one package's
// concrete error type.
package errkinds

import "errors"

var (
	// ErrInvalidArgument covers malformed inputs: division by zero, a
	// non-positive pow exponent, a sample that doesn't match the model, an
	// unrecognised vartype string, or a non-positive reduction strength.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingPlaceholder is returned when a coefficient references a
	// placeholder name absent from the binding supplied at evaluation time.
	ErrMissingPlaceholder = errors.New("missing placeholder")

	// ErrInternal marks a programmer error: asking the encoder to resolve
	// an index it never issued. Spec classifies this as fatal; callers that
	// see it have a bug in their own bookkeeping, not a bad user input.
	ErrInternal = errors.New("internal error")
)
