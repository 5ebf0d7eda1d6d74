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

// Package canon computes a structural interning key for an expression DAG
// node from its tag, scalar payload and already-computed children keys. It
// plays the same role gnark's coefficient table (cs.CoeffTable.CoeffID)
// plays for big.Int coefficients: canonically encode a value once, hash it,
// and use the digest as a lookup key so identical subtrees share storage.
//
// canon never touches disk or the network: the cbor encoding it produces is
// a purely in-memory key, not a persisted wire format.
package canon

import (
	"crypto/subtle"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// Key is a 32-byte digest identifying a node's structure.
type Key [32]byte

// Equal reports whether two keys are identical. Uses constant-time
// comparison only because subtle.ConstantTimeCompare is the idiomatic
// byte-slice equality helper in the standard library's crypto/subtle;
// there is no secrecy requirement here.
func (k Key) Equal(other Key) bool {
	return subtle.ConstantTimeCompare(k[:], other[:]) == 1
}

func (k Key) String() string {
	return fmt.Sprintf("%x", k[:8])
}

// payload is the canonical shape hashed for every node: a tag discriminator,
// an arbitrary scalar (label, placeholder name, numeric value, predicate
// name, ...) and the interning keys of the node's children, in order.
type payload struct {
	Tag      uint8
	Scalar   interface{}
	Children []Key
}

var encMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("canon: building canonical cbor encoder: %v", err))
	}
	return mode
}()

// Hash computes the structural key for a node tagged tag, carrying scalar
// payload scalar (a string, float64, or nil) and the already-computed keys
// of its children in positional order.
func Hash(tag uint8, scalar interface{}, children ...Key) Key {
	buf, err := encMode.Marshal(payload{Tag: tag, Scalar: scalar, Children: children})
	if err != nil {
		// scalar is always one of a small closed set of cbor-safe types
		// (string, float64, nil); a marshal failure here means a caller
		// passed something outside that set, which is a programmer error.
		panic(fmt.Sprintf("canon: marshal payload: %v", err))
	}
	return blake2b.Sum256(buf)
}
