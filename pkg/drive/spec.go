// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package drive

import (
	"strings"

	"github.com/consensys/go-netgraph/pkg/util/collection/hash"
)

// Spec is a signal descriptor: an immutable sequence of chunks, least
// significant first.  Specs are normalised on construction, such that adjacent
// chunks which could be joined always are, and zero-width chunks are dropped.
// Hence, two specs are equal iff they denote the same bits of the same
// entities.
type Spec struct {
	chunks []Chunk
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ hash.Hasher[Spec] = Spec{}

// NewSpec constructs a descriptor from zero or more chunks, least significant
// first.
func NewSpec(chunks ...Chunk) Spec {
	var normalised []Chunk
	//
	for _, c := range chunks {
		n := len(normalised) - 1
		//
		if c.Width() == 0 {
			continue
		} else if n >= 0 {
			if joined, ok := join(normalised[n], c); ok {
				normalised[n] = joined
				continue
			}
		}
		//
		normalised = append(normalised, c)
	}
	//
	return Spec{normalised}
}

// Chunks returns the chunks of this descriptor, least significant first.
func (p Spec) Chunks() []Chunk {
	return p.chunks
}

// Width returns the total number of bits in this descriptor.
func (p Spec) Width() int {
	width := 0
	//
	for _, c := range p.chunks {
		width += c.Width()
	}
	//
	return width
}

// IsEmpty checks whether this descriptor has no chunks.
func (p Spec) IsEmpty() bool {
	return len(p.chunks) == 0
}

// Equals implementation for the hash.Hasher interface.
func (p Spec) Equals(other Spec) bool {
	if len(p.chunks) != len(other.chunks) {
		return false
	}
	//
	for i := range p.chunks {
		if !p.chunks[i].Equals(other.chunks[i]) {
			return false
		}
	}
	//
	return true
}

// Hash implementation for the hash.Hasher interface.
func (p Spec) Hash() uint64 {
	h := hash.Seed()
	//
	for _, c := range p.chunks {
		h = c.Hash(h)
	}
	//
	return h
}

func (p Spec) String() string {
	switch len(p.chunks) {
	case 0:
		return "{}"
	case 1:
		return p.chunks[0].String()
	}
	// Most significant first
	var builder strings.Builder
	//
	builder.WriteString("{ ")
	//
	for i := len(p.chunks) - 1; i >= 0; i-- {
		builder.WriteString(p.chunks[i].String())
		builder.WriteString(" ")
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
