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
package netlist

import (
	"fmt"
	"strings"
)

// SigBit identifies a single bit of a signal: either a bit of some wire, or a
// constant state.
type SigBit struct {
	// Wire holding this bit, or nil for a constant bit.
	Wire *Wire
	// Offset of this bit within the wire.
	Offset int
	// Data holds the state of a constant bit.
	Data State
}

// IsWire checks whether this bit belongs to a wire.
func (p SigBit) IsWire() bool {
	return p.Wire != nil
}

func (p SigBit) String() string {
	if p.Wire == nil {
		return fmt.Sprintf("1'%c", p.Data)
	} else if p.Wire.Width == 1 {
		return p.Wire.Name
	}
	//
	return fmt.Sprintf("%s[%d]", p.Wire.Name, p.Offset)
}

// SigChunk is a contiguous run of bits, either from a single wire or a
// constant.
type SigChunk struct {
	// Wire for this chunk, or nil for a constant chunk.
	Wire *Wire
	// Offset of the first bit of this chunk within the wire.
	Offset int
	// Width of this chunk in bits.
	Width int
	// Data for a constant chunk.
	Data Const
}

// IsWire checks whether this chunk covers bits of a wire.
func (p SigChunk) IsWire() bool {
	return p.Wire != nil
}

func (p SigChunk) String() string {
	switch {
	case p.Wire == nil:
		return p.Data.String()
	case p.Offset == 0 && p.Width == p.Wire.Width:
		return p.Wire.Name
	case p.Width == 1:
		return fmt.Sprintf("%s[%d]", p.Wire.Name, p.Offset)
	default:
		return fmt.Sprintf("%s[%d:%d]", p.Wire.Name, p.Offset+p.Width-1, p.Offset)
	}
}

// SigSpec is a signal made up from zero or more chunks, least significant
// chunk first.  Adjacent chunks are merged where possible, so that a whole
// wire is always represented by a single chunk.
type SigSpec struct {
	chunks []SigChunk
}

// WireSig returns the signal covering the whole of a given wire.
func WireSig(wire *Wire) SigSpec {
	return WireSlice(wire, 0, wire.Width)
}

// WireSlice returns the signal covering a range of bits from a given wire.
func WireSlice(wire *Wire, offset int, width int) SigSpec {
	if offset < 0 || width < 0 || offset+width > wire.Width {
		panic(fmt.Sprintf("invalid slice [%d+:%d] of %d-bit wire %s", offset, width, wire.Width, wire.Name))
	} else if width == 0 {
		return SigSpec{}
	}
	//
	return SigSpec{[]SigChunk{{wire, offset, width, Const{}}}}
}

// ConstSig returns the signal for a given constant.
func ConstSig(value Const) SigSpec {
	if value.Width() == 0 {
		return SigSpec{}
	}
	//
	return SigSpec{[]SigChunk{{nil, 0, value.Width(), value}}}
}

// BitsSig constructs a signal from a sequence of bits (least significant
// first).
func BitsSig(bits ...SigBit) SigSpec {
	var sig SigSpec
	//
	for _, b := range bits {
		if b.Wire != nil {
			sig = sig.Append(WireSlice(b.Wire, b.Offset, 1))
		} else {
			sig = sig.Append(ConstSig(NewConst(b.Data)))
		}
	}
	//
	return sig
}

// Concat joins zero or more signals, where the first signal given is the
// least significant.
func Concat(sigs ...SigSpec) SigSpec {
	var sig SigSpec
	//
	for _, s := range sigs {
		sig = sig.Append(s)
	}
	//
	return sig
}

// Width returns the total number of bits in this signal.
func (p SigSpec) Width() int {
	width := 0
	for _, c := range p.chunks {
		width += c.Width
	}
	//
	return width
}

// Chunks returns the chunks making up this signal, least significant first.
func (p SigSpec) Chunks() []SigChunk {
	return p.chunks
}

// Bits returns the individual bits of this signal, least significant first.
func (p SigSpec) Bits() []SigBit {
	var bits []SigBit
	//
	for _, c := range p.chunks {
		for i := range c.Width {
			if c.Wire != nil {
				bits = append(bits, SigBit{c.Wire, c.Offset + i, 0})
			} else {
				bits = append(bits, SigBit{nil, 0, c.Data.Bit(i)})
			}
		}
	}
	//
	return bits
}

// Bit returns the ith bit of this signal.
func (p SigSpec) Bit(i int) SigBit {
	for _, c := range p.chunks {
		if i < c.Width {
			if c.Wire != nil {
				return SigBit{c.Wire, c.Offset + i, 0}
			}
			//
			return SigBit{nil, 0, c.Data.Bit(i)}
		}
		//
		i -= c.Width
	}
	//
	panic("signal bit out-of-bounds")
}

// Extract returns the bits [offset, offset+width) of this signal.
func (p SigSpec) Extract(offset int, width int) SigSpec {
	var sig SigSpec
	//
	if offset < 0 || width < 0 || offset+width > p.Width() {
		panic(fmt.Sprintf("invalid extract [%d+:%d] from %d-bit signal", offset, width, p.Width()))
	}
	//
	for _, c := range p.chunks {
		start := max(offset, 0)
		end := min(offset+width, c.Width)
		//
		if start < end {
			if c.Wire != nil {
				sig = sig.Append(WireSlice(c.Wire, c.Offset+start, end-start))
			} else {
				sig = sig.Append(ConstSig(c.Data.Extract(start, end-start)))
			}
		}
		//
		offset -= c.Width
	}
	//
	return sig
}

// Append returns the signal formed by placing a given signal above (i.e. more
// significant than) this signal.
func (p SigSpec) Append(other SigSpec) SigSpec {
	chunks := make([]SigChunk, len(p.chunks), len(p.chunks)+len(other.chunks))
	copy(chunks, p.chunks)
	//
	for _, c := range other.chunks {
		n := len(chunks) - 1
		//
		if n >= 0 && canJoin(chunks[n], c) {
			chunks[n] = join(chunks[n], c)
		} else {
			chunks = append(chunks, c)
		}
	}
	//
	return SigSpec{chunks}
}

// IsFullyConst checks whether this signal consists only of constant bits.
func (p SigSpec) IsFullyConst() bool {
	for _, c := range p.chunks {
		if c.Wire != nil {
			return false
		}
	}
	//
	return true
}

// AsWire returns the wire covered by this signal, provided it covers exactly one
// whole wire.
func (p SigSpec) AsWire() (*Wire, bool) {
	if len(p.chunks) == 1 && p.chunks[0].Wire != nil && p.chunks[0].Width == p.chunks[0].Wire.Width {
		return p.chunks[0].Wire, true
	}
	//
	return nil, false
}

func (p SigSpec) String() string {
	switch len(p.chunks) {
	case 0:
		return "{}"
	case 1:
		return p.chunks[0].String()
	}
	// Most significant chunk first.
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

func canJoin(lhs SigChunk, rhs SigChunk) bool {
	if lhs.Wire == nil || rhs.Wire == nil {
		return lhs.Wire == nil && rhs.Wire == nil
	}
	//
	return lhs.Wire == rhs.Wire && lhs.Offset+lhs.Width == rhs.Offset
}

func join(lhs SigChunk, rhs SigChunk) SigChunk {
	if lhs.Wire == nil {
		return SigChunk{nil, 0, lhs.Width + rhs.Width, lhs.Data.Append(rhs.Data)}
	}
	//
	return SigChunk{lhs.Wire, lhs.Offset, lhs.Width + rhs.Width, Const{}}
}
