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
	"fmt"
	"strings"

	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/consensys/go-netgraph/pkg/util/collection/hash"
)

// Chunk is a contiguous run of bits within a descriptor, all of which refer to
// the same kind of entity.  Chunks identify entities by name (together with the
// entity's full width) rather than by pointer, so that equality and hashing
// depend only on what is denoted.
type Chunk interface {
	// Width returns the number of bits in this chunk.
	Width() int
	// Equals checks whether this chunk denotes exactly the same bits as another.
	Equals(Chunk) bool
	// Hash folds this chunk into a running hashcode.
	Hash(uint64) uint64
	// Extract returns the bits [offset, offset+width) of this chunk.
	Extract(offset int, width int) Chunk
	// String returns a human-readable rendering of this chunk.
	String() string
}

// Hash tags for each kind of chunk.
const (
	wireTag uint64 = iota + 1
	portTag
	constTag
	markerTag
	multipleTag
	noneTag
)

// ============================================================================
// Wire chunks
// ============================================================================

// WireChunk refers to a range of bits from a named wire.
type WireChunk struct {
	// Name of the wire.
	Wire string
	// Full width of the wire.
	WireWidth int
	// Offset of the first bit in this chunk.
	Offset int
	// Number of bits in this chunk.
	Len int
}

// NewWireChunk constructs a chunk covering a range of bits from a given wire.
func NewWireChunk(wire *netlist.Wire, offset int, width int) WireChunk {
	return WireChunk{wire.Name, wire.Width, offset, width}
}

// WholeWire constructs a chunk covering all bits of a given wire.
func WholeWire(wire *netlist.Wire) WireChunk {
	return WireChunk{wire.Name, wire.Width, 0, wire.Width}
}

// Width implementation for the Chunk interface.
func (p WireChunk) Width() int { return p.Len }

// IsWhole checks whether this chunk covers its entire wire.
func (p WireChunk) IsWhole() bool {
	return p.Offset == 0 && p.Len == p.WireWidth
}

// Whole returns the chunk covering the entire wire of this chunk.
func (p WireChunk) Whole() WireChunk {
	return WireChunk{p.Wire, p.WireWidth, 0, p.WireWidth}
}

// Equals implementation for the Chunk interface.
func (p WireChunk) Equals(other Chunk) bool {
	o, ok := other.(WireChunk)
	return ok && p == o
}

// Hash implementation for the Chunk interface.
func (p WireChunk) Hash(h uint64) uint64 {
	h = hash.Mix(h, wireTag)
	h = hash.String(h, p.Wire)
	h = hash.Int(h, p.Offset)
	//
	return hash.Int(h, p.Len)
}

// Extract implementation for the Chunk interface.
func (p WireChunk) Extract(offset int, width int) Chunk {
	checkExtract(p, offset, width)
	return WireChunk{p.Wire, p.WireWidth, p.Offset + offset, width}
}

func (p WireChunk) String() string {
	return rangeString(p.Wire, p.WireWidth, p.Offset, p.Len)
}

// ============================================================================
// Port chunks
// ============================================================================

// PortChunk refers to a range of bits from a named port of a named cell.
type PortChunk struct {
	// Name of the cell.
	Cell string
	// Name of the port.
	Port string
	// Full width of the port.
	PortWidth int
	// Offset of the first bit in this chunk.
	Offset int
	// Number of bits in this chunk.
	Len int
}

// NewPortChunk constructs a chunk covering a range of bits from a given port
// of a given cell.
func NewPortChunk(cell *netlist.Cell, port string, offset int, width int) PortChunk {
	return PortChunk{cell.Name, port, cell.Port(port).Width(), offset, width}
}

// WholePort constructs a chunk covering all bits of a given port of a given
// cell.
func WholePort(cell *netlist.Cell, port string) PortChunk {
	width := cell.Port(port).Width()
	return PortChunk{cell.Name, port, width, 0, width}
}

// Width implementation for the Chunk interface.
func (p PortChunk) Width() int { return p.Len }

// IsWhole checks whether this chunk covers its entire port.
func (p PortChunk) IsWhole() bool {
	return p.Offset == 0 && p.Len == p.PortWidth
}

// Whole returns the chunk covering the entire port of this chunk.
func (p PortChunk) Whole() PortChunk {
	return PortChunk{p.Cell, p.Port, p.PortWidth, 0, p.PortWidth}
}

// Equals implementation for the Chunk interface.
func (p PortChunk) Equals(other Chunk) bool {
	o, ok := other.(PortChunk)
	return ok && p == o
}

// Hash implementation for the Chunk interface.
func (p PortChunk) Hash(h uint64) uint64 {
	h = hash.Mix(h, portTag)
	h = hash.String(h, p.Cell)
	h = hash.String(h, p.Port)
	h = hash.Int(h, p.Offset)
	//
	return hash.Int(h, p.Len)
}

// Extract implementation for the Chunk interface.
func (p PortChunk) Extract(offset int, width int) Chunk {
	checkExtract(p, offset, width)
	return PortChunk{p.Cell, p.Port, p.PortWidth, p.Offset + offset, width}
}

func (p PortChunk) String() string {
	return rangeString(fmt.Sprintf("%s.%s", p.Cell, p.Port), p.PortWidth, p.Offset, p.Len)
}

// ============================================================================
// Constant chunks
// ============================================================================

// ConstChunk is a constant bit-vector.
type ConstChunk struct {
	Value netlist.Const
}

// Width implementation for the Chunk interface.
func (p ConstChunk) Width() int { return p.Value.Width() }

// Equals implementation for the Chunk interface.
func (p ConstChunk) Equals(other Chunk) bool {
	o, ok := other.(ConstChunk)
	return ok && p.Value.Bits() == o.Value.Bits()
}

// Hash implementation for the Chunk interface.
func (p ConstChunk) Hash(h uint64) uint64 {
	return hash.String(hash.Mix(h, constTag), p.Value.Bits())
}

// Extract implementation for the Chunk interface.
func (p ConstChunk) Extract(offset int, width int) Chunk {
	return ConstChunk{p.Value.Extract(offset, width)}
}

func (p ConstChunk) String() string {
	return fmt.Sprintf("%d'%s", p.Value.Width(), p.Value.Bits())
}

// ============================================================================
// Marker chunks
// ============================================================================

// MarkerChunk stands for "evaluate this cell instance", and is used to refer to
// a cell as a whole before any of its outputs are considered.  Markers have a
// nominal width of one bit.
type MarkerChunk struct {
	// Name of the cell being evaluated.
	Cell string
}

// Width implementation for the Chunk interface.
func (p MarkerChunk) Width() int { return 1 }

// Equals implementation for the Chunk interface.
func (p MarkerChunk) Equals(other Chunk) bool {
	o, ok := other.(MarkerChunk)
	return ok && p == o
}

// Hash implementation for the Chunk interface.
func (p MarkerChunk) Hash(h uint64) uint64 {
	return hash.String(hash.Mix(h, markerTag), p.Cell)
}

// Extract implementation for the Chunk interface.
func (p MarkerChunk) Extract(offset int, width int) Chunk {
	checkExtract(p, offset, width)
	return p
}

func (p MarkerChunk) String() string {
	return fmt.Sprintf("<%s>", p.Cell)
}

// ============================================================================
// Multiple chunks
// ============================================================================

// MultipleChunk represents bits which have more than one driver.  Every driver
// has the same width as the chunk itself, and drivers are held in the order
// they were discovered.
type MultipleChunk struct {
	Drivers []Chunk
}

// Width implementation for the Chunk interface.
func (p MultipleChunk) Width() int {
	return p.Drivers[0].Width()
}

// Equals implementation for the Chunk interface.
func (p MultipleChunk) Equals(other Chunk) bool {
	o, ok := other.(MultipleChunk)
	//
	if !ok || len(p.Drivers) != len(o.Drivers) {
		return false
	}
	//
	for i := range p.Drivers {
		if !p.Drivers[i].Equals(o.Drivers[i]) {
			return false
		}
	}
	//
	return true
}

// Hash implementation for the Chunk interface.
func (p MultipleChunk) Hash(h uint64) uint64 {
	h = hash.Int(hash.Mix(h, multipleTag), len(p.Drivers))
	//
	for _, d := range p.Drivers {
		h = d.Hash(h)
	}
	//
	return h
}

// Extract implementation for the Chunk interface.
func (p MultipleChunk) Extract(offset int, width int) Chunk {
	drivers := make([]Chunk, len(p.Drivers))
	//
	for i, d := range p.Drivers {
		drivers[i] = d.Extract(offset, width)
	}
	//
	return MultipleChunk{drivers}
}

func (p MultipleChunk) String() string {
	var builder strings.Builder
	//
	builder.WriteString("<multiple")
	//
	for _, d := range p.Drivers {
		builder.WriteString(" ")
		builder.WriteString(d.String())
	}
	//
	builder.WriteString(">")
	//
	return builder.String()
}

// ============================================================================
// None chunks
// ============================================================================

// NoneChunk represents bits which have no driver at all.
type NoneChunk struct {
	Len int
}

// Width implementation for the Chunk interface.
func (p NoneChunk) Width() int { return p.Len }

// Equals implementation for the Chunk interface.
func (p NoneChunk) Equals(other Chunk) bool {
	o, ok := other.(NoneChunk)
	return ok && p == o
}

// Hash implementation for the Chunk interface.
func (p NoneChunk) Hash(h uint64) uint64 {
	return hash.Int(hash.Mix(h, noneTag), p.Len)
}

// Extract implementation for the Chunk interface.
func (p NoneChunk) Extract(offset int, width int) Chunk {
	checkExtract(p, offset, width)
	return NoneChunk{width}
}

func (p NoneChunk) String() string {
	return fmt.Sprintf("<none %d>", p.Len)
}

// ============================================================================
// Helpers
// ============================================================================

// Join two adjacent chunks into one, or return false if they cannot be joined.
// The lhs is the less significant of the two.
func join(lhs Chunk, rhs Chunk) (Chunk, bool) {
	switch l := lhs.(type) {
	case WireChunk:
		if r, ok := rhs.(WireChunk); ok && l.Wire == r.Wire && l.Offset+l.Len == r.Offset {
			return WireChunk{l.Wire, l.WireWidth, l.Offset, l.Len + r.Len}, true
		}
	case PortChunk:
		if r, ok := rhs.(PortChunk); ok && l.Cell == r.Cell && l.Port == r.Port && l.Offset+l.Len == r.Offset {
			return PortChunk{l.Cell, l.Port, l.PortWidth, l.Offset, l.Len + r.Len}, true
		}
	case ConstChunk:
		if r, ok := rhs.(ConstChunk); ok {
			return ConstChunk{l.Value.Append(r.Value)}, true
		}
	case NoneChunk:
		if r, ok := rhs.(NoneChunk); ok {
			return NoneChunk{l.Len + r.Len}, true
		}
	case MultipleChunk:
		if r, ok := rhs.(MultipleChunk); ok && len(l.Drivers) == len(r.Drivers) {
			drivers := make([]Chunk, len(l.Drivers))
			//
			for i := range l.Drivers {
				d, ok := join(l.Drivers[i], r.Drivers[i])
				if !ok {
					return nil, false
				}
				//
				drivers[i] = d
			}
			//
			return MultipleChunk{drivers}, true
		}
	}
	// Markers are never joined.
	return nil, false
}

func checkExtract(chunk Chunk, offset int, width int) {
	if offset < 0 || width < 0 || offset+width > chunk.Width() {
		panic(fmt.Sprintf("invalid extract [%d+:%d] from %s", offset, width, chunk.String()))
	}
}

func rangeString(name string, full int, offset int, width int) string {
	switch {
	case offset == 0 && width == full:
		return name
	case width == 1:
		return fmt.Sprintf("%s[%d]", name, offset)
	default:
		return fmt.Sprintf("%s[%d:%d]", name, offset+width-1, offset)
	}
}
