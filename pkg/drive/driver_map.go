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

	"github.com/consensys/go-netgraph/pkg/netlist"
)

type wireBit struct {
	wire   string
	offset int
}

// DriverMap answers the question "what drives this signal?" for a given
// module.  Drivers are one step deep: a wire bit driven by an assignment from
// another wire resolves to that other wire, not to whatever drives it in turn.
type DriverMap struct {
	module    *netlist.Module
	celltypes *netlist.CellTypes
	// Drivers for each wire bit, in discovery order.
	drivers map[wireBit][]Chunk
}

// NewDriverMap constructs the driver map for a given module.  Drivers are
// discovered first from cell output ports (in cell order, then port order),
// and then from continuous assignments (in declaration order).
func NewDriverMap(module *netlist.Module, celltypes *netlist.CellTypes) *DriverMap {
	drivers := make(map[wireBit][]Chunk)
	//
	for _, cell := range module.Cells() {
		for _, port := range cell.Ports() {
			if !celltypes.IsOutput(cell, port) {
				continue
			}
			//
			sig := cell.Port(port)
			//
			for i, bit := range sig.Bits() {
				if bit.IsWire() {
					key := wireBit{bit.Wire.Name, bit.Offset}
					drivers[key] = append(drivers[key], PortChunk{cell.Name, port, sig.Width(), i, 1})
				}
			}
		}
	}
	//
	for _, conn := range module.Connections() {
		rhs := conn.Rhs.Bits()
		//
		for i, bit := range conn.Lhs.Bits() {
			if bit.IsWire() {
				key := wireBit{bit.Wire.Name, bit.Offset}
				drivers[key] = append(drivers[key], bitChunk(rhs[i]))
			}
		}
	}
	//
	return &DriverMap{module, celltypes, drivers}
}

// Resolve returns the descriptor for whatever drives a given descriptor.
// Wire bits resolve to their driver, or to themselves for input ports.  Bits
// of cell input ports resolve to the signal connected to that port.  Bits with
// several drivers give a MultipleChunk, whilst bits with none give a
// NoneChunk.  Everything else resolves to itself.
func (p *DriverMap) Resolve(spec Spec) Spec {
	var chunks []Chunk
	//
	for _, chunk := range spec.Chunks() {
		switch c := chunk.(type) {
		case WireChunk:
			chunks = p.resolveWire(c, chunks)
		case PortChunk:
			chunks = p.resolvePort(c, chunks)
		default:
			chunks = append(chunks, c)
		}
	}
	//
	return NewSpec(chunks...)
}

// Drivers returns the drivers of a given wire bit, in discovery order.
func (p *DriverMap) Drivers(wire string, offset int) []Chunk {
	return p.drivers[wireBit{wire, offset}]
}

func (p *DriverMap) resolveWire(chunk WireChunk, chunks []Chunk) []Chunk {
	wire := p.module.Wire(chunk.Wire)
	//
	if wire == nil {
		panic(fmt.Sprintf("unknown wire %s in module %s", chunk.Wire, p.module.Name))
	} else if wire.PortInput {
		return append(chunks, chunk)
	}
	//
	for i := range chunk.Len {
		drivers := p.drivers[wireBit{chunk.Wire, chunk.Offset + i}]
		//
		switch len(drivers) {
		case 0:
			chunks = append(chunks, NoneChunk{1})
		case 1:
			chunks = append(chunks, drivers[0])
		default:
			chunks = append(chunks, MultipleChunk{drivers})
		}
	}
	//
	return chunks
}

func (p *DriverMap) resolvePort(chunk PortChunk, chunks []Chunk) []Chunk {
	cell := p.module.Cell(chunk.Cell)
	//
	if cell == nil {
		panic(fmt.Sprintf("unknown cell %s in module %s", chunk.Cell, p.module.Name))
	} else if p.celltypes.IsOutput(cell, chunk.Port) {
		return append(chunks, chunk)
	}
	//
	sig := cell.Port(chunk.Port)
	//
	for i := range chunk.Len {
		chunks = append(chunks, bitChunk(sig.Bit(chunk.Offset+i)))
	}
	//
	return chunks
}

// Construct the (single bit) chunk corresponding to a given signal bit.
func bitChunk(bit netlist.SigBit) Chunk {
	if bit.IsWire() {
		return WireChunk{bit.Wire.Name, bit.Wire.Width, bit.Offset, 1}
	}
	//
	return ConstChunk{netlist.NewConst(bit.Data)}
}
