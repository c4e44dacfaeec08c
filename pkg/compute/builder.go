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
package compute

import (
	"errors"
	"fmt"

	"github.com/consensys/go-netgraph/pkg/drive"
	"github.com/consensys/go-netgraph/pkg/graph"
	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/consensys/go-netgraph/pkg/util/collection/hash"
	log "github.com/sirupsen/logrus"
)

// ErrMalformedDescriptor indicates a descriptor which the builder does not know
// how to translate.
var ErrMalformedDescriptor = errors.New("malformed descriptor")

// Graph is a compute graph over functions.
type Graph = graph.Graph[Function]

// Node is a reference to a node in a compute graph.
type Node = graph.Ref[Function]

// Builder translates the signals of a module into a compute graph.  Every
// distinct descriptor encountered is given exactly one node, whose index is
// the position of that descriptor in the worklist.
type Builder struct {
	module    *netlist.Module
	celltypes *netlist.CellTypes
	drivers   *drive.DriverMap
	config    Config
	// Worklist of descriptors, deduplicated.
	queue *hash.Index[drive.Spec]
	graph *Graph
}

// NewBuilder constructs a builder for a given module.
func NewBuilder(module *netlist.Module, celltypes *netlist.CellTypes, config Config) *Builder {
	return &Builder{
		module:    module,
		celltypes: celltypes,
		drivers:   drive.NewDriverMap(module, celltypes),
		config:    config,
		queue:     hash.NewIndex[drive.Spec](),
		graph:     graph.NewGraph[Function](),
	}
}

// Build constructs the compute graph for a given module, returning it together
// with the descriptor of every node (by index).  The graph is neither ordered
// nor simplified.
func Build(module *netlist.Module, celltypes *netlist.CellTypes, config Config) (*Graph, []drive.Spec, error) {
	builder := NewBuilder(module, celltypes, config)
	//
	if err := builder.Run(); err != nil {
		return nil, nil, err
	}
	//
	return builder.graph, builder.queue.Items(), nil
}

// Run seeds the worklist and then processes it until exhausted.  The worklist
// grows whilst it is being processed.
func (p *Builder) Run() error {
	if err := p.seed(); err != nil {
		return err
	}
	//
	for i := uint(0); i < p.queue.Len(); i++ {
		if err := p.process(p.queue.Get(i), p.graph.Node(i)); err != nil {
			return err
		}
	}
	//
	log.Debugf("built %d nodes for module %s", p.graph.Len(), p.module.Name)
	//
	return nil
}

// Seed the worklist with every verification obligation, and every output
// port.
func (p *Builder) seed() error {
	for _, cell := range p.module.Cells() {
		if p.celltypes.IsObligation(cell.Type) {
			p.enqueue(drive.NewSpec(drive.MarkerChunk{Cell: cell.Name}))
		}
	}
	//
	for _, wire := range p.module.Wires() {
		if !wire.PortOutput {
			continue
		}
		//
		if err := p.enqueue(drive.NewSpec(drive.WholeWire(wire))).AssignKey(wire.Name); err != nil {
			return err
		}
	}
	//
	return nil
}

// Enqueue a descriptor, returning its node.  A node is only created the first
// time a given descriptor is seen, and initially has a placeholder function.
func (p *Builder) enqueue(spec drive.Spec) Node {
	index, fresh := p.queue.Insert(spec)
	//
	if fresh {
		p.graph.Add(Fn(TagPending), index)
	}
	//
	return p.graph.Node(index)
}

func (p *Builder) enqueueChunk(chunk drive.Chunk) Node {
	return p.enqueue(drive.NewSpec(chunk))
}

// Process a single descriptor, setting the function and arguments of its node.
func (p *Builder) process(spec drive.Spec, node Node) error {
	chunks := spec.Chunks()
	//
	switch len(chunks) {
	case 0:
		node.SetFunction(Fn(TagConst, netlist.Param{Name: "value", Value: netlist.Const{}}))
		return nil
	case 1:
		return p.processChunk(spec, chunks[0], node)
	}
	// Concatenation
	node.SetFunction(Fn(TagConcat))
	//
	for _, chunk := range chunks {
		node.AppendArg(p.enqueueChunk(chunk))
	}
	//
	return nil
}

func (p *Builder) processChunk(spec drive.Spec, chunk drive.Chunk, node Node) error {
	switch c := chunk.(type) {
	case drive.WireChunk:
		return p.processWire(spec, c, node)
	case drive.PortChunk:
		return p.processPort(spec, c, node)
	case drive.ConstChunk:
		node.SetFunction(Fn(TagConst, netlist.Param{Name: "value", Value: c.Value}))
	case drive.MultipleChunk:
		node.SetFunction(Fn(TagMulti))
		//
		for _, driver := range c.Drivers {
			node.AppendArg(p.enqueueChunk(driver))
		}
	case drive.MarkerChunk:
		return p.processMarker(spec, c, node)
	case drive.NoneChunk:
		node.SetFunction(Fn(TagUndriven))
	default:
		return malformed(spec)
	}
	//
	return nil
}

func (p *Builder) processWire(spec drive.Spec, chunk drive.WireChunk, node Node) error {
	wire := p.module.Wire(chunk.Wire)
	//
	switch {
	case wire == nil || wire.Width != chunk.WireWidth:
		return malformed(spec)
	case !chunk.IsWhole():
		node.SetFunction(Fn(TagSlice, intParam("offset", chunk.Offset), intParam("width", chunk.Len)))
		node.AppendArg(p.enqueueChunk(chunk.Whole()))
	case wire.PortInput:
		node.SetFunction(Fn(TagInput, flag(wire.Name)))
		node.SetName(wire.Name)
	default:
		node.SetFunction(Fn(TagBuf))
		//
		if p.bindName(wire) {
			node.SetName(wire.Name)
		}
		//
		node.AppendArg(p.enqueue(p.drivers.Resolve(spec)))
	}
	//
	return nil
}

func (p *Builder) processPort(spec drive.Spec, chunk drive.PortChunk, node Node) error {
	cell := p.module.Cell(chunk.Cell)
	//
	switch {
	case cell == nil || !cell.HasPort(chunk.Port) || cell.Port(chunk.Port).Width() != chunk.PortWidth:
		return malformed(spec)
	case !chunk.IsWhole():
		node.SetFunction(Fn(TagSlice, intParam("offset", chunk.Offset), intParam("width", chunk.Len)))
		node.AppendArg(p.enqueueChunk(chunk.Whole()))
	case !p.celltypes.IsOutput(cell, chunk.Port):
		node.SetFunction(Fn(TagBuf))
		node.AppendArg(p.enqueue(p.drivers.Resolve(spec)))
	case p.celltypes.IsState(cell.Type):
		// The current state is an opaque value; the next state is exposed via
		// keys rather than arguments, so registers never form loops.
		node.SetFunction(Fn(TagState, flag(cell.Name)))
		//
		for _, port := range p.celltypes.DataInputs(cell) {
			next := p.enqueueChunk(drive.WholePort(cell, port))
			//
			if err := next.AssignKey(stateKey(cell, port)); err != nil {
				return err
			}
		}
	case p.celltypes.NumOutputs(cell) == 1:
		node.SetFunction(Fn(TagBuf))
		node.AppendArg(p.enqueueChunk(drive.MarkerChunk{Cell: cell.Name}))
	default:
		node.SetFunction(Fn(TagCellOutput, flag(chunk.Port)))
		node.AppendArg(p.enqueueChunk(drive.MarkerChunk{Cell: cell.Name}))
	}
	//
	return nil
}

func (p *Builder) processMarker(spec drive.Spec, chunk drive.MarkerChunk, node Node) error {
	cell := p.module.Cell(chunk.Cell)
	//
	if cell == nil {
		return malformed(spec)
	}
	//
	node.SetFunction(Fn(cell.Type, cell.Params()...))
	//
	for _, port := range p.celltypes.Inputs(cell) {
		node.AppendArg(p.enqueueChunk(drive.WholePort(cell, port)))
	}
	//
	return nil
}

// Determine whether the node for a whole (non-input) wire should carry the
// wire's name.  Named nodes are never elided.
func (p *Builder) bindName(wire *netlist.Wire) bool {
	return wire.Keep() || (p.config.KeepWireNames && wire.IsPublic())
}

// The key under which the next value of a given data input of a state cell is
// exposed.
func stateKey(cell *netlist.Cell, port string) string {
	if port == "D" {
		return cell.Name
	}
	//
	return fmt.Sprintf("%s.%s", cell.Name, port)
}

func malformed(spec drive.Spec) error {
	return fmt.Errorf("%w: %s", ErrMalformedDescriptor, spec.String())
}
