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
package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-netgraph/pkg/compute"
	"github.com/consensys/go-netgraph/pkg/graph"
	"github.com/consensys/go-netgraph/pkg/netlist"
)

// ErrInvalidDocument indicates a document which is not internally consistent
// (e.g. a connection to a non-existent node).
var ErrInvalidDocument = errors.New("invalid document")

// ErrDuplicateOutput indicates a document which binds the same output name
// more than once.
var ErrDuplicateOutput = errors.New("duplicate output")

// Document is the external representation of the compute graph of a single
// module.  Nodes are listed in order, and each node's id is its position.
type Document struct {
	Module  string   `json:"module"`
	Nodes   []Node   `json:"nodes"`
	Outputs []Output `json:"outputs"`
	Loops   [][]uint `json:"loops,omitempty"`
}

// Node is the external representation of a single compute graph node.
// Parameter values are written most significant bit first, except for string
// constants which are written as text.  Name-only parameters have an empty
// value.  Parameters are keyed by name, so their declaration order is not
// preserved; both JSON and sexp write them sorted by name.
type Node struct {
	ID          uint              `json:"id"`
	Type        string            `json:"type"`
	Parameters  map[string]string `json:"parameters,omitempty"`
	Connections []uint            `json:"connections"`
	Metadata    *Metadata         `json:"metadata,omitempty"`
}

// Metadata records where a node came from.
type Metadata struct {
	// Wire whose name is bound to this node (if any).
	Wire string `json:"wire,omitempty"`
	// Position of this node's descriptor in the worklist.
	Origin uint `json:"origin"`
	// Text of this node's descriptor.
	Descriptor string `json:"descriptor,omitempty"`
}

// Output binds a name to a node.
type Output struct {
	Name string `json:"name"`
	Node uint   `json:"node"`
}

// FromGraph constructs a document from a given compute graph, without any
// metadata.
func FromGraph(module string, g *compute.Graph, loops []graph.Loop) *Document {
	doc := &Document{Module: module, Nodes: make([]Node, g.Len()), Outputs: []Output{}}
	//
	for i := range g.Len() {
		var (
			node = g.Node(i)
			fn   = node.Function()
		)
		//
		doc.Nodes[i] = Node{
			ID:          i,
			Type:        fn.Name,
			Parameters:  parameters(fn),
			Connections: slices.Clone(node.Args()),
		}
		//
		if doc.Nodes[i].Connections == nil {
			doc.Nodes[i].Connections = []uint{}
		}
	}
	//
	for _, key := range g.Keys() {
		doc.Outputs = append(doc.Outputs, Output{key.Name, key.Node})
	}
	//
	for _, loop := range loops {
		doc.Loops = append(doc.Loops, slices.Clone(loop))
	}
	//
	return doc
}

// FromResult constructs a document from the result of converting a module,
// optionally including the metadata of each node.
func FromResult(result *compute.Result, metadata bool) *Document {
	doc := FromGraph(result.Module.Name, result.Graph, result.Loops)
	//
	if metadata {
		for i := range doc.Nodes {
			node := result.Graph.Node(uint(i))
			//
			doc.Nodes[i].Metadata = &Metadata{
				Wire:       node.Name().UnwrapOr(""),
				Origin:     node.Origin(),
				Descriptor: result.Descriptor(uint(i)).String(),
			}
		}
	}
	//
	return doc
}

// Validate checks that every node id matches its position, every connection
// and output refers to an existing node, and no output name is bound twice.
func (p *Document) Validate() error {
	n := uint(len(p.Nodes))
	//
	for i, node := range p.Nodes {
		if node.ID != uint(i) {
			return fmt.Errorf("%w: node %d has id %d", ErrInvalidDocument, i, node.ID)
		} else if node.Type == "" {
			return fmt.Errorf("%w: node %d has no type", ErrInvalidDocument, i)
		}
		//
		for _, arg := range node.Connections {
			if arg >= n {
				return fmt.Errorf("%w: node %d connected to unknown node %d", ErrInvalidDocument, i, arg)
			}
		}
	}
	//
	names := make(map[string]bool)
	//
	for _, output := range p.Outputs {
		if names[output.Name] {
			return fmt.Errorf("%w %s", ErrDuplicateOutput, output.Name)
		} else if output.Node >= n {
			return fmt.Errorf("%w: output %s bound to unknown node %d", ErrInvalidDocument, output.Name, output.Node)
		}
		//
		names[output.Name] = true
	}
	//
	return nil
}

// FindLoops determines the loops in this document from its connections alone
// (i.e. ignoring any loops it reports), using the numbering of the document.
// This assumes the document is valid.
func (p *Document) FindLoops() []graph.Loop {
	var (
		g     = p.toGraph()
		loops []graph.Loop
	)
	//
	graph.TopoSortedSCCs(g, func(component []uint) {
		first := component[0]
		//
		if len(component) > 1 || slices.Contains(g.Node(first).Args(), first) {
			loops = append(loops, slices.Clone(component))
		}
	})
	//
	return loops
}

// Output returns the node bound to a given output name, if any.
func (p *Document) Output(name string) (uint, bool) {
	for _, output := range p.Outputs {
		if output.Name == name {
			return output.Node, true
		}
	}
	//
	return 0, false
}

// Construct a graph whose functions are the node types.
func (p *Document) toGraph() *graph.Graph[string] {
	g := graph.NewGraph[string]()
	//
	for i, node := range p.Nodes {
		g.Add(node.Type, uint(i))
	}
	//
	for i, node := range p.Nodes {
		for _, arg := range node.Connections {
			g.Node(uint(i)).AppendArg(g.Node(arg))
		}
	}
	//
	return g
}

func parameters(fn compute.Function) map[string]string {
	if len(fn.Params) == 0 {
		return nil
	}
	//
	params := make(map[string]string, len(fn.Params))
	//
	for _, param := range fn.Params {
		params[param.Name] = constText(param.Value)
	}
	//
	return params
}

// Render a constant as text.  String constants which could be mistaken for a
// bit string are padded with a trailing space, as Yosys does.
func constText(value netlist.Const) string {
	if !value.IsString() {
		return value.Bits()
	}
	//
	text := value.AsString()
	//
	if strings.Trim(text, "01xz") == "" {
		return text + " "
	}
	//
	return text
}
