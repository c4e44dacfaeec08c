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
package graph

import (
	"errors"
	"fmt"

	"github.com/consensys/go-netgraph/pkg/util"
)

// ErrDuplicateKey indicates an attempt to bind the same key twice.
var ErrDuplicateKey = errors.New("duplicate key")

// Key binds a symbolic name (e.g. an output wire) to the node computing its
// value.
type Key struct {
	Name string
	Node uint
}

// Graph is a compute graph: a sequence of nodes, each applying some function to
// an ordered list of arguments (identified by node index), together with an
// ordered table of keys.  Nodes can reference nodes with higher indices, which
// allows a node to be created before the nodes it depends upon.  The function
// type is left open, since the graph never interprets it.
type Graph[F any] struct {
	nodes []node[F]
	// Keys in the order they were assigned.
	keys []Key
	// Lookup from key names to their position in keys.
	keyIndex map[string]int
}

type node[F any] struct {
	function F
	args     []uint
	name     util.Option[string]
	origin   uint
}

// NewGraph constructs an empty graph.
func NewGraph[F any]() *Graph[F] {
	return &Graph[F]{nil, nil, make(map[string]int)}
}

// Add a new node with a given function and no arguments, recording a given
// origin for diagnostics.
func (p *Graph[F]) Add(function F, origin uint) Ref[F] {
	index := uint(len(p.nodes))
	p.nodes = append(p.nodes, node[F]{function, nil, util.None[string](), origin})
	//
	return Ref[F]{p, index}
}

// Node returns a reference to the node at a given index.  This panics if the
// index is out of range.
func (p *Graph[F]) Node(index uint) Ref[F] {
	if index >= uint(len(p.nodes)) {
		panic(fmt.Sprintf("node index %d out-of-bounds (%d nodes)", index, len(p.nodes)))
	}
	//
	return Ref[F]{p, index}
}

// Len returns the number of nodes in this graph.
func (p *Graph[F]) Len() uint {
	return uint(len(p.nodes))
}

// Keys returns all keys in the order they were assigned.
func (p *Graph[F]) Keys() []Key {
	return p.keys
}

// Key returns the node bound to a given key, if any.
func (p *Graph[F]) Key(name string) (uint, bool) {
	if i, ok := p.keyIndex[name]; ok {
		return p.keys[i].Node, true
	}
	//
	return 0, false
}

// AssignKey binds a given name to a given node.  Names can be bound at most
// once.
func (p *Graph[F]) AssignKey(name string, index uint) error {
	if _, ok := p.keyIndex[name]; ok {
		return fmt.Errorf("%w %s", ErrDuplicateKey, name)
	} else if index >= uint(len(p.nodes)) {
		panic(fmt.Sprintf("node index %d out-of-bounds (%d nodes)", index, len(p.nodes)))
	}
	//
	p.keyIndex[name] = len(p.keys)
	p.keys = append(p.keys, Key{name, index})
	//
	return nil
}

// Permute reorders the nodes of this graph.  Here, perm lists the (old)
// indices of the surviving nodes in their new order, whilst alias maps every
// old index to its new index.  When every node survives, alias is simply the
// inverse of perm and can be given as nil.  Otherwise, several old indices may
// alias the same surviving node (e.g. when a pass-through node is replaced by
// its argument).  All arguments and keys are rewritten accordingly.  This
// panics if any argument or key would end up out of range.
func (p *Graph[F]) Permute(perm []uint, alias []uint) {
	n := uint(len(p.nodes))
	//
	if alias == nil {
		alias = inverse(perm, n)
	} else if uint(len(alias)) != n {
		panic(fmt.Sprintf("alias map has %d entries (%d nodes)", len(alias), n))
	}
	//
	remap := func(i uint) uint {
		if i >= n || alias[i] >= uint(len(perm)) {
			panic(fmt.Sprintf("node index %d out-of-bounds after permutation", i))
		}
		//
		return alias[i]
	}
	//
	nodes := make([]node[F], len(perm))
	//
	for i, old := range perm {
		if old >= n {
			panic(fmt.Sprintf("permutation index %d out-of-bounds (%d nodes)", old, n))
		}
		//
		nodes[i] = p.nodes[old]
		args := make([]uint, len(nodes[i].args))
		//
		for j, arg := range nodes[i].args {
			args[j] = remap(arg)
		}
		//
		nodes[i].args = args
	}
	//
	for i := range p.keys {
		p.keys[i].Node = remap(p.keys[i].Node)
	}
	//
	p.nodes = nodes
}

// Validate checks that every argument and every key refers to an existing
// node.
func (p *Graph[F]) Validate() error {
	n := uint(len(p.nodes))
	//
	for i, node := range p.nodes {
		for _, arg := range node.args {
			if arg >= n {
				return fmt.Errorf("node %d has out-of-bounds argument %d", i, arg)
			}
		}
	}
	//
	for _, key := range p.keys {
		if key.Node >= n {
			return fmt.Errorf("key %s bound to out-of-bounds node %d", key.Name, key.Node)
		}
	}
	//
	return nil
}

// IsTopological checks whether every argument of every node has a strictly
// lower index than the node itself.
func (p *Graph[F]) IsTopological() bool {
	for i, node := range p.nodes {
		for _, arg := range node.args {
			if arg >= uint(i) {
				return false
			}
		}
	}
	//
	return true
}

// Compute the inverse of a (bijective) permutation.
func inverse(perm []uint, n uint) []uint {
	if uint(len(perm)) != n {
		panic(fmt.Sprintf("permutation has %d entries (%d nodes)", len(perm), n))
	}
	//
	inv := make([]uint, n)
	seen := make([]bool, n)
	//
	for i, old := range perm {
		if old >= n || seen[old] {
			panic(fmt.Sprintf("invalid permutation entry %d", old))
		}
		//
		seen[old] = true
		inv[old] = uint(i)
	}
	//
	return inv
}

// ============================================================================
// Node references
// ============================================================================

// Ref is a handle on a single node of a graph.  Refs remain valid until the
// graph is permuted.
type Ref[F any] struct {
	graph *Graph[F]
	index uint
}

// Index returns the index of this node.
func (p Ref[F]) Index() uint {
	return p.index
}

// Function returns the function of this node.
func (p Ref[F]) Function() F {
	return p.graph.nodes[p.index].function
}

// SetFunction replaces the function of this node.
func (p Ref[F]) SetFunction(function F) {
	p.graph.nodes[p.index].function = function
}

// Args returns the argument indices of this node.
func (p Ref[F]) Args() []uint {
	return p.graph.nodes[p.index].args
}

// NumArgs returns the number of arguments of this node.
func (p Ref[F]) NumArgs() uint {
	return uint(len(p.graph.nodes[p.index].args))
}

// Arg returns the ith argument of this node.
func (p Ref[F]) Arg(i uint) Ref[F] {
	return p.graph.Node(p.graph.nodes[p.index].args[i])
}

// AppendArg adds a given node as the next argument of this node.
func (p Ref[F]) AppendArg(arg Ref[F]) {
	if arg.graph != p.graph {
		panic("argument belongs to a different graph")
	}
	//
	p.graph.nodes[p.index].args = append(p.graph.nodes[p.index].args, arg.index)
}

// Name returns the name bound to this node, if any.
func (p Ref[F]) Name() util.Option[string] {
	return p.graph.nodes[p.index].name
}

// SetName binds a name to this node, replacing any existing name.
func (p Ref[F]) SetName(name string) {
	p.graph.nodes[p.index].name = util.Some(name)
}

// Origin returns the origin recorded for this node.
func (p Ref[F]) Origin() uint {
	return p.graph.nodes[p.index].origin
}

// AssignKey binds a given key to this node.
func (p Ref[F]) AssignKey(name string) error {
	return p.graph.AssignKey(name, p.index)
}
