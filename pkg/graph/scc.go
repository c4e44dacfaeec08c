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
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-netgraph/pkg/util/collection/stack"
)

// Loop is a set of nodes (in ascending order) forming a cycle, either a
// strongly connected component of two or more nodes, or a single node which
// is its own argument.
type Loop []uint

// Frame of the depth-first search.
type sccFrame struct {
	node uint
	// Next argument to visit.
	next uint
}

// TopoSortedSCCs visits the strongly connected components of a graph, where
// each node has an edge to each of its arguments.  Components are visited
// sources first, such that every argument of a node lies either in the same
// component or in one visited earlier.  Roots are explored in ascending index
// order, and arguments in order.  The nodes of each component are given in
// ascending order.  This uses an iterative formulation of Tarjan's algorithm,
// since compute graphs can be deep enough to exhaust the stack.
func TopoSortedSCCs[F any](g *Graph[F], fn func(component []uint)) {
	const unvisited = -1
	//
	var (
		n       = g.Len()
		index   = make([]int, n)
		lowlink = make([]int, n)
		onStack = bitset.New(n)
		tarjan  = stack.NewStack[uint]()
		frames  = stack.NewStack[sccFrame]()
		counter = 0
	)
	//
	for i := range index {
		index[i] = unvisited
	}
	//
	visit := func(v uint) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		//
		tarjan.Push(v)
		onStack.Set(v)
		frames.Push(sccFrame{v, 0})
	}
	//
	for root := range n {
		if index[root] != unvisited {
			continue
		}
		//
		visit(root)
		//
		for !frames.IsEmpty() {
			frame := frames.Top()
			v := frame.node
			args := g.Node(v).Args()
			//
			if frame.next < uint(len(args)) {
				w := args[frame.next]
				frame.next++
				//
				if index[w] == unvisited {
					// NOTE: frame is invalidated by this.
					visit(w)
				} else if onStack.Test(w) {
					lowlink[v] = min(lowlink[v], index[w])
				}
				//
				continue
			}
			// All arguments visited
			frames.Pop()
			//
			if !frames.IsEmpty() {
				u := frames.Top().node
				lowlink[u] = min(lowlink[u], lowlink[v])
			}
			//
			if lowlink[v] == index[v] {
				component := tarjan.PopUntil(func(w uint) bool { return w == v })
				//
				for _, w := range component {
					onStack.Clear(w)
				}
				//
				slices.Sort(component)
				fn(component)
			}
		}
	}
}

// Order permutes a graph into topological order (arguments first), and returns
// any loops encountered using the new node numbering.  Loops are not broken:
// nodes within a loop are placed together, and reference each other in both
// directions.
func Order[F any](g *Graph[F]) []Loop {
	var (
		perm  = make([]uint, 0, g.Len())
		loops []Loop
	)
	//
	TopoSortedSCCs(g, func(component []uint) {
		start := uint(len(perm))
		perm = append(perm, component...)
		//
		if len(component) > 1 || isSelfLoop(g, component[0]) {
			loop := make(Loop, len(component))
			for i := range component {
				loop[i] = start + uint(i)
			}
			//
			loops = append(loops, loop)
		}
	})
	//
	g.Permute(perm, nil)
	//
	return loops
}

func isSelfLoop[F any](g *Graph[F], index uint) bool {
	return slices.Contains(g.Node(index).Args(), index)
}
