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
	"github.com/bits-and-blooms/bitset"
)

// ForwardAliases removes pass-through nodes from a topologically ordered graph,
// replacing every reference to them with a reference to (the alias of) their
// argument.  A node is removed when elidable holds for it, it has exactly one
// argument, that argument has a lower index, and the node is not in the
// exclude set (e.g. because it belongs to a loop).  The alias map from old to
// new indices is returned, along with the number of nodes removed.  Running
// this a second time (with the exclude set remapped) removes nothing further.
func ForwardAliases[F any](g *Graph[F], elidable func(Ref[F]) bool, exclude *bitset.BitSet) ([]uint, uint) {
	var (
		n     = g.Len()
		alias = make([]uint, n)
		perm  = make([]uint, 0, n)
	)
	//
	for i := range n {
		node := g.Node(i)
		//
		if canElide(node, exclude) && elidable(node) {
			alias[i] = alias[node.Args()[0]]
		} else {
			alias[i] = uint(len(perm))
			perm = append(perm, i)
		}
	}
	//
	g.Permute(perm, alias)
	//
	return alias, n - uint(len(perm))
}

func canElide[F any](node Ref[F], exclude *bitset.BitSet) bool {
	if node.NumArgs() != 1 || node.Args()[0] >= node.Index() {
		return false
	}
	//
	return exclude == nil || !exclude.Test(node.Index())
}

// LoopSet constructs the set of nodes involved in some loop, suitable for
// excluding them from elision.
func LoopSet(n uint, loops []Loop) *bitset.BitSet {
	set := bitset.New(n)
	//
	for _, loop := range loops {
		for _, i := range loop {
			set.Set(i)
		}
	}
	//
	return set
}

// RemapLoops translates loops through an alias map, as returned from
// ForwardAliases.
func RemapLoops(loops []Loop, alias []uint) []Loop {
	remapped := make([]Loop, len(loops))
	//
	for i, loop := range loops {
		remapped[i] = make(Loop, len(loop))
		//
		for j, node := range loop {
			remapped[i][j] = alias[node]
		}
	}
	//
	return remapped
}
