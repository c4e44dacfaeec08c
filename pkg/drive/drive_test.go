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
	"testing"

	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/consensys/go-netgraph/pkg/util/collection/hash"
	"github.com/stretchr/testify/require"
)

func Test_Spec_Normalise(t *testing.T) {
	w := WireChunk{"a", 8, 0, 4}
	spec := NewSpec(w, NoneChunk{0}, WireChunk{"a", 8, 4, 4})
	// Zero-width dropped, adjacent joined
	require.Len(t, spec.Chunks(), 1)
	require.True(t, spec.Chunks()[0].(WireChunk).IsWhole())
	require.Equal(t, "a", spec.String())
	// Constants and none chunks join
	spec = NewSpec(ConstChunk{netlist.ConstFromInt(1, 1)}, ConstChunk{netlist.ConstFromInt(0, 1)})
	require.Equal(t, "2'01", spec.String())
	require.Len(t, NewSpec(NoneChunk{1}, NoneChunk{2}).Chunks(), 1)
	// Markers never join
	require.Len(t, NewSpec(MarkerChunk{"g"}, MarkerChunk{"g"}).Chunks(), 2)
}

func Test_Spec_Equality(t *testing.T) {
	var (
		lhs = NewSpec(WireChunk{"a", 8, 0, 2}, WireChunk{"a", 8, 2, 2})
		rhs = NewSpec(WireChunk{"a", 8, 0, 4})
		oth = NewSpec(PortChunk{"a", "Y", 8, 0, 4})
	)
	//
	require.True(t, lhs.Equals(rhs))
	require.Equal(t, lhs.Hash(), rhs.Hash())
	require.False(t, lhs.Equals(oth))
	require.NotEqual(t, lhs.Hash(), oth.Hash())
	// Multiple drivers compare in order
	m1 := NewSpec(MultipleChunk{[]Chunk{WireChunk{"a", 1, 0, 1}, WireChunk{"b", 1, 0, 1}}})
	m2 := NewSpec(MultipleChunk{[]Chunk{WireChunk{"a", 1, 0, 1}, WireChunk{"b", 1, 0, 1}}})
	m3 := NewSpec(MultipleChunk{[]Chunk{WireChunk{"b", 1, 0, 1}, WireChunk{"a", 1, 0, 1}}})
	require.True(t, m1.Equals(m2))
	require.False(t, m1.Equals(m3))
}

func Test_Spec_Index(t *testing.T) {
	index := hash.NewIndex[Spec]()
	i0, fresh := index.Insert(NewSpec(WireChunk{"a", 4, 0, 4}))
	require.True(t, fresh)
	i1, _ := index.Insert(NewSpec(ConstChunk{netlist.ConstFromInt(3, 2)}))
	i2, fresh := index.Insert(NewSpec(WireChunk{"a", 4, 0, 2}, WireChunk{"a", 4, 2, 2}))
	require.False(t, fresh)
	require.Equal(t, uint(0), i0)
	require.Equal(t, uint(1), i1)
	require.Equal(t, i0, i2)
}

func Test_Spec_Extract(t *testing.T) {
	m := MultipleChunk{[]Chunk{WireChunk{"a", 4, 0, 4}, PortChunk{"g", "Y", 4, 0, 4}}}
	e := m.Extract(1, 2).(MultipleChunk)
	require.Equal(t, WireChunk{"a", 4, 1, 2}, e.Drivers[0])
	require.Equal(t, PortChunk{"g", "Y", 4, 1, 2}, e.Drivers[1])
	require.Panics(t, func() { WireChunk{"a", 4, 0, 4}.Extract(2, 3) })
}

func Test_DriverMap_Cell(t *testing.T) {
	m := netlist.NewModule("top")
	a := m.AddInput("a", 2)
	b := m.AddInput("b", 2)
	y := m.AddOutput("y", 2)
	g := m.AddCell("g", "$and")
	g.SetPort("A", netlist.WireSig(a))
	g.SetPort("B", netlist.WireSig(b))
	g.SetPort("Y", netlist.WireSig(y))
	dm := NewDriverMap(m, netlist.BuiltinCellTypes())
	// Output wire resolves to the whole output port
	require.Equal(t, NewSpec(WholePort(g, "Y")), dm.Resolve(NewSpec(WholeWire(y))))
	// Input wires resolve to themselves
	require.Equal(t, NewSpec(WholeWire(a)), dm.Resolve(NewSpec(WholeWire(a))))
	// Input ports resolve to the connected signal
	require.Equal(t, NewSpec(WholeWire(b)), dm.Resolve(NewSpec(WholePort(g, "B"))))
	// Output ports resolve to themselves
	require.Equal(t, NewSpec(WholePort(g, "Y")), dm.Resolve(NewSpec(WholePort(g, "Y"))))
}

func Test_DriverMap_Assign(t *testing.T) {
	m := netlist.NewModule("top")
	a := m.AddInput("a", 2)
	w := m.AddWire("w", 4)
	u := m.AddWire("u", 1)
	// w = { 1'1, 1'0, a }
	m.Connect(netlist.WireSlice(w, 0, 2), netlist.WireSig(a))
	m.Connect(netlist.WireSlice(w, 2, 2), netlist.ConstSig(netlist.ConstFromInt(2, 2)))
	dm := NewDriverMap(m, netlist.BuiltinCellTypes())
	//
	spec := dm.Resolve(NewSpec(WholeWire(w)))
	require.Len(t, spec.Chunks(), 2)
	require.Equal(t, WholeWire(a), spec.Chunks()[0])
	require.Equal(t, "2'10", spec.Chunks()[1].String())
	// Undriven
	require.Equal(t, NewSpec(NoneChunk{1}), dm.Resolve(NewSpec(WholeWire(u))))
}

func Test_DriverMap_Multiple(t *testing.T) {
	m := netlist.NewModule("top")
	a := m.AddInput("a", 2)
	y := m.AddOutput("y", 2)
	g := m.AddCell("g", "$not")
	g.SetPort("A", netlist.WireSig(a))
	g.SetPort("Y", netlist.WireSig(y))
	m.Connect(netlist.WireSig(y), netlist.WireSig(a))
	dm := NewDriverMap(m, netlist.BuiltinCellTypes())
	// Cell drivers come before assignments
	spec := dm.Resolve(NewSpec(WholeWire(y)))
	require.Len(t, spec.Chunks(), 1)
	multi, ok := spec.Chunks()[0].(MultipleChunk)
	require.True(t, ok)
	require.Equal(t, []Chunk{WholePort(g, "Y"), WholeWire(a)}, multi.Drivers)
	require.Len(t, dm.Drivers("y", 0), 2)
}
