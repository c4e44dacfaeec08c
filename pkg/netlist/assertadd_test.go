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
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_AssertAdd_Bounds(t *testing.T) {
	m := NewModule("top")
	a := m.AddInput("a", 8)
	a.SetAttribute(AttrLeftBound, ConstFromInt(0, 32))
	a.SetAttribute(AttrRightBound, ConstFromInt(10, 32))
	a.SetAttribute(AttrSrc, ConstFromString("top.v:1"))
	y := m.AddOutput("y", 8)
	y.SetAttribute(AttrLeftBound, ConstFromInt(-4, 32))
	y.SetAttribute(AttrRightBound, ConstFromInt(4, 32))
	// Only one bound, so ignored.
	z := m.AddOutput("z", 8)
	z.SetAttribute(AttrLeftBound, ConstFromInt(0, 32))
	//
	require.Equal(t, 2, AssertAdd(m, false))
	//
	assume := findCells(m, "$assume")
	require.Len(t, assume, 1)
	require.Equal(t, ConstFromString("top.v:1"), assume[0].Attributes[AttrSrc])
	require.Len(t, findCells(m, "$assert"), 1)
	// Signedness follows the bounds
	ge := findCells(m, "$ge")
	require.Len(t, ge, 2)
	sa, _ := ge[0].Param("A_SIGNED")
	sy, _ := ge[1].Param("A_SIGNED")
	require.Equal(t, int64(0), sa.AsInt(false))
	require.Equal(t, int64(1), sy.AsInt(false))
	require.Len(t, findCells(m, "$le"), 2)
	require.Len(t, findCells(m, "$logic_and"), 2)
}

func Test_AssertAdd_Overflow(t *testing.T) {
	m := NewModule("top")
	a := m.AddInput("a", 4)
	b := m.AddInput("b", 4)
	y := m.AddOutput("y", 4)
	add := m.AddCell("add", "$add")
	add.SetParam("A_SIGNED", ConstFromInt(1, 32))
	add.SetParam("B_SIGNED", ConstFromInt(1, 32))
	add.SetPort("A", WireSig(a))
	add.SetPort("B", WireSig(b))
	add.SetPort("Y", WireSig(y))
	//
	require.Equal(t, 0, AssertAdd(m, false))
	require.Equal(t, 1, AssertAdd(m, true))
	require.Len(t, findCells(m, "$assert"), 1)
	require.Len(t, findCells(m, "$eq"), 1)
	require.Len(t, findCells(m, "$ne"), 1)
	require.Len(t, findCells(m, "$logic_not"), 1)
	// Sign bits are compared
	eq := findCells(m, "$eq")[0]
	require.Equal(t, WireSlice(a, 3, 1), eq.Port("A"))
	require.Equal(t, WireSlice(b, 3, 1), eq.Port("B"))
}

func findCells(m *Module, kind string) []*Cell {
	var cells []*Cell
	//
	for _, c := range m.Cells() {
		if c.Type == kind {
			cells = append(cells, c)
		}
	}
	//
	return cells
}
