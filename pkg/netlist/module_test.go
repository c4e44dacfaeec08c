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

func Test_Module_Wires(t *testing.T) {
	m := NewModule("top")
	a := m.AddInput("a", 2)
	y := m.AddOutput("y", 2)
	w := m.AddWire("$w", 1)
	//
	require.Equal(t, []*Wire{a, y, w}, m.Wires())
	require.Equal(t, a, m.Wire("a"))
	require.Nil(t, m.Wire("b"))
	require.True(t, a.IsPublic())
	require.False(t, w.IsPublic())
	require.True(t, y.IsPort())
	require.Panics(t, func() { m.AddWire("a", 1) })
}

func Test_Module_Connect(t *testing.T) {
	m := NewModule("top")
	a := m.AddInput("a", 2)
	y := m.AddOutput("y", 2)
	b := m.AddWire("b", 1)
	//
	m.Connect(WireSig(y), WireSig(a))
	require.Len(t, m.Connections(), 1)
	require.Panics(t, func() { m.Connect(WireSig(y), WireSig(b)) })
}

func Test_Module_NewID(t *testing.T) {
	m := NewModule("top")
	m.AddWire("$ge$0", 1)
	// Skips over existing names
	require.Equal(t, "$ge$1", m.NewID("ge"))
	require.Equal(t, "$ge$2", m.NewID("ge"))
}

func Test_Cell_Ordering(t *testing.T) {
	m := NewModule("top")
	a := m.AddInput("a", 1)
	b := m.AddInput("b", 1)
	c := m.AddCell("g", "$and")
	c.SetPort("B", WireSig(b))
	c.SetPort("A", WireSig(a))
	c.SetPort("B", WireSig(a))
	c.SetParam("B_WIDTH", ConstFromInt(1, 32))
	c.SetParam("A_WIDTH", ConstFromInt(1, 32))
	c.SetParam("B_WIDTH", ConstFromInt(2, 32))
	// Connection and parameter order are retained, replacing in place.
	require.Equal(t, []string{"B", "A"}, c.Ports())
	require.Equal(t, WireSig(a), c.Port("B"))
	require.Equal(t, "B_WIDTH", c.Params()[0].Name)
	require.Equal(t, int64(2), c.Params()[0].Value.AsInt(false))
	require.True(t, c.HasPort("A"))
	require.False(t, c.HasPort("Y"))
}

func Test_Design_Modules(t *testing.T) {
	d := NewDesign()
	top, err := d.AddModule("top")
	require.NoError(t, err)
	sub, err := d.AddModule("sub")
	require.NoError(t, err)
	_, err = d.AddModule("top")
	require.Error(t, err)
	require.Equal(t, []*Module{top, sub}, d.Modules())
	require.Equal(t, sub, d.Module("sub"))
}

func Test_CellTypes_Builtin(t *testing.T) {
	ct := BuiltinCellTypes()
	m := NewModule("top")
	and := m.AddCell("g", "$and")
	ff := m.AddCell("r", "$dffe")
	alu := m.AddCell("u", "$alu")
	//
	require.True(t, ct.IsInput(and, "A"))
	require.False(t, ct.IsInput(and, "Y"))
	require.True(t, ct.IsOutput(and, "Y"))
	require.True(t, ct.IsState("$dffe"))
	require.False(t, ct.IsState("$and"))
	require.True(t, ct.IsObligation("$assert"))
	require.True(t, ct.IsClock(ff, "CLK"))
	require.Equal(t, 1, ct.NumOutputs(and))
	require.Equal(t, 3, ct.NumOutputs(alu))
	// Data inputs exclude clocks, in connection order.
	ff.SetPort("EN", ConstSig(NewConst(S1)))
	ff.SetPort("CLK", ConstSig(NewConst(S0)))
	ff.SetPort("D", ConstSig(NewConst(S0)))
	ff.SetPort("Q", ConstSig(NewConst(Sx)))
	require.Equal(t, []string{"EN", "D"}, ct.DataInputs(ff))
	require.Equal(t, []string{"EN", "CLK", "D"}, ct.Inputs(ff))
}

func Test_CellTypes_Explicit(t *testing.T) {
	ct := BuiltinCellTypes()
	d := NewDesign()
	sub, _ := d.AddModule("sub")
	sub.AddInput("i", 1)
	sub.AddOutput("o", 1)
	top, _ := d.AddModule("top")
	inst := top.AddCell("u0", "sub")
	blackbox := top.AddCell("u1", "bb")
	blackbox.SetPort("x", ConstSig(NewConst(S0)))
	blackbox.SetPort("y", ConstSig(NewConst(S0)))
	blackbox.SetPortDir("x", PortInput)
	blackbox.SetPortDir("y", PortOutput)
	// Unknown until registered
	require.False(t, ct.IsOutput(inst, "o"))
	ct.SetupDesign(d)
	require.True(t, ct.IsOutput(inst, "o"))
	require.True(t, ct.IsInput(inst, "i"))
	// Explicit directions
	require.True(t, ct.IsInput(blackbox, "x"))
	require.True(t, ct.IsOutput(blackbox, "y"))
	require.Equal(t, 1, ct.NumOutputs(blackbox))
}

func Test_CellTypes_PortOrder(t *testing.T) {
	ct := BuiltinCellTypes()
	require.Equal(t, []string{"A", "B", "CI", "BI", "X", "Y", "CO"},
		ct.PortOrder("$alu", []string{"Y", "X", "CO", "BI", "CI", "B", "A"}))
	require.Equal(t, []string{"A", "B", "Y", "Z"}, ct.PortOrder("$and", []string{"Z", "Y", "B", "A"}))
	require.Equal(t, []string{"a", "b", "c"}, ct.PortOrder("unknown", []string{"c", "a", "b"}))
}
