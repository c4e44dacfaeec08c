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
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-netgraph/pkg/compute"
	"github.com/consensys/go-netgraph/pkg/graph"
	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/consensys/go-netgraph/pkg/util/source"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// w1 = a & w2 (when loop), otherwise y = a & b
func gateModule(loop bool) *netlist.Module {
	m := netlist.NewModule("gates")
	a := netlist.WireSig(m.AddInput("a", 1))
	b := netlist.WireSig(m.AddInput("b", 1))
	y := netlist.WireSig(m.AddOutput("y", 1))
	//
	and := m.AddCell("$and$1", "$and")
	and.SetParam("Y_WIDTH", netlist.ConstFromInt(1, 32))
	and.SetParam("NAME", netlist.ConstFromString("01"))
	and.SetPort("A", a)
	and.SetPort("Y", y)
	//
	if loop {
		w := netlist.WireSig(m.AddWire("w", 1))
		or := m.AddCell("$or$2", "$or")
		or.SetPort("A", y)
		or.SetPort("B", b)
		or.SetPort("Y", w)
		and.SetPort("B", w)
	} else {
		and.SetPort("B", b)
	}
	//
	return m
}

func convert(t *testing.T, m *netlist.Module) *compute.Result {
	result := compute.Convert(m, netlist.BuiltinCellTypes(), compute.DefaultConfig())
	require.NoError(t, result.Err)
	//
	return &result
}

func Test_Document_FromResult(t *testing.T) {
	doc := FromResult(convert(t, gateModule(false)), true)
	//
	require.NoError(t, doc.Validate())
	require.Equal(t, "gates", doc.Module)
	require.Len(t, doc.Nodes, 3)
	require.Equal(t, compute.TagInput, doc.Nodes[0].Type)
	require.Equal(t, map[string]string{"a": ""}, doc.Nodes[0].Parameters)
	require.Equal(t, "a", doc.Nodes[0].Metadata.Wire)
	require.Empty(t, doc.Nodes[0].Connections)
	//
	and := doc.Nodes[2]
	require.Equal(t, "$and", and.Type)
	require.Equal(t, []uint{0, 1}, and.Connections)
	require.Equal(t, strings.Repeat("0", 31)+"1", and.Parameters["Y_WIDTH"])
	// Looks like bits, so padded
	require.Equal(t, "01 ", and.Parameters["NAME"])
	require.Equal(t, "<$and$1>", and.Metadata.Descriptor)
	//
	n, ok := doc.Output("y")
	require.True(t, ok)
	require.Equal(t, uint(2), n)
	require.Empty(t, doc.FindLoops())
	// Without metadata
	require.Nil(t, FromResult(convert(t, gateModule(false)), false).Nodes[0].Metadata)
}

func Test_Document_Loops(t *testing.T) {
	result := convert(t, gateModule(true))
	doc := FromResult(result, false)
	//
	require.NoError(t, doc.Validate())
	require.Len(t, doc.Loops, 1)
	require.Equal(t, doc.Loops, toSlices(doc.FindLoops()))
}

func Test_Document_Validate(t *testing.T) {
	doc := FromResult(convert(t, gateModule(false)), false)
	doc.Outputs = append(doc.Outputs, Output{"y", 0})
	require.ErrorIs(t, doc.Validate(), ErrDuplicateOutput)
	//
	doc = FromResult(convert(t, gateModule(false)), false)
	doc.Nodes[2].Connections = []uint{0, 3}
	require.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
	//
	doc = FromResult(convert(t, gateModule(false)), false)
	doc.Nodes[1].ID = 7
	require.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
	//
	doc = FromResult(convert(t, gateModule(false)), false)
	doc.Outputs[0].Node = 3
	require.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
}

func Test_JSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	//
	docs := []*Document{
		FromResult(convert(t, gateModule(false)), true),
		FromResult(convert(t, gateModule(true)), true),
	}
	require.NoError(t, WriteJSON(&buf, docs))
	require.Contains(t, buf.String(), "\"modules\"")
	//
	read, err := ReadJSON(&buf)
	require.NoError(t, err)
	//
	if diff := cmp.Diff(docs, read); diff != "" {
		t.Errorf("round trip differs (-written +read):\n%s", diff)
	}
}

func Test_JSON_Invalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{\"modules\": [{\"module\": \"m\", " +
		"\"nodes\": [{\"id\": 0, \"type\": \"x\", \"connections\": [1]}], \"outputs\": []}]}"))
	require.ErrorIs(t, err, ErrInvalidDocument)
	//
	_, err = ReadJSON(strings.NewReader("{\"modules\": [{\"module\": \"m\", " +
		"\"nodes\": [{\"id\": 0, \"type\": \"x\", \"connections\": []}], " +
		"\"outputs\": [{\"name\": \"y\", \"node\": 0}, {\"name\": \"y\", \"node\": 0}]}]}"))
	require.ErrorIs(t, err, ErrDuplicateOutput)
	//
	_, err = ReadJSON(strings.NewReader("{\"modules\": "))
	require.Error(t, err)
}

func Test_SExp_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	//
	docs := []*Document{
		FromResult(convert(t, gateModule(false)), true),
		FromResult(convert(t, gateModule(true)), false),
	}
	require.NoError(t, WriteSExp(&buf, docs, 80))
	require.True(t, strings.HasPrefix(buf.String(), "(module gates\n"))
	//
	read, err := ReadSExp(source.NewSourceFile("test.lisp", buf.Bytes()))
	require.NoError(t, err)
	//
	if diff := cmp.Diff(docs, read); diff != "" {
		t.Errorf("round trip differs (-written +read):\n%s", diff)
	}
}

func Test_SExp_ParamOrder(t *testing.T) {
	var jsonBuf, sexpBuf bytes.Buffer
	// Declared as Y_WIDTH then NAME
	docs := []*Document{FromResult(convert(t, gateModule(false)), false)}
	require.NoError(t, WriteSExp(&sexpBuf, docs, 1000))
	require.NoError(t, WriteJSON(&jsonBuf, docs))
	//
	for _, text := range []string{sexpBuf.String(), jsonBuf.String()} {
		name, width := strings.Index(text, "NAME"), strings.Index(text, "Y_WIDTH")
		require.True(t, name >= 0 && width >= 0)
		require.Less(t, name, width)
	}
}

func Test_SExp_Invalid(t *testing.T) {
	for _, text := range []string{
		"(module m (node 0 x [1]))",
		"(module m (node x y []))",
		"(module m (node 0 x [] (colour red)))",
		"(module m (output y 0))",
		"(circuit m)",
		"(module m (node 0 x []",
	} {
		_, err := ReadSExp(source.NewSourceFile("test.lisp", []byte(text)))
		require.Error(t, err, text)
	}
}

func Test_Dump(t *testing.T) {
	var buf bytes.Buffer
	//
	require.NoError(t, Dump(&buf, convert(t, gateModule(false)), DumpOptions{Origins: true}))
	lines := strings.Split(buf.String(), "\n")
	//
	require.Equal(t, "// module gates", lines[0])
	require.Equal(t, "n0 $$input[a] // a", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "   // was #"))
	require.Contains(t, buf.String(), "(n0, n1)\n")
	require.Contains(t, buf.String(), "return n2 as y\n")
	require.NotContains(t, buf.String(), "\033[")
}

func Test_Dump_Loop(t *testing.T) {
	var buf bytes.Buffer
	//
	result := convert(t, gateModule(true))
	require.NoError(t, Dump(&buf, result, DumpOptions{Colour: true}))
	require.Contains(t, buf.String(), "// loop n")
	require.Contains(t, buf.String(), "\033[")
}

func toSlices(loops []graph.Loop) [][]uint {
	var slices [][]uint
	//
	for _, loop := range loops {
		slices = append(slices, loop)
	}
	//
	return slices
}
