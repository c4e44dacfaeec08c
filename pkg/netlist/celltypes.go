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
	"slices"
	"strings"
)

// CellType describes the ports of a given kind of cell.
type CellType struct {
	// Name of this cell type (e.g. "$and").
	Name string
	// Inputs lists the input ports of this cell type.
	Inputs []string
	// Outputs lists the output ports of this cell type.
	Outputs []string
	// Clocks lists those inputs which are clocks (state cells only).  Clock
	// inputs are not considered data inputs.
	Clocks []string
	// State indicates this cell type holds state (e.g. a flip-flop).
	State bool
	// Obligation indicates this cell type is a verification obligation (e.g. an
	// assertion).
	Obligation bool
}

// CellTypes is a table of known cell types, used to determine the direction of
// cell ports.
type CellTypes struct {
	types map[string]*CellType
}

// NewCellTypes constructs an empty cell type table.
func NewCellTypes() *CellTypes {
	return &CellTypes{make(map[string]*CellType)}
}

// BuiltinCellTypes constructs a cell type table covering the internal cell
// library.
func BuiltinCellTypes() *CellTypes {
	ct := NewCellTypes()
	ct.SetupInternal()
	//
	return ct
}

// Add registers a cell type, replacing any existing type of the same name.
func (p *CellTypes) Add(ct CellType) {
	p.types[ct.Name] = &ct
}

// Lookup returns the cell type of a given name, if known.
func (p *CellTypes) Lookup(name string) (*CellType, bool) {
	ct, ok := p.types[name]
	return ct, ok
}

// SetupDesign registers every module of a design as a cell type, such that
// submodule instances have known port directions.
func (p *CellTypes) SetupDesign(design *Design) {
	for _, m := range design.Modules() {
		var inputs, outputs []string
		//
		for _, w := range m.Wires() {
			if w.PortInput {
				inputs = append(inputs, w.Name)
			}
			//
			if w.PortOutput {
				outputs = append(outputs, w.Name)
			}
		}
		//
		p.Add(CellType{Name: m.Name, Inputs: inputs, Outputs: outputs})
	}
}

// SetupInternal registers the internal (word-level and gate-level) cell
// library.
func (p *CellTypes) SetupInternal() {
	unary := []string{"$not", "$pos", "$neg", "$reduce_and", "$reduce_or", "$reduce_xor", "$reduce_xnor",
		"$reduce_bool", "$logic_not", "$slice", "$lut", "$sop", "$_NOT_", "$_BUF_"}
	binary := []string{"$and", "$or", "$xor", "$xnor", "$shl", "$shr", "$sshl", "$sshr", "$shift", "$shiftx",
		"$lt", "$le", "$eq", "$ne", "$eqx", "$nex", "$ge", "$gt", "$add", "$sub", "$mul", "$div", "$mod",
		"$divfloor", "$modfloor", "$pow", "$logic_and", "$logic_or", "$concat", "$bweqx", "$macc", "$equiv",
		"$_AND_", "$_NAND_", "$_OR_", "$_NOR_", "$_XOR_", "$_XNOR_", "$_ANDNOT_", "$_ORNOT_"}
	//
	for _, name := range unary {
		p.Add(CellType{Name: name, Inputs: []string{"A"}, Outputs: []string{"Y"}})
	}
	//
	for _, name := range binary {
		p.Add(CellType{Name: name, Inputs: []string{"A", "B"}, Outputs: []string{"Y"}})
	}
	//
	for _, name := range []string{"$mux", "$pmux", "$bwmux", "$_MUX_", "$_NMUX_"} {
		p.Add(CellType{Name: name, Inputs: []string{"A", "B", "S"}, Outputs: []string{"Y"}})
	}
	//
	for _, name := range []string{"$bmux", "$demux"} {
		p.Add(CellType{Name: name, Inputs: []string{"A", "S"}, Outputs: []string{"Y"}})
	}
	//
	p.Add(CellType{Name: "$tribuf", Inputs: []string{"A", "EN"}, Outputs: []string{"Y"}})
	p.Add(CellType{Name: "$fa", Inputs: []string{"A", "B", "C"}, Outputs: []string{"X", "Y"}})
	p.Add(CellType{Name: "$lcu", Inputs: []string{"P", "G", "CI"}, Outputs: []string{"CO"}})
	p.Add(CellType{Name: "$alu", Inputs: []string{"A", "B", "CI", "BI"}, Outputs: []string{"X", "Y", "CO"}})
	// Sources
	for _, name := range []string{"$anyconst", "$anyseq", "$allconst", "$allseq", "$initstate"} {
		p.Add(CellType{Name: name, Outputs: []string{"Y"}})
	}
	// Verification obligations
	for _, name := range []string{"$assert", "$assume", "$cover", "$live", "$fair"} {
		p.Add(CellType{Name: name, Inputs: []string{"A", "EN"}, Obligation: true})
	}
	//
	p.Add(CellType{Name: "$check", Inputs: []string{"A", "EN", "ARGS", "TRG"}, Obligation: true})
	// State holding elements
	p.addState("$ff", nil, "D")
	p.addState("$dff", []string{"CLK"}, "D")
	p.addState("$dffe", []string{"CLK"}, "D", "EN")
	p.addState("$adff", []string{"CLK"}, "ARST", "D")
	p.addState("$adffe", []string{"CLK"}, "ARST", "D", "EN")
	p.addState("$sdff", []string{"CLK"}, "SRST", "D")
	p.addState("$sdffe", []string{"CLK"}, "SRST", "D", "EN")
	p.addState("$sdffce", []string{"CLK"}, "SRST", "D", "EN")
	p.addState("$aldff", []string{"CLK"}, "ALOAD", "AD", "D")
	p.addState("$aldffe", []string{"CLK"}, "ALOAD", "AD", "D", "EN")
	p.addState("$dffsr", []string{"CLK"}, "SET", "CLR", "D")
	p.addState("$dffsre", []string{"CLK"}, "SET", "CLR", "D", "EN")
	p.addState("$dlatch", nil, "EN", "D")
	p.addState("$adlatch", nil, "EN", "ARST", "D")
	p.addState("$dlatchsr", nil, "EN", "SET", "CLR", "D")
	p.addState("$sr", nil, "SET", "CLR")
	p.addState("$_FF_", nil, "D")
	p.addState("$_DFF_P_", []string{"C"}, "D")
	p.addState("$_DFF_N_", []string{"C"}, "D")
	p.addState("$_DFFE_PP_", []string{"C"}, "D", "E")
}

func (p *CellTypes) addState(name string, clocks []string, inputs ...string) {
	p.Add(CellType{
		Name:    name,
		Inputs:  append(slices.Clone(clocks), inputs...),
		Outputs: []string{"Q"},
		Clocks:  clocks,
		State:   true,
	})
}

// IsInput checks whether a given port of a given cell is read by that cell.
// An explicit port direction on the cell takes precedence over the table.
func (p *CellTypes) IsInput(cell *Cell, port string) bool {
	switch cell.PortDir(port) {
	case PortInput, PortInOut:
		return true
	case PortOutput:
		return false
	}
	//
	if ct, ok := p.types[cell.Type]; ok {
		return slices.Contains(ct.Inputs, port)
	}
	//
	return false
}

// IsOutput checks whether a given port of a given cell is driven by that cell.
// An explicit port direction on the cell takes precedence over the table.
func (p *CellTypes) IsOutput(cell *Cell, port string) bool {
	switch cell.PortDir(port) {
	case PortOutput, PortInOut:
		return true
	case PortInput:
		return false
	}
	//
	if ct, ok := p.types[cell.Type]; ok {
		return slices.Contains(ct.Outputs, port)
	}
	//
	return false
}

// IsState checks whether a given cell type holds state.
func (p *CellTypes) IsState(kind string) bool {
	ct, ok := p.types[kind]
	return ok && ct.State
}

// IsObligation checks whether a given cell type is a verification obligation.
func (p *CellTypes) IsObligation(kind string) bool {
	ct, ok := p.types[kind]
	return ok && ct.Obligation
}

// IsClock checks whether a given port of a given cell is a clock input.
func (p *CellTypes) IsClock(cell *Cell, port string) bool {
	ct, ok := p.types[cell.Type]
	return ok && slices.Contains(ct.Clocks, port)
}

// NumOutputs returns the number of output ports of a given cell.  For known
// cell types this is determined by the table (regardless of which outputs are
// actually connected), otherwise by the explicit directions of its connected
// ports.
func (p *CellTypes) NumOutputs(cell *Cell) int {
	if ct, ok := p.types[cell.Type]; ok {
		return len(ct.Outputs)
	}
	//
	count := 0
	//
	for _, port := range cell.Ports() {
		if p.IsOutput(cell, port) {
			count++
		}
	}
	//
	return count
}

// Inputs returns the connected input ports of a given cell, in connection
// order.
func (p *CellTypes) Inputs(cell *Cell) []string {
	var ports []string
	//
	for _, port := range cell.Ports() {
		if p.IsInput(cell, port) {
			ports = append(ports, port)
		}
	}
	//
	return ports
}

// DataInputs returns the connected input ports of a given cell which are not
// clocks, in connection order.
func (p *CellTypes) DataInputs(cell *Cell) []string {
	var ports []string
	//
	for _, port := range cell.Ports() {
		if p.IsInput(cell, port) && !p.IsClock(cell, port) {
			ports = append(ports, port)
		}
	}
	//
	return ports
}

// PortOrder sorts the ports of a cell of a given type into a canonical order.
// For known cell types this is the order of the table (inputs, then outputs),
// with any other ports following in alphabetical order.  This is used by
// frontends whose input formats do not preserve the order of connections.
func (p *CellTypes) PortOrder(kind string, ports []string) []string {
	var (
		sorted = slices.Clone(ports)
		known  []string
	)
	//
	if ct, ok := p.types[kind]; ok {
		known = append(slices.Clone(ct.Inputs), ct.Outputs...)
	}
	//
	rank := func(port string) int {
		if i := slices.Index(known, port); i >= 0 {
			return i
		}
		//
		return len(known)
	}
	//
	slices.SortFunc(sorted, func(l, r string) int {
		if c := rank(l) - rank(r); c != 0 {
			return c
		}
		//
		return strings.Compare(l, r)
	})
	//
	return sorted
}
