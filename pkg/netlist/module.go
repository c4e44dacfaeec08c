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
	"fmt"
)

// Connection represents a continuous assignment "Lhs = Rhs" within a module.
// Both sides must have the same width.
type Connection struct {
	Lhs SigSpec
	Rhs SigSpec
}

// Module is a single netlist module: a set of wires, a set of cells and a set
// of continuous assignments.  Wires and cells are held in the order they were
// added, which determines the order in which they are enumerated everywhere
// else.
type Module struct {
	// Name of this module.
	Name string
	// Wires in declaration order.
	wires []*Wire
	// Lookup from wire names to wires.
	wireMap map[string]*Wire
	// Cells in declaration order.
	cells []*Cell
	// Lookup from cell names to cells.
	cellMap map[string]*Cell
	// Continuous assignments, in declaration order.
	connections []Connection
	// Counter used to generate fresh names.
	nextID uint
}

// NewModule constructs an empty module with a given name.
func NewModule(name string) *Module {
	return &Module{
		Name:    name,
		wireMap: make(map[string]*Wire),
		cellMap: make(map[string]*Cell),
	}
}

// AddWire adds a new wire of a given width to this module.  This panics if a
// wire of the same name already exists, since the caller is expected to have
// checked.
func (p *Module) AddWire(name string, width int) *Wire {
	if _, ok := p.wireMap[name]; ok {
		panic(fmt.Sprintf("duplicate wire %s in module %s", name, p.Name))
	} else if width < 0 {
		panic(fmt.Sprintf("wire %s has negative width", name))
	}
	//
	wire := &Wire{Name: name, Width: width}
	p.wires = append(p.wires, wire)
	p.wireMap[name] = wire
	//
	return wire
}

// AddInput adds a new input port of a given width to this module.
func (p *Module) AddInput(name string, width int) *Wire {
	wire := p.AddWire(name, width)
	wire.PortInput = true
	//
	return wire
}

// AddOutput adds a new output port of a given width to this module.
func (p *Module) AddOutput(name string, width int) *Wire {
	wire := p.AddWire(name, width)
	wire.PortOutput = true
	//
	return wire
}

// Wire returns the wire with the given name, or nil.
func (p *Module) Wire(name string) *Wire {
	return p.wireMap[name]
}

// Wires returns all wires of this module in declaration order.
func (p *Module) Wires() []*Wire {
	return p.wires
}

// AddCell adds a new cell of a given type to this module.  This panics if a
// cell of the same name already exists.
func (p *Module) AddCell(name string, kind string) *Cell {
	if _, ok := p.cellMap[name]; ok {
		panic(fmt.Sprintf("duplicate cell %s in module %s", name, p.Name))
	}
	//
	cell := &Cell{Name: name, Type: kind}
	p.cells = append(p.cells, cell)
	p.cellMap[name] = cell
	//
	return cell
}

// Cell returns the cell with the given name, or nil.
func (p *Module) Cell(name string) *Cell {
	return p.cellMap[name]
}

// Cells returns all cells of this module in declaration order.
func (p *Module) Cells() []*Cell {
	return p.cells
}

// Connect adds a continuous assignment "lhs = rhs" to this module.
func (p *Module) Connect(lhs SigSpec, rhs SigSpec) {
	if lhs.Width() != rhs.Width() {
		panic(fmt.Sprintf("width mismatch in assignment %s = %s (%d vs %d)", lhs, rhs, lhs.Width(), rhs.Width()))
	}
	//
	p.connections = append(p.connections, Connection{lhs, rhs})
}

// Connections returns all continuous assignments of this module.
func (p *Module) Connections() []Connection {
	return p.connections
}

// NewID generates a fresh internal name (i.e. one starting with '$') which
// does not clash with any wire or cell in this module.
func (p *Module) NewID(prefix string) string {
	for {
		name := fmt.Sprintf("$%s$%d", prefix, p.nextID)
		p.nextID++
		//
		if p.wireMap[name] == nil && p.cellMap[name] == nil {
			return name
		}
	}
}

// ============================================================================
// Cell construction helpers
// ============================================================================

// Ge adds a $ge cell comparing a >= b, returning its (1-bit) output.
func (p *Module) Ge(a SigSpec, b SigSpec, signed bool) SigSpec {
	return p.compare("$ge", a, b, signed)
}

// Le adds a $le cell comparing a <= b, returning its (1-bit) output.
func (p *Module) Le(a SigSpec, b SigSpec, signed bool) SigSpec {
	return p.compare("$le", a, b, signed)
}

// Eq adds an $eq cell comparing a == b, returning its (1-bit) output.
func (p *Module) Eq(a SigSpec, b SigSpec) SigSpec {
	return p.compare("$eq", a, b, false)
}

// Ne adds a $ne cell comparing a != b, returning its (1-bit) output.
func (p *Module) Ne(a SigSpec, b SigSpec) SigSpec {
	return p.compare("$ne", a, b, false)
}

// LogicAnd adds a $logic_and cell, returning its (1-bit) output.
func (p *Module) LogicAnd(a SigSpec, b SigSpec) SigSpec {
	return p.compare("$logic_and", a, b, false)
}

// LogicNot adds a $logic_not cell, returning its (1-bit) output.
func (p *Module) LogicNot(a SigSpec) SigSpec {
	var (
		y    = p.AddWire(p.NewID("logic_not"), 1)
		cell = p.AddCell(p.NewID("logic_not"), "$logic_not")
	)
	//
	cell.SetParam("A_SIGNED", ConstFromInt(0, 32))
	cell.SetParam("A_WIDTH", ConstFromInt(int64(a.Width()), 32))
	cell.SetParam("Y_WIDTH", ConstFromInt(1, 32))
	cell.SetPort("A", a)
	cell.SetPort("Y", WireSig(y))
	//
	return WireSig(y)
}

// AddAssert adds an $assert cell checking a given (1-bit) condition whenever
// the enable signal holds.
func (p *Module) AddAssert(check SigSpec, enable SigSpec) *Cell {
	return p.addObligation("$assert", check, enable)
}

// AddAssume adds an $assume cell constraining a given (1-bit) condition
// whenever the enable signal holds.
func (p *Module) AddAssume(check SigSpec, enable SigSpec) *Cell {
	return p.addObligation("$assume", check, enable)
}

func (p *Module) addObligation(kind string, check SigSpec, enable SigSpec) *Cell {
	cell := p.AddCell(p.NewID(kind[1:]), kind)
	cell.SetPort("A", check)
	cell.SetPort("EN", enable)
	//
	return cell
}

// Add a binary cell with a 1-bit output.
func (p *Module) compare(kind string, a SigSpec, b SigSpec, signed bool) SigSpec {
	var (
		sign = ConstFromInt(0, 32)
		y    = p.AddWire(p.NewID(kind[1:]), 1)
		cell = p.AddCell(p.NewID(kind[1:]), kind)
	)
	//
	if signed {
		sign = ConstFromInt(1, 32)
	}
	//
	cell.SetParam("A_SIGNED", sign)
	cell.SetParam("A_WIDTH", ConstFromInt(int64(a.Width()), 32))
	cell.SetParam("B_SIGNED", sign)
	cell.SetParam("B_WIDTH", ConstFromInt(int64(b.Width()), 32))
	cell.SetParam("Y_WIDTH", ConstFromInt(1, 32))
	cell.SetPort("A", a)
	cell.SetPort("B", b)
	cell.SetPort("Y", WireSig(y))
	//
	return WireSig(y)
}

// ============================================================================
// Design
// ============================================================================

// Design is a collection of modules, held in the order they were added.
type Design struct {
	modules   []*Module
	moduleMap map[string]*Module
}

// NewDesign constructs an empty design.
func NewDesign() *Design {
	return &Design{nil, make(map[string]*Module)}
}

// AddModule adds a new (empty) module to this design, or returns an error if
// a module of that name already exists.
func (p *Design) AddModule(name string) (*Module, error) {
	if _, ok := p.moduleMap[name]; ok {
		return nil, fmt.Errorf("duplicate module %s", name)
	}
	//
	module := NewModule(name)
	p.modules = append(p.modules, module)
	p.moduleMap[name] = module
	//
	return module, nil
}

// Module returns the module with the given name, or nil.
func (p *Design) Module(name string) *Module {
	return p.moduleMap[name]
}

// Modules returns all modules of this design in the order they were added.
func (p *Design) Modules() []*Module {
	return p.modules
}
