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

import "fmt"

// PortDir describes the direction of a cell port.
type PortDir uint8

const (
	// PortUnknown indicates the direction of a port is not known.
	PortUnknown PortDir = iota
	// PortInput is a port read by the cell.
	PortInput
	// PortOutput is a port driven by the cell.
	PortOutput
	// PortInOut is a bidirectional port.
	PortInOut
)

// ParsePortDir converts the textual direction of a port, as found in netlist
// files, into a PortDir.
func ParsePortDir(dir string) (PortDir, error) {
	switch dir {
	case "input":
		return PortInput, nil
	case "output":
		return PortOutput, nil
	case "inout":
		return PortInOut, nil
	default:
		return PortUnknown, fmt.Errorf("unknown port direction \"%s\"", dir)
	}
}

func (p PortDir) String() string {
	switch p {
	case PortInput:
		return "input"
	case PortOutput:
		return "output"
	case PortInOut:
		return "inout"
	default:
		return "unknown"
	}
}

// Param is a single named cell parameter.
type Param struct {
	Name  string
	Value Const
}

// Cell is an instance of some primitive operation (or submodule) within a
// module.  Parameters and port connections retain the order in which they were
// added, which is the order in which operands are presented downstream.
type Cell struct {
	// Name of this cell, unique within its module.
	Name string
	// Type of this cell (e.g. "$and", "$dff").
	Type string
	// Attributes attached to this cell.
	Attributes map[string]Const
	// Parameters in declaration order.
	params []Param
	// Port names in connection order.
	ports []string
	// Connected signal for each port.
	connections map[string]SigSpec
	// Explicit port directions (if known).
	directions map[string]PortDir
}

// SetParam sets (or replaces) a given parameter of this cell.
func (p *Cell) SetParam(name string, value Const) {
	for i, param := range p.params {
		if param.Name == name {
			p.params[i].Value = value
			return
		}
	}
	//
	p.params = append(p.params, Param{name, value})
}

// Param returns the value of a given parameter of this cell, if present.
func (p *Cell) Param(name string) (Const, bool) {
	for _, param := range p.params {
		if param.Name == name {
			return param.Value, true
		}
	}
	//
	return Const{}, false
}

// Params returns the parameters of this cell in declaration order.
func (p *Cell) Params() []Param {
	return p.params
}

// SetPort connects a given port of this cell to a signal, replacing any
// existing connection.
func (p *Cell) SetPort(port string, sig SigSpec) {
	if p.connections == nil {
		p.connections = make(map[string]SigSpec)
	}
	//
	if _, ok := p.connections[port]; !ok {
		p.ports = append(p.ports, port)
	}
	//
	p.connections[port] = sig
}

// HasPort checks whether a given port of this cell is connected.
func (p *Cell) HasPort(port string) bool {
	_, ok := p.connections[port]
	return ok
}

// Port returns the signal connected to a given port (or the empty signal).
func (p *Cell) Port(port string) SigSpec {
	return p.connections[port]
}

// Ports returns the connected port names of this cell in connection order.
func (p *Cell) Ports() []string {
	return p.ports
}

// SetPortDir records the direction of a given port explicitly.  This is
// needed for cells whose type is not known (e.g. submodule instances).
func (p *Cell) SetPortDir(port string, dir PortDir) {
	if p.directions == nil {
		p.directions = make(map[string]PortDir)
	}
	//
	p.directions[port] = dir
}

// PortDir returns the explicit direction of a given port, or PortUnknown.
func (p *Cell) PortDir(port string) PortDir {
	return p.directions[port]
}

func (p *Cell) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Type)
}
