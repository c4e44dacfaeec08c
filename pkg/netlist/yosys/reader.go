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
package yosys

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

// Netlist files identify each bit either by a (net) number, or by one of the
// constants "0", "1", "x" or "z".
type rawBit = any

type rawDesign struct {
	Creator string               `json:"creator"`
	Modules map[string]rawModule `json:"modules"`
}

type rawModule struct {
	Attributes map[string]any     `json:"attributes"`
	Ports      map[string]rawPort `json:"ports"`
	Cells      map[string]rawCell `json:"cells"`
	Netnames   map[string]rawNet  `json:"netnames"`
}

type rawPort struct {
	Direction string   `json:"direction"`
	Bits      []rawBit `json:"bits"`
}

type rawCell struct {
	Type           string              `json:"type"`
	Parameters     map[string]any      `json:"parameters"`
	Attributes     map[string]any      `json:"attributes"`
	PortDirections map[string]string   `json:"port_directions"`
	Connections    map[string][]rawBit `json:"connections"`
}

type rawNet struct {
	Bits       []rawBit       `json:"bits"`
	Attributes map[string]any `json:"attributes"`
}

// ReadDesign reads a design written in the JSON netlist format of Yosys.
// Modules, wires and cells are created in name order.  Where several wires
// share a net, one is chosen to carry it (preferring input ports, then output
// ports, then public wires) and the others are assigned from it.  Blackbox
// modules are skipped.
func ReadDesign(in io.Reader) (*netlist.Design, error) {
	var raw rawDesign
	//
	bytes, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	//
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("malformed netlist: %w", err)
	}
	//
	log.Debugf("reading netlist (%s)", raw.Creator)
	//
	design := netlist.NewDesign()
	//
	for _, name := range slices.Sorted(maps.Keys(raw.Modules)) {
		rm := raw.Modules[name]
		//
		if isTrue(rm.Attributes["blackbox"]) {
			log.Debugf("skipping blackbox module %s", name)
			continue
		}
		//
		module, err := design.AddModule(name)
		if err != nil {
			return nil, err
		}
		//
		if err := newModuleReader(module, rm).read(); err != nil {
			return nil, fmt.Errorf("module %s: %w", name, err)
		}
	}
	//
	return design, nil
}

type moduleReader struct {
	module *netlist.Module
	raw    rawModule
	// Wire bit chosen to carry each net.
	nets map[int]netlist.SigBit
}

func newModuleReader(module *netlist.Module, raw rawModule) *moduleReader {
	return &moduleReader{module, raw, make(map[int]netlist.SigBit)}
}

func (p *moduleReader) read() error {
	names := slices.Sorted(maps.Keys(p.raw.Netnames))
	// Ports not listed as nets
	for _, name := range slices.Sorted(maps.Keys(p.raw.Ports)) {
		if _, ok := p.raw.Netnames[name]; !ok {
			names = append(names, name)
		}
	}
	// Declare wires
	for _, name := range names {
		if err := p.declareWire(name); err != nil {
			return err
		}
	}
	// Allocate nets, in order of preference
	slices.SortStableFunc(names, func(l, r string) int { return p.rank(l) - p.rank(r) })
	//
	for _, name := range names {
		wire := p.module.Wire(name)
		//
		for i, bit := range p.bitsOf(name) {
			if n, ok := bit.(float64); ok {
				if _, ok := p.nets[int(n)]; !ok {
					p.nets[int(n)] = netlist.SigBit{Wire: wire, Offset: i}
				}
			}
		}
	}
	// Assign wires which do not carry their own nets
	for _, name := range names {
		if err := p.assignWire(name); err != nil {
			return err
		}
	}
	//
	for _, name := range slices.Sorted(maps.Keys(p.raw.Cells)) {
		if err := p.readCell(name, p.raw.Cells[name]); err != nil {
			return fmt.Errorf("cell %s: %w", name, err)
		}
	}
	//
	return nil
}

func (p *moduleReader) declareWire(name string) error {
	bits := p.bitsOf(name)
	wire := p.module.AddWire(name, len(bits))
	//
	if port, ok := p.raw.Ports[name]; ok {
		switch port.Direction {
		case "input":
			wire.PortInput = true
		case "output":
			wire.PortOutput = true
		case "inout":
			wire.PortInput, wire.PortOutput = true, true
		default:
			return fmt.Errorf("port %s has unknown direction \"%s\"", name, port.Direction)
		}
	}
	//
	if net, ok := p.raw.Netnames[name]; ok {
		for _, key := range slices.Sorted(maps.Keys(net.Attributes)) {
			value, err := toConst(net.Attributes[key])
			if err != nil {
				return fmt.Errorf("wire %s: attribute %s: %w", name, key, err)
			}
			//
			wire.SetAttribute(key, value)
		}
	}
	//
	return nil
}

// Connect any bits of a given wire which do not carry their own net to the
// bits which do.
func (p *moduleReader) assignWire(name string) error {
	var (
		wire     = p.module.Wire(name)
		lhs, rhs []netlist.SigBit
	)
	//
	for i, raw := range p.bitsOf(name) {
		bit, err := p.toBit(raw)
		//
		if err != nil {
			return fmt.Errorf("wire %s: %w", name, err)
		} else if bit.Wire == wire && bit.Offset == i {
			continue
		}
		//
		lhs = append(lhs, netlist.SigBit{Wire: wire, Offset: i})
		rhs = append(rhs, bit)
	}
	//
	if len(lhs) > 0 {
		p.module.Connect(netlist.BitsSig(lhs...), netlist.BitsSig(rhs...))
	}
	//
	return nil
}

func (p *moduleReader) readCell(name string, raw rawCell) error {
	cell := p.module.AddCell(name, raw.Type)
	//
	for _, key := range slices.Sorted(maps.Keys(raw.Parameters)) {
		value, err := toConst(raw.Parameters[key])
		if err != nil {
			return fmt.Errorf("parameter %s: %w", key, err)
		}
		//
		cell.SetParam(key, value)
	}
	//
	for _, key := range slices.Sorted(maps.Keys(raw.Attributes)) {
		value, err := toConst(raw.Attributes[key])
		if err != nil {
			return fmt.Errorf("attribute %s: %w", key, err)
		}
		//
		if cell.Attributes == nil {
			cell.Attributes = make(map[string]netlist.Const)
		}
		//
		cell.Attributes[key] = value
	}
	//
	ports := builtin.PortOrder(raw.Type, slices.Collect(maps.Keys(raw.Connections)))
	//
	for _, port := range ports {
		var bits []netlist.SigBit
		//
		for _, rb := range raw.Connections[port] {
			bit, err := p.toBit(rb)
			if err != nil {
				return fmt.Errorf("port %s: %w", port, err)
			}
			//
			bits = append(bits, bit)
		}
		//
		cell.SetPort(port, netlist.BitsSig(bits...))
		//
		if dir, ok := raw.PortDirections[port]; ok {
			pd, err := netlist.ParsePortDir(dir)
			if err != nil {
				return fmt.Errorf("port %s: %w", port, err)
			}
			//
			cell.SetPortDir(port, pd)
		}
	}
	//
	return nil
}

// Determine the preference for a given wire to carry its nets (lower is
// better).
func (p *moduleReader) rank(name string) int {
	wire := p.module.Wire(name)
	//
	switch {
	case wire.PortInput:
		return 0
	case wire.PortOutput:
		return 1
	case wire.IsPublic():
		return 2
	default:
		return 3
	}
}

func (p *moduleReader) bitsOf(name string) []rawBit {
	if net, ok := p.raw.Netnames[name]; ok {
		return net.Bits
	}
	//
	return p.raw.Ports[name].Bits
}

// Translate a raw bit into a signal bit.  Nets which are not carried by any
// wire are given a fresh (internal) wire of their own.
func (p *moduleReader) toBit(raw rawBit) (netlist.SigBit, error) {
	switch b := raw.(type) {
	case float64:
		n := int(b)
		//
		if bit, ok := p.nets[n]; ok {
			return bit, nil
		}
		//
		wire := p.module.AddWire(p.module.NewID(fmt.Sprintf("net%d", n)), 1)
		p.nets[n] = netlist.SigBit{Wire: wire, Offset: 0}
		//
		return p.nets[n], nil
	case string:
		if len(b) == 1 && netlist.IsState(b[0]) {
			return netlist.SigBit{Data: netlist.State(b[0])}, nil
		}
	}
	//
	return netlist.SigBit{}, fmt.Errorf("invalid bit %v", raw)
}

// Translate the value of a parameter or attribute into a constant.  Values are
// normally given as text, though some writers use plain numbers.
func toConst(raw any) (netlist.Const, error) {
	switch v := raw.(type) {
	case string:
		return netlist.ConstFromText(v), nil
	case float64:
		return netlist.ConstFromInt(int64(v), 32), nil
	}
	//
	return netlist.Const{}, fmt.Errorf("invalid value %v", raw)
}

func isTrue(raw any) bool {
	switch v := raw.(type) {
	case float64:
		return v != 0
	case string:
		return strings.Contains(v, "1")
	}
	//
	return false
}

// Used only to order the ports of cells.
var builtin = netlist.BuiltinCellTypes()
