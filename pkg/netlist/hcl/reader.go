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
package hcl

import (
	"fmt"
	"maps"
	"slices"

	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	log "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
)

// hclDesignFile represents the top-level structure of a netlist file for
// decoding.
type hclDesignFile struct {
	Modules []*hclModule `hcl:"module,block"`
}

type hclModule struct {
	Name    string       `hcl:"name,label"`
	Inputs  []*hclWire   `hcl:"input,block"`
	Outputs []*hclWire   `hcl:"output,block"`
	Wires   []*hclWire   `hcl:"wire,block"`
	Cells   []*hclCell   `hcl:"cell,block"`
	Assigns []*hclAssign `hcl:"assign,block"`
}

type hclWire struct {
	Name       string     `hcl:"name,label"`
	Width      *int       `hcl:"width,optional"`
	Keep       bool       `hcl:"keep,optional"`
	Attributes *cty.Value `hcl:"attributes,optional"`
}

type hclCell struct {
	Name        string            `hcl:"name,label"`
	Type        string            `hcl:"type"`
	Parameters  *cty.Value        `hcl:"parameters,optional"`
	Attributes  *cty.Value        `hcl:"attributes,optional"`
	Connections map[string]string `hcl:"connections,optional"`
	Directions  map[string]string `hcl:"directions,optional"`
}

type hclAssign struct {
	Lhs string `hcl:"lhs"`
	Rhs string `hcl:"rhs"`
}

// ReadFile parses and decodes a single netlist file written in HCL.  For
// example:
//
//	module "top" {
//	  input "a" { width = 4 }
//	  output "y" { width = 4 }
//	  cell "inv" {
//	    type        = "$not"
//	    parameters  = { A_WIDTH = 4, Y_WIDTH = 4 }
//	    connections = { A = "a", Y = "y" }
//	  }
//	}
//
// Within each module, inputs are declared first, then outputs, then any other
// wires.  Signals are written in the usual netlist notation (e.g. "a[3:0]" or
// "{a, 2'b01}").
func ReadFile(filePath string) (*netlist.Design, error) {
	log.Debugf("decoding netlist file %s", filePath)
	//
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	//
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", filePath, diags.Error())
	}
	//
	return decode(file, filePath)
}

// ReadBytes parses and decodes netlist source held in memory, using a given
// filename for error reporting.
func ReadBytes(src []byte, filename string) (*netlist.Design, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	//
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", filename, diags.Error())
	}
	//
	return decode(file, filename)
}

func decode(file *hcl.File, filePath string) (*netlist.Design, error) {
	var config hclDesignFile
	//
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", filePath, diags.Error())
	}
	//
	design := netlist.NewDesign()
	//
	for _, m := range config.Modules {
		module, err := design.AddModule(m.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}
		//
		if err := buildModule(module, m); err != nil {
			return nil, fmt.Errorf("%s: module %s: %w", filePath, m.Name, err)
		}
	}
	//
	log.Debugf("decoded %d module(s) from %s", len(config.Modules), filePath)
	//
	return design, nil
}

func buildModule(module *netlist.Module, m *hclModule) error {
	for _, w := range m.Inputs {
		if err := addWire(module, w, true, false); err != nil {
			return err
		}
	}
	//
	for _, w := range m.Outputs {
		if err := addWire(module, w, false, true); err != nil {
			return err
		}
	}
	//
	for _, w := range m.Wires {
		if err := addWire(module, w, false, false); err != nil {
			return err
		}
	}
	//
	for _, c := range m.Cells {
		if err := addCell(module, c); err != nil {
			return fmt.Errorf("cell %s: %w", c.Name, err)
		}
	}
	//
	for i, a := range m.Assigns {
		if err := addAssign(module, a); err != nil {
			return fmt.Errorf("assign #%d: %w", i, err)
		}
	}
	//
	return nil
}

func addWire(module *netlist.Module, w *hclWire, input bool, output bool) error {
	width := 1
	//
	if w.Width != nil {
		width = *w.Width
	}
	//
	if module.Wire(w.Name) != nil {
		return fmt.Errorf("duplicate wire %s", w.Name)
	} else if width < 0 {
		return fmt.Errorf("wire %s has negative width", w.Name)
	}
	//
	wire := module.AddWire(w.Name, width)
	wire.PortInput, wire.PortOutput = input, output
	//
	if w.Keep {
		wire.SetAttribute(netlist.AttrKeep, netlist.ConstFromInt(1, 32))
	}
	//
	attributes, err := toConsts(w.Attributes)
	if err != nil {
		return fmt.Errorf("wire %s: %w", w.Name, err)
	}
	//
	for _, key := range slices.Sorted(maps.Keys(attributes)) {
		wire.SetAttribute(key, attributes[key])
	}
	//
	return nil
}

func addCell(module *netlist.Module, c *hclCell) error {
	if module.Cell(c.Name) != nil {
		return fmt.Errorf("duplicate cell")
	}
	//
	cell := module.AddCell(c.Name, c.Type)
	//
	params, err := toConsts(c.Parameters)
	if err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	//
	for _, key := range slices.Sorted(maps.Keys(params)) {
		cell.SetParam(key, params[key])
	}
	//
	if cell.Attributes, err = toConsts(c.Attributes); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	//
	for _, port := range builtin.PortOrder(c.Type, slices.Collect(maps.Keys(c.Connections))) {
		sig, err := netlist.ParseSigSpec(module, c.Connections[port])
		if err != nil {
			return fmt.Errorf("port %s: %w", port, err)
		}
		//
		cell.SetPort(port, sig)
	}
	//
	for _, port := range slices.Sorted(maps.Keys(c.Directions)) {
		dir, err := netlist.ParsePortDir(c.Directions[port])
		if err != nil {
			return fmt.Errorf("port %s: %w", port, err)
		}
		//
		cell.SetPortDir(port, dir)
	}
	//
	return nil
}

func addAssign(module *netlist.Module, a *hclAssign) error {
	lhs, err := netlist.ParseSigSpec(module, a.Lhs)
	if err != nil {
		return err
	}
	//
	rhs, err := netlist.ParseSigSpec(module, a.Rhs)
	if err != nil {
		return err
	}
	//
	if lhs.Width() != rhs.Width() {
		return fmt.Errorf("width mismatch (%d vs %d)", lhs.Width(), rhs.Width())
	}
	//
	module.Connect(lhs, rhs)
	//
	return nil
}

// Convert an object of parameter (or attribute) values into constants.
func toConsts(value *cty.Value) (map[string]netlist.Const, error) {
	if value == nil || value.IsNull() {
		return nil, nil
	} else if !value.Type().IsObjectType() && !value.Type().IsMapType() {
		return nil, fmt.Errorf("expected object, found %s", value.Type().FriendlyName())
	}
	//
	consts := make(map[string]netlist.Const)
	//
	for it := value.ElementIterator(); it.Next(); {
		key, val := it.Element()
		//
		c, err := toConst(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key.AsString(), err)
		}
		//
		consts[key.AsString()] = c
	}
	//
	return consts, nil
}

// Convert a single value into a constant.  Numbers are 32 bits wide, as
// netlist files conventionally write them.
func toConst(value cty.Value) (netlist.Const, error) {
	if value.IsNull() || !value.IsKnown() || !value.Type().IsPrimitiveType() {
		return netlist.Const{}, fmt.Errorf("unsupported value of type %s", value.Type().FriendlyName())
	}
	//
	switch value.Type() {
	case cty.String:
		return netlist.ConstFromText(value.AsString()), nil
	case cty.Bool:
		if value.True() {
			return netlist.ConstFromInt(1, 1), nil
		}
		//
		return netlist.ConstFromInt(0, 1), nil
	case cty.Number:
		n, accuracy := value.AsBigFloat().Int64()
		if accuracy != 0 {
			return netlist.Const{}, fmt.Errorf("value %s is not an integer", value.AsBigFloat().String())
		}
		//
		return netlist.ConstFromInt(n, 32), nil
	}
	//
	return netlist.Const{}, fmt.Errorf("unsupported value of type %s", value.Type().FriendlyName())
}

// Used only to order the ports of cells.
var builtin = netlist.BuiltinCellTypes()
