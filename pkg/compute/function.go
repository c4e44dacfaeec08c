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
package compute

import (
	"fmt"
	"strings"

	"github.com/consensys/go-netgraph/pkg/netlist"
)

// Function tags for nodes which do not correspond to a cell.  Nodes for cells
// are tagged with the cell's type.
const (
	// TagPending marks a node whose descriptor has not been processed yet.
	TagPending = "$$pending"
	// TagConcat joins its arguments, least significant first.
	TagConcat = "$$concat"
	// TagInput reads a module input, named by its (only) parameter.
	TagInput = "$$input"
	// TagBuf passes its (only) argument through unchanged.
	TagBuf = "$$buf"
	// TagSlice extracts the bits [offset, offset+width) of its argument.
	TagSlice = "$$slice"
	// TagState reads the current value of a state holding cell, named by its
	// (only) parameter.
	TagState = "$$state"
	// TagCellOutput selects an output port (named by its parameter) of a cell
	// with several outputs.
	TagCellOutput = "$$cell_output"
	// TagConst is a constant, given by its value parameter.
	TagConst = "$$const"
	// TagMulti merges several drivers of the same bits.
	TagMulti = "$$multi"
	// TagUndriven is the value of bits with no driver.
	TagUndriven = "$$undriven"
)

// Function identifies the operation performed by a node, along with its static
// parameters.  Parameters retain their order, and a parameter with an empty
// value is a name-only parameter.
type Function struct {
	Name   string
	Params []netlist.Param
}

// Fn constructs a function with a given name and parameters.
func Fn(name string, params ...netlist.Param) Function {
	return Function{name, params}
}

// Param returns the value of a given parameter, if present.
func (p Function) Param(name string) (netlist.Const, bool) {
	for _, param := range p.Params {
		if param.Name == name {
			return param.Value, true
		}
	}
	//
	return netlist.Const{}, false
}

// IsCell checks whether this function evaluates a cell, rather than being one
// of the builtin tags.
func (p Function) IsCell() bool {
	return !strings.HasPrefix(p.Name, "$$")
}

// String renders this function as, for example, "$and[A_WIDTH=32'…][B_SIGNED]".
func (p Function) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Name)
	//
	for _, param := range p.Params {
		if param.Value.IsEmpty() {
			builder.WriteString(fmt.Sprintf("[%s]", param.Name))
		} else {
			builder.WriteString(fmt.Sprintf("[%s=%s]", param.Name, param.Value.String()))
		}
	}
	//
	return builder.String()
}

// Name-only parameter
func flag(name string) netlist.Param {
	return netlist.Param{Name: name, Value: netlist.Const{}}
}

// Integer-valued parameter
func intParam(name string, value int) netlist.Param {
	return netlist.Param{Name: name, Value: netlist.ConstFromInt(int64(value), 32)}
}
