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

import "strings"

// Well-known attribute names.
const (
	// AttrKeep marks a wire whose name should survive into the compute graph.
	AttrKeep = "keep"
	// AttrSrc records the source location of a wire or cell.
	AttrSrc = "src"
	// AttrLeftBound is the lower bound of a bounded wire (see AssertAdd).
	AttrLeftBound = "left_bound"
	// AttrRightBound is the upper bound of a bounded wire (see AssertAdd).
	AttrRightBound = "right_bound"
)

// Wire is a named, fixed-width signal within a module.  Wires can additionally
// be module ports.
type Wire struct {
	// Name of this wire, unique within its module.
	Name string
	// Width of this wire in bits.
	Width int
	// PortInput indicates this wire is an input port.
	PortInput bool
	// PortOutput indicates this wire is an output port.
	PortOutput bool
	// Attributes attached to this wire.
	Attributes map[string]Const
}

// IsPublic checks whether this wire has a user-visible name.  Names generated
// by tools start with '$'.
func (p *Wire) IsPublic() bool {
	return !strings.HasPrefix(p.Name, "$")
}

// IsPort checks whether this wire is a port of its module.
func (p *Wire) IsPort() bool {
	return p.PortInput || p.PortOutput
}

// Keep checks whether this wire carries a (non-zero) keep attribute.
func (p *Wire) Keep() bool {
	if v, ok := p.Attributes[AttrKeep]; ok {
		return v.AsInt(false) != 0 || v.IsString()
	}
	//
	return false
}

// Attribute returns the named attribute of this wire, if present.
func (p *Wire) Attribute(name string) (Const, bool) {
	v, ok := p.Attributes[name]
	return v, ok
}

// SetAttribute sets the named attribute of this wire.
func (p *Wire) SetAttribute(name string, value Const) {
	if p.Attributes == nil {
		p.Attributes = make(map[string]Const)
	}
	//
	p.Attributes[name] = value
}

func (p *Wire) String() string {
	return p.Name
}
