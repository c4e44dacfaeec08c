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
	log "github.com/sirupsen/logrus"
)

// AssertAdd instruments a module with verification obligations.  Every public
// wire carrying both a left_bound and a right_bound attribute is checked to lie
// within those bounds: an $assume is added for input wires, and an $assert for
// all others.  The comparison is signed if either bound is negative.  When
// overflow is set, every $add cell additionally receives an $assert that its
// result does not overflow.  The number of obligations added is returned.
func AssertAdd(module *Module, overflow bool) int {
	var (
		inputs []*Wire
		others []*Wire
		adds   []*Cell
		count  int
	)
	// Snapshot wires and cells before anything is added.
	for _, w := range module.Wires() {
		if !w.IsPublic() {
			continue
		} else if w.PortInput {
			inputs = append(inputs, w)
		} else {
			others = append(others, w)
		}
	}
	//
	for _, c := range module.Cells() {
		if c.Type == "$add" {
			adds = append(adds, c)
		}
	}
	//
	for _, w := range inputs {
		if addBoundCheck(module, w, module.AddAssume) {
			count++
		}
	}
	//
	for _, w := range others {
		if addBoundCheck(module, w, module.AddAssert) {
			count++
		}
	}
	//
	if overflow {
		for _, c := range adds {
			addOverflowCheck(module, c)
			count++
		}
	}
	//
	return count
}

func addBoundCheck(module *Module, wire *Wire, addFn func(SigSpec, SigSpec) *Cell) bool {
	left, lok := wire.Attribute(AttrLeftBound)
	right, rok := wire.Attribute(AttrRightBound)
	// Need both bounds
	if !lok || !rok {
		return false
	}
	//
	signed := left.AsInt(true) < 0 || right.AsInt(true) < 0
	sig := WireSig(wire)
	ge := module.Ge(sig, ConstSig(left), signed)
	le := module.Le(sig, ConstSig(right), signed)
	within := module.LogicAnd(ge, le)
	cell := addFn(within, ConstSig(NewConst(S1)))
	//
	copySrc(wire.Attributes, cell)
	//
	log.Debugf("added bound check %s for wire %s.%s", cell.Name, module.Name, wire.Name)
	//
	return true
}

func addOverflowCheck(module *Module, add *Cell) {
	var (
		a, b, y  = add.Port("A"), add.Port("B"), add.Port("Y")
		asign, _ = add.Param("A_SIGNED")
		bsign, _ = add.Param("B_SIGNED")
		check    SigSpec
	)
	//
	if asign.AsInt(false) == 1 && bsign.AsInt(false) == 1 {
		signA := a.Extract(a.Width()-1, 1)
		signB := b.Extract(b.Width()-1, 1)
		signY := y.Extract(y.Width()-1, 1)
		// Overflow iff operands agree on sign, but the result does not.
		sameAB := module.Eq(signA, signB)
		diffAY := module.Ne(signY, signA)
		check = module.LogicNot(module.LogicAnd(sameAB, diffAY))
	} else {
		geA := module.Ge(y, a, false)
		geB := module.Ge(y, b, false)
		check = module.LogicAnd(geA, geB)
	}
	//
	cell := module.AddAssert(check, ConstSig(NewConst(S1)))
	copySrc(add.Attributes, cell)
	//
	log.Debugf("added overflow check %s for cell %s.%s", cell.Name, module.Name, add.Name)
}

func copySrc(attributes map[string]Const, cell *Cell) {
	if src, ok := attributes[AttrSrc]; ok {
		if cell.Attributes == nil {
			cell.Attributes = make(map[string]Const)
		}
		//
		cell.Attributes[AttrSrc] = src
	}
}
