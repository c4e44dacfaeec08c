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
	"strings"
)

// State is the value of a single bit within a netlist.
type State byte

const (
	// S0 is logic low.
	S0 State = '0'
	// S1 is logic high.
	S1 State = '1'
	// Sx is an undefined value.
	Sx State = 'x'
	// Sz is high impedance.
	Sz State = 'z'
)

// IsState checks whether a given character denotes a valid bit state.
func IsState(c byte) bool {
	return c == '0' || c == '1' || c == 'x' || c == 'z'
}

// Const is an immutable vector of bit states, as used for constant drivers,
// cell parameters and attributes.  Bits are held least significant first.
// String constants (e.g. some cell parameters) carry the same bit encoding as
// a string of 8-bit characters, but are flagged so they render as text.  Since
// Const holds only a string and a flag, it is comparable and can be used
// directly as (part of) a map key.
type Const struct {
	// bits holds one State character per bit, least significant bit first.
	bits string
	// text indicates this constant originated from a string.
	text bool
}

// NewConst constructs a constant from a given sequence of bit states, least
// significant bit first.
func NewConst(bits ...State) Const {
	var builder strings.Builder
	//
	for _, b := range bits {
		builder.WriteByte(byte(b))
	}
	//
	return Const{builder.String(), false}
}

// ParseConst parses a constant written most significant bit first (e.g.
// "10x1"), as found in netlist files.
func ParseConst(text string) (Const, error) {
	bits := make([]byte, len(text))
	//
	for i := 0; i < len(text); i++ {
		c := text[len(text)-1-i]
		if !IsState(c) {
			return Const{}, fmt.Errorf("invalid bit state '%c' in constant \"%s\"", c, text)
		}
		//
		bits[i] = c
	}
	//
	return Const{string(bits), false}, nil
}

// ConstFromInt constructs a constant of a given width from an integer value,
// using a two's complement representation.
func ConstFromInt(value int64, width int) Const {
	bits := make([]byte, width)
	//
	for i := range width {
		if i < 64 && (value>>i)&1 == 1 {
			bits[i] = byte(S1)
		} else if i >= 64 && value < 0 {
			bits[i] = byte(S1)
		} else {
			bits[i] = byte(S0)
		}
	}
	//
	return Const{string(bits), false}
}

// ConstFromString constructs a string constant, encoding each character using
// eight bits.  The first character of the string is the most significant.
func ConstFromString(text string) Const {
	bits := make([]byte, 0, 8*len(text))
	//
	for i := len(text) - 1; i >= 0; i-- {
		for j := range 8 {
			if (text[i]>>j)&1 == 1 {
				bits = append(bits, byte(S1))
			} else {
				bits = append(bits, byte(S0))
			}
		}
	}
	//
	return Const{string(bits), true}
}

// Width returns the number of bits in this constant.
func (p Const) Width() int {
	return len(p.bits)
}

// IsEmpty checks whether this constant has no bits at all.  Empty constants
// are used for name-only parameters.
func (p Const) IsEmpty() bool {
	return len(p.bits) == 0
}

// Bit returns the ith bit of this constant (counting from the least
// significant bit).
func (p Const) Bit(i int) State {
	return State(p.bits[i])
}

// Extract returns the bits [offset, offset+width) of this constant.
func (p Const) Extract(offset int, width int) Const {
	if offset < 0 || width < 0 || offset+width > len(p.bits) {
		panic(fmt.Sprintf("invalid extract [%d+:%d] from %d-bit constant", offset, width, len(p.bits)))
	}
	//
	return Const{p.bits[offset : offset+width], false}
}

// Append returns the constant formed by placing the given constant above (i.e.
// more significant than) this constant.
func (p Const) Append(other Const) Const {
	return Const{p.bits + other.bits, false}
}

// IsFullyDef checks whether every bit of this constant is either 0 or 1.
func (p Const) IsFullyDef() bool {
	for i := 0; i < len(p.bits); i++ {
		if p.bits[i] != byte(S0) && p.bits[i] != byte(S1) {
			return false
		}
	}
	//
	return true
}

// IsString checks whether this constant originated from a string.
func (p Const) IsString() bool {
	return p.text
}

// AsInt interprets (at most 64 bits of) this constant as an integer.  Bits
// which are neither 0 nor 1 are read as 0.  When signed, the most significant
// bit is sign extended.
func (p Const) AsInt(signed bool) int64 {
	var value int64
	//
	for i := 0; i < len(p.bits) && i < 64; i++ {
		if p.bits[i] == byte(S1) {
			value |= 1 << i
		}
	}
	// Sign extend
	if signed && len(p.bits) > 0 && len(p.bits) < 64 && p.bits[len(p.bits)-1] == byte(S1) {
		value |= -1 << len(p.bits)
	}
	//
	return value
}

// AsString decodes this constant as a string of 8-bit characters.
func (p Const) AsString() string {
	var (
		n     = (len(p.bits) + 7) / 8
		chars = make([]byte, n)
	)
	//
	for i := 0; i < len(p.bits); i++ {
		if p.bits[i] == byte(S1) {
			chars[n-1-i/8] |= 1 << (i % 8)
		}
	}
	//
	return string(chars)
}

// Bits returns the bits of this constant most significant first, which is the
// way they are written in netlist files.
func (p Const) Bits() string {
	bits := []byte(p.bits)
	//
	for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
		bits[i], bits[j] = bits[j], bits[i]
	}
	//
	return string(bits)
}

func (p Const) String() string {
	if p.text {
		return fmt.Sprintf("\"%s\"", p.AsString())
	}
	//
	return fmt.Sprintf("%d'%s", len(p.bits), p.Bits())
}

// ConstFromText interprets the textual value of a parameter or attribute, as
// found in netlist files.  Text consisting solely of bit states is read as a
// bit string (most significant first), whilst anything else is a string
// constant.  A single trailing space marks a string which would otherwise be
// read as bits, and is removed.
func ConstFromText(text string) Const {
	if text != "" && strings.Trim(text, "01xz") == "" {
		c, _ := ParseConst(text)
		return c
	} else if n := len(text); n > 1 && text[n-1] == ' ' && strings.Trim(text[:n-1], "01xz") == "" {
		return ConstFromString(text[:n-1])
	}
	//
	return ConstFromString(text)
}
