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
	"testing"

	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/stretchr/testify/require"
)

const counter = `
module "counter" {
  input "clk" {}
  input "en" {}
  output "count" { width = 4 }

  wire "next" {
    width      = 4
    keep       = true
    attributes = { src = "counter.v:7" }
  }

  cell "inc" {
    type        = "$add"
    parameters  = { A_SIGNED = false, A_WIDTH = 4, B_WIDTH = 4, Y_WIDTH = 4 }
    connections = { Y = "next", B = "4'b0001", A = "count" }
  }

  cell "reg" {
    type        = "$dffe"
    parameters  = { WIDTH = 4, CLK_POLARITY = "1" }
    connections = { Q = "count", EN = "en", D = "next", CLK = "clk" }
    directions  = { Q = "output" }
  }
}

module "pass" {
  input "a" { width = 2 }
  output "y" { width = 2 }

  assign {
    lhs = "y"
    rhs = "{a[0], a[1]}"
  }
}
`

func Test_HCL_Wires(t *testing.T) {
	design := read(t, counter)
	require.Len(t, design.Modules(), 2)
	//
	module := design.Module("counter")
	require.NotNil(t, module)
	// Inputs, then outputs, then wires
	var names []string
	for _, w := range module.Wires() {
		names = append(names, w.Name)
	}
	//
	require.Equal(t, []string{"clk", "en", "count", "next"}, names)
	require.True(t, module.Wire("clk").PortInput)
	require.Equal(t, 1, module.Wire("clk").Width)
	require.True(t, module.Wire("count").PortOutput)
	require.Equal(t, 4, module.Wire("count").Width)
	//
	next := module.Wire("next")
	require.True(t, next.Keep())
	require.False(t, next.IsPort())
	//
	src, ok := next.Attribute("src")
	require.True(t, ok)
	require.Equal(t, "counter.v:7", src.AsString())
}

func Test_HCL_Cells(t *testing.T) {
	module := read(t, counter).Module("counter")
	//
	inc := module.Cell("inc")
	require.Equal(t, "$add", inc.Type)
	require.Equal(t, []string{"A", "B", "Y"}, inc.Ports())
	require.Equal(t, "4'0001", inc.Port("B").String())
	//
	signed, _ := inc.Param("A_SIGNED")
	require.Equal(t, "1'0", signed.String())
	//
	width, _ := inc.Param("Y_WIDTH")
	require.Equal(t, int64(4), width.AsInt(false))
	require.Equal(t, 32, width.Width())
	//
	reg := module.Cell("reg")
	require.Equal(t, []string{"CLK", "D", "EN", "Q"}, reg.Ports())
	require.Equal(t, netlist.PortOutput, reg.PortDir("Q"))
	//
	polarity, _ := reg.Param("CLK_POLARITY")
	require.Equal(t, "1'1", polarity.String())
}

func Test_HCL_Assign(t *testing.T) {
	module := read(t, counter).Module("pass")
	//
	conns := module.Connections()
	require.Len(t, conns, 1)
	require.Equal(t, "y", conns[0].Lhs.String())
	require.Equal(t, "{ a[0] a[1] }", conns[0].Rhs.String())
}

func Test_HCL_Invalid(t *testing.T) {
	checkError(t, `module "m" {`, "failed to parse")
	checkError(t, `module "m" {
	  bogus "x" {}
	}`, "failed to decode")
	checkError(t, `module "m" {
	  input "a" {}
	  wire "a" {}
	}`, "duplicate wire a")
	checkError(t, `module "m" {
	  input "a" {}
	  cell "c" {
	    type        = "$not"
	    connections = { A = "b" }
	  }
	}`, "cell c: port A")
	checkError(t, `module "m" {
	  input "a" { width = 2 }
	  output "y" {}
	  assign {
	    lhs = "y"
	    rhs = "a"
	  }
	}`, "width mismatch")
	checkError(t, `module "m" {
	  cell "c" {
	    type       = "$not"
	    parameters = { WIDTH = 1.5 }
	  }
	}`, "not an integer")
	checkError(t, `module "m" {}
	module "m" {}`, "duplicate module m")
}

func read(t *testing.T, src string) *netlist.Design {
	design, err := ReadBytes([]byte(src), "test.hcl")
	require.NoError(t, err)
	//
	return design
}

func checkError(t *testing.T, src string, msg string) {
	_, err := ReadBytes([]byte(src), "test.hcl")
	require.ErrorContains(t, err, msg)
}
