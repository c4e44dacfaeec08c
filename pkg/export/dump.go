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
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/consensys/go-netgraph/pkg/compute"
	"github.com/consensys/go-netgraph/pkg/util/termio"
)

// DumpOptions determines what is included in a textual dump.
type DumpOptions struct {
	// Use ANSI escapes to highlight the output.
	Colour bool
	// Include the originating descriptor of each node.
	Origins bool
}

var (
	tagEscape     = termio.NewAnsiEscape().FgColour(termio.TERM_CYAN)
	cellEscape    = termio.BoldAnsiEscape().FgColour(termio.TERM_YELLOW)
	commentEscape = termio.FaintAnsiEscape()
	loopEscape    = termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
)

// Dump writes a human-readable listing of a converted module, with one line
// per node followed by its outputs.  For example:
//
//	n0 $$input[a] // a
//	n1 $$input[b] // b
//	n2 $and[A_SIGNED=1'0](n0, n1)
//	return n2 as y
func Dump(out io.Writer, result *compute.Result, opts DumpOptions) error {
	var (
		builder strings.Builder
		g       = result.Graph
	)
	//
	builder.WriteString(commentEscape.Apply(fmt.Sprintf("// module %s", result.Module.Name), opts.Colour))
	builder.WriteString("\n")
	//
	for i := range g.Len() {
		node := g.Node(i)
		fn := node.Function()
		escape := tagEscape
		//
		if fn.IsCell() {
			escape = cellEscape
		}
		//
		args := make([]string, node.NumArgs())
		for j, arg := range node.Args() {
			args[j] = fmt.Sprintf("n%d", arg)
		}
		//
		builder.WriteString(fmt.Sprintf("n%d %s", i, escape.Apply(fn.String(), opts.Colour)))
		//
		if len(args) > 0 {
			builder.WriteString(fmt.Sprintf("(%s)", strings.Join(args, ", ")))
		}
		//
		if name, ok := nameOf(node); ok {
			builder.WriteString(commentEscape.Apply(fmt.Sprintf(" // %s", name), opts.Colour))
		}
		//
		builder.WriteString("\n")
		//
		if opts.Origins {
			text := fmt.Sprintf("   // was #%d %s", node.Origin(), result.Descriptor(i))
			builder.WriteString(commentEscape.Apply(text, opts.Colour))
			builder.WriteString("\n")
		}
	}
	//
	for _, key := range g.Keys() {
		builder.WriteString(fmt.Sprintf("return n%d as %s\n", key.Node, key.Name))
	}
	//
	for _, loop := range result.Loops {
		nodes := make([]string, len(loop))
		for i, n := range loop {
			nodes[i] = fmt.Sprintf("n%d", n)
		}
		//
		text := fmt.Sprintf("// loop %s", strings.Join(nodes, " "))
		builder.WriteString(loopEscape.Apply(text, opts.Colour))
		builder.WriteString("\n")
	}
	//
	_, err := io.WriteString(out, builder.String())
	//
	return err
}

func nameOf(node compute.Node) (string, bool) {
	name := node.Name()
	//
	if name.HasValue() {
		return name.Unwrap(), true
	}
	//
	return "", false
}
