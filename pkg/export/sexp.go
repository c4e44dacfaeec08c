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
	"slices"
	"strconv"

	"github.com/consensys/go-netgraph/pkg/util/source"
	"github.com/consensys/go-netgraph/pkg/util/source/sexp"
)

// WriteSExp writes a given set of documents as S-Expressions, one module after
// another, aiming to fit within a given width.  For example:
//
//	(module and
//	  (node 0 $$input [] (param a ""))
//	  (node 1 $$input [] (param b ""))
//	  (node 2 $and [0 1] (param A_SIGNED 0) ...)
//	  (output y 2))
func WriteSExp(out io.Writer, docs []*Document, width uint) error {
	formatter := sexp.NewFormatter(width)
	formatter.Add(&sexp.BlockRule{Head: "module", Fixed: 2, Priority: 0})
	formatter.Add(&sexp.BlockRule{Head: "node", Fixed: 4, Priority: 1})
	//
	for _, doc := range docs {
		if _, err := io.WriteString(out, formatter.Format(toSExp(doc))); err != nil {
			return err
		}
	}
	//
	return nil
}

// ReadSExp reads a set of documents written as S-Expressions, validating each.
func ReadSExp(srcfile *source.File) ([]*Document, error) {
	terms, serr := sexp.ParseAll(srcfile)
	if serr != nil {
		return nil, serr
	}
	//
	docs := make([]*Document, len(terms))
	//
	for i, term := range terms {
		doc, err := fromSExp(term)
		//
		if err != nil {
			return nil, err
		} else if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("module %s: %w", doc.Module, err)
		}
		//
		docs[i] = doc
	}
	//
	return docs, nil
}

// ============================================================================
// Writing
// ============================================================================

func toSExp(doc *Document) sexp.SExp {
	list := sexp.NewList([]sexp.SExp{symbol("module"), symbol(doc.Module)})
	//
	for _, node := range doc.Nodes {
		list.Append(nodeToSExp(node))
	}
	//
	for _, output := range doc.Outputs {
		list.Append(tagged("output", symbol(output.Name), number(output.Node)))
	}
	//
	for _, loop := range doc.Loops {
		elements := []sexp.SExp{symbol("loop")}
		//
		for _, n := range loop {
			elements = append(elements, number(n))
		}
		//
		list.Append(sexp.NewList(elements))
	}
	//
	return list
}

func nodeToSExp(node Node) sexp.SExp {
	args := make([]sexp.SExp, len(node.Connections))
	//
	for i, arg := range node.Connections {
		args[i] = number(arg)
	}
	//
	list := tagged("node", number(node.ID), symbol(node.Type), sexp.NewArray(args))
	// Parameters are written in sorted order
	names := make([]string, 0, len(node.Parameters))
	for name := range node.Parameters {
		names = append(names, name)
	}
	//
	slices.Sort(names)
	//
	for _, name := range names {
		list.Append(tagged("param", symbol(name), symbol(node.Parameters[name])))
	}
	//
	if md := node.Metadata; md != nil {
		if md.Wire != "" {
			list.Append(tagged("wire", symbol(md.Wire)))
		}
		//
		list.Append(tagged("origin", number(md.Origin)))
		//
		if md.Descriptor != "" {
			list.Append(tagged("descriptor", symbol(md.Descriptor)))
		}
	}
	//
	return list
}

func tagged(head string, elements ...sexp.SExp) *sexp.List {
	return sexp.NewList(append([]sexp.SExp{symbol(head)}, elements...))
}

func symbol(value string) sexp.SExp {
	return sexp.NewSymbol(value)
}

func number(value uint) sexp.SExp {
	return sexp.NewSymbol(strconv.FormatUint(uint64(value), 10))
}

// ============================================================================
// Reading
// ============================================================================

func fromSExp(term sexp.SExp) (*Document, error) {
	list := term.AsList()
	//
	if list == nil || !list.MatchSymbols(2, "module") {
		return nil, fmt.Errorf("%w: expected (module name ...), found %s", ErrInvalidDocument, term.String(true))
	}
	//
	doc := &Document{Module: list.Get(1).AsSymbol().Value, Nodes: []Node{}, Outputs: []Output{}}
	//
	for _, element := range list.Elements[2:] {
		item := element.AsList()
		//
		if item == nil {
			return nil, malformed(element)
		}
		//
		switch item.Head() {
		case "node":
			node, err := nodeFromSExp(item)
			if err != nil {
				return nil, err
			}
			//
			doc.Nodes = append(doc.Nodes, node)
		case "output":
			if !item.MatchSymbols(3, "output") || item.Len() != 3 {
				return nil, malformed(item)
			}
			//
			n, err := toNumber(item.Get(2))
			if err != nil {
				return nil, err
			}
			//
			doc.Outputs = append(doc.Outputs, Output{item.Get(1).AsSymbol().Value, n})
		case "loop":
			loop := make([]uint, item.Len()-1)
			//
			for i := range loop {
				n, err := toNumber(item.Get(i + 1))
				if err != nil {
					return nil, err
				}
				//
				loop[i] = n
			}
			//
			doc.Loops = append(doc.Loops, loop)
		default:
			return nil, malformed(item)
		}
	}
	//
	return doc, nil
}

func nodeFromSExp(list *sexp.List) (Node, error) {
	var node Node
	//
	if !list.MatchSymbols(3, "node") || list.Len() < 4 || list.Get(3).AsArray() == nil {
		return node, malformed(list)
	}
	//
	id, err := toNumber(list.Get(1))
	if err != nil {
		return node, err
	}
	//
	node.ID = id
	node.Type = list.Get(2).AsSymbol().Value
	node.Connections = make([]uint, list.Get(3).AsArray().Len())
	//
	for i, arg := range list.Get(3).AsArray().Elements {
		if node.Connections[i], err = toNumber(arg); err != nil {
			return node, err
		}
	}
	//
	for _, element := range list.Elements[4:] {
		item := element.AsList()
		//
		if item == nil || !item.MatchSymbols(item.Len(), item.Head()) {
			return node, malformed(element)
		}
		//
		switch {
		case item.Head() == "param" && item.Len() == 3:
			if node.Parameters == nil {
				node.Parameters = make(map[string]string)
			}
			//
			node.Parameters[item.Get(1).AsSymbol().Value] = item.Get(2).AsSymbol().Value
		case item.Head() == "wire" && item.Len() == 2:
			metadata(&node).Wire = item.Get(1).AsSymbol().Value
		case item.Head() == "origin" && item.Len() == 2:
			if metadata(&node).Origin, err = toNumber(item.Get(1)); err != nil {
				return node, err
			}
		case item.Head() == "descriptor" && item.Len() == 2:
			metadata(&node).Descriptor = item.Get(1).AsSymbol().Value
		default:
			return node, malformed(item)
		}
	}
	//
	return node, nil
}

func metadata(node *Node) *Metadata {
	if node.Metadata == nil {
		node.Metadata = &Metadata{}
	}
	//
	return node.Metadata
}

func toNumber(term sexp.SExp) (uint, error) {
	if sym := term.AsSymbol(); sym != nil {
		if n, err := strconv.ParseUint(sym.Value, 10, 64); err == nil {
			return uint(n), nil
		}
	}
	//
	return 0, fmt.Errorf("%w: expected number, found %s", ErrInvalidDocument, term.String(true))
}

func malformed(term sexp.SExp) error {
	return fmt.Errorf("%w: unexpected %s", ErrInvalidDocument, term.String(true))
}
