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
package sexp

import (
	"strconv"
	"strings"
	"unicode"
)

// SExp is an S-Expression: a symbol, a parenthesised list of S-Expressions or
// a bracketed array of S-Expressions.  The As methods return nil when the term
// is not of the corresponding kind.
type SExp interface {
	AsList() *List
	AsArray() *Array
	AsSymbol() *Symbol
	// String renders this term.  When quote is set, symbols which could not
	// otherwise be read back (e.g. those containing spaces) are quoted.
	String(quote bool) string
}

var (
	_ SExp = (*List)(nil)
	_ SExp = (*Array)(nil)
	_ SExp = (*Symbol)(nil)
)

// List is a parenthesised sequence of terms, typically tagged by a symbol at
// its head.
type List struct {
	Elements []SExp
}

// NewList creates a list from the given elements.
func NewList(elements []SExp) *List {
	return &List{elements}
}

// AsList returns this list.
func (l *List) AsList() *List { return l }

// AsArray returns nil.
func (l *List) AsArray() *Array { return nil }

// AsSymbol returns nil.
func (l *List) AsSymbol() *Symbol { return nil }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.Elements) }

// Get returns the ith element.
func (l *List) Get(i int) SExp { return l.Elements[i] }

// Append an element.
func (l *List) Append(element SExp) {
	l.Elements = append(l.Elements, element)
}

func (l *List) String(quote bool) string {
	return render('(', l.Elements, ')', quote)
}

// Head returns the first element when this is a symbol, or "" otherwise.
func (l *List) Head() string {
	if len(l.Elements) == 0 {
		return ""
	} else if sym := l.Elements[0].AsSymbol(); sym != nil {
		return sym.Value
	}
	//
	return ""
}

// MatchSymbols checks that the first n elements of this list are symbols, and
// that these begin with the given values.  For example, (node 0 $and ...)
// matches MatchSymbols(3, "node").
func (l *List) MatchSymbols(n int, symbols ...string) bool {
	if len(l.Elements) < n || len(symbols) > n {
		return false
	}
	//
	for i, element := range l.Elements[:n] {
		if sym := element.AsSymbol(); sym == nil {
			return false
		} else if i < len(symbols) && sym.Value != symbols[i] {
			return false
		}
	}
	//
	return true
}

// Array is a bracketed sequence of terms, such as the connections of a node.
type Array struct {
	Elements []SExp
}

// NewArray creates an array from the given elements.
func NewArray(elements []SExp) *Array {
	return &Array{elements}
}

// AsList returns nil.
func (a *Array) AsList() *List { return nil }

// AsArray returns this array.
func (a *Array) AsArray() *Array { return a }

// AsSymbol returns nil.
func (a *Array) AsSymbol() *Symbol { return nil }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.Elements) }

// Get returns the ith element.
func (a *Array) Get(i int) SExp { return a.Elements[i] }

func (a *Array) String(quote bool) string {
	return render('[', a.Elements, ']', quote)
}

// Symbol is an atomic term.
type Symbol struct {
	Value string
}

// NewSymbol creates a symbol with the given value.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// AsList returns nil.
func (s *Symbol) AsList() *List { return nil }

// AsArray returns nil.
func (s *Symbol) AsArray() *Array { return nil }

// AsSymbol returns this symbol.
func (s *Symbol) AsSymbol() *Symbol { return s }

func (s *Symbol) String(quote bool) string {
	if quote && (s.Value == "" || strings.IndexFunc(s.Value, notSymbolLetter) >= 0) {
		return strconv.Quote(s.Value)
	}
	//
	return s.Value
}

func isSymbolLetter(r rune) bool {
	return !notSymbolLetter(r)
}

func notSymbolLetter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("()[];\"", r)
}

func render(open rune, elements []SExp, close rune, quote bool) string {
	var builder strings.Builder
	//
	builder.WriteRune(open)
	//
	for i, element := range elements {
		if i != 0 {
			builder.WriteByte(' ')
		}
		//
		builder.WriteString(element.String(quote))
	}
	//
	builder.WriteRune(close)
	//
	return builder.String()
}
