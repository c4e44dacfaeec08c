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
package source

import "slices"

// Token associates a kind with a given range of characters in the text being
// scanned.
type Token struct {
	Kind uint
	Span Span
}

// Lexer splits a given text into tokens using a scanner.  Lexing stops either
// after an empty (end-of-file) token, or at the first character which the
// scanner does not recognise.
type Lexer struct {
	text    []rune
	offset  int
	scanner Scanner
	done    bool
}

// NewLexer constructs a lexer for a given text.
func NewLexer(text []rune, scanner Scanner) *Lexer {
	return &Lexer{text: text, scanner: scanner}
}

// Remaining returns the number of characters not yet consumed.
func (p *Lexer) Remaining() uint {
	return uint(len(p.text) - p.offset)
}

// Next scans the next token, or returns false if there is none.
func (p *Lexer) Next() (Token, bool) {
	if p.done {
		return Token{}, false
	}
	//
	token, ok := p.scanner(p.text[p.offset:])
	//
	if !ok {
		p.done = true
		return Token{}, false
	} else if token.Span.Length() == 0 {
		// Only the end of the text can be empty
		p.done = true
	}
	// Shift span into position
	token.Span = NewSpan(p.offset+token.Span.Start(), p.offset+token.Span.End())
	p.offset = token.Span.End()
	//
	return token, true
}

// Collect scans all remaining tokens, dropping those of any given kinds (e.g.
// whitespace).
func (p *Lexer) Collect(skip ...uint) []Token {
	var tokens []Token
	//
	for token, ok := p.Next(); ok; token, ok = p.Next() {
		if !slices.Contains(skip, token.Kind) {
			tokens = append(tokens, token)
		}
	}
	//
	return tokens
}
