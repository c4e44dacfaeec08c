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

import (
	"slices"
	"testing"
	"unicode"
)

func TestLexer_00(t *testing.T) {
	checkLexer(t, "", 0, tok(END_OF, 0, 0))
}

func TestLexer_01(t *testing.T) {
	checkLexer(t, "[", 0, tok(LSQUARE, 0, 1), tok(END_OF, 1, 1))
}

func TestLexer_02(t *testing.T) {
	checkLexer(t, "a[3]", 0, tok(IDENT, 0, 1), tok(LSQUARE, 1, 2), tok(NUMBER, 2, 3), tok(RSQUARE, 3, 4),
		tok(END_OF, 4, 4))
}

func TestLexer_03(t *testing.T) {
	// Unknown character stops lexing
	checkLexer(t, "#", 1)
}

func TestLexer_04(t *testing.T) {
	checkLexer(t, "ab # c", 3, tok(IDENT, 0, 2))
}

func TestLexer_05(t *testing.T) {
	// Whitespace dropped
	checkLexer(t, " [  ] ", 0, tok(LSQUARE, 1, 2), tok(RSQUARE, 4, 5), tok(END_OF, 6, 6))
}

func TestLexer_06(t *testing.T) {
	checkLexer(t, "1234", 0, tok(NUMBER, 0, 4), tok(END_OF, 4, 4))
}

func TestLexer_07(t *testing.T) {
	// Numbers cannot continue into identifiers
	checkLexer(t, "12ab", 0, tok(NUMBER, 0, 2), tok(IDENT, 2, 4), tok(END_OF, 4, 4))
}

func TestLexer_08(t *testing.T) {
	checkLexer(t, "$and$1[7]", 0, tok(IDENT, 0, 6), tok(LSQUARE, 6, 7), tok(NUMBER, 7, 8), tok(RSQUARE, 8, 9),
		tok(END_OF, 9, 9))
}

func TestLexer_09(t *testing.T) {
	lexer := NewLexer([]rune("a"), scanner)
	//
	if _, ok := lexer.Next(); !ok {
		t.Fatalf("expected identifier")
	} else if token, ok := lexer.Next(); !ok || token.Kind != END_OF {
		t.Fatalf("expected end-of-file")
	} else if _, ok := lexer.Next(); ok {
		t.Errorf("unexpected token after end-of-file")
	}
}

func TestScanner_00(t *testing.T) {
	hex := Word(IDENT, func(c rune) bool { return c == 'h' }, isHexDigit)
	//
	if token, ok := hex([]rune("hff1g")); !ok || token.Span.Length() != 4 {
		t.Errorf("expected token of length 4, got %v", token)
	} else if _, ok := hex([]rune("ff")); ok {
		t.Errorf("unexpected token")
	}
}

func TestScanner_01(t *testing.T) {
	sp := Many(WSPACE, ' ', '\t')
	//
	if _, ok := sp([]rune("")); ok {
		t.Errorf("unexpected empty token")
	} else if token, ok := sp([]rune(" \t x")); !ok || token.Span.End() != 3 {
		t.Errorf("expected token of length 3, got %v", token)
	}
}

// ==================================================================
// Framework
// ==================================================================

const (
	END_OF uint = iota
	WSPACE
	LSQUARE
	RSQUARE
	NUMBER
	IDENT
)

var scanner = Or(
	One(LSQUARE, '['),
	One(RSQUARE, ']'),
	Many(WSPACE, ' ', '\t'),
	Range(NUMBER, '0', '9'),
	Word(IDENT, isIdentStart, isIdentRest),
	Eof(END_OF))

func isIdentStart(c rune) bool {
	return c == '_' || c == '$' || unicode.IsLetter(c)
}

func isIdentRest(c rune) bool {
	return isIdentStart(c) || unicode.IsDigit(c)
}

func isHexDigit(c rune) bool {
	return unicode.IsDigit(c) || ('a' <= c && c <= 'f')
}

func tok(kind uint, start int, end int) Token {
	return Token{kind, NewSpan(start, end)}
}

func checkLexer(t *testing.T, input string, remainder uint, expected ...Token) {
	lexer := NewLexer([]rune(input), scanner)
	tokens := lexer.Collect(WSPACE)
	//
	if !slices.Equal(tokens, expected) {
		t.Errorf("got %v, expected %v", tokens, expected)
	} else if lexer.Remaining() != remainder {
		t.Errorf("expected %d unmatched characters, got %d", remainder, lexer.Remaining())
	}
}
