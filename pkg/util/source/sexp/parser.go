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
	"unicode"

	"github.com/consensys/go-netgraph/pkg/util/source"
)

// Token kinds
const (
	END_OF uint = iota
	WHITESPACE
	COMMENT
	LBRACE
	RBRACE
	LSQUARE
	RSQUARE
	STRING
	UNTERMINATED
	SYMBOL
)

var scanner = source.Or(
	source.One(LBRACE, '('),
	source.One(RBRACE, ')'),
	source.One(LSQUARE, '['),
	source.One(RSQUARE, ']'),
	source.While(WHITESPACE, unicode.IsSpace),
	source.Word(COMMENT, func(c rune) bool { return c == ';' }, func(c rune) bool { return c != '\n' }),
	scanString,
	source.While(SYMBOL, isSymbolLetter),
	source.Eof(END_OF))

// Parse a file holding exactly one S-Expression.
func Parse(s *source.File) (SExp, *source.SyntaxError) {
	p := NewParser(s)
	//
	term, err := p.Parse()
	if err != nil {
		return nil, err
	} else if p.lookahead().Kind != END_OF {
		return nil, p.error("unexpected remainder")
	}
	//
	return term, nil
}

// ParseAll parses a file holding zero or more S-Expressions.
func ParseAll(s *source.File) ([]SExp, *source.SyntaxError) {
	var (
		p     = NewParser(s)
		terms = make([]SExp, 0)
	)
	//
	for {
		term, err := p.Parse()
		if err != nil || term == nil {
			return terms, err
		}
		//
		terms = append(terms, term)
	}
}

// Parser reads S-Expressions from the tokens of a given source file.
type Parser struct {
	srcfile *source.File
	tokens  []source.Token
	index   int
}

// NewParser tokenises a given source file ready for parsing.  Every character
// belongs to some token, hence lexing cannot fail.
func NewParser(srcfile *source.File) *Parser {
	lexer := source.NewLexer(srcfile.Contents(), scanner)
	//
	return &Parser{srcfile: srcfile, tokens: lexer.Collect(WHITESPACE, COMMENT)}
}

// Parse the next S-Expression, returning nil (and no error) at the end of the
// input.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case END_OF:
		return nil, nil
	case RBRACE:
		return nil, p.error("unexpected end-of-list")
	case RSQUARE:
		return nil, p.error("unexpected end-of-array")
	case UNTERMINATED:
		return nil, p.error("unterminated string")
	case LBRACE:
		elements, err := p.parseSequence(RBRACE)
		if err != nil {
			return nil, err
		}
		//
		return NewList(elements), nil
	case LSQUARE:
		elements, err := p.parseSequence(RSQUARE)
		if err != nil {
			return nil, err
		}
		//
		return NewArray(elements), nil
	case STRING:
		value, err := strconv.Unquote(token.Span.Text(p.srcfile.Contents()))
		if err != nil {
			return nil, p.error("invalid string")
		}
		//
		p.index++
		//
		return NewSymbol(value), nil
	default:
		p.index++
		return NewSymbol(token.Span.Text(p.srcfile.Contents())), nil
	}
}

// Parse elements following an opening bracket, up to the given closing one.
func (p *Parser) parseSequence(terminator uint) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	// Opening bracket
	p.index++
	//
	for {
		switch p.lookahead().Kind {
		case END_OF:
			return nil, p.error("unexpected end-of-file")
		case terminator:
			p.index++
			return elements, nil
		}
		//
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

// The final token is always END_OF.
func (p *Parser) lookahead() source.Token {
	return p.tokens[min(p.index, len(p.tokens)-1)]
}

// Construct an error covering the next token.
func (p *Parser) error(msg string) *source.SyntaxError {
	return p.srcfile.SyntaxError(p.lookahead().Span, msg)
}

// Scan a quoted string, allowing for escaped characters.  A string without its
// closing quote extends to the end of the text.
func scanString(text []rune) (source.Token, bool) {
	if len(text) == 0 || text[0] != '"' {
		return source.Token{}, false
	}
	//
	for i := 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return source.Token{Kind: STRING, Span: source.NewSpan(0, i+1)}, true
		}
	}
	//
	return source.Token{Kind: UNTERMINATED, Span: source.NewSpan(0, len(text))}, true
}
