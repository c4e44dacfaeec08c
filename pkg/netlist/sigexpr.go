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
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/consensys/go-netgraph/pkg/util/source"
)

// Token kinds for signal expressions.
const (
	END_OF uint = iota
	WHITESPACE
	IDENTIFIER
	NUMBER
	QUOTE
	LCURLY
	RCURLY
	LSQUARE
	RSQUARE
	COLON
	COMMA
)

var sigScanner = source.Or(
	source.One(LCURLY, '{'),
	source.One(RCURLY, '}'),
	source.One(LSQUARE, '['),
	source.One(RSQUARE, ']'),
	source.One(COLON, ':'),
	source.One(COMMA, ','),
	source.One(QUOTE, '\''),
	source.Many(WHITESPACE, ' ', '\t', '\n', '\r'),
	source.Range(NUMBER, '0', '9'),
	source.Word(IDENTIFIER, isIdentifierStart, isIdentifierRest),
	source.Eof(END_OF))

// ParseSigSpec parses a signal expression with respect to the wires of a
// given module.  Expressions are written in the usual netlist syntax:
//
//	a           whole wire
//	a[3]        single bit
//	a[7:4]      bit range (msb:lsb)
//	8'hff       sized constant (bases b, o, d and h)
//	5           32-bit constant
//	{a, 2'b01}  concatenation (most significant first)
func ParseSigSpec(module *Module, text string) (SigSpec, error) {
	var (
		srcfile = source.NewSourceFile("", []byte(text))
		lexer   = source.NewLexer(srcfile.Contents(), sigScanner)
		tokens  = lexer.Collect(WHITESPACE)
	)
	//
	if lexer.Remaining() != 0 {
		start := len(srcfile.Contents()) - int(lexer.Remaining())
		return SigSpec{}, srcfile.SyntaxError(source.NewSpan(start, start+1), "unknown character")
	}
	//
	p := &sigParser{srcfile, module, tokens, 0}
	sig, err := p.parseExpr()
	//
	if err != nil {
		return SigSpec{}, err
	} else if p.lookahead().Kind != END_OF {
		return SigSpec{}, p.syntaxError(p.lookahead(), "unexpected remainder")
	}
	//
	return sig, nil
}

type sigParser struct {
	srcfile *source.File
	module  *Module
	tokens  []source.Token
	index   int
}

func (p *sigParser) parseExpr() (SigSpec, *source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case LCURLY:
		return p.parseConcat()
	case IDENTIFIER:
		return p.parseWire()
	case NUMBER:
		return p.parseConst()
	default:
		return SigSpec{}, p.syntaxError(token, "expected signal")
	}
}

func (p *sigParser) parseConcat() (SigSpec, *source.SyntaxError) {
	var parts []SigSpec
	//
	p.expect(LCURLY)
	//
	for p.lookahead().Kind != RCURLY {
		if len(parts) > 0 {
			if _, err := p.expect(COMMA); err != nil {
				return SigSpec{}, err
			}
		}
		//
		part, err := p.parseExpr()
		if err != nil {
			return SigSpec{}, err
		}
		//
		parts = append(parts, part)
	}
	//
	p.expect(RCURLY)
	// Written most significant first.
	var sig SigSpec
	//
	for i := len(parts) - 1; i >= 0; i-- {
		sig = sig.Append(parts[i])
	}
	//
	return sig, nil
}

func (p *sigParser) parseWire() (SigSpec, *source.SyntaxError) {
	token, _ := p.expect(IDENTIFIER)
	name := p.text(token)
	wire := p.module.Wire(name)
	//
	if wire == nil {
		return SigSpec{}, p.syntaxError(token, "unknown wire")
	} else if p.lookahead().Kind != LSQUARE {
		return WireSig(wire), nil
	}
	// Bit selection
	p.expect(LSQUARE)
	//
	hi, err := p.parseIndex()
	if err != nil {
		return SigSpec{}, err
	}
	//
	lo := hi
	//
	if p.lookahead().Kind == COLON {
		p.expect(COLON)
		//
		if lo, err = p.parseIndex(); err != nil {
			return SigSpec{}, err
		}
	}
	//
	end, err := p.expect(RSQUARE)
	if err != nil {
		return SigSpec{}, err
	} else if lo > hi || hi >= wire.Width {
		span := source.NewSpan(token.Span.Start(), end.Span.End())
		return SigSpec{}, p.srcfile.SyntaxError(span, "invalid bit range")
	}
	//
	return WireSlice(wire, lo, hi-lo+1), nil
}

func (p *sigParser) parseIndex() (int, *source.SyntaxError) {
	token, err := p.expect(NUMBER)
	if err != nil {
		return 0, err
	}
	//
	index, e := strconv.Atoi(p.text(token))
	if e != nil {
		return 0, p.syntaxError(token, "invalid index")
	}
	//
	return index, nil
}

func (p *sigParser) parseConst() (SigSpec, *source.SyntaxError) {
	token, _ := p.expect(NUMBER)
	//
	if p.lookahead().Kind != QUOTE {
		value, err := strconv.ParseInt(p.text(token), 10, 64)
		if err != nil {
			return SigSpec{}, p.syntaxError(token, "invalid constant")
		}
		//
		return ConstSig(ConstFromInt(value, 32)), nil
	}
	// Sized constant
	width, err := strconv.Atoi(p.text(token))
	if err != nil || width <= 0 {
		return SigSpec{}, p.syntaxError(token, "invalid width")
	}
	//
	p.expect(QUOTE)
	//
	digits, serr := p.expect(IDENTIFIER, NUMBER)
	if serr != nil {
		return SigSpec{}, serr
	}
	//
	value, ok := parseBased(width, strings.ReplaceAll(p.text(digits), "_", ""))
	if !ok {
		return SigSpec{}, p.syntaxError(digits, "invalid constant")
	}
	//
	return ConstSig(value), nil
}

// Parse the digits of a sized constant, prefixed by their base.
func parseBased(width int, text string) (Const, bool) {
	if len(text) < 2 {
		return Const{}, false
	}
	//
	var (
		bitsPerDigit int
		digits       = text[1:]
	)
	//
	switch unicode.ToLower(rune(text[0])) {
	case 'b':
		bitsPerDigit = 1
	case 'o':
		bitsPerDigit = 3
	case 'h':
		bitsPerDigit = 4
	case 'd':
		val, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			return Const{}, false
		}
		//
		bits := make([]State, width)
		for i := range width {
			bits[i] = State('0' + val.Bit(i))
		}
		//
		return NewConst(bits...), true
	default:
		return Const{}, false
	}
	// Expand digits (least significant first), then truncate or extend.
	var bits []State
	//
	for i := len(digits) - 1; i >= 0; i-- {
		c := unicode.ToLower(rune(digits[i]))
		//
		if c == 'x' || c == 'z' {
			for range bitsPerDigit {
				bits = append(bits, State(c))
			}
			//
			continue
		}
		//
		val, err := strconv.ParseUint(string(c), 1<<bitsPerDigit, 8)
		if err != nil {
			return Const{}, false
		}
		//
		for j := range bitsPerDigit {
			bits = append(bits, State('0'+byte((val>>j)&1)))
		}
	}
	//
	for len(bits) < width {
		bits = append(bits, S0)
	}
	//
	return NewConst(bits[:width]...), true
}

func (p *sigParser) lookahead() source.Token {
	return p.tokens[min(p.index, len(p.tokens)-1)]
}

func (p *sigParser) expect(kinds ...uint) (source.Token, *source.SyntaxError) {
	token := p.lookahead()
	//
	for _, kind := range kinds {
		if token.Kind == kind {
			p.index++
			return token, nil
		}
	}
	//
	return token, p.syntaxError(token, "unexpected token")
}

func (p *sigParser) text(token source.Token) string {
	return token.Span.Text(p.srcfile.Contents())
}

func (p *sigParser) syntaxError(token source.Token, msg string) *source.SyntaxError {
	span := token.Span
	// Ensure end-of-file errors still highlight something.
	if span.Length() == 0 {
		span = source.NewSpan(span.Start(), span.Start()+1)
	}
	//
	return p.srcfile.SyntaxError(span, msg)
}

func isIdentifierStart(c rune) bool {
	return c == '_' || c == '$' || c == '\\' || unicode.IsLetter(c)
}

func isIdentifierRest(c rune) bool {
	return isIdentifierStart(c) || c == '.' || unicode.IsDigit(c)
}
