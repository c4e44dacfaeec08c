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

// Scanner attempts to recognise a single token at the start of some text.  On
// success, the token's span is relative to the start of the text given.  A
// scanner may recognise an empty token only at the end of the text.
type Scanner func(text []rune) (Token, bool)

// Eof recognises the end of the text, producing an empty token of the given
// kind.
func Eof(kind uint) Scanner {
	return func(text []rune) (Token, bool) {
		return Token{kind, NewSpan(0, 0)}, len(text) == 0
	}
}

// One recognises exactly one occurrence of a given character.
func One(kind uint, char rune) Scanner {
	return func(text []rune) (Token, bool) {
		return Token{kind, NewSpan(0, 1)}, len(text) > 0 && text[0] == char
	}
}

// Many recognises a non-empty run of characters, each of which is one of those
// given.
func Many(kind uint, chars ...rune) Scanner {
	return While(kind, func(c rune) bool { return slices.Contains(chars, c) })
}

// Range recognises a non-empty run of characters, each of which lies within a
// given (inclusive) range.
func Range(kind uint, first rune, last rune) Scanner {
	return While(kind, func(c rune) bool { return first <= c && c <= last })
}

// While recognises a non-empty run of characters which all satisfy a given
// predicate.
func While(kind uint, pred func(rune) bool) Scanner {
	return Word(kind, pred, pred)
}

// Word recognises a non-empty run of characters, where the first satisfies
// one predicate and all remaining satisfy another.  This is useful, for
// example, for identifiers which cannot begin with a digit.
func Word(kind uint, first func(rune) bool, rest func(rune) bool) Scanner {
	return func(text []rune) (Token, bool) {
		if len(text) == 0 || !first(text[0]) {
			return Token{}, false
		}
		//
		n := 1
		for n < len(text) && rest(text[n]) {
			n++
		}
		//
		return Token{kind, NewSpan(0, n)}, true
	}
}

// Or recognises whatever the first of the given scanners to succeed
// recognises.  Hence, the order of scanners determines their priority.
func Or(scanners ...Scanner) Scanner {
	return func(text []rune) (Token, bool) {
		for _, scanner := range scanners {
			if token, ok := scanner(text); ok {
				return token, true
			}
		}
		//
		return Token{}, false
	}
}
