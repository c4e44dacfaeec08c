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

import "fmt"

// Span is a half-open range [start, end) of character offsets within some
// text.  Retaining offsets, rather than slicing the text, allows the enclosing
// line of an error to be found later.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, panicking if it would be inverted.
func NewSpan(start int, end int) Span {
	if start > end {
		panic(fmt.Sprintf("invalid span %d:%d", start, end))
	}
	//
	return Span{start, end}
}

// Start returns the offset of the first character covered.
func (p Span) Start() int { return p.start }

// End returns the offset one past the last character covered.
func (p Span) End() int { return p.end }

// Length returns the number of characters covered.
func (p Span) Length() int { return p.end - p.start }

// Text extracts the characters covered from a given text, clipping at its end.
func (p Span) Text(text []rune) string {
	return string(text[min(p.start, len(text)):min(p.end, len(text))])
}

func (p Span) String() string {
	return fmt.Sprintf("%d:%d", p.start, p.end)
}
