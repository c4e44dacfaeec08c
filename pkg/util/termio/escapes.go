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
package termio

import (
	"strconv"
	"strings"
)

// Colour identifies one of the eight standard terminal colours.
type Colour uint

// Standard colours, in ANSI order.
const (
	TERM_BLACK Colour = iota
	TERM_RED
	TERM_GREEN
	TERM_YELLOW
	TERM_BLUE
	TERM_MAGENTA
	TERM_CYAN
	TERM_WHITE
)

// AnsiEscape is a sequence of select graphic rendition codes, as used to
// highlight text in a terminal.  Escapes are immutable.
type AnsiEscape struct {
	codes string
}

// NewAnsiEscape constructs an escape with no codes, which leaves text as is.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{}
}

// ResetAnsiEscape constructs an escape which restores the default rendition.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{"0"}
}

// BoldAnsiEscape constructs a bold escape.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{"1"}
}

// FaintAnsiEscape constructs a dimmed escape.
func FaintAnsiEscape() AnsiEscape {
	return AnsiEscape{"2"}
}

// FgColour adds a foreground colour.
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	return p.with(30 + uint(col))
}

// BgColour adds a background colour.
func (p AnsiEscape) BgColour(col Colour) AnsiEscape {
	return p.with(40 + uint(col))
}

// Build returns the escape sequence itself.
func (p AnsiEscape) Build() string {
	return "\033[" + p.codes + "m"
}

// Apply wraps some text in this escape, followed by a reset.  The text is
// returned unchanged when escapes are disabled, or there are no codes.
func (p AnsiEscape) Apply(text string, enable bool) string {
	if !enable || p.codes == "" {
		return text
	}
	//
	return p.Build() + text + ResetAnsiEscape().Build()
}

func (p AnsiEscape) with(code uint) AnsiEscape {
	codes := []string{strconv.FormatUint(uint64(code), 10)}
	//
	if p.codes != "" {
		codes = append([]string{p.codes}, codes...)
	}
	//
	return AnsiEscape{strings.Join(codes, ";")}
}
