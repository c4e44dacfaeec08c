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

import "strings"

// Indentation used for each level of nesting.
const indentation = "  "

// BlockRule allows lists starting with a given head symbol to be split over
// several lines.  The first few elements stay on the opening line, and each
// remaining element is placed on its own (indented) line.  Rules of priority 0
// always split, whilst others split only once the formatter has reached their
// priority and the list does not fit on its line.
type BlockRule struct {
	// Head symbol to match
	Head string
	// Number of elements (including the head) kept on the opening line.
	Fixed int
	// Level at which splitting is permitted.
	Priority uint
}

// Formatter lays out S-Expressions, splitting lists according to a set of
// rules until the output fits within a given width.
type Formatter struct {
	width uint
	rules []*BlockRule
}

// NewFormatter constructs a formatter which aims to keep lines within a given
// width.
func NewFormatter(width uint) *Formatter {
	return &Formatter{width: width}
}

// Add a rule to this formatter.  Where several rules match the same list, the
// first added takes precedence.
func (p *Formatter) Add(rule *BlockRule) {
	p.rules = append(p.rules, rule)
}

// Format a given S-Expression.  Rules are enabled in order of priority until
// either the output fits, or all rules are enabled.  The result always ends
// with a newline.
func (p *Formatter) Format(term SExp) string {
	var last uint
	//
	for _, rule := range p.rules {
		last = max(last, rule.Priority)
	}
	//
	for level := uint(0); ; level++ {
		text := layout{formatter: p, level: level, lines: []string{""}}
		text.write(term, 0)
		//
		if level >= last || text.width() <= p.width {
			return strings.Join(text.lines, "\n") + "\n"
		}
	}
}

func (p *Formatter) rule(list *List) *BlockRule {
	if head := list.Head(); head != "" {
		for _, rule := range p.rules {
			if rule.Head == head {
				return rule
			}
		}
	}
	//
	return nil
}

// layout accumulates the lines of a formatted term at a given level.
type layout struct {
	formatter *Formatter
	level     uint
	lines     []string
}

// Width of the widest line.
func (p *layout) width() uint {
	var width int
	//
	for _, line := range p.lines {
		width = max(width, len(line))
	}
	//
	return uint(width)
}

func (p *layout) append(text string) {
	p.lines[len(p.lines)-1] += text
}

func (p *layout) newline(indent int) {
	p.lines = append(p.lines, strings.Repeat(indentation, indent))
}

func (p *layout) write(term SExp, indent int) {
	list := term.AsList()
	//
	if list == nil {
		// Symbols and arrays are never split
		p.append(term.String(true))
		return
	}
	//
	rule := p.formatter.rule(list)
	split := rule != nil && p.split(rule, list)
	//
	p.append("(")
	//
	for i, element := range list.Elements {
		if split && i >= rule.Fixed {
			p.newline(indent + 1)
		} else if i != 0 {
			p.append(" ")
		}
		//
		p.write(element, indent+1)
	}
	//
	p.append(")")
}

func (p *layout) split(rule *BlockRule, list *List) bool {
	switch {
	case rule.Priority == 0:
		return true
	case rule.Priority > p.level:
		return false
	}
	//
	current := len(p.lines[len(p.lines)-1])
	//
	return uint(current+len(list.String(true))) > p.formatter.width
}
