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
	"os"
	"slices"
)

// File is a named source text, such as a graph file read from disk or a signal
// expression embedded within a netlist.  The text is held as runes so that
// spans index characters rather than bytes.
type File struct {
	filename string
	contents []rune
	// Offsets at which each line starts, computed on demand.
	lines []int
}

// ReadFile reads a source file from disk.
func ReadFile(filename string) (*File, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return NewSourceFile(filename, bytes), nil
}

// NewSourceFile constructs a source file from its raw contents.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename: filename, contents: []rune(string(bytes))}
}

// Filename returns the name of this file, which may be empty.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the text of this file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs an error over a given span of this file.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// FindFirstEnclosingLine returns the line containing the start of a span.  A
// span starting beyond the end of the file is placed on the last line.  Spans
// may cross lines, so the line returned need not enclose the whole span.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	if s.lines == nil {
		s.lines = []int{0}
		//
		for i, c := range s.contents {
			if c == '\n' {
				s.lines = append(s.lines, i+1)
			}
		}
	}
	// Index of last line starting at or before the span.
	n, found := slices.BinarySearch(s.lines, span.Start())
	if !found {
		n--
	}
	//
	start, end := s.lines[n], len(s.contents)
	//
	if n+1 < len(s.lines) {
		end = s.lines[n+1] - 1
	}
	//
	return Line{s.contents, NewSpan(start, end), n + 1}
}

// Line is a single line of some source file, excluding its terminator.
type Line struct {
	text   []rune
	span   Span
	number int
}

// String returns the text of this line.
func (p *Line) String() string {
	return p.span.Text(p.text)
}

// Number returns the line number, counting from 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the offset of the first character of this line.
func (p *Line) Start() int {
	return p.span.Start()
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return p.span.Length()
}
