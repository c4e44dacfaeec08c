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

// SyntaxError reports a problem at a given span of some source file.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the file in which this error arose.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the offending span of text.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message reported, without location.
func (p *SyntaxError) Message() string {
	return p.msg
}

// FirstEnclosingLine returns the line on which this error starts.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}

// Error reports the location as a (1-based) line and column, prefixed by the
// filename when there is one.
func (p *SyntaxError) Error() string {
	var (
		line     = p.FirstEnclosingLine()
		location = fmt.Sprintf("%d:%d", line.Number(), p.span.Start()-line.Start()+1)
	)
	//
	if p.srcfile.filename != "" {
		location = p.srcfile.filename + ":" + location
	}
	//
	return location + ": " + p.msg
}
