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
	"fmt"
	"io"
	"strings"
)

// TablePrinter lays out rows of text as a table, with each column padded to
// its widest entry.  Individual cells can be highlighted.
type TablePrinter struct {
	columns   uint
	maxWidths []uint
	rows      [][]tableCell
	escapes   bool
}

type tableCell struct {
	text   string
	escape AnsiEscape
}

// NewTablePrinter constructs an empty table with a given number of columns.
// Escapes are enabled by default.
func NewTablePrinter(columns uint) *TablePrinter {
	return &TablePrinter{columns: columns, maxWidths: make([]uint, columns), escapes: true}
}

// AddRow appends a row, returning its index.  The number of values must match
// the number of columns.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if uint(len(vals)) != p.columns {
		panic(fmt.Sprintf("expected %d columns, got %d", p.columns, len(vals)))
	}
	//
	row := make([]tableCell, len(vals))
	for i, val := range vals {
		row[i].text = val
	}
	//
	p.rows = append(p.rows, row)
	//
	return uint(len(p.rows) - 1)
}

// SetEscape highlights a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.rows[row][col].escape = escape
}

// AnsiEscapes enables or disables highlighting, e.g. when the output is not a
// terminal.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.escapes = enable
}

// SetMaxWidth bounds the width of a column, truncating longer entries.  A
// bound of 0 (or anything too narrow to truncate) means unbounded.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.maxWidths[col] = width
}

// Print the table to a given writer.
func (p *TablePrinter) Print(out io.Writer) error {
	var (
		builder strings.Builder
		widths  = p.widths()
	)
	//
	for _, row := range p.rows {
		for j, cell := range row {
			text := cell.text
			//
			if uint(len(text)) > widths[j] {
				text = text[:widths[j]-2] + ".."
			}
			//
			builder.WriteString(cell.escape.Apply(fmt.Sprintf(" %-*s", widths[j], text), p.escapes))
			builder.WriteString(" |")
		}
		//
		builder.WriteByte('\n')
	}
	//
	_, err := io.WriteString(out, builder.String())
	//
	return err
}

func (p *TablePrinter) widths() []uint {
	widths := make([]uint, p.columns)
	//
	for _, row := range p.rows {
		for j, cell := range row {
			widths[j] = max(widths[j], uint(len(cell.text)))
		}
	}
	//
	for j, bound := range p.maxWidths {
		if bound > 2 {
			widths[j] = min(widths[j], bound)
		}
	}
	//
	return widths
}
