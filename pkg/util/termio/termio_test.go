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
	"strings"
	"testing"
)

func TestEscape_00(t *testing.T) {
	escape := BoldAnsiEscape().FgColour(TERM_RED)
	//
	if actual := escape.Build(); actual != "\033[1;31m" {
		t.Errorf("unexpected escape %q", actual)
	}
	//
	if actual := escape.Apply("x", false); actual != "x" {
		t.Errorf("unexpected text %q", actual)
	}
	//
	if actual := escape.Apply("x", true); actual != "\033[1;31mx\033[0m" {
		t.Errorf("unexpected text %q", actual)
	}
}

func TestTable_00(t *testing.T) {
	var out strings.Builder
	//
	table := NewTablePrinter(2)
	table.AddRow("module", "nodes")
	row := table.AddRow("counter", "12")
	table.SetEscape(1, row, NewAnsiEscape().FgColour(TERM_GREEN))
	table.AnsiEscapes(false)
	//
	if err := table.Print(&out); err != nil {
		t.Fatal(err)
	}
	//
	expected := " module  | nodes |\n counter | 12    |\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestTable_01(t *testing.T) {
	var out strings.Builder
	//
	table := NewTablePrinter(1)
	table.AddRow("abcdefghij")
	table.SetMaxWidth(0, 6)
	//
	if err := table.Print(&out); err != nil {
		t.Fatal(err)
	} else if out.String() != " abcd.. |\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}
