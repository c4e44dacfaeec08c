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

import "testing"

func TestFile_01(t *testing.T) {
	checkLine(t, "abc", 1, 1, "abc")
}

func TestFile_02(t *testing.T) {
	checkLine(t, "ab\ncd\nef", 4, 2, "cd")
}

func TestFile_03(t *testing.T) {
	// Newline belongs to the line it ends
	checkLine(t, "ab\ncd\nef", 2, 1, "ab")
}

func TestFile_04(t *testing.T) {
	// Beyond the end
	checkLine(t, "ab\ncd\n", 10, 3, "")
}

func TestFile_05(t *testing.T) {
	srcfile := NewSourceFile("x.lisp", []byte("(a\n  b c"))
	err := srcfile.SyntaxError(NewSpan(5, 6), "unexpected symbol")
	//
	if msg := err.Error(); msg != "x.lisp:2:3: unexpected symbol" {
		t.Errorf("unexpected message %q", msg)
	}
	//
	srcfile = NewSourceFile("", []byte("a[x]"))
	//
	if msg := srcfile.SyntaxError(NewSpan(2, 3), "bad").Error(); msg != "1:3: bad" {
		t.Errorf("unexpected message %q", msg)
	}
}

func checkLine(t *testing.T, text string, offset int, number int, expected string) {
	srcfile := NewSourceFile("test", []byte(text))
	line := srcfile.FindFirstEnclosingLine(NewSpan(offset, offset))
	//
	if line.Number() != number {
		t.Errorf("expected line %d, got %d", number, line.Number())
	} else if line.String() != expected {
		t.Errorf("expected line %q, got %q", expected, line.String())
	}
}
