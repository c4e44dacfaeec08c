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
package stack

import (
	"slices"
	"testing"
)

func TestStack_01(t *testing.T) {
	stack := NewStack[uint]()
	//
	for i := range uint(5) {
		stack.Push(i)
	}
	//
	if stack.Len() != 5 || stack.Pop() != 4 {
		t.Errorf("unexpected stack contents")
	}
	// Update in place
	*stack.Top() = 10
	//
	if stack.Pop() != 10 {
		t.Errorf("expected updated top")
	}
}

func TestStack_02(t *testing.T) {
	var stack Stack[uint]
	//
	for _, item := range []uint{1, 2, 3, 4} {
		stack.Push(item)
	}
	//
	items := stack.PopUntil(func(item uint) bool { return item == 2 })
	//
	if !slices.Equal(items, []uint{2, 3, 4}) {
		t.Errorf("unexpected items popped %v", items)
	} else if stack.Len() != 1 || stack.Pop() != 1 || !stack.IsEmpty() {
		t.Errorf("unexpected stack remainder")
	}
}

func TestStack_03(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	//
	NewStack[string]().Pop()
}
