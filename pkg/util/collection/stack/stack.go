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

// Stack is a LIFO stack backed by a slice.  The zero Stack is empty and ready
// to use.
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// IsEmpty checks whether the stack holds no items.
func (p *Stack[T]) IsEmpty() bool {
	return len(p.items) == 0
}

// Len returns the number of items held.
func (p *Stack[T]) Len() uint {
	return uint(len(p.items))
}

// Push an item onto the stack.
func (p *Stack[T]) Push(item T) {
	p.items = append(p.items, item)
}

// Top returns a pointer to the topmost item, so that it can be updated in
// place.  The pointer is invalidated by the next Push.
func (p *Stack[T]) Top() *T {
	return &p.items[p.last("top of")]
}

// Pop removes and returns the topmost item.
func (p *Stack[T]) Pop() T {
	n := p.last("pop from")
	item := p.items[n]
	p.items = p.items[:n]
	//
	return item
}

// PopUntil removes items down to (and including) the topmost one satisfying
// the given predicate.  The items removed are returned bottom first, i.e. in
// the order they were pushed.
func (p *Stack[T]) PopUntil(predicate func(T) bool) []T {
	for i := len(p.items) - 1; i >= 0; i-- {
		if predicate(p.items[i]) {
			items := append([]T(nil), p.items[i:]...)
			p.items = p.items[:i]
			//
			return items
		}
	}
	//
	panic("no matching item on stack")
}

func (p *Stack[T]) last(op string) int {
	if len(p.items) == 0 {
		panic("cannot " + op + " empty stack")
	}
	//
	return len(p.items) - 1
}
