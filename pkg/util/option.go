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
package util

// Option holds a value which may be absent, such as the name bound to a graph
// node.  The zero Option is empty.
type Option[T any] struct {
	value T
	ok    bool
}

// Some constructs an option holding the given value.
func Some[T any](value T) Option[T] {
	return Option[T]{value, true}
}

// None constructs an empty option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value held (if any), along with whether it was present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// HasValue checks whether a value is present.
func (o Option[T]) HasValue() bool {
	return o.ok
}

// IsEmpty checks whether no value is present.
func (o Option[T]) IsEmpty() bool {
	return !o.ok
}

// UnwrapOr returns the value held, or def when empty.
func (o Option[T]) UnwrapOr(def T) T {
	if value, ok := o.Get(); ok {
		return value
	}
	//
	return def
}

// Unwrap returns the value held, and panics when empty.
func (o Option[T]) Unwrap() T {
	if !o.ok {
		panic("unwrap of empty option")
	}
	//
	return o.value
}
