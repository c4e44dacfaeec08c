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
package hash

// Hasher is implemented by keys which can be placed in an Index.  Hashcodes
// need not be unique: keys with equal hashcodes are distinguished by Equals.
// Signal descriptors are composite values whose hashcodes are mixed from their
// parts, hence collisions must be tolerated.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Seed returns the initial value for a hashcode computed incrementally using
// Mix, String and Int.
func Seed() uint64 {
	return offset64
}

// Mix folds a given 64-bit value into a running FNV1a hashcode.  This is the
// mechanism used for hashing composite values (i.e. hashing hashes).
func Mix(hash uint64, value uint64) uint64 {
	hash ^= value
	hash *= prime64
	//
	return hash
}

// Int folds a given integer into a running hashcode.
func Int(hash uint64, value int) uint64 {
	return Mix(hash, uint64(value))
}

// String folds the bytes of a given string into a running hashcode, followed
// by a terminator so that adjacent strings cannot be confused.
func String(hash uint64, value string) uint64 {
	for i := 0; i < len(value); i++ {
		hash = Mix(hash, uint64(value[i]))
	}
	// Terminator
	return Mix(hash, 0xff)
}
