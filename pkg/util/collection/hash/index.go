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

import "fmt"

// Index assigns stable, sequential identities to distinct keys.  Inserting a
// key equal to one seen before returns the identity originally assigned to it.
// Identities are allocated in insertion order (0, 1, 2, ...), which makes an
// Index suitable for driving a worklist: the identity of an item is its
// position in the worklist.  Items cannot be removed.
//
// Keys are bucketed by hashcode, and keys within a bucket are compared using
// Equals.  Hence, distinct keys with the same hashcode are kept apart.
type Index[K Hasher[K]] struct {
	// items records the key for each identity.
	items []K
	// buckets maps hashcodes to the identities of keys with that hashcode.
	buckets map[uint64][]uint
}

// NewIndex constructs an empty index.
func NewIndex[K Hasher[K]]() *Index[K] {
	return &Index[K]{nil, make(map[uint64][]uint)}
}

// Insert a key into this index, returning its identity and whether or not it
// was freshly allocated.
func (p *Index[K]) Insert(key K) (uint, bool) {
	hash := key.Hash()
	//
	if id, ok := p.find(hash, key); ok {
		return id, false
	}
	// Allocate next identity
	id := uint(len(p.items))
	p.items = append(p.items, key)
	p.buckets[hash] = append(p.buckets[hash], id)
	//
	return id, true
}

// Find returns the identity of a given key, or false if it was never inserted.
func (p *Index[K]) Find(key K) (uint, bool) {
	return p.find(key.Hash(), key)
}

// Get returns the key with a given identity.
func (p *Index[K]) Get(id uint) K {
	if id >= uint(len(p.items)) {
		panic(fmt.Sprintf("invalid index identity %d (of %d)", id, len(p.items)))
	}
	//
	return p.items[id]
}

// Len returns the number of identities allocated so far.  Since inserting can
// happen whilst iterating an index, this must be re-evaluated on every step.
func (p *Index[K]) Len() uint {
	return uint(len(p.items))
}

// Items returns a copy of all keys, ordered by identity.
func (p *Index[K]) Items() []K {
	items := make([]K, len(p.items))
	copy(items, p.items)
	//
	return items
}

// MaxBucket returns the number of keys in the largest bucket, which is useful
// for judging the quality of a hash function.
func (p *Index[K]) MaxBucket() uint {
	var n int
	//
	for _, bucket := range p.buckets {
		n = max(n, len(bucket))
	}
	//
	return uint(n)
}

func (p *Index[K]) find(hash uint64, key K) (uint, bool) {
	for _, id := range p.buckets[hash] {
		if key.Equals(p.items[id]) {
			return id, true
		}
	}
	//
	return 0, false
}
