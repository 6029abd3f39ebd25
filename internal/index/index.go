// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index implements a sorted in-memory index over folded strings.
package index

import (
	"cmp"
	"slices"
	"strings"
)

// Item is an indexed value with the folded term it is found by.
type Item[V any] struct {
	Term  string
	Value V
}

// Index is a sorted array index. Several items may share a term.
type Index[V any] struct {
	items []Item[V]
}

// New creates an index from the given items. The items slice is copied.
func New[V any](items []Item[V]) *Index[V] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item[V]) int {
		return cmp.Compare(a.Term, b.Term)
	})
	return &Index[V]{items: sorted}
}

// Len returns the number of items in the index.
func (idx *Index[V]) Len() int {
	return len(idx.items)
}

// Search returns the values whose term equals query.
func (idx *Index[V]) Search(query string) []V {
	return idx.collect(query, func(term string) bool {
		return term == query
	})
}

// Prefix returns the values whose term starts with prefix.
func (idx *Index[V]) Prefix(prefix string) []V {
	return idx.collect(prefix, func(term string) bool {
		return strings.HasPrefix(term, prefix)
	})
}

func (idx *Index[V]) collect(start string, match func(string) bool) []V {
	i, _ := slices.BinarySearchFunc(idx.items, start, func(it Item[V], q string) int {
		return cmp.Compare(it.Term, q)
	})

	var values []V
	for ; i < len(idx.items) && match(idx.items[i].Term); i++ {
		values = append(values, idx.items[i].Value)
	}
	return values
}
