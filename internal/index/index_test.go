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

package index

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func items(terms ...string) []Item[int] {
	var out []Item[int]
	for i, t := range terms {
		out = append(out, Item[int]{Term: t, Value: i})
	}
	return out
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		terms    []string
		query    string
		expected []int
	}{
		{
			name:     "single result",
			terms:    []string{"орк", "гоблин", "унатх", "гоблин"},
			query:    "орк",
			expected: []int{0},
		},
		{
			name:     "multiple results keep insertion order",
			terms:    []string{"орк", "гоблин", "унатх", "гоблин"},
			query:    "гоблин",
			expected: []int{1, 3},
		},
		{
			name:     "no results",
			terms:    []string{"орк", "гоблин"},
			query:    "none",
			expected: nil,
		},
		{
			name:     "empty index",
			query:    "орк",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			idx := New(items(test.terms...))
			if diff := cmp.Diff(test.expected, idx.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Prefix(t *testing.T) {
	t.Parallel()

	idx := New(items("goblin", "gob", "orc", "goat", "golem"))
	if diff := cmp.Diff([]int{1, 0}, idx.Prefix("gob")); diff != "" {
		t.Fatalf("Prefix (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 1, 0, 4}, idx.Prefix("go")); diff != "" {
		t.Fatalf("Prefix (-want, +got):\n%s", diff)
	}
	if got := idx.Len(); got != 5 {
		t.Fatalf("Len: want 5, got %d", got)
	}
}
