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

package source

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestParseLine tests ParseLine.
func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected Line
		err      bool
	}{
		{
			name:     "blank",
			text:     "   \t",
			expected: Line{Kind: LineBlank, Num: 1},
		},
		{
			name:     "comment",
			text:     "# mobs",
			expected: Line{Kind: LineComment, Num: 1},
		},
		{
			name:     "section",
			text:     "[orc]",
			expected: Line{Kind: LineSection, Num: 1, Key: "orc"},
		},
		{
			name:     "section with spaces",
			text:     "  [ Foo_Bar ]  ",
			expected: Line{Kind: LineSection, Num: 1, Key: "Foo_Bar"},
		},
		{
			name:     "quoted section",
			text:     `["space key"]`,
			expected: Line{Kind: LineSection, Num: 1, Key: "space key"},
		},
		{
			name:     "section with trailing comment",
			text:     "[orc] # note",
			expected: Line{Kind: LineSection, Num: 1, Key: "orc"},
		},
		{
			name:     "quoted section with trailing comment",
			text:     `["space key"]   #note`,
			expected: Line{Kind: LineSection, Num: 1, Key: "space key"},
		},
		{
			name: "section with trailing text",
			text: "[orc] goblin",
			err:  true,
		},
		{
			name: "quoted section with trailing text",
			text: `["orc" x]`,
			err:  true,
		},
		{
			name: "unterminated section",
			text: "[orc",
			err:  true,
		},
		{
			name: "empty section",
			text: "[]",
			err:  true,
		},
		{
			name: "array of tables",
			text: "[[orc]]",
			err:  true,
		},
		{
			name:     "scalar",
			text:     `nominative = "орк"`,
			expected: Line{Kind: LineScalar, Num: 1, Name: "nominative", Value: "орк"},
		},
		{
			name:     "scalar without spaces",
			text:     `gender="male"`,
			expected: Line{Kind: LineScalar, Num: 1, Name: "gender", Value: "male"},
		},
		{
			name:     "scalar with trailing comment",
			text:     `gender = "male" # fixed`,
			expected: Line{Kind: LineScalar, Num: 1, Name: "gender", Value: "male"},
		},
		{
			name:     "escaped quote",
			text:     `nominative = "\"Бур\" \\ 2"`,
			expected: Line{Kind: LineScalar, Num: 1, Name: "nominative", Value: `"Бур" \ 2`},
		},
		{
			name:     "unicode escape",
			text:     `nominative = "a\u00e9"`,
			expected: Line{Kind: LineScalar, Num: 1, Name: "nominative", Value: "aé"},
		},
		{
			name:     "equals in value",
			text:     `nominative = "a = b"`,
			expected: Line{Kind: LineScalar, Num: 1, Name: "nominative", Value: "a = b"},
		},
		{
			name: "raw quote",
			text: `nominative = "a"b"`,
			err:  true,
		},
		{
			name: "unterminated string",
			text: `nominative = "abc`,
			err:  true,
		},
		{
			name: "bad escape",
			text: `nominative = "a\qb"`,
			err:  true,
		},
		{
			name: "unquoted value",
			text: `nominative = орк`,
			err:  true,
		},
		{
			name: "missing name",
			text: `= "орк"`,
			err:  true,
		},
		{
			name: "garbage",
			text: `nominative`,
			err:  true,
		},
		{
			name:     "empty vector",
			text:     `tags = []`,
			expected: Line{Kind: LineVector, Num: 1, Name: "tags", Values: []string{}},
		},
		{
			name:     "vector",
			text:     `tags = ["species", "animate"]`,
			expected: Line{Kind: LineVector, Num: 1, Name: "tags", Values: []string{"species", "animate"}},
		},
		{
			name:     "vector trailing comma",
			text:     `tags = [ "job", ]`,
			expected: Line{Kind: LineVector, Num: 1, Name: "tags", Values: []string{"job"}},
		},
		{
			name: "unterminated vector",
			text: `tags = ["job"`,
			err:  true,
		},
		{
			name: "vector unquoted item",
			text: `tags = [job]`,
			err:  true,
		},
		{
			name: "vector missing comma",
			text: `tags = ["a" "b"]`,
			err:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLine(1, test.text)
			if test.err {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("ParseLine: expected parse error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLine: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("ParseLine (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestQuote tests that quote output is read back by unquote.
func TestQuote(t *testing.T) {
	t.Parallel()

	values := []string{
		"",
		"орк",
		`say "hi"`,
		`back\slash`,
		"two\nlines\tand\rmore",
		"bell\a",
	}
	for _, v := range values {
		got, rest, err := unquote(quote(v))
		if err != nil {
			t.Fatalf("unquote(quote(%q)): %v", v, err)
		}
		if rest != "" {
			t.Fatalf("unquote(quote(%q)): unexpected rest %q", v, rest)
		}
		if diff := cmp.Diff(v, got); diff != "" {
			t.Fatalf("unquote(quote(%q)) (-want, +got):\n%s", v, diff)
		}
	}
}
