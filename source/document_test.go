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

package source_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/source"
)

const unsortedDoc = `# hand edited
[orc]
nominative = "орк"
genitive = "орка"
dative = "орку"
accusative = "орка"
instrumental = "орком"
prepositional = "орке"
gender = "male"
tags = ["species", "animate"]

[Foo_Bar]
nominative = "фу"
gender = "neuter"
comment = "ignored field"

["space key"]
tags = []
`

// TestDecode tests Decode.
func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := source.Decode("unsorted", strings.NewReader(unsortedDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []*entry.Entry{
		{
			Key:           "orc",
			Nominative:    "орк",
			Genitive:      "орка",
			Dative:        "орку",
			Accusative:    "орка",
			Instrumental:  "орком",
			Prepositional: "орке",
			Gender:        entry.Male,
			Tags:          entry.Tags{"species", "animate"},
			Source:        "unsorted",
		},
		{
			Key:        "Foo_Bar",
			Nominative: "фу",
			Gender:     entry.Neuter,
			Source:     "unsorted",
		},
		{
			Key:    "space key",
			Source: "unsorted",
		},
	}
	if diff := cmp.Diff(want, doc.Entries()); diff != "" {
		t.Fatalf("Entries (-want, +got):\n%s", diff)
	}

	if got, want := doc.Records[1].Line, 12; got != want {
		t.Errorf("Records[1].Line: want %d, got %d", want, got)
	}
	if !doc.Records[2].HasTags || doc.Records[1].HasTags {
		t.Errorf("HasTags: unexpected values %v, %v", doc.Records[1].HasTags, doc.Records[2].HasTags)
	}
}

// TestDecode_errors tests Decode failures.
func TestDecode_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		line int
	}{
		{
			name: "field before section",
			data: "nominative = \"орк\"\n[orc]\n",
			line: 1,
		},
		{
			name: "duplicate key",
			data: "[orc]\n\n[orc]\n",
			line: 3,
		},
		{
			name: "duplicate field",
			data: "[orc]\ngender = \"male\"\ngender = \"female\"\n",
			line: 3,
		},
		{
			name: "scalar tags",
			data: "[orc]\ntags = \"species\"\n",
			line: 2,
		},
		{
			name: "vector gender",
			data: "[orc]\ngender = [\"male\"]\n",
			line: 2,
		},
		{
			name: "unescaped quote",
			data: "[orc]\n\nnominative = \"орк \"вождь\"\"\n",
			line: 3,
		},
		{
			name: "unterminated section",
			data: "[orc]\n[goblin\n",
			line: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := source.Decode("mobs", strings.NewReader(test.data))
			var perr *source.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Decode: expected *ParseError, got %v", err)
			}
			if !errors.Is(err, source.ErrParse) {
				t.Errorf("Decode: expected ErrParse, got %v", err)
			}
			if perr.Source != "mobs" {
				t.Errorf("ParseError.Source: want %q, got %q", "mobs", perr.Source)
			}
			if perr.Line != test.line {
				t.Errorf("ParseError.Line: want %d, got %d (%v)", test.line, perr.Line, err)
			}
		})
	}
}

// TestEncode_roundTrip tests that encoding decoded entries and decoding them
// again yields the same entries.
func TestEncode_roundTrip(t *testing.T) {
	t.Parallel()

	doc, err := source.Decode("unsorted", strings.NewReader(unsortedDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	entries := doc.Entries()
	entries = append(entries, &entry.Entry{
		Key:        "quoted",
		Nominative: `"Синдикат" \ 2` + "\n",
		Gender:     entry.Male,
		Tags:       entry.Tags{`a "b"`},
		Source:     "unsorted",
	})

	var buf bytes.Buffer
	if err := source.Encode(&buf, entries); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	first := buf.String()

	doc2, err := source.Decode("unsorted", strings.NewReader(first))
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, first)
	}
	// Empty and missing values are the same thing once decoded.
	if diff := cmp.Diff(entries, doc2.Entries(), cmp.Comparer(func(a, b entry.Tags) bool {
		return a.Equal(b)
	})); diff != "" {
		t.Fatalf("round trip (-want, +got):\n%s", diff)
	}

	// Encoding is stable once a document has been written.
	buf.Reset()
	if err := source.Encode(&buf, doc2.Entries()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if diff := cmp.Diff(first, buf.String()); diff != "" {
		t.Fatalf("second Encode (-want, +got):\n%s", diff)
	}
}

// TestEncode tests the written format.
func TestEncode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := source.Encode(&buf, []*entry.Entry{
		{
			Key:        "nt",
			Nominative: "НТ",
			Gender:     entry.Female,
			Tags:       entry.Tags{entry.TagNominativeOnly},
		},
		{
			Key:    "Upper",
			Gender: entry.Plural,
		},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := `[nt]
nominative = "НТ"
genitive = ""
dative = ""
accusative = ""
instrumental = ""
prepositional = ""
gender = "female"
tags = ["nominative_only"]

[Upper]
nominative = ""
genitive = ""
dative = ""
accusative = ""
instrumental = ""
prepositional = ""
gender = "plural"
tags = []
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Encode (-want, +got):\n%s", diff)
	}
}
