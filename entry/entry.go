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

package entry

import (
	"slices"
	"strings"

	"golang.org/x/text/transform"

	"github.com/larentoun/translate-helper/internal/folding"
)

// Field names as they appear in source documents.
const (
	FieldNominative    = "nominative"
	FieldGenitive      = "genitive"
	FieldDative        = "dative"
	FieldAccusative    = "accusative"
	FieldInstrumental  = "instrumental"
	FieldPrepositional = "prepositional"
	FieldGender        = "gender"
	FieldTags          = "tags"
)

// CaseFields are the six case form fields in declension order.
var CaseFields = []string{
	FieldNominative,
	FieldGenitive,
	FieldDative,
	FieldAccusative,
	FieldInstrumental,
	FieldPrepositional,
}

// ScalarFields are all string valued fields in the order they are written.
var ScalarFields = append(slices.Clone(CaseFields), FieldGender)

// TagNominativeOnly marks entries which only have a nominative form.
const TagNominativeOnly = "nominative_only"

// Gender is the grammatical gender of an entry.
type Gender string

const (
	// Male is the masculine gender.
	Male Gender = "male"

	// Female is the feminine gender.
	Female Gender = "female"

	// Neuter is the neuter gender.
	Neuter Gender = "neuter"

	// Plural is used for words which only exist in plural form.
	Plural Gender = "plural"
)

// Genders lists every valid gender.
var Genders = []Gender{Male, Female, Neuter, Plural}

// Valid returns true if g is one of the known genders.
func (g Gender) Valid() bool {
	return slices.Contains(Genders, g)
}

// Status is the computed status of a key.
type Status string

const (
	// StatusGood means the key is defined once (or identically) and complete.
	StatusGood Status = "good"

	// StatusIncomplete means the key is missing required fields.
	StatusIncomplete Status = "incomplete"

	// StatusConflict means the key is defined differently in more than one
	// source document.
	StatusConflict Status = "conflict"
)

// Tags is an ordered set of tags. Order is kept for display but ignored for
// equality.
type Tags []string

// Has returns true if the tag is present.
func (t Tags) Has(tag string) bool {
	return slices.Contains(t, tag)
}

// Normalize trims tags, folds internal whitespace, drops empty tags and
// removes duplicates keeping the first occurrence.
func (t Tags) Normalize() Tags {
	var out Tags
	seen := map[string]bool{}
	for _, tag := range t {
		folded, _, err := transform.String(&folding.WhitespaceFolder{}, tag)
		if err != nil {
			folded = strings.TrimSpace(tag)
		}
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, folded)
	}
	return out
}

// Equal reports whether both tag lists hold the same set of tags.
func (t Tags) Equal(other Tags) bool {
	a := slices.Clone(t.Normalize())
	b := slices.Clone(other.Normalize())
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Entry is one declension table entry.
type Entry struct {
	// Key is the unique identifier of the word.
	Key string `json:"key"`

	Nominative    string `json:"nominative"`
	Genitive      string `json:"genitive"`
	Dative        string `json:"dative"`
	Accusative    string `json:"accusative"`
	Instrumental  string `json:"instrumental"`
	Prepositional string `json:"prepositional"`

	Gender Gender `json:"gender"`
	Tags   Tags   `json:"tags"`

	// Source is the name of the document the entry lives in.
	Source string `json:"source"`
}

// Field returns the value of a scalar field by name. Unknown names return an
// empty string.
func (e *Entry) Field(name string) string {
	switch name {
	case FieldNominative:
		return e.Nominative
	case FieldGenitive:
		return e.Genitive
	case FieldDative:
		return e.Dative
	case FieldAccusative:
		return e.Accusative
	case FieldInstrumental:
		return e.Instrumental
	case FieldPrepositional:
		return e.Prepositional
	case FieldGender:
		return string(e.Gender)
	}
	return ""
}

// SetField sets a scalar field by name. It returns false if the name is not a
// known scalar field.
func (e *Entry) SetField(name, value string) bool {
	switch name {
	case FieldNominative:
		e.Nominative = value
	case FieldGenitive:
		e.Genitive = value
	case FieldDative:
		e.Dative = value
	case FieldAccusative:
		e.Accusative = value
	case FieldInstrumental:
		e.Instrumental = value
	case FieldPrepositional:
		e.Prepositional = value
	case FieldGender:
		e.Gender = Gender(value)
	default:
		return false
	}
	return true
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	c.Tags = slices.Clone(e.Tags)
	return &c
}

// Equal reports whether both entries hold the same definition: every case
// form, the gender and the tag set. Key and Source are not compared.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	for _, f := range ScalarFields {
		if e.Field(f) != other.Field(f) {
			return false
		}
	}
	return e.Tags.Equal(other.Tags)
}

// Diff returns the names of fields which differ between the two entries.
func (e *Entry) Diff(other *Entry) []string {
	var fields []string
	for _, f := range ScalarFields {
		if e.Field(f) != other.Field(f) {
			fields = append(fields, f)
		}
	}
	if !e.Tags.Equal(other.Tags) {
		fields = append(fields, FieldTags)
	}
	return fields
}

// RequiredFields returns the fields which must be non-empty for the entry to
// be complete.
func (e *Entry) RequiredFields() []string {
	if e.Tags.Has(TagNominativeOnly) {
		return []string{FieldNominative, FieldGender}
	}
	return ScalarFields
}

// Missing returns the required fields which are empty.
func (e *Entry) Missing() []string {
	var missing []string
	for _, f := range e.RequiredFields() {
		if strings.TrimSpace(e.Field(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// IsComplete returns true if all required fields are present.
func (e *Entry) IsComplete() bool {
	return len(e.Missing()) == 0
}
