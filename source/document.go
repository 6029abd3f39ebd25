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
	"fmt"
	"io"

	"github.com/larentoun/translate-helper/entry"
)

// Record is a raw entry section from a source document.
type Record struct {
	// Key is the section key.
	Key string

	// Line is the line number of the section header.
	Line int

	// Fields holds scalar assignments by field name. Unknown fields are kept
	// here but are not part of an entry.
	Fields map[string]string

	// Tags is the tags list. HasTags is false when the section had no tags
	// line.
	Tags    []string
	HasTags bool
}

// Entry converts the record into an entry belonging to the named source.
func (r *Record) Entry(sourceName string) *entry.Entry {
	e := &entry.Entry{
		Key:    r.Key,
		Source: sourceName,
	}
	for name, value := range r.Fields {
		e.SetField(name, value)
	}
	if len(r.Tags) > 0 {
		e.Tags = append(entry.Tags(nil), r.Tags...)
	}
	return e
}

// Document is a decoded source document.
type Document struct {
	// Name is the source name, e.g. "unsorted".
	Name string

	// Records are the document's sections in document order.
	Records []*Record
}

// Entries returns the document's entries in document order.
func (d *Document) Entries() []*entry.Entry {
	entries := make([]*entry.Entry, 0, len(d.Records))
	for _, r := range d.Records {
		entries = append(entries, r.Entry(d.Name))
	}
	return entries
}

// Decode reads a whole source document from r. name is the source name used
// for entries and errors.
func Decode(name string, r io.Reader) (*Document, error) {
	doc := &Document{Name: name}
	seen := map[string]int{}

	var cur *Record
	s := NewScanner(r)
	for s.Scan() {
		l := s.Line()
		switch l.Kind {
		case LineBlank, LineComment:
			continue
		case LineSection:
			if first, ok := seen[l.Key]; ok {
				return nil, &ParseError{Source: name, Line: l.Num, Msg: fmt.Sprintf("duplicate key %q (first defined on line %d)", l.Key, first)}
			}
			seen[l.Key] = l.Num
			cur = &Record{
				Key:    l.Key,
				Line:   l.Num,
				Fields: map[string]string{},
			}
			doc.Records = append(doc.Records, cur)
			continue
		}

		if cur == nil {
			return nil, &ParseError{Source: name, Line: l.Num, Msg: fmt.Sprintf("field %q outside of a section", l.Name)}
		}

		switch l.Kind {
		case LineScalar:
			if l.Name == entry.FieldTags {
				return nil, &ParseError{Source: name, Line: l.Num, Msg: "tags must be a list"}
			}
			if _, ok := cur.Fields[l.Name]; ok {
				return nil, &ParseError{Source: name, Line: l.Num, Msg: fmt.Sprintf("duplicate field %q in %q", l.Name, cur.Key)}
			}
			cur.Fields[l.Name] = l.Value
		case LineVector:
			if l.Name != entry.FieldTags {
				return nil, &ParseError{Source: name, Line: l.Num, Msg: fmt.Sprintf("field %q: only tags may be a list", l.Name)}
			}
			if cur.HasTags {
				return nil, &ParseError{Source: name, Line: l.Num, Msg: fmt.Sprintf("duplicate field %q in %q", l.Name, cur.Key)}
			}
			cur.Tags = l.Values
			cur.HasTags = true
		}
	}
	if err := s.Err(); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Source = name
			return nil, perr
		}
		return nil, fmt.Errorf("%w: reading %q: %w", ErrIO, name, err)
	}

	return doc, nil
}
