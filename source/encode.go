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
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/larentoun/translate-helper/entry"
)

var bareKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Encode writes entries as a source document in the given order. Every
// scalar field and the tags line are always written so documents stay easy
// to edit by hand.
func Encode(w io.Writer, entries []*entry.Entry) error {
	bw := bufio.NewWriter(w)
	for i, e := range entries {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "[%s]\n", formatKey(e.Key))
		for _, f := range entry.ScalarFields {
			fmt.Fprintf(bw, "%s = %s\n", f, quote(e.Field(f)))
		}
		items := make([]string, 0, len(e.Tags))
		for _, t := range e.Tags {
			items = append(items, quote(t))
		}
		fmt.Fprintf(bw, "%s = [%s]\n", entry.FieldTags, strings.Join(items, ", "))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing document: %w", ErrIO, err)
	}
	return nil
}

func formatKey(key string) string {
	if bareKeyRegex.MatchString(key) {
		return key
	}
	return quote(key)
}

// quote returns s as a double quoted string with backslash escapes.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
