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
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrParse indicates a malformed source document.
var ErrParse = errors.New("parse error")

// ParseError describes a malformed line in a source document.
type ParseError struct {
	// Source is the document name. It may be empty when parsing a single
	// line.
	Source string

	// Line is the 1-based line number.
	Line int

	// Msg describes the problem.
	Msg string
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%v: line %d: %s", ErrParse, e.Line, e.Msg)
	}
	return fmt.Sprintf("%v: %s:%d: %s", ErrParse, e.Source, e.Line, e.Msg)
}

// Unwrap returns ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// LineKind is the kind of a source document line.
type LineKind int

const (
	// LineBlank is an empty or whitespace only line.
	LineBlank LineKind = iota

	// LineComment is a line starting with '#'.
	LineComment

	// LineSection is a '[key]' section header.
	LineSection

	// LineScalar is a 'name = "value"' assignment.
	LineScalar

	// LineVector is a 'name = ["a", "b"]' assignment.
	LineVector
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineSection:
		return "section"
	case LineScalar:
		return "scalar"
	case LineVector:
		return "vector"
	}
	return "LineKind(" + strconv.Itoa(int(k)) + ")"
}

// Line is a parsed source document line.
type Line struct {
	Kind LineKind

	// Num is the 1-based line number.
	Num int

	// Key is the section key for LineSection.
	Key string

	// Name is the field name for LineScalar and LineVector.
	Name string

	// Value is the field value for LineScalar.
	Value string

	// Values are the list items for LineVector. It is non-nil for vectors.
	Values []string
}

// ParseLine parses a single line of a source document. n is the line number
// used in errors.
func ParseLine(n int, text string) (Line, error) {
	text = strings.TrimSpace(text)
	l := Line{Num: n}

	switch {
	case text == "":
		l.Kind = LineBlank
		return l, nil
	case strings.HasPrefix(text, "#"):
		l.Kind = LineComment
		return l, nil
	case strings.HasPrefix(text, "["):
		key, err := parseSection(text)
		if err != nil {
			return l, &ParseError{Line: n, Msg: err.Error()}
		}
		l.Kind = LineSection
		l.Key = key
		return l, nil
	}

	name, value, ok := strings.Cut(text, "=")
	if !ok {
		return l, &ParseError{Line: n, Msg: fmt.Sprintf("expected section header or assignment, got %q", text)}
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return l, &ParseError{Line: n, Msg: "missing field name"}
	}
	l.Name = name

	switch {
	case strings.HasPrefix(value, `"`):
		s, rest, err := unquote(value)
		if err != nil {
			return l, &ParseError{Line: n, Msg: fmt.Sprintf("field %q: %v", name, err)}
		}
		if err := checkTrailing(rest); err != nil {
			return l, &ParseError{Line: n, Msg: fmt.Sprintf("field %q: %v", name, err)}
		}
		l.Kind = LineScalar
		l.Value = s
	case strings.HasPrefix(value, "["):
		values, err := parseVector(value)
		if err != nil {
			return l, &ParseError{Line: n, Msg: fmt.Sprintf("field %q: %v", name, err)}
		}
		l.Kind = LineVector
		l.Values = values
	default:
		return l, &ParseError{Line: n, Msg: fmt.Sprintf("field %q: value must be a quoted string or a list", name)}
	}
	return l, nil
}

// parseSection parses a section header. A trailing comment is allowed.
func parseSection(text string) (string, error) {
	inner := strings.TrimSpace(text[1:])

	var key, rest string
	if strings.HasPrefix(inner, `"`) {
		k, r, err := unquote(inner)
		if err != nil {
			return "", fmt.Errorf("section key: %w", err)
		}
		r = strings.TrimSpace(r)
		if !strings.HasPrefix(r, "]") {
			return "", fmt.Errorf("expected ] after section key, got %q", r)
		}
		key, rest = k, r[1:]
	} else {
		end := strings.IndexByte(inner, ']')
		if end < 0 {
			return "", errors.New("unterminated section header")
		}
		key, rest = strings.TrimSpace(inner[:end]), inner[end+1:]
		if strings.ContainsAny(key, `["= `) {
			return "", fmt.Errorf("invalid section key %q", key)
		}
	}
	if key == "" {
		return "", errors.New("empty section key")
	}
	if rest = strings.TrimSpace(rest); rest != "" && !strings.HasPrefix(rest, "#") {
		return "", fmt.Errorf("unexpected text after section header: %q", rest)
	}
	return key, nil
}

// unquote reads a double quoted string from the start of s and returns the
// unescaped value and the text following the closing quote.
func unquote(s string) (string, string, error) {
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		switch c {
		case '"':
			return b.String(), s[i+1:], nil
		case '\\':
			if i+1 >= len(s) {
				return "", "", errors.New("unterminated escape sequence")
			}
			i++
			switch s[i] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'u', 'U':
				size := 4
				if s[i] == 'U' {
					size = 8
				}
				if i+size >= len(s) {
					return "", "", errors.New("short unicode escape")
				}
				code, err := strconv.ParseUint(s[i+1:i+1+size], 16, 32)
				if err != nil || !utf8.ValidRune(rune(code)) {
					return "", "", fmt.Errorf("invalid unicode escape %q", s[i-1:i+1+size])
				}
				b.WriteRune(rune(code))
				i += size
			default:
				return "", "", fmt.Errorf("invalid escape sequence \\%c", s[i])
			}
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", "", errors.New("unterminated string")
}

// checkTrailing allows only whitespace or a comment after a value. A raw
// double quote inside a value ends the string early and is caught here.
func checkTrailing(rest string) error {
	rest = strings.TrimSpace(rest)
	if rest == "" || strings.HasPrefix(rest, "#") {
		return nil
	}
	return fmt.Errorf("unexpected text after value: %q (unescaped quote?)", rest)
}

func parseVector(s string) ([]string, error) {
	values := []string{}
	rest := strings.TrimSpace(s[1:])
	for {
		if strings.HasPrefix(rest, "]") {
			return values, checkTrailing(rest[1:])
		}
		if !strings.HasPrefix(rest, `"`) {
			if rest == "" {
				return nil, errors.New("unterminated list")
			}
			return nil, fmt.Errorf("list items must be quoted strings, got %q", rest)
		}
		v, after, err := unquote(rest)
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		rest = strings.TrimSpace(after)
		switch {
		case strings.HasPrefix(rest, ","):
			rest = strings.TrimSpace(rest[1:])
		case strings.HasPrefix(rest, "]"):
		case rest == "":
			return nil, errors.New("unterminated list")
		default:
			return nil, fmt.Errorf("expected ',' or ']' in list, got %q", rest)
		}
	}
}
