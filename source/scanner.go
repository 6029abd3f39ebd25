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
	"io"
	"strings"
)

const maxLineSize = 1 << 20

// Scanner scans a source document line by line.
type Scanner struct {
	s    *bufio.Scanner
	n    int
	line Line
	err  error
}

// NewScanner returns a new Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(r),
	}
	s.s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

// Scan advances to the next line. It returns false when the scan stops
// either by reaching the end of the input or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil || !s.s.Scan() {
		return false
	}
	s.n++

	text := s.s.Text()
	if s.n == 1 {
		// Editors on Windows like to write a byte order mark.
		text = strings.TrimPrefix(text, "\ufeff")
	}

	s.line, s.err = ParseLine(s.n, text)
	return s.err == nil
}

// Line returns the most recently scanned line.
func (s *Scanner) Line() Line {
	return s.line
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}
