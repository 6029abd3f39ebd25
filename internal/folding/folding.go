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

// Package folding implements text folding used for tags, keys and search
// queries.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// WhitespaceFolder trims leading and trailing whitespace and collapses
// internal whitespace runs into a single ASCII space.
type WhitespaceFolder struct {
	// seenText is set once the first non-space rune was emitted.
	seenText bool

	// pending is set while inside an internal whitespace run.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	nDst, nSrc := 0, 0
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(r) {
			// Leading whitespace is dropped. Trailing whitespace is held
			// as pending and never written.
			w.pending = w.seenText
			nSrc += size
			continue
		}

		need := utf8.RuneLen(r)
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		w.seenText = true
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}

// Lower returns a transformer which lower cases text.
func Lower() transform.Transformer {
	return cases.Lower(language.Und)
}

// Search returns a transformer used to fold search keys and queries. It
// folds whitespace and lower cases text.
func Search() transform.Transformer {
	return transform.Chain(&WhitespaceFolder{}, Lower())
}

// String applies a fresh transformer returned by newT to s. If folding fails
// s is returned unchanged.
func String(newT func() transform.Transformer, s string) string {
	folded, _, err := transform.String(newT(), s)
	if err != nil {
		return s
	}
	return folded
}
