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

// Package casing finds and fixes keys containing upper case characters.
//
// Any upper case letter is reported, including non-ASCII ones. Valid keys are
// limited to lower case ASCII letters, digits and underscores, so a key such
// as "Орк" is reported but cannot be fixed: its lower case form "орк" is
// still invalid and Fix stops with entry.ErrInvalidKey.
package casing

import (
	"fmt"
	"unicode"

	"github.com/larentoun/translate-helper/internal/folding"
	"github.com/larentoun/translate-helper/store"
)

// Issue is a key with upper case characters.
type Issue struct {
	// Source is the document the key was found in.
	Source string `json:"file"`

	// Key is the offending key.
	Key string `json:"key"`

	// ProposedKey is the lower case form of Key.
	ProposedKey string `json:"fixed_key"`
}

// FixResult is the outcome of Fix.
type FixResult struct {
	// Fixed are the issues which were renamed, in order.
	Fixed []Issue `json:"fixed"`
}

// hasUpper returns true if s contains an upper case rune.
func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Scan returns an issue for every key containing upper case characters,
// ordered by document name and then document order. A key defined in several
// documents is reported once per document.
func Scan(st *store.Store) []Issue {
	issues := []Issue{}
	for _, d := range st.Documents() {
		for _, e := range d.Entries {
			if !hasUpper(e.Key) {
				continue
			}
			issues = append(issues, Issue{
				Source:      d.Name,
				Key:         e.Key,
				ProposedKey: folding.String(folding.Lower, e.Key),
			})
		}
	}
	return issues
}

// Fix renames every key reported by Scan to its lower case form, in scan
// order. A rename renames the key in every document at once so later issues
// for the same key are already fixed.
//
// Fix stops at the first failure and returns the issues fixed so far along
// with the error. The failure is store.ErrKeyCollision when the lower case key
// already exists, or entry.ErrInvalidKey when the lower case key contains
// characters other than ASCII letters, digits and underscores.
func Fix(st *store.Store) (*FixResult, error) {
	res := &FixResult{Fixed: []Issue{}}
	done := map[string]bool{}
	for _, issue := range Scan(st) {
		if done[issue.Key] {
			res.Fixed = append(res.Fixed, issue)
			continue
		}
		if err := st.Rekey(issue.Key, issue.ProposedKey); err != nil {
			return res, fmt.Errorf("fixing %q in %q: %w", issue.Key, issue.Source, err)
		}
		done[issue.Key] = true
		res.Fixed = append(res.Fixed, issue)
	}
	return res, nil
}
