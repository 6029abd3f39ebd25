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
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	// ErrInvalidKey indicates a key that is not made of lower case ASCII
	// letters, digits and underscores.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidGender indicates a gender outside of the known genders.
	ErrInvalidGender = errors.New("invalid gender")

	// ErrUnknownTag indicates a tag outside of the schema's vocabulary. It is
	// only returned when the schema rejects unknown tags.
	ErrUnknownTag = errors.New("unknown tag")
)

var keyRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// DefaultTags is the built-in tag vocabulary.
var DefaultTags = []string{
	TagNominativeOnly,
	"proper_noun",
	"animate",
	"inanimate",
	"species",
	"job",
	"item",
	"organ",
	"reagent",
	"plural_only",
}

// ValidationError is returned when an entry fails validation. It holds every
// problem found, each wrapping one of the package's sentinel errors.
type ValidationError struct {
	Key      string
	Problems []error
}

// Error implements error.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return fmt.Sprintf("validating %q: %s", e.Key, strings.Join(msgs, "; "))
}

// Unwrap returns the individual problems so that errors.Is matches any of
// them.
func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// Schema holds validation policy.
type Schema struct {
	// Tags is the known tag vocabulary.
	Tags []string

	// RejectUnknownTags causes tags outside of Tags to fail validation. When
	// false unknown tags are accepted and kept.
	RejectUnknownTags bool
}

// DefaultSchema returns a schema with the built-in vocabulary which accepts
// unknown tags.
func DefaultSchema() *Schema {
	return &Schema{
		Tags: slices.Clone(DefaultTags),
	}
}

// ValidateKey checks that key only contains lower case ASCII letters, digits
// and underscores.
func ValidateKey(key string) error {
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("%w: %q must match %s", ErrInvalidKey, key, keyRegex)
	}
	return nil
}

// KnownTag returns true if the tag is in the schema's vocabulary.
func (s *Schema) KnownTag(tag string) bool {
	if s == nil {
		return slices.Contains(DefaultTags, tag)
	}
	return slices.Contains(s.Tags, tag)
}

// UnknownTags returns the entry's tags which are not in the vocabulary.
func (s *Schema) UnknownTags(e *Entry) []string {
	var unknown []string
	for _, t := range e.Tags {
		if !s.KnownTag(t) {
			unknown = append(unknown, t)
		}
	}
	return unknown
}

// Validate validates the entry and classifies its completeness. It never
// returns StatusConflict as that requires knowledge of every source document.
func (s *Schema) Validate(e *Entry) (Status, error) {
	if e == nil {
		return "", &ValidationError{Problems: []error{fmt.Errorf("%w: nil entry", ErrInvalidKey)}}
	}

	var problems []error
	if err := ValidateKey(e.Key); err != nil {
		problems = append(problems, err)
	}
	if e.Gender != "" && !e.Gender.Valid() {
		problems = append(problems, fmt.Errorf("%w: %q must be one of %v", ErrInvalidGender, e.Gender, Genders))
	}
	if s != nil && s.RejectUnknownTags {
		for _, t := range s.UnknownTags(e) {
			problems = append(problems, fmt.Errorf("%w: %q", ErrUnknownTag, t))
		}
	}
	if len(problems) > 0 {
		return "", &ValidationError{
			Key:      e.Key,
			Problems: problems,
		}
	}

	if e.IsComplete() {
		return StatusGood, nil
	}
	return StatusIncomplete, nil
}
