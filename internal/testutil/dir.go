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

// Package testutil holds helpers for writing test source documents.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/larentoun/translate-helper/entry"
)

// MakeTempDir creates a temporary directory holding one <name>.toml file per
// map entry and returns its path. The directory is removed when the test
// ends.
func MakeTempDir(t *testing.T, docs map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range docs {
		WriteDoc(t, dir, name, data)
	}
	return dir
}

// WriteDoc writes a raw <name>.toml document into dir.
func WriteDoc(t *testing.T, dir, name, data string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name+".toml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

// ReadDoc returns the raw contents of <name>.toml in dir.
func ReadDoc(t *testing.T, dir, name string) string {
	t.Helper()

	b, err := os.ReadFile(filepath.Join(dir, name+".toml"))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// MakeEntry returns a complete entry for key in the named source. Case forms
// are derived from nominative.
func MakeEntry(key, nominative, sourceName string) *entry.Entry {
	return &entry.Entry{
		Key:           key,
		Nominative:    nominative,
		Genitive:      nominative + "а",
		Dative:        nominative + "у",
		Accusative:    nominative + "а",
		Instrumental:  nominative + "ом",
		Prepositional: nominative + "е",
		Gender:        entry.Male,
		Source:        sourceName,
	}
}
