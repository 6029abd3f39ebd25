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

package casing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/larentoun/translate-helper/casing"
	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/internal/testutil"
	"github.com/larentoun/translate-helper/source"
	"github.com/larentoun/translate-helper/store"
)

func openStore(t *testing.T, docs map[string]string) *store.Store {
	t.Helper()

	d, err := source.NewDir(testutil.MakeTempDir(t, docs))
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	s := store.New(d, nil)
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return s
}

// TestScanFix tests scanning and fixing upper case keys.
func TestScanFix(t *testing.T) {
	t.Parallel()

	s := openStore(t, map[string]string{
		"unsorted": "[Foo_Bar]\ntags = []\n\n[orc]\ntags = []\n\n[Vox]\ntags = []\n",
		"mobs":     "[Vox]\ntags = []\n",
	})

	want := []casing.Issue{
		{Source: "mobs", Key: "Vox", ProposedKey: "vox"},
		{Source: "unsorted", Key: "Foo_Bar", ProposedKey: "foo_bar"},
		{Source: "unsorted", Key: "Vox", ProposedKey: "vox"},
	}
	if diff := cmp.Diff(want, casing.Scan(s)); diff != "" {
		t.Fatalf("Scan (-want, +got):\n%s", diff)
	}

	res, err := casing.Fix(s)
	if err != nil {
		t.Fatalf("Fix: %v", err)
	}
	if diff := cmp.Diff(want, res.Fixed); diff != "" {
		t.Fatalf("Fixed (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"foo_bar", "orc", "vox"}, s.Keys()); diff != "" {
		t.Fatalf("Keys (-want, +got):\n%s", diff)
	}
	if got := casing.Scan(s); len(got) != 0 {
		t.Fatalf("Scan after Fix: expected no issues, got %v", got)
	}
}

// TestFix_collision tests that a collision stops the fix without losing
// entries.
func TestFix_collision(t *testing.T) {
	t.Parallel()

	s := openStore(t, map[string]string{
		"unsorted": "[Abc]\ntags = []\n\n[Foo]\nnominative = \"Фу\"\ntags = []\n\n[foo]\nnominative = \"фу\"\ntags = []\n\n[Zed]\ntags = []\n",
	})

	res, err := casing.Fix(s)
	if !errors.Is(err, store.ErrKeyCollision) {
		t.Fatalf("Fix: expected ErrKeyCollision, got %v", err)
	}
	want := []casing.Issue{
		{Source: "unsorted", Key: "Abc", ProposedKey: "abc"},
	}
	if diff := cmp.Diff(want, res.Fixed); diff != "" {
		t.Fatalf("Fixed (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Foo", "Zed", "abc", "foo"}, s.Keys()); diff != "" {
		t.Fatalf("Keys (-want, +got):\n%s", diff)
	}
}

// TestScan_lowerOnly tests that lower case keys with other invalid
// characters are not reported.
func TestScan_lowerOnly(t *testing.T) {
	t.Parallel()

	s := openStore(t, map[string]string{
		"unsorted": "[orc-warrior]\ntags = []\n",
	})
	if got := casing.Scan(s); len(got) != 0 {
		t.Fatalf("Scan: expected no issues, got %v", got)
	}
}

// TestFix_nonASCII tests that a non-ASCII upper case key is reported and
// stops the fix as an invalid key.
func TestFix_nonASCII(t *testing.T) {
	t.Parallel()

	s := openStore(t, map[string]string{
		"unsorted": "[Abc]\ntags = []\n\n[Орк]\ntags = []\n",
	})

	want := []casing.Issue{
		{Source: "unsorted", Key: "Abc", ProposedKey: "abc"},
		{Source: "unsorted", Key: "Орк", ProposedKey: "орк"},
	}
	if diff := cmp.Diff(want, casing.Scan(s)); diff != "" {
		t.Fatalf("Scan (-want, +got):\n%s", diff)
	}

	res, err := casing.Fix(s)
	if !errors.Is(err, entry.ErrInvalidKey) {
		t.Fatalf("Fix: expected ErrInvalidKey, got %v", err)
	}
	if diff := cmp.Diff(want[:1], res.Fixed); diff != "" {
		t.Fatalf("Fixed (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"abc", "Орк"}, s.Keys()); diff != "" {
		t.Fatalf("Keys (-want, +got):\n%s", diff)
	}
}
