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

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/larentoun/translate-helper/internal/testutil"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.RunContext(context.Background(), append([]string{"translate-helper"}, args...))
	return out.String(), err
}

func TestList(t *testing.T) {
	t.Parallel()

	dir := testutil.MakeTempDir(t, map[string]string{
		"unsorted": "[orc]\nnominative = \"орк\"\n\n[vox]\nnominative = \"вокс\"\n",
	})

	out, err := runApp(t, "-d", dir, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"orc", "vox", "incomplete", "орк"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	out, err = runApp(t, "-d", dir, "list", "вок")
	if err != nil {
		t.Fatalf("list query: %v", err)
	}
	if strings.Contains(out, "orc") || !strings.Contains(out, "vox") {
		t.Errorf("unexpected list query output:\n%s", out)
	}

	_, err = runApp(t, "-d", dir, "list", "--status", "bogus")
	if got, want := exitCode(err), ExitCodeFlagParseError; got != want {
		t.Errorf("bad status: want exit code %d, got %d (%v)", want, got, err)
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	dir := testutil.MakeTempDir(t, map[string]string{
		"unsorted": "[Foo_Bar]\nnominative = \"фу\"\n",
	})

	out, err := runApp(t, "-d", dir, "check-keys")
	if got, want := exitCode(err), ExitCodeFindings; got != want {
		t.Fatalf("check-keys: want exit code %d, got %d (%v)", want, got, err)
	}
	if !strings.Contains(out, "foo_bar") {
		t.Errorf("check-keys output missing fixed key:\n%s", out)
	}

	if _, err := runApp(t, "-d", dir, "fix-keys"); err != nil {
		t.Fatalf("fix-keys: %v", err)
	}
	if _, err := runApp(t, "-d", dir, "check-keys"); err != nil {
		t.Fatalf("check-keys after fix: %v", err)
	}
	if !strings.Contains(testutil.ReadDoc(t, dir, "unsorted"), "[foo_bar]") {
		t.Errorf("foo_bar not written")
	}
}

func TestImportDelete(t *testing.T) {
	t.Parallel()

	dir := testutil.MakeTempDir(t, map[string]string{
		"unsorted": "[orc]\nnominative = \"орк\"\n",
	})
	upload := filepath.Join(t.TempDir(), "new.toml")
	if err := os.WriteFile(upload, []byte("[orc]\nnominative = \"x\"\n\n[vox]\nnominative = \"вокс\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "-d", dir, "import", "--source", "mobs", upload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "conflict") {
		t.Errorf("import output missing conflict:\n%s", out)
	}
	if !strings.Contains(testutil.ReadDoc(t, dir, "mobs"), "[vox]") {
		t.Errorf("vox not imported into mobs")
	}

	if _, err := runApp(t, "-d", dir, "delete", "vox"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := runApp(t, "-d", dir, "delete", "vox"); err == nil {
		t.Fatalf("delete missing: expected error")
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		err  error
		want int
	}{
		"nil":      {err: nil, want: ExitCodeSuccess},
		"flags":    {err: ErrFlagParse, want: ExitCodeFlagParseError},
		"findings": {err: ErrFindings, want: ExitCodeFindings},
		"other":    {err: errors.New("boom"), want: ExitCodeUnknownError},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := exitCode(tc.err); got != tc.want {
				t.Fatalf("exitCode(%v): want %d, got %d", tc.err, tc.want, got)
			}
		})
	}
}
