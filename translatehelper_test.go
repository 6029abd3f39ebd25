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

package translatehelper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/larentoun/translate-helper/internal/testutil"
	"github.com/larentoun/translate-helper/source"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := testutil.MakeTempDir(t, map[string]string{
		"mobs":     "[orc]\nnominative = \"орк\"\n",
		"unsorted": "[vox]\nnominative = \"вокс\"\n",
	})
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# notes"), 0o600); err != nil {
		t.Fatal(err)
	}

	st, err := Open(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff([]string{"mobs", "unsorted"}, st.Sources()); diff != "" {
		t.Errorf("Sources (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"orc", "vox"}, st.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
}

func TestOpen_errors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := Open(context.Background(), missing, nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing dir: expected ErrNotExist, got %v", err)
	}

	st, err := Open(context.Background(), missing, &Options{Create: true})
	if err != nil {
		t.Fatalf("Open with Create: %v", err)
	}
	if got := st.Keys(); len(got) != 0 {
		t.Errorf("expected empty store, got %v", got)
	}

	dir := testutil.MakeTempDir(t, map[string]string{
		"broken": "[orc\n",
	})
	if _, err := Open(context.Background(), dir, nil); !errors.Is(err, source.ErrParse) {
		t.Errorf("broken document: expected ErrParse, got %v", err)
	}
}
