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
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/larentoun/translate-helper/entry"
)

// Ext is the file extension of source documents.
const Ext = ".toml"

var (
	// ErrIO indicates a source document could not be read or written.
	ErrIO = errors.New("i/o failure")

	// ErrInvalidName indicates a source name which cannot be mapped to a
	// file in the directory.
	ErrInvalidName = errors.New("invalid source name")
)

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateName checks that name is usable as a source document name.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Dir stores source documents as <name>.toml files in a directory.
type Dir struct {
	path string
}

// NewDir returns a Dir rooted at path, creating the directory if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %q: %w", ErrIO, path, err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// FilePath returns the path of the named document.
func (d *Dir) FilePath(name string) string {
	return filepath.Join(d.path, name+Ext)
}

// Names returns the sorted names of every document in the directory.
func (d *Dir) Names() ([]string, error) {
	des, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %q: %w", ErrIO, d.path, err)
	}
	var names []string
	for _, de := range des {
		if de.IsDir() || filepath.Ext(de.Name()) != Ext {
			continue
		}
		name := strings.TrimSuffix(de.Name(), Ext)
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Load reads the named document. A missing file is an empty document.
func (d *Dir) Load(name string) (*Document, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := d.FilePath(name)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Document{Name: name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrIO, path, err)
	}
	return Decode(name, bytes.NewReader(b))
}

// Save fully overwrites the named document with entries. The new contents
// are written to a temporary file which is renamed over the document so
// readers never observe a partial write.
func (d *Dir) Save(name string, entries []*entry.Entry) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, entries); err != nil {
		return err
	}

	path := d.FilePath(name)
	tmp, err := os.CreateTemp(d.path, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrIO, path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing %q: %w", ErrIO, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: syncing %q: %w", ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrIO, path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrIO, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: renaming into %q: %w", ErrIO, path, err)
	}
	return nil
}
