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

// Package translatehelper opens a directory of translation dictionary source
// documents for editing.
//
// A dictionary is a directory of .toml source documents. Each document holds
// entries keyed by an identifier:
//
//	[goblin]
//	nominative = "гоблин"
//	genitive = "гоблина"
//	dative = "гоблину"
//	accusative = "гоблина"
//	instrumental = "гоблином"
//	prepositional = "гоблине"
//	gender = "male"
//	tags = ["animate"]
//
// The same key may be defined in more than one document. The store merges
// every document and computes a status for each key: good, incomplete or
// conflict.
package translatehelper

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/source"
	"github.com/larentoun/translate-helper/store"
)

// Options are options for Open.
type Options struct {
	// Schema validates entries. Defaults to entry.DefaultSchema().
	Schema *entry.Schema

	// DefaultSource receives new keys which name no source. Defaults to
	// store.DefaultSource.
	DefaultSource string

	// Create creates the directory if it does not exist.
	Create bool

	// Logger receives store events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Open loads every source document in dir into a new store.
func Open(ctx context.Context, dir string, opts *Options) (*store.Store, error) {
	if opts == nil {
		opts = &Options{}
	}

	if !opts.Create {
		fi, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("error opening %q: %w", dir, err)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("%q is not a directory", dir)
		}
	}

	d, err := source.NewDir(dir)
	if err != nil {
		return nil, err
	}
	st := store.New(d, &store.Options{
		Schema:        opts.Schema,
		DefaultSource: opts.DefaultSource,
		Logger:        opts.Logger,
	})
	if err := st.Reload(ctx); err != nil {
		return nil, fmt.Errorf("error reading %q: %w", dir, err)
	}
	return st, nil
}
