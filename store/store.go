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

package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/internal/index"
	"github.com/larentoun/translate-helper/source"
)

// DefaultSource is the catch-all document new keys are created in.
const DefaultSource = "unsorted"

// maxConcurrentLoads bounds the number of documents decoded at once.
const maxConcurrentLoads = 8

var (
	// ErrNotFound indicates the key is not defined in the requested source.
	ErrNotFound = errors.New("not found")

	// ErrKeyCollision indicates the target key of a rename already exists.
	ErrKeyCollision = errors.New("key collision")

	// ErrKeyExists indicates an insert of a key which is already defined.
	ErrKeyExists = errors.New("key already exists")

	// ErrAmbiguousSource indicates an upsert of a key defined in several
	// sources without naming which one to overwrite.
	ErrAmbiguousSource = errors.New("ambiguous source")
)

// Codec reads and writes whole source documents.
type Codec interface {
	// Load returns the named document. A missing document is empty.
	Load(name string) (*source.Document, error)

	// Save fully overwrites the named document.
	Save(name string, entries []*entry.Entry) error
}

// Lister is implemented by codecs which can enumerate their documents.
type Lister interface {
	Names() ([]string, error)
}

// Options are options for a Store.
type Options struct {
	// Schema validates entries. Defaults to entry.DefaultSchema().
	Schema *entry.Schema

	// DefaultSource is the document new keys without a source go to.
	// Defaults to DefaultSource.
	DefaultSource string

	// Logger receives store events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Listing is a key as seen across every source document.
type Listing struct {
	// Entry is the definition shown for the key. For conflicts this is the
	// definition from the lexicographically first source.
	Entry *entry.Entry

	// Status is the computed status of the key.
	Status entry.Status

	// Sources are all sources defining the key, sorted.
	Sources []string

	// Conflicting lists the sources involved in a conflict: the source of
	// Entry followed by every source whose definition differs from it. It is
	// empty unless Status is StatusConflict.
	Conflicting []string

	// ConflictFields names the fields on which the conflicting definitions
	// differ from Entry, in field order. It is empty unless Status is
	// StatusConflict.
	ConflictFields []string
}

// Document is a snapshot of one source document.
type Document struct {
	Name    string
	Entries []*entry.Entry
}

// document is a source document held in memory.
type document struct {
	name string

	// keys are the document's keys in document order.
	keys []string
}

// Store is the authoritative in-memory mapping of keys to entries across all
// source documents.
type Store struct {
	codec         Codec
	schema        *entry.Schema
	defaultSource string
	logger        *zap.Logger

	mu sync.RWMutex

	docs map[string]*document

	// defs maps key -> source name -> definition.
	defs map[string]map[string]*entry.Entry

	// search is built on first use and dropped on every mutation.
	search *index.Index[string]
}

// New returns an empty Store persisting through codec.
func New(codec Codec, opts *Options) *Store {
	if opts == nil {
		opts = &Options{}
	}
	s := &Store{
		codec:         codec,
		schema:        opts.Schema,
		defaultSource: opts.DefaultSource,
		logger:        opts.Logger,
		docs:          map[string]*document{},
		defs:          map[string]map[string]*entry.Entry{},
	}
	if s.schema == nil {
		s.schema = entry.DefaultSchema()
	}
	if s.defaultSource == "" {
		s.defaultSource = DefaultSource
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Schema returns the schema entries are validated against.
func (s *Store) Schema() *entry.Schema {
	return s.schema
}

// DefaultSource returns the name of the catch-all document.
func (s *Store) DefaultSource() string {
	return s.defaultSource
}

// LoadAll reads every named document and replaces the in-memory state with
// their contents. Documents are decoded concurrently. If any document fails
// to load the store is left unchanged.
//
// The store is locked for the whole load so writes made concurrently are
// never lost to a stale read.
func (s *Store) LoadAll(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	names = slices.Clone(names)
	slices.Sort(names)
	names = slices.Compact(names)

	loaded := make([]*source.Document, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := s.codec.Load(name)
			if err != nil {
				return fmt.Errorf("loading %q: %w", name, err)
			}
			loaded[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	docs := make(map[string]*document, len(loaded))
	defs := map[string]map[string]*entry.Entry{}
	for i, doc := range loaded {
		d := &document{name: names[i]}
		for _, e := range doc.Entries() {
			e.Source = d.name
			d.keys = append(d.keys, e.Key)
			if defs[e.Key] == nil {
				defs[e.Key] = map[string]*entry.Entry{}
			}
			defs[e.Key][d.name] = e
		}
		docs[d.name] = d
	}

	s.docs = docs
	s.defs = defs
	s.search = nil

	s.logger.Info("loaded source documents",
		zap.Int("documents", len(docs)),
		zap.Int("keys", len(defs)),
	)
	return nil
}

// Reload reads every previously loaded document again, plus any new
// documents the codec lists.
func (s *Store) Reload(ctx context.Context) error {
	names := s.Sources()
	if l, ok := s.codec.(Lister); ok {
		listed, err := l.Names()
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
		names = append(names, listed...)
	}
	return s.LoadAll(ctx, names)
}
