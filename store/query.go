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
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/internal/folding"
	"github.com/larentoun/translate-helper/internal/index"
)

// List returns every key with its computed status, sorted by key.
func (s *Store) List() []*Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := slices.Sorted(maps.Keys(s.defs))
	listings := make([]*Listing, 0, len(keys))
	for _, k := range keys {
		listings = append(listings, s.listingLocked(k))
	}
	return listings
}

// Get returns the listing for key.
func (s *Store) Get(key string) (*Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.defs[key]; !ok {
		return nil, false
	}
	return s.listingLocked(key), true
}

// Has returns true if key is defined in any source.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.defs[key]) > 0
}

// Keys returns every key, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.defs))
}

// Sources returns the names of every loaded document, sorted.
func (s *Store) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.docs))
}

// Documents returns a snapshot of every document with entries in document
// order. Documents are sorted by name.
func (s *Store) Documents() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []*Document
	for _, name := range slices.Sorted(maps.Keys(s.docs)) {
		docs = append(docs, &Document{
			Name:    name,
			Entries: s.entriesLocked(s.docs[name]),
		})
	}
	return docs
}

// Search returns listings whose key or nominative form starts with query.
// Matching ignores case and collapses whitespace. Keys matching query
// exactly come first, then the rest, each sorted by key.
func (s *Store) Search(query string) []*Listing {
	folded := folding.String(folding.Search, query)
	if folded == "" {
		return nil
	}

	// Building the index writes s.search so the write lock is needed.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.search == nil {
		s.search = s.buildSearchLocked()
	}

	exact := map[string]bool{}
	for _, key := range s.search.Search(folded) {
		exact[key] = true
	}

	var listings []*Listing
	seen := map[string]bool{}
	for _, key := range s.search.Prefix(folded) {
		if seen[key] {
			continue
		}
		seen[key] = true
		listings = append(listings, s.listingLocked(key))
	}
	slices.SortFunc(listings, func(a, b *Listing) int {
		if ea, eb := exact[a.Entry.Key], exact[b.Entry.Key]; ea != eb {
			if ea {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Entry.Key, b.Entry.Key)
	})
	return listings
}

func (s *Store) buildSearchLocked() *index.Index[string] {
	var items []index.Item[string]
	for key, defs := range s.defs {
		items = append(items, index.Item[string]{
			Term:  folding.String(folding.Search, key),
			Value: key,
		})
		for _, e := range defs {
			if e.Nominative == "" {
				continue
			}
			items = append(items, index.Item[string]{
				Term:  folding.String(folding.Search, e.Nominative),
				Value: key,
			})
		}
	}
	idx := index.New(items)
	s.logger.Debug("built search index",
		zap.Int("keys", len(s.defs)),
		zap.Int("terms", idx.Len()),
	)
	return idx
}

func (s *Store) entriesLocked(d *document) []*entry.Entry {
	entries := make([]*entry.Entry, 0, len(d.keys))
	for _, k := range d.keys {
		entries = append(entries, s.defs[k][d.name].Clone())
	}
	return entries
}

// listingLocked computes the listing of a defined key. The caller must hold
// s.mu.
func (s *Store) listingLocked(key string) *Listing {
	defs := s.defs[key]
	sources := slices.Sorted(maps.Keys(defs))
	shown := defs[sources[0]]

	l := &Listing{
		Entry:   shown.Clone(),
		Sources: sources,
	}
	differs := map[string]bool{}
	for _, name := range sources[1:] {
		diff := shown.Diff(defs[name])
		if len(diff) == 0 {
			continue
		}
		l.Conflicting = append(l.Conflicting, name)
		for _, f := range diff {
			differs[f] = true
		}
	}

	switch {
	case len(l.Conflicting) > 0:
		l.Conflicting = append([]string{sources[0]}, l.Conflicting...)
		for _, f := range append(slices.Clone(entry.ScalarFields), entry.FieldTags) {
			if differs[f] {
				l.ConflictFields = append(l.ConflictFields, f)
			}
		}
		l.Status = entry.StatusConflict
	case shown.IsComplete():
		l.Status = entry.StatusGood
	default:
		l.Status = entry.StatusIncomplete
	}
	return l
}
