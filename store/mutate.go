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
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/source"
)

// Upsert creates or replaces the entry for e.Key.
//
// If the key is defined in a single source the definition there is replaced
// and e.Source is ignored: upsert never moves an entry between documents. If
// the key is defined in several sources e.Source must name one of them or
// ErrAmbiguousSource is returned. A new key is appended to the document named
// by e.Source, or to the default source when e.Source is empty.
//
// Only the affected document is rewritten. If validation or the write fails
// the store is unchanged.
func (s *Store) Upsert(e *entry.Entry) (*Listing, error) {
	return s.put(e, false)
}

// Insert is like Upsert but fails with ErrKeyExists if the key is already
// defined in any source. ErrKeyExists takes precedence over validation
// errors.
func (s *Store) Insert(e *entry.Entry) (*Listing, error) {
	return s.put(e, true)
}

func (s *Store) put(e *entry.Entry, insertOnly bool) (*Listing, error) {
	// An existing key is reported as such whatever its new value, so the
	// existence check comes before validation.
	if insertOnly && s.Has(e.Key) {
		return nil, fmt.Errorf("%w: %q", ErrKeyExists, e.Key)
	}

	e = e.Clone()
	e.Tags = e.Tags.Normalize()
	if _, err := s.schema.Validate(e); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if insertOnly && len(s.defs[e.Key]) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrKeyExists, e.Key)
	}

	target, err := s.ownerLocked(e)
	if err != nil {
		return nil, err
	}
	if err := source.ValidateName(target); err != nil {
		return nil, err
	}
	e.Source = target

	d := s.docs[target]
	if d == nil {
		d = &document{name: target}
	}
	keys := d.keys
	_, existed := s.defs[e.Key][target]
	if !existed {
		keys = append(slices.Clone(keys), e.Key)
	}

	entries := make([]*entry.Entry, 0, len(keys))
	for _, k := range keys {
		if k == e.Key {
			entries = append(entries, e)
			continue
		}
		entries = append(entries, s.defs[k][target])
	}
	if err := s.codec.Save(target, entries); err != nil {
		s.logger.Error("saving document",
			zap.String("source", target),
			zap.String("key", e.Key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("saving %q: %w", target, err)
	}

	// The document is on disk; apply the change in memory.
	d.keys = keys
	s.docs[target] = d
	if s.defs[e.Key] == nil {
		s.defs[e.Key] = map[string]*entry.Entry{}
	}
	s.defs[e.Key][target] = e
	s.search = nil

	s.logger.Info("upserted entry",
		zap.String("key", e.Key),
		zap.String("source", target),
		zap.Bool("created", !existed),
	)
	return s.listingLocked(e.Key), nil
}

// ownerLocked returns the source an upsert of e lands in.
func (s *Store) ownerLocked(e *entry.Entry) (string, error) {
	defs := s.defs[e.Key]
	switch len(defs) {
	case 0:
		if e.Source == "" {
			return s.defaultSource, nil
		}
		return e.Source, nil
	case 1:
		for name := range defs {
			if e.Source != "" && e.Source != name {
				s.logger.Debug("upsert keeps entry in its owning source",
					zap.String("key", e.Key),
					zap.String("requested", e.Source),
					zap.String("source", name),
				)
			}
			return name, nil
		}
	}
	if _, ok := defs[e.Source]; ok {
		return e.Source, nil
	}
	return "", fmt.Errorf("%w: %q is defined in %v; name one of them as the source",
		ErrAmbiguousSource, e.Key, slices.Sorted(maps.Keys(defs)))
}

// Delete removes the definition of key from the named source. When it was
// the last definition the key disappears from the store.
func (s *Store) Delete(key, sourceName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.defs[key][sourceName]; !ok {
		return fmt.Errorf("%w: %q in %q", ErrNotFound, key, sourceName)
	}

	d := s.docs[sourceName]
	keys := slices.DeleteFunc(slices.Clone(d.keys), func(k string) bool {
		return k == key
	})
	entries := make([]*entry.Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, s.defs[k][sourceName])
	}
	if err := s.codec.Save(sourceName, entries); err != nil {
		return fmt.Errorf("saving %q: %w", sourceName, err)
	}

	d.keys = keys
	delete(s.defs[key], sourceName)
	if len(s.defs[key]) == 0 {
		delete(s.defs, key)
	}
	s.search = nil

	s.logger.Info("deleted entry",
		zap.String("key", key),
		zap.String("source", sourceName),
	)
	return nil
}

// Rekey renames oldKey to newKey in every source defining it. Entries keep
// their position in their documents. It fails with ErrKeyCollision if newKey
// is already defined anywhere.
//
// Each affected document is rewritten. If a write fails, documents already
// rewritten are restored and the store is unchanged.
func (s *Store) Rekey(oldKey, newKey string) error {
	if err := entry.ValidateKey(newKey); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	defs := s.defs[oldKey]
	if len(defs) == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, oldKey)
	}
	if oldKey == newKey {
		return nil
	}
	if others := s.defs[newKey]; len(others) > 0 {
		return fmt.Errorf("%w: renaming %q to %q: %q already defined in %v",
			ErrKeyCollision, oldKey, newKey, newKey, slices.Sorted(maps.Keys(others)))
	}

	names := slices.Sorted(maps.Keys(defs))
	renamed := map[string]*entry.Entry{}
	var saved []string
	for _, name := range names {
		e := defs[name].Clone()
		e.Key = newKey
		renamed[name] = e

		d := s.docs[name]
		entries := make([]*entry.Entry, 0, len(d.keys))
		for _, k := range d.keys {
			if k == oldKey {
				entries = append(entries, e)
				continue
			}
			entries = append(entries, s.defs[k][name])
		}
		if err := s.codec.Save(name, entries); err != nil {
			s.restoreLocked(saved)
			return fmt.Errorf("saving %q: %w", name, err)
		}
		saved = append(saved, name)
	}

	for _, name := range names {
		d := s.docs[name]
		for i, k := range d.keys {
			if k == oldKey {
				d.keys[i] = newKey
			}
		}
	}
	delete(s.defs, oldKey)
	s.defs[newKey] = renamed
	s.search = nil

	s.logger.Info("renamed key",
		zap.String("from", oldKey),
		zap.String("to", newKey),
		zap.Strings("sources", names),
	)
	return nil
}

// restoreLocked rewrites the named documents from the in-memory state.
func (s *Store) restoreLocked(names []string) {
	for _, name := range names {
		if err := s.codec.Save(name, s.entriesLocked(s.docs[name])); err != nil {
			s.logger.Error("restoring document after failed write",
				zap.String("source", name),
				zap.Error(err),
			)
		}
	}
}
