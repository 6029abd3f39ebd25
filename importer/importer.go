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

// Package importer merges a whole source document into a store.
//
// Imports are conservative: they only ever add keys which are not yet
// defined in any source. Keys which already exist are reported as conflicts
// and left untouched so they can be resolved by hand.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/source"
	"github.com/larentoun/translate-helper/store"
)

// Options are options for an import.
type Options struct {
	// Source is the document new keys are written to. Defaults to the
	// store's default source.
	Source string

	// Logger receives per key events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Rejection is an imported key which failed validation.
type Rejection struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Report summarizes an import.
type Report struct {
	// Conflicts are keys which already existed and were not imported.
	Conflicts []string `json:"conflicts"`

	// ImportedCount is the number of new keys written.
	ImportedCount int `json:"imported_count"`

	// WarningCount is the number of imported keys which are incomplete.
	WarningCount int `json:"warning_count"`

	// Rejected are keys which failed validation and were not imported.
	Rejected []Rejection `json:"rejected"`

	// Canceled is true if the import stopped before the end of the
	// document.
	Canceled bool `json:"canceled"`

	// Message is a human readable summary.
	Message string `json:"message"`
}

func (r *Report) summarize() {
	r.Message = fmt.Sprintf("imported %d entries (%d incomplete), %d conflicts, %d rejected",
		r.ImportedCount, r.WarningCount, len(r.Conflicts), len(r.Rejected))
	if r.Canceled {
		r.Message = "import canceled: " + r.Message
	}
}

// Import merges entries into st one key at a time, in order. A key which is
// already defined anywhere is recorded in Conflicts and not changed. Other
// keys are inserted into the target source.
//
// Import stops when ctx is done. Keys imported so far stay imported and the
// partial report is returned together with the context's error. A failed
// write also stops the import and returns the partial report.
func Import(ctx context.Context, st *store.Store, entries []*entry.Entry, opts *Options) (*Report, error) {
	if opts == nil {
		opts = &Options{}
	}
	target := opts.Source
	if target == "" {
		target = st.DefaultSource()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Report{
		Conflicts: []string{},
		Rejected:  []Rejection{},
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			r.Canceled = true
			r.summarize()
			logger.Warn("import canceled", zap.Int("imported", r.ImportedCount))
			return r, err
		}

		e = e.Clone()
		e.Source = target
		l, err := st.Insert(e)
		var verr *entry.ValidationError
		switch {
		case err == nil:
			r.ImportedCount++
			if l.Status == entry.StatusIncomplete {
				r.WarningCount++
				logger.Info("imported incomplete entry",
					zap.String("key", e.Key),
					zap.Strings("missing", l.Entry.Missing()),
				)
			}
		case errors.Is(err, store.ErrKeyExists):
			r.Conflicts = append(r.Conflicts, e.Key)
		case errors.As(err, &verr):
			r.Rejected = append(r.Rejected, Rejection{Key: e.Key, Reason: verr.Error()})
		default:
			r.summarize()
			return r, fmt.Errorf("importing %q: %w", e.Key, err)
		}
	}

	r.summarize()
	logger.Info("import finished",
		zap.String("source", target),
		zap.Int("imported", r.ImportedCount),
		zap.Int("warnings", r.WarningCount),
		zap.Int("conflicts", len(r.Conflicts)),
		zap.Int("rejected", len(r.Rejected)),
	)
	return r, nil
}

// ImportReader decodes a whole document from r and imports it. name is used
// in parse errors. A document which fails to decode imports nothing.
func ImportReader(ctx context.Context, st *store.Store, name string, r io.Reader, opts *Options) (*Report, error) {
	doc, err := source.Decode(name, r)
	if err != nil {
		return nil, err
	}
	return Import(ctx, st, doc.Entries(), opts)
}
