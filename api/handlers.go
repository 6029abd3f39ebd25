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

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/larentoun/translate-helper/casing"
	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/importer"
	"github.com/larentoun/translate-helper/source"
	"github.com/larentoun/translate-helper/store"
)

// entryView is the wire form of a store listing.
type entryView struct {
	*entry.Entry

	Status      entry.Status `json:"status"`
	Sources     []string     `json:"sources"`
	Conflicting []string     `json:"conflicting"`

	// ConflictFields are the fields the conflicting definitions disagree on.
	ConflictFields []string `json:"conflict_fields"`
}

func newEntryView(l *store.Listing) entryView {
	e := l.Entry.Clone()
	if e.Tags == nil {
		e.Tags = entry.Tags{}
	}
	v := entryView{
		Entry:          e,
		Status:         l.Status,
		Sources:        l.Sources,
		Conflicting:    l.Conflicting,
		ConflictFields: l.ConflictFields,
	}
	if v.Conflicting == nil {
		v.Conflicting = []string{}
	}
	if v.ConflictFields == nil {
		v.ConflictFields = []string{}
	}
	return v
}

func newEntryViews(ls []*store.Listing) []entryView {
	views := make([]entryView, 0, len(ls))
	for _, l := range ls {
		views = append(views, newEntryView(l))
	}
	return views
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": newEntryViews(s.store.List())})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	l, ok := s.store.Get(r.PathValue("key"))
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": newEntryView(l)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": newEntryViews(s.store.Search(r.URL.Query().Get("q"))),
	})
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var e entry.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry payload")
		return
	}
	e.Key = r.PathValue("key")

	l, err := s.store.Upsert(&e)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": newEntryView(l)})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	src := r.URL.Query().Get("source")
	if src == "" {
		l, ok := s.store.Get(key)
		if !ok {
			writeError(w, http.StatusNotFound, "entry not found")
			return
		}
		if len(l.Sources) != 1 {
			writeError(w, http.StatusConflict,
				fmt.Sprintf("%q is defined in %v; name one of them as the source", key, l.Sources))
			return
		}
		src = l.Sources[0]
	}

	if err := s.store.Delete(key, src); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing upload field \"file\"")
		return
	}
	defer f.Close()

	rep, err := importer.ImportReader(r.Context(), s.store, hdr.Filename, f, &importer.Options{
		Source: r.FormValue("source"),
		Logger: s.logger,
	})
	if rep != nil {
		s.metrics.observeImport(rep)
	}
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rep)
	case errors.Is(err, source.ErrParse), errors.Is(err, source.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("import failed", zap.String("file", hdr.Filename), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  err.Error(),
			"report": rep,
		})
	}
}

func (s *Server) handleCheckKeys(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"issues": casing.Scan(s.store)})
}

func (s *Server) handleFixKeys(w http.ResponseWriter, _ *http.Request) {
	res, err := casing.Fix(s.store)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrKeyCollision) {
			status = http.StatusConflict
		} else {
			s.logger.Error("fixing keys failed", zap.Error(err))
		}
		writeJSON(w, status, map[string]any{
			"error":  err.Error(),
			"fixed":  res.Fixed,
			"issues": casing.Scan(s.store),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fixed":  res.Fixed,
		"issues": casing.Scan(s.store),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// writeStoreError maps store and validation errors to HTTP responses.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	var verr *entry.ValidationError
	switch {
	case errors.As(err, &verr):
		problems := make([]string, 0, len(verr.Problems))
		for _, p := range verr.Problems {
			problems = append(problems, p.Error())
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    err.Error(),
			"problems": problems,
		})
	case errors.Is(err, source.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAmbiguousSource),
		errors.Is(err, store.ErrKeyExists),
		errors.Is(err, store.ErrKeyCollision):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("store operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
