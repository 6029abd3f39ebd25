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

// Package api serves a store over HTTP for the dictionary editor UI.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/larentoun/translate-helper/store"
)

// DefaultOrigin is the origin of the editor UI development server.
const DefaultOrigin = "http://localhost:5173"

// DefaultMaxUploadBytes is the largest accepted upload.
const DefaultMaxUploadBytes = 32 << 20

// Options are options for a Server.
type Options struct {
	// Origin is allowed to make cross origin requests. Defaults to
	// DefaultOrigin. "*" allows any origin.
	Origin string

	// MaxUploadBytes limits the size of uploaded documents. Defaults to
	// DefaultMaxUploadBytes.
	MaxUploadBytes int64

	// Registry receives the server's metrics and is exposed on /metrics.
	// Defaults to a new registry.
	Registry *prometheus.Registry

	// Logger receives request events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Server is an http.Handler exposing a store.
type Server struct {
	store     *store.Store
	origin    string
	maxUpload int64
	logger    *zap.Logger
	metrics   *metrics
	mux       *http.ServeMux
}

// New returns a Server for st.
func New(st *store.Store, opts *Options) *Server {
	if opts == nil {
		opts = &Options{}
	}
	s := &Server{
		store:     st,
		origin:    opts.Origin,
		maxUpload: opts.MaxUploadBytes,
		logger:    opts.Logger,
		mux:       http.NewServeMux(),
	}
	if s.origin == "" {
		s.origin = DefaultOrigin
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(reg, st)

	s.handle("GET /entries", s.handleList)
	s.handle("GET /entries/{key}", s.handleGet)
	s.handle("PUT /entries/{key}", s.handleUpsert)
	s.handle("DELETE /entries/{key}", s.handleDelete)
	s.handle("GET /search", s.handleSearch)
	s.handle("POST /upload", s.handleUpload)
	s.handle("POST /check-keys-lowercase", s.handleCheckKeys)
	s.handle("POST /fix-keys-lowercase", s.handleFixKeys)
	s.handle("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" && (s.origin == "*" || origin == s.origin) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Add("Vary", "Origin")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.mux.ServeHTTP(w, r)
}

// handle registers h for pattern with request logging and metrics.
func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		elapsed := time.Since(start)

		s.metrics.observe(pattern, rec.status, elapsed)
		s.logger.Debug("request",
			zap.String("route", pattern),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
