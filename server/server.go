// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server serves the administrative HTTP API of a worker.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-native-worker/catalog"
)

// MaxBodySize bounds the size of request bodies.
const MaxBodySize = 1 << 20

// Server is the administrative HTTP server of a worker.
type Server struct {
	manager *catalog.Manager
	handler http.Handler
	http    *http.Server
	log     *logrus.Entry
}

// New returns a server listening on addr. Metrics are gathered from
// gatherer, or not served when it is nil.
func New(addr string, manager *catalog.Manager, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		manager: manager,
		log:     logrus.WithField("component", "server"),
	}

	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/catalog/{catalog}", s.registerCatalog).Methods(http.MethodPost)
	v1.HandleFunc("/catalog", s.listCatalogs).Methods(http.MethodGet)
	if gatherer != nil {
		v1.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(s.log),
		handlers.PrintRecoveryStack(true),
	)
	s.handler = recovery(handlers.CustomLoggingHandler(io.Discard, r, s.logRequest))
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	s.log.WithField("address", l.Addr().String()).Info("serving HTTP")
	err := s.http.Serve(l)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// ListenAndServe listens on the server address and serves connections
// until Shutdown is called.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Shutdown stops the server, waiting for active requests until ctx is
// done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) registerCatalog(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["catalog"]

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		s.fail(w, name, err)
		return
	}

	outcome, err := s.manager.RegisterFromRequest(r.Context(), name, body)
	if err != nil {
		s.fail(w, name, err)
		return
	}

	s.manager.Announce()
	_ = s.manager.Persist(outcome)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Registered catalog: %s", name)
}

func (s *Server) fail(w http.ResponseWriter, name string, err error) {
	s.log.WithField("catalog", name).WithError(err).Warn("catalog registration failed")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Catalog registration failed: %s", err)
}

func (s *Server) listCatalogs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.manager.Store().Names()); err != nil {
		s.log.WithError(err).Warn("unable to write catalog list")
	}
}

func (s *Server) logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	s.log.WithFields(logrus.Fields{
		"method":   p.Request.Method,
		"path":     p.URL.Path,
		"status":   p.StatusCode,
		"size":     p.Size,
		"duration": time.Since(p.TimeStamp).String(),
	}).Debug("served request")
}
