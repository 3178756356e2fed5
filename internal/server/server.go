/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package server is the docserver HTTP surface: a small document API whose
// every failure goes through the rejection classifier.
package server

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"

	"dirpx.dev/rejectx/apis"
	"dirpx.dev/rejectx/httpx"
)

// Store is the document storage the handlers need. *docstore.Collection
// implements it; errors are expected to be rejectx failures already.
type Store interface {
	FindByID(ctx context.Context, id string) (bson.Raw, error)
	Find(ctx context.Context, filter bson.D, limit int64) ([]bson.Raw, error)
	Insert(ctx context.Context, doc any) (string, error)
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}

// Options wires a Server.
type Options struct {
	Store      Store
	Classifier apis.Classifier

	// Metrics, when set, is mounted on /metrics.
	Metrics http.Handler

	// BodyLimit caps request bodies; <= 0 means httpx.DefaultBodyLimit.
	BodyLimit int64

	// ListLimit caps GET /documents; <= 0 means DefaultListLimit.
	ListLimit int64
}

// DefaultListLimit is the number of documents GET /documents returns.
const DefaultListLimit int64 = 100

var (
	// ErrNoStore is returned by New and NewGRPCServer without a Store.
	ErrNoStore = errors.New("server: store is required")

	// ErrNoClassifier is returned by New and NewGRPCServer without a
	// Classifier.
	ErrNoClassifier = errors.New("server: classifier is required")
)

// Server is the HTTP document API. It is an http.Handler; every failure a
// route returns is classified and written as a JSON rejection.
type Server struct {
	store     Store
	bodyLimit int64
	listLimit int64
	router    *httpx.Router
}

// New registers the routes and returns the Server.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, ErrNoStore
	}
	if opts.Classifier == nil {
		return nil, ErrNoClassifier
	}
	s := &Server{
		store:     opts.Store,
		bodyLimit: opts.BodyLimit,
		listLimit: opts.ListLimit,
		router:    httpx.NewRouter(opts.Classifier),
	}
	if s.listLimit <= 0 {
		s.listLimit = DefaultListLimit
	}

	s.router.Handle(http.MethodGet, "/documents", s.listDocuments)
	s.router.Handle(http.MethodPost, "/documents", s.createDocument)
	s.router.Handle(http.MethodGet, "/documents/{id}", s.getDocument)
	s.router.Handle(http.MethodDelete, "/documents/{id}", s.deleteDocument)
	s.router.Handle(http.MethodGet, "/health", s.health)
	if opts.Metrics != nil {
		s.router.Mount("/metrics", opts.Metrics)
	}
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
