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

package httpx

import (
	"net/http"
	"slices"

	"dirpx.dev/rejectx/apis"
)

// HandlerFunc handles a request and reports failures by returning them.
// A handler that returns a non-nil error must not have written anything.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Router dispatches by path and method and sends every failure through one
// Writer.
//
// Paths use net/http.ServeMux pattern syntax without a method
// ("/documents/{id}"); methods are matched by the Router itself so that an
// unknown path and a known path with the wrong method produce different
// signals (ErrNotFound and *MethodNotAllowedError).
//
// HEAD is a method like any other: a path registered only for GET answers
// HEAD with 405 and "Allow: GET". Register HEAD explicitly to serve it.
//
// Routes must be registered before the Router starts serving.
type Router struct {
	mux    *http.ServeMux
	routes map[string]map[string]HandlerFunc
	writer Writer
}

// NewRouter creates a Router whose failures are classified by c.
func NewRouter(c apis.Classifier) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]map[string]HandlerFunc),
		writer: Writer{Classifier: c},
	}
}

// Handle registers h for method on pattern. Registering the same method and
// pattern twice replaces the handler.
func (rt *Router) Handle(method, pattern string, h HandlerFunc) {
	methods, ok := rt.routes[pattern]
	if !ok {
		methods = make(map[string]HandlerFunc)
		rt.routes[pattern] = methods
		rt.mux.HandleFunc(pattern, rt.dispatch(methods))
	}
	methods[method] = h
}

// Mount registers a plain http.Handler for every method on pattern, e.g. a
// metrics endpoint.
func (rt *Router) Mount(pattern string, h http.Handler) {
	rt.mux.Handle(pattern, h)
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := rt.mux.Handler(r); pattern == "" {
		rt.writer.Write(w, ErrNotFound)
		return
	}
	rt.mux.ServeHTTP(w, r)
}

func (rt *Router) dispatch(methods map[string]HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := methods[r.Method]
		if !ok {
			allowed := make([]string, 0, len(methods))
			for m := range methods {
				allowed = append(allowed, m)
			}
			slices.Sort(allowed)
			rt.writer.Write(w, &MethodNotAllowedError{Method: r.Method, Allowed: allowed})
			return
		}
		if err := h(w, r); err != nil {
			rt.writer.Write(w, err)
		}
	}
}
