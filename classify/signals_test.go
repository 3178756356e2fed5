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

package classify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Test doubles for the hosting layer's rejection shapes.

type routeMiss struct{}

func (routeMiss) Error() string       { return "route not found" }
func (routeMiss) RouteNotFound() bool { return true }

type badBody struct{ err error }

func (b badBody) Error() string        { return "request body deserialize error: " + b.err.Error() }
func (badBody) BodyDecodeFailed() bool { return true }
func (b badBody) Unwrap() error        { return b.err }

type wrongMethod struct{}

func (wrongMethod) Error() string            { return "HTTP method not allowed" }
func (wrongMethod) MethodNotAllowed() bool   { return true }
func (wrongMethod) AllowedMethods() []string { return []string{"GET"} }

// vetoed implements every capability but answers false to all of them.
type vetoed struct{}

func (vetoed) Error() string            { return "vetoed" }
func (vetoed) RouteNotFound() bool      { return false }
func (vetoed) BodyDecodeFailed() bool   { return false }
func (vetoed) MethodNotAllowed() bool   { return false }
func (vetoed) AllowedMethods() []string { return nil }

// recorder is an slog.Handler that keeps every record.
type recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

func (r *recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec.Clone())
	return nil
}

func (r *recorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recorder) WithGroup(string) slog.Handler      { return r }

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *recorder) attr(i int, key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out string
	r.records[i].Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			out = a.Value.String()
			return false
		}
		return true
	})
	return out
}

// failingHandler rejects every record.
type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink closed") }
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h failingHandler) WithGroup(string) slog.Handler           { return h }

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }
