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

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"dirpx.dev/rejectx"
	"dirpx.dev/rejectx/classify"
	"dirpx.dev/rejectx/code"
	"dirpx.dev/rejectx/docstore"
	"dirpx.dev/rejectx/metrics"
)

// memStore is an in-memory Store with the same error behavior as
// docstore.Collection.
type memStore struct {
	mu   sync.Mutex
	docs map[bson.ObjectID]bson.Raw

	findErr   error
	insertErr error
	pingErr   error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[bson.ObjectID]bson.Raw)}
}

func (m *memStore) put(t *testing.T, doc bson.D) bson.ObjectID {
	t.Helper()
	oid := bson.NewObjectID()
	raw, err := bson.Marshal(append(bson.D{{Key: "_id", Value: oid}}, doc...))
	require.NoError(t, err)
	m.mu.Lock()
	m.docs[oid] = raw
	m.mu.Unlock()
	return oid
}

func (m *memStore) FindByID(_ context.Context, id string) (bson.Raw, error) {
	oid, err := docstore.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[oid], nil
}

func (m *memStore) Find(_ context.Context, _ bson.D, limit int64) ([]bson.Raw, error) {
	if m.findErr != nil {
		return nil, rejectx.QueryFailed(m.findErr)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []bson.Raw{}
	for _, raw := range m.docs {
		if int64(len(out)) == limit {
			break
		}
		out = append(out, raw)
	}
	return out, nil
}

func (m *memStore) Insert(_ context.Context, doc any) (string, error) {
	if m.insertErr != nil {
		return "", rejectx.FromStore(m.insertErr)
	}
	d, ok := doc.(bson.D)
	if !ok {
		return "", rejectx.FromStore(errors.New("unsupported document"))
	}
	oid := bson.NewObjectID()
	raw, err := bson.Marshal(append(bson.D{{Key: "_id", Value: oid}}, d...))
	if err != nil {
		return "", rejectx.FromStore(err)
	}
	m.mu.Lock()
	m.docs[oid] = raw
	m.mu.Unlock()
	return oid.Hex(), nil
}

func (m *memStore) Delete(_ context.Context, id string) (bool, error) {
	oid, err := docstore.ParseID(id)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[oid]
	delete(m.docs, oid)
	return ok, nil
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

type fixture struct {
	store *memStore
	diag  *bytes.Buffer
	srv   *Server
}

func newFixture(t *testing.T, opts ...classify.Option) *fixture {
	t.Helper()
	f := &fixture{store: newMemStore(), diag: &bytes.Buffer{}}
	logger := slog.New(slog.NewTextHandler(f.diag, nil))
	c, err := classify.New(append([]classify.Option{classify.WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	f.srv, err = New(Options{Store: f.store, Classifier: c})
	require.NoError(t, err)
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, r)
	return rec
}

func assertRejection(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":`+strconvQuote(message)+`}`, rec.Body.String())
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestNew_RequiresDependencies(t *testing.T) {
	c := classify.MustNew()
	_, err := New(Options{Classifier: c})
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = New(Options{Store: newMemStore()})
	assert.ErrorIs(t, err, ErrNoClassifier)
}

func TestDocuments_Lifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/documents", `{"title":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "/documents/"+created.ID, rec.Header().Get("Location"))

	rec = f.do(http.MethodGet, "/documents/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, Document{ID: created.ID, Title: "hello"}, got)

	rec = f.do(http.MethodGet, "/documents", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []Document{got}, list)

	rec = f.do(http.MethodDelete, "/documents/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodGet, "/documents/"+created.ID, "")
	assertRejection(t, rec, http.StatusNotFound, "Not Found")

	rec = f.do(http.MethodDelete, "/documents/"+created.ID, "")
	assertRejection(t, rec, http.StatusNotFound, "Not Found")

	assert.Empty(t, f.diag.String(), "client rejections are not reported")
}

func TestRejections(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		setup   func(*testing.T, *memStore) string
		status  int
		message string
		allow   string
		logged  []string
	}{
		{
			name:   "unknown route",
			method: http.MethodGet, target: "/nope",
			status: 404, message: "Not Found",
		},
		{
			name:   "malformed body",
			method: http.MethodPost, target: "/documents", body: `{"title":`,
			status: 400, message: "Invalid Body",
		},
		{
			name:   "wrong body type",
			method: http.MethodPost, target: "/documents", body: `{"title":42}`,
			status: 400, message: "Invalid Body",
		},
		{
			name:   "empty body",
			method: http.MethodPost, target: "/documents",
			status: 400, message: "Invalid Body",
		},
		{
			name:   "method not allowed",
			method: http.MethodPut, target: "/documents",
			status: 405, message: "Method Not Allowed", allow: "GET, POST",
		},
		{
			name:   "method not allowed on item",
			method: http.MethodPatch, target: "/documents/0123456789abcdef01234567",
			status: 405, message: "Method Not Allowed", allow: "DELETE, GET",
		},
		{
			name:   "query failure",
			method: http.MethodGet, target: "/documents",
			setup: func(_ *testing.T, m *memStore) string {
				m.findErr = errors.New("cursor killed")
				return ""
			},
			status: 500, message: "Internal Server Error",
			logged: []string{"unhandled application error", "kind=store_query", "cursor killed"},
		},
		{
			name:   "insert failure",
			method: http.MethodPost, target: "/documents", body: `{"title":"x"}`,
			setup: func(_ *testing.T, m *memStore) string {
				m.insertErr = errors.New("duplicate key")
				return ""
			},
			status: 500, message: "Internal Server Error",
			logged: []string{"kind=store", "duplicate key"},
		},
		{
			name:   "invalid identifier",
			method: http.MethodGet, target: "/documents/not-hex",
			status: 500, message: "Internal Server Error",
			logged: []string{"kind=invalid_identifier", "not-hex"},
		},
		{
			name:   "field access",
			method: http.MethodGet,
			setup: func(t *testing.T, m *memStore) string {
				return "/documents/" + m.put(t, bson.D{{Key: "title", Value: int32(7)}}).Hex()
			},
			status: 500, message: "Internal Server Error",
			logged: []string{"kind=store_field_access", "title"},
		},
		{
			name:   "unrecognized failure",
			method: http.MethodGet, target: "/health",
			setup: func(_ *testing.T, m *memStore) string {
				m.pingErr = errors.New("socket closed")
				return ""
			},
			status: 500, message: "Internal Server Error",
			logged: []string{"unhandled error", "socket closed"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			target := tc.target
			if tc.setup != nil {
				if p := tc.setup(t, f.store); p != "" {
					target = p
				}
			}
			rec := f.do(tc.method, target, tc.body)
			assertRejection(t, rec, tc.status, tc.message)
			assert.Equal(t, tc.allow, rec.Header().Get("Allow"))

			diag := f.diag.String()
			if len(tc.logged) == 0 {
				assert.Empty(t, diag)
				return
			}
			assert.Equal(t, 1, strings.Count(diag, "level=ERROR"), diag)
			for _, s := range tc.logged {
				assert.Contains(t, diag, s)
			}
			assert.NotContains(t, rec.Body.String(), "kind", "diagnostics stay out of the response")
		})
	}
}

func TestKindRuleOverride(t *testing.T) {
	f := newFixture(t, classify.WithKindRule(rejectx.KindInvalidIdentifier, code.InvalidBody, "Invalid Identifier"))

	rec := f.do(http.MethodGet, "/documents/not-hex", "")
	assertRejection(t, rec, http.StatusBadRequest, "Invalid Identifier")
	assert.Contains(t, f.diag.String(), "kind=invalid_identifier")
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := metrics.NewObserver(reg, "docserver")
	require.NoError(t, err)
	c, err := classify.New(
		classify.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		classify.WithObserver(obs),
	)
	require.NoError(t, err)
	srv, err := New(Options{
		Store:      newMemStore(),
		Classifier: c,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	require.NoError(t, err)

	for _, target := range []string{"/a", "/b"} {
		srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `docserver_rejections_total{category="not_found",status="404"} 2`)
}
