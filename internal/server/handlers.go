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
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"

	"dirpx.dev/rejectx/docstore"
	"dirpx.dev/rejectx/httpx"
)

// Document is the wire form of a stored document.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type createRequest struct {
	Title string `json:"title"`
}

type createResponse struct {
	ID string `json:"id"`
}

func toDocument(raw bson.Raw) (Document, error) {
	id, err := docstore.ObjectID(raw, "_id")
	if err != nil {
		return Document{}, err
	}
	title, err := docstore.String(raw, "title")
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id.Hex(), Title: title}, nil
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) error {
	raws, err := s.store.Find(r.Context(), nil, s.listLimit)
	if err != nil {
		return err
	}
	docs := make([]Document, 0, len(raws))
	for _, raw := range raws {
		d, err := toDocument(raw)
		if err != nil {
			return err
		}
		docs = append(docs, d)
	}
	return writeJSON(w, http.StatusOK, docs)
}

// lookupDocument loads one document; a missing one is httpx.ErrNotFound.
func lookupDocument(ctx context.Context, store Store, id string) (Document, error) {
	raw, err := store.FindByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if raw == nil {
		return Document{}, httpx.ErrNotFound
	}
	return toDocument(raw)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) error {
	d, err := lookupDocument(r.Context(), s.store, r.PathValue("id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, d)
}

func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) error {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req, s.bodyLimit); err != nil {
		return err
	}
	id, err := s.store.Insert(r.Context(), bson.D{{Key: "title", Value: req.Title}})
	if err != nil {
		return err
	}
	w.Header().Set("Location", "/documents/"+id)
	return writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) error {
	found, err := s.store.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	if !found {
		return httpx.ErrNotFound
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) error {
	if err := s.store.Ping(r.Context()); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON marshals v before touching w, so a marshal error can still be
// returned as a failure.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}
