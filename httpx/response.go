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
	"encoding/json"
	"net/http"
	"strconv"

	"dirpx.dev/rejectx/apis"
)

// Response is a rendered failure: a status code and a JSON envelope body.
type Response struct {
	Status int
	Body   []byte
}

// Render builds the client-facing response for (status, message).
//
// The body is always {"message": message}. Marshaling a single string field
// cannot fail (invalid UTF-8 is replaced, not rejected), so Render is total.
func Render(status int, message string) Response {
	b, _ := json.Marshal(apis.Envelope{Message: message})
	return Response{Status: status, Body: b}
}

// WriteTo writes the response with a JSON content type.
// Write errors belong to the connection and are ignored.
func (r Response) WriteTo(rw http.ResponseWriter) {
	h := rw.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Content-Length", strconv.Itoa(len(r.Body)))
	h.Set("X-Content-Type-Options", "nosniff")
	rw.WriteHeader(r.Status)
	_, _ = rw.Write(r.Body)
}
