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
	"errors"
	"io"
	"net/http"
)

// DefaultBodyLimit caps request bodies read by DecodeJSON when no limit is
// given.
const DefaultBodyLimit int64 = 1 << 20

var errTrailingData = errors.New("body must contain a single JSON value")

// DecodeJSON decodes the request body into v.
//
// Any failure, including an empty body, a syntax or type error, trailing
// data and a body larger than limit bytes, is returned as *BodyDecodeError.
// A limit <= 0 means DefaultBodyLimit. Unknown fields are ignored.
func DecodeJSON(r *http.Request, v any, limit int64) error {
	if r.Body == nil {
		return &BodyDecodeError{Err: io.EOF}
	}
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		return &BodyDecodeError{Err: err}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return &BodyDecodeError{Err: err}
	}
	return nil
}
