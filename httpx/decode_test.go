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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func TestDecodeJSON_OK(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"a","count":2,"extra":true}`))
	var p payload
	if err := DecodeJSON(r, &p, 0); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if p.Title != "a" || p.Count != 2 {
		t.Fatalf("decoded %+v", p)
	}
}

func TestDecodeJSON_Failures(t *testing.T) {
	cases := map[string]string{
		"empty":    ``,
		"syntax":   `{"title":`,
		"type":     `{"count":"two"}`,
		"trailing": `{"title":"a"} {"title":"b"}`,
		"garbage":  `{"title":"a"} nope`,
		"too big":  `{"title":"` + strings.Repeat("x", 64) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			var p payload
			err := DecodeJSON(r, &p, 32)
			var de *BodyDecodeError
			if !errors.As(err, &de) {
				t.Fatalf("err = %v, want *BodyDecodeError", err)
			}
			if !de.BodyDecodeFailed() || de.Unwrap() == nil {
				t.Fatalf("bad signal %#v", de)
			}
		})
	}
}

func TestDecodeJSON_LimitReportsMaxBytes(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"`+strings.Repeat("x", 100)+`"}`))
	var p payload
	err := DecodeJSON(r, &p, 16)
	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		t.Fatalf("err = %v, want wrapped *http.MaxBytesError", err)
	}
}
