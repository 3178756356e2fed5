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
	"strings"

	"dirpx.dev/rejectx/apis"
	"dirpx.dev/rejectx/code"
)

// Writer is the terminal failure handler: it classifies a signal and writes
// the rendered response. It never fails and never re-raises.
type Writer struct {
	Classifier apis.Classifier
}

// Write classifies err and writes the matching response to rw.
//
// For method rejections that know which methods the path accepts, the
// Allow header is set as RFC 9110 asks for 405 responses.
//
// Write must be called before anything else has been written to rw.
func (w Writer) Write(rw http.ResponseWriter, err error) apis.Verdict {
	v := w.Classifier.Classify(err)
	if v.Category == code.MethodNotAllowed {
		if allowed := allowedMethods(err, 0); len(allowed) > 0 {
			rw.Header().Set("Allow", strings.Join(allowed, ", "))
		}
	}
	Render(v.Status.HTTP, v.Message).WriteTo(rw)
	return v
}

// maxDepth bounds allowedMethods on self-referencing chains.
const maxDepth = 32

// allowedMethods returns the methods of the first method rejection in err's
// tree that names any.
func allowedMethods(err error, depth int) []string {
	for err != nil && depth < maxDepth {
		if m, ok := err.(apis.MethodNotAllowed); ok && m.MethodNotAllowed() {
			if allowed := m.AllowedMethods(); len(allowed) > 0 {
				return allowed
			}
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				if allowed := allowedMethods(e, depth+1); len(allowed) > 0 {
					return allowed
				}
			}
			return nil
		case interface{ Unwrap() error }:
			err = u.Unwrap()
			depth++
		default:
			return nil
		}
	}
	return nil
}
