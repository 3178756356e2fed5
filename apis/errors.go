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

package apis

// RouteNotFound is implemented by signals that may denote "no route matches
// the request path".
//
// A signal matches only when RouteNotFound reports true. The method form
// (instead of a bare marker) lets wrapper types forward or veto the answer.
type RouteNotFound interface {
	error

	// RouteNotFound reports whether the signal means route-not-found.
	RouteNotFound() bool
}

// BodyDecodeFailure is implemented by signals that may denote "the request
// body failed structural deserialization".
type BodyDecodeFailure interface {
	error

	// BodyDecodeFailed reports whether the body could not be decoded.
	BodyDecodeFailed() bool
}

// MethodNotAllowed is implemented by signals that may denote "the path is
// known, but not for this method".
type MethodNotAllowed interface {
	error

	// MethodNotAllowed reports whether the method was rejected.
	MethodNotAllowed() bool

	// AllowedMethods lists the methods the path does accept, if known.
	// It may return nil.
	AllowedMethods() []string
}
