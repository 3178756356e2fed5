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
	"fmt"

	"dirpx.dev/rejectx/apis"
)

// ErrNotFound is the signal for "no route matches the request path".
var ErrNotFound error = routeNotFound{}

var (
	_ apis.RouteNotFound     = routeNotFound{}
	_ apis.MethodNotAllowed  = (*MethodNotAllowedError)(nil)
	_ apis.BodyDecodeFailure = (*BodyDecodeError)(nil)
)

type routeNotFound struct{}

func (routeNotFound) Error() string       { return "route not found" }
func (routeNotFound) RouteNotFound() bool { return true }

// MethodNotAllowedError is the signal for a known path requested with a
// method it does not serve.
type MethodNotAllowedError struct {
	// Method is the rejected request method.
	Method string

	// Allowed lists the methods registered for the path.
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	if e == nil {
		return "HTTP method not allowed"
	}
	return fmt.Sprintf("HTTP method %s not allowed", e.Method)
}

// MethodNotAllowed implements apis.MethodNotAllowed.
func (e *MethodNotAllowedError) MethodNotAllowed() bool { return true }

// AllowedMethods implements apis.MethodNotAllowed.
func (e *MethodNotAllowedError) AllowedMethods() []string {
	if e == nil {
		return nil
	}
	return e.Allowed
}

// BodyDecodeError is the signal for a request body that failed structural
// deserialization. Err holds the decoder's error.
type BodyDecodeError struct {
	Err error
}

func (e *BodyDecodeError) Error() string {
	if e == nil {
		return "request body deserialize error"
	}
	return fmt.Sprintf("request body deserialize error: %v", e.Err)
}

// Unwrap returns the decoder's error.
func (e *BodyDecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BodyDecodeFailed implements apis.BodyDecodeFailure.
func (e *BodyDecodeError) BodyDecodeFailed() bool { return true }
