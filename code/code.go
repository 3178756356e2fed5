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

package code

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Code is a validated rejection category.
//
// It is a distinct type (not just string) so that raw user input is never
// mixed with a category that has already been checked.
type Code string

const (
	// NotFound means no route matches the request path.
	// Maps to HTTP 404.
	NotFound Code = "not_found"

	// InvalidBody means the request body failed structural deserialization.
	// Maps to HTTP 400.
	InvalidBody Code = "invalid_body"

	// MethodNotAllowed means the path exists but not for this method.
	// Maps to HTTP 405.
	MethodNotAllowed Code = "method_not_allowed"

	// Internal covers every store failure and every unrecognized signal.
	// Maps to HTTP 500. Details go to the diagnostic sink, never to clients.
	Internal Code = "internal"
)

// ErrCodeInvalid is returned when a value does not name a known category.
var ErrCodeInvalid = errors.New("rejectx: invalid code")

var (
	_ encoding.TextMarshaler   = Code("")
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

var messages = map[Code]string{
	NotFound:         "Not Found",
	InvalidBody:      "Invalid Body",
	MethodNotAllowed: "Method Not Allowed",
	Internal:         "Internal Server Error",
}

// All lists every category in classification priority order, with Internal
// last.
func All() []Code {
	return []Code{NotFound, InvalidBody, MethodNotAllowed, Internal}
}

// Parse normalizes s and checks that it names a known category.
func Parse(s string) (Code, error) {
	c := Code(Normalize(s))
	if err := Validate(c); err != nil {
		return "", err
	}
	return c, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims spaces, lowercases and replaces '-' with '_'.
// It does not validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "-", "_")
}

// Validate reports ErrCodeInvalid unless c is a declared category.
func Validate(c Code) error {
	if _, ok := messages[c]; !ok {
		return ErrCodeInvalid
	}
	return nil
}

// Message returns the fixed client-facing message for c. Unknown categories
// get the internal message so nothing unexpected ever reaches a client.
func (c Code) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return messages[Internal]
}

// String returns the category name.
func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
