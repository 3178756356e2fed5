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

package rejectx

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Kind is the closed set of failure causes the service recognizes.
//
// Exactly one Kind is active per Failure. The zero value is not a valid kind;
// constructors in this package always set one of the declared constants.
type Kind uint8

const (
	// KindStore is an opaque failure from the document store.
	KindStore Kind = iota + 1

	// KindStoreQuery is a store failure raised while executing a query.
	// It is kept apart from KindStore so the two can be classified
	// differently, although the default classifier treats them alike.
	KindStoreQuery

	// KindStoreFieldAccess is a failure extracting a typed field from a
	// loosely-typed stored document.
	KindStoreFieldAccess

	// KindInvalidIdentifier means a caller-supplied identifier failed
	// validation. The offending text travels in Failure.Text.
	KindInvalidIdentifier
)

// ErrKindInvalid is returned when text does not name a known Kind.
var ErrKindInvalid = errors.New("rejectx: invalid failure kind")

var (
	_ encoding.TextMarshaler   = Kind(0)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

var kindNames = [...]string{
	KindStore:             "store",
	KindStoreQuery:        "store_query",
	KindStoreFieldAccess:  "store_field_access",
	KindInvalidIdentifier: "invalid_identifier",
}

// Kinds lists every valid Kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindStore, KindStoreQuery, KindStoreFieldAccess, KindInvalidIdentifier}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindStore && k <= KindInvalidIdentifier
}

// String returns the snake_case name of the kind, or "unknown".
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a kind name. Surrounding spaces, case and dashes are
// tolerated, so "Store-Query" parses as KindStoreQuery.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for _, k := range Kinds() {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return 0, ErrKindInvalid
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, ErrKindInvalid
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
