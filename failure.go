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

// Package rejectx holds the failure taxonomy of a document-store backed
// service and the conversions that build it from store-layer errors.
//
// Values of *Failure travel up the call stack as plain Go errors until they
// reach the classifier (dirpx.dev/rejectx/classify), which turns them into a
// client-facing status and message.
package rejectx

import (
	"errors"
	"fmt"
)

// Failure is a domain-recognized failure.
//
// It carries:
//   - Kind: which branch of the taxonomy is active;
//   - Text: the offending input for KindInvalidIdentifier, empty otherwise;
//   - Cause: the wrapped store-layer error, nil for KindInvalidIdentifier.
//
// A Failure is never mutated after construction and may be shared freely.
type Failure struct {
	Kind  Kind
	Text  string
	Cause error
}

// FromStore wraps any store-layer error as a KindStore failure.
// The cause is kept as-is so errors.Is / errors.As keep working through it.
func FromStore(err error) *Failure {
	return &Failure{Kind: KindStore, Cause: err}
}

// FromFieldAccess wraps a typed field extraction error as a
// KindStoreFieldAccess failure.
func FromFieldAccess(err error) *Failure {
	return &Failure{Kind: KindStoreFieldAccess, Cause: err}
}

// QueryFailed wraps a store error raised on a query execution path.
//
// Unlike FromStore this is never applied implicitly: only the caller knows
// that the failing operation was a query.
func QueryFailed(err error) *Failure {
	return &Failure{Kind: KindStoreQuery, Cause: err}
}

// InvalidIdentifier reports that text is not a usable identifier.
func InvalidIdentifier(text string) *Failure {
	return &Failure{Kind: KindInvalidIdentifier, Text: text}
}

// Error implements the built-in error interface.
//
// The rendered text always contains the cause's own description (or the
// offending identifier), for example:
//
//	error during store query: connection refused
//	invalid identifier used: abc123
func (f *Failure) Error() string {
	if f == nil {
		return "<nil>"
	}
	switch f.Kind {
	case KindStore:
		return fmt.Sprintf("store error: %v", f.Cause)
	case KindStoreQuery:
		return fmt.Sprintf("error during store query: %v", f.Cause)
	case KindStoreFieldAccess:
		return fmt.Sprintf("could not access field in document: %v", f.Cause)
	case KindInvalidIdentifier:
		return fmt.Sprintf("invalid identifier used: %s", f.Text)
	default:
		return fmt.Sprintf("%s failure: %v", f.Kind, f.Cause)
	}
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Cause
}

// AsFailure finds the first *Failure in err's tree, including errors joined
// with errors.Join.
// Like errors.As it follows Unwrap without a depth limit.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) && f != nil {
		return f, true
	}
	return nil, false
}

// IsKind reports whether err carries a Failure of kind k.
func IsKind(err error, k Kind) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == k
}
