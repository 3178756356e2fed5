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

package classify

import (
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/rejectx"
)

// maxDepth bounds tree walks so a self-referencing Unwrap cannot loop.
const maxDepth = 32

// anyMatch reports whether pred holds for err or anything in its tree.
// The tree is walked depth-first in the same order errors.As uses.
func anyMatch(err error, pred func(error) bool) bool {
	return walk(err, pred, 0)
}

func walk(err error, pred func(error) bool, depth int) bool {
	for err != nil && depth < maxDepth {
		if pred(err) {
			return true
		}
		if isNilPointer(err) {
			return false
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				if walk(e, pred, depth+1) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = u.Unwrap()
			depth++
		default:
			return false
		}
	}
	return false
}

// findFailure returns the first non-nil *rejectx.Failure in err's tree,
// walked with the same bound as every other rule.
func findFailure(err error) *rejectx.Failure {
	var found *rejectx.Failure
	anyMatch(err, func(e error) bool {
		if f, ok := e.(*rejectx.Failure); ok && f != nil {
			found = f
			return true
		}
		return false
	})
	return found
}

// isNilPointer reports a typed nil pointer stored in a non-nil error.
// Its methods may dereference the receiver, so walks stop there.
func isNilPointer(err error) bool {
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Describe renders the whole signal tree on one line, each node as its
// dynamic type and text:
//
//	*fmt.wrapError("load: store error: eof") -> *rejectx.Failure("store error: eof") -> *errors.errorString("eof")
//
// Joined errors are rendered as a bracketed list. A nil signal renders as
// "<nil>".
func Describe(err error) string {
	if err == nil {
		return "<nil>"
	}
	var b strings.Builder
	describe(&b, err, 0)
	return b.String()
}

func describe(b *strings.Builder, err error, depth int) {
	for err != nil {
		if depth >= maxDepth {
			b.WriteString("...")
			return
		}
		if isNilPointer(err) {
			_, _ = fmt.Fprintf(b, "%T(nil)", err)
			return
		}
		_, _ = fmt.Fprintf(b, "%T(%q)", err, err.Error())
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			b.WriteString(" -> [")
			first := true
			for _, e := range u.Unwrap() {
				if e == nil {
					continue
				}
				if !first {
					b.WriteString(", ")
				}
				first = false
				describe(b, e, depth+1)
			}
			b.WriteString("]")
			return
		case interface{ Unwrap() error }:
			err = u.Unwrap()
			depth++
			if err != nil {
				b.WriteString(" -> ")
			}
		default:
			return
		}
	}
}
