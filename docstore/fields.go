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

package docstore

import (
	"fmt"
	"strings"

	"dirpx.dev/rejectx"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FieldError describes why a typed field could not be read from a stored
// document.
type FieldError struct {
	// Key is the dotted path that was looked up.
	Key string

	// Want is the BSON type the caller asked for.
	Want bson.Type

	// Got is the BSON type actually stored. Zero when the field is missing.
	Got bson.Type

	// Err is the lookup error for a missing field, nil for a type mismatch.
	Err error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("field %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("field %q: expected %s, found %s", e.Key, e.Want, e.Got)
}

// Unwrap returns the lookup error, if any.
func (e *FieldError) Unwrap() error { return e.Err }

// String reads a string field. key may be a dotted path ("meta.title").
func String(doc bson.Raw, key string) (string, error) {
	return field(doc, key, bson.TypeString, bson.RawValue.StringValueOK)
}

// Int64 reads an integer field. Both int32 and int64 are accepted.
func Int64(doc bson.Raw, key string) (int64, error) {
	v, err := lookup(doc, key)
	if err != nil {
		return 0, err
	}
	if n, ok := v.Int64OK(); ok {
		return n, nil
	}
	if n, ok := v.Int32OK(); ok {
		return int64(n), nil
	}
	return 0, mismatch(key, bson.TypeInt64, v.Type)
}

// Bool reads a boolean field.
func Bool(doc bson.Raw, key string) (bool, error) {
	return field(doc, key, bson.TypeBoolean, bson.RawValue.BooleanOK)
}

// ObjectID reads an ObjectID field.
func ObjectID(doc bson.Raw, key string) (bson.ObjectID, error) {
	return field(doc, key, bson.TypeObjectID, bson.RawValue.ObjectIDOK)
}

func field[T any](doc bson.Raw, key string, want bson.Type, get func(bson.RawValue) (T, bool)) (T, error) {
	var zero T
	v, err := lookup(doc, key)
	if err != nil {
		return zero, err
	}
	out, ok := get(v)
	if !ok {
		return zero, mismatch(key, want, v.Type)
	}
	return out, nil
}

func lookup(doc bson.Raw, key string) (bson.RawValue, error) {
	v, err := doc.LookupErr(strings.Split(key, ".")...)
	if err != nil {
		return bson.RawValue{}, rejectx.FromFieldAccess(&FieldError{Key: key, Err: err})
	}
	return v, nil
}

func mismatch(key string, want, got bson.Type) error {
	return rejectx.FromFieldAccess(&FieldError{Key: key, Want: want, Got: got})
}
