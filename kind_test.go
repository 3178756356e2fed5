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
	"errors"
	"testing"
)

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != k {
			t.Fatalf("round trip %v -> %q -> %v", k, b, got)
		}
	}
}

func TestParseKind_Normalizes(t *testing.T) {
	k, err := ParseKind("  Invalid-Identifier ")
	if err != nil {
		t.Fatalf("ParseKind: %v", err)
	}
	if k != KindInvalidIdentifier {
		t.Fatalf("got %v", k)
	}
}

func TestParseKind_Unknown(t *testing.T) {
	for _, s := range []string{"", "store.query", "mongo", "unknown"} {
		if _, err := ParseKind(s); !errors.Is(err, ErrKindInvalid) {
			t.Fatalf("ParseKind(%q) err = %v, want ErrKindInvalid", s, err)
		}
	}
}

func TestKind_ZeroIsInvalid(t *testing.T) {
	var k Kind
	if k.Valid() {
		t.Fatal("zero kind must be invalid")
	}
	if k.String() != "unknown" {
		t.Fatalf("String() = %q", k.String())
	}
	if _, err := k.MarshalText(); !errors.Is(err, ErrKindInvalid) {
		t.Fatalf("MarshalText err = %v", err)
	}
}
