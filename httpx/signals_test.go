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

import "testing"

func TestSignals_NilReceivers(t *testing.T) {
	var body *BodyDecodeError
	if body.Error() == "" || body.Unwrap() != nil || !body.BodyDecodeFailed() {
		t.Fatal("nil *BodyDecodeError must stay usable")
	}

	var method *MethodNotAllowedError
	if method.Error() == "" || method.AllowedMethods() != nil || !method.MethodNotAllowed() {
		t.Fatal("nil *MethodNotAllowedError must stay usable")
	}
}
