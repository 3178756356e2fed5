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

// Package httpx adapts the classifier to net/http.
//
// It provides the response builder (Render), the terminal error writer
// (Writer), the rejection signals an HTTP hosting layer raises (ErrNotFound,
// *MethodNotAllowedError, *BodyDecodeError) and a small Router whose
// handlers return errors instead of writing failure responses themselves.
//
// Every failure response has the same shape:
//
//	HTTP/1.1 404 Not Found
//	Content-Type: application/json
//
//	{"message":"Not Found"}
package httpx
