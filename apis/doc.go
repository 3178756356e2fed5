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

// Package apis defines the small contracts shared by the classifier and the
// transport adapters.
//
// The hosting layer (an HTTP router, a gRPC server, a test) produces opaque
// rejection signals as plain Go errors. The classifier never inspects their
// concrete types; it only asks capability questions through the interfaces in
// this package ("is this a route-not-found signal?"). Any error type can take
// part by implementing the matching method.
//
// This package must stay lightweight: interfaces and tiny value types only.
package apis
