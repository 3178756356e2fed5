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

// Package code defines the client-visible rejection categories.
//
// A category is what a caller can learn about a failed request: the route
// does not exist, the body could not be decoded, the method is not allowed,
// or something went wrong inside the service. Categories are:
//
//   - short and stable;
//   - lowercased and underscore-separated;
//   - a closed set: Parse rejects anything not declared in this package.
//
// Every category has exactly one client-facing message (see Message). The
// internal category deliberately hides what actually failed.
package code
