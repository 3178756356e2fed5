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

// Package docstore is the MongoDB boundary of the service.
//
// Every driver error leaving this package is already a *rejectx.Failure:
//
//   - query paths (Find, FindByID) wrap with rejectx.QueryFailed;
//   - writes and connection handling wrap with rejectx.FromStore;
//   - typed field accessors (String, Int64, Bool, ObjectID) wrap with
//     rejectx.FromFieldAccess;
//   - identifiers that are not 24-digit hex ObjectIDs become
//     rejectx.InvalidIdentifier before any round trip to the server.
//
// A missing document is not a failure: FindByID returns (nil, nil) and the
// caller decides what absence means.
package docstore
