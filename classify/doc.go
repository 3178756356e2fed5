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

// Package classify decides how a rejection signal is answered.
//
// # Overview
//
// The hosting layer surfaces failures as opaque Go errors of heterogeneous
// origin: a router that found no route, a body decoder that choked, a store
// call that failed. A Classifier inspects such a signal and picks a
// client-visible category (dirpx.dev/rejectx/code), the HTTP and gRPC
// statuses for it and the exact client message.
//
// # Resolution model
//
// Rules are tried in a fixed order and the first match wins:
//
//  1. route not found                -> 404 "Not Found";
//  2. body deserialization failure   -> 400 "Invalid Body";
//  3. carries a *rejectx.Failure     -> 500 "Internal Server Error", logged;
//  4. method not allowed             -> 405 "Method Not Allowed";
//  5. anything else, nil included    -> 500 "Internal Server Error", logged.
//
// The order matters because one signal can satisfy several predicates at
// once, for example an errors.Join of a method rejection and a store
// failure. Predicates see through fmt.Errorf("%w") wrapping and errors.Join.
//
// All four failure kinds collapse into the internal category by default.
// WithKindRule lets a deployment answer a given kind differently, e.g. an
// invalid identifier as a client error:
//
//	c, err := classify.New(
//	    classify.WithKindRule(rejectx.KindInvalidIdentifier, code.InvalidBody, "Invalid Identifier"),
//	)
//
// # Diagnostics
//
// Rules 3 and 5 write exactly one Error record to the diagnostic sink (an
// *slog.Logger, stderr text by default) with the full description of the
// signal. Clients only ever see the generic message. The sink is
// fire-and-forget: slog drops handler errors, so a failing sink never
// changes the Verdict.
//
// Explain returns a text trace of the matching rule without logging.
//
// # Immutability
//
// A Classifier is a snapshot. Options are copied during New; Classify keeps
// no state between calls and is safe for concurrent use.
package classify
