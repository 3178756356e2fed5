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

package apis

import (
	"dirpx.dev/rejectx/code"
	"google.golang.org/grpc/codes"
)

// Classifier turns an opaque rejection signal into a Verdict.
//
// Implementations must be immutable after construction, safe for concurrent
// use, and total: every input, nil included, yields a Verdict.
type Classifier interface {
	// Classify decides the category, transport statuses and client message
	// for err.
	Classify(err error) Verdict

	// Explain returns a human-readable description of which rule matched.
	// It never writes to the diagnostic sink.
	Explain(err error) string
}

// Status represents a resolved pair of transport statuses for a single
// rejection.
type Status struct {
	HTTP int        // Resolved HTTP status code (net/http compatible).
	GRPC codes.Code // Resolved gRPC status code.
}

// Verdict is the outcome of classifying one signal.
type Verdict struct {
	// Category is the client-visible class of the rejection.
	Category code.Code

	// Status carries the HTTP and gRPC projections.
	Status Status

	// Message is the exact text sent to the client.
	Message string
}

// Observer receives every Verdict a Classifier produces. Implementations
// must be safe for concurrent use and must not block.
type Observer interface {
	Observe(v Verdict)
}
