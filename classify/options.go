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
	"log/slog"

	"dirpx.dev/rejectx"
	"dirpx.dev/rejectx/apis"
	"dirpx.dev/rejectx/code"
)

// Option configures a Classifier under construction.
type Option func(*builder)

// WithLogger sets the diagnostic sink. A nil logger keeps the default
// (text records on stderr).
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithObserver registers an observer that sees every Verdict, e.g. a
// metrics counter.
func WithObserver(o apis.Observer) Option {
	return func(b *builder) {
		if o != nil {
			b.observers = append(b.observers, o)
		}
	}
}

// WithKindRule answers failures of kind k with category c instead of the
// internal category. An empty message uses the category's own message.
// Such failures are still reported to the diagnostic sink.
func WithKindRule(k rejectx.Kind, c code.Code, message string) Option {
	return func(b *builder) {
		b.kindRules = append(b.kindRules, kindRule{kind: k, category: c, message: message})
	}
}

// WithHTTPOverride replaces the HTTP status used for category c.
func WithHTTPOverride(c code.Code, http int) Option {
	return func(b *builder) { b.httpOverride[c] = http }
}

// WithGRPCOverride replaces the gRPC status used for category c.
func WithGRPCOverride(c code.Code, grpc int) Option {
	return func(b *builder) { b.grpcOverride[c] = grpc }
}
