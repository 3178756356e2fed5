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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"dirpx.dev/rejectx"
	"dirpx.dev/rejectx/apis"
	"dirpx.dev/rejectx/code"
	"google.golang.org/grpc/codes"
)

// ErrInvalidRule is returned by New when an option carries an unusable value.
var ErrInvalidRule = errors.New("classify: invalid rule")

// Rule names, in matching order. They show up in Explain output.
const (
	ruleNotFound         = "not_found"
	ruleInvalidBody      = "invalid_body"
	ruleFailure          = "failure"
	ruleMethodNotAllowed = "method_not_allowed"
	ruleFallback         = "fallback"
)

// New constructs an immutable apis.Classifier.
//
// Build process overview:
//
//  1. Seed the status tables with the package defaults.
//  2. Apply options in order.
//  3. Validate overrides and kind rules.
//  4. Freeze everything into fresh maps.
//
// Errors wrap ErrInvalidRule.
func New(opts ...Option) (apis.Classifier, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	http := make(map[code.Code]int, len(defaultHTTP))
	for k, v := range defaultHTTP {
		http[k] = v
	}
	grpc := make(map[code.Code]codes.Code, len(defaultGRPC))
	for k, v := range defaultGRPC {
		grpc[k] = v
	}

	for c, v := range b.httpOverride {
		if err := code.Validate(c); err != nil {
			return nil, fmt.Errorf("%w: HTTP override for %q: %w", ErrInvalidRule, c, err)
		}
		if v < 100 || v > 599 {
			return nil, fmt.Errorf("%w: HTTP override %d for %q is not a status code", ErrInvalidRule, v, c)
		}
		http[c] = v
	}
	for c, v := range b.grpcOverride {
		if err := code.Validate(c); err != nil {
			return nil, fmt.Errorf("%w: gRPC override for %q: %w", ErrInvalidRule, c, err)
		}
		if v < int(codes.OK) || v > int(codes.Unauthenticated) {
			return nil, fmt.Errorf("%w: gRPC override %d for %q is not a status code", ErrInvalidRule, v, c)
		}
		grpc[c] = codes.Code(v)
	}

	kinds := make(map[rejectx.Kind]kindRule, len(b.kindRules))
	for _, r := range b.kindRules {
		if !r.kind.Valid() {
			return nil, fmt.Errorf("%w: kind rule for unknown kind %d", ErrInvalidRule, r.kind)
		}
		if err := code.Validate(r.category); err != nil {
			return nil, fmt.Errorf("%w: kind rule %s: %w", ErrInvalidRule, r.kind, err)
		}
		kinds[r.kind] = r
	}

	return &classifier{
		http:      http,
		grpc:      grpc,
		kinds:     kinds,
		logger:    b.logger,
		observers: append([]apis.Observer(nil), b.observers...),
	}, nil
}

// MustNew is the panic-on-error variant of New.
func MustNew(opts ...Option) apis.Classifier {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

type classifier struct {
	http  map[code.Code]int
	grpc  map[code.Code]codes.Code
	kinds map[rejectx.Kind]kindRule

	logger    *slog.Logger
	observers []apis.Observer
}

// match is the result of running the rule chain over one signal.
type match struct {
	rule     string
	category code.Code
	message  string
	failure  *rejectx.Failure
}

// diagnose reports whether the match must reach the diagnostic sink.
func (m match) diagnose() bool {
	return m.rule == ruleFailure || m.rule == ruleFallback
}

// Classify implements apis.Classifier.
func (c *classifier) Classify(err error) apis.Verdict {
	m := c.match(err)
	v := c.verdict(m)
	if m.diagnose() {
		c.report(err, m, v)
	}
	for _, o := range c.observers {
		o.Observe(v)
	}
	return v
}

// match runs the rules in priority order. It has no side effects.
func (c *classifier) match(err error) match {
	if anyMatch(err, isRouteNotFound) {
		return match{rule: ruleNotFound, category: code.NotFound}
	}
	if anyMatch(err, isBodyDecodeFailure) {
		return match{rule: ruleInvalidBody, category: code.InvalidBody}
	}
	if f := findFailure(err); f != nil {
		m := match{rule: ruleFailure, category: code.Internal, failure: f}
		if r, ok := c.kinds[f.Kind]; ok {
			m.category = r.category
			m.message = r.message
		}
		return m
	}
	if anyMatch(err, isMethodNotAllowed) {
		return match{rule: ruleMethodNotAllowed, category: code.MethodNotAllowed}
	}
	return match{rule: ruleFallback, category: code.Internal}
}

func (c *classifier) verdict(m match) apis.Verdict {
	msg := m.message
	if msg == "" {
		msg = m.category.Message()
	}
	return apis.Verdict{
		Category: m.category,
		Status:   apis.Status{HTTP: c.http[m.category], GRPC: c.grpc[m.category]},
		Message:  msg,
	}
}

// report writes one diagnostic record. slog ignores handler errors, so a
// broken sink cannot affect the caller.
func (c *classifier) report(err error, m match, v apis.Verdict) {
	attrs := []slog.Attr{
		slog.String("category", string(v.Category)),
		slog.Int("status", v.Status.HTTP),
	}
	msg := "unhandled error"
	if m.failure != nil {
		msg = "unhandled application error"
		attrs = append(attrs, slog.String("kind", m.failure.Kind.String()))
	}
	attrs = append(attrs, slog.String("signal", Describe(err)))
	c.logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

// Explain implements apis.Classifier.
//
// Example output:
//
//	signal=*rejectx.Failure("invalid identifier used: abc123")
//	rule=failure kind=invalid_identifier
//	http: 500
//	grpc: INTERNAL(13)
//	message="Internal Server Error"
func (c *classifier) Explain(err error) string {
	m := c.match(err)
	v := c.verdict(m)

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "signal=%s\n", Describe(err))
	if m.failure != nil {
		_, _ = fmt.Fprintf(&b, "rule=%s kind=%s\n", m.rule, m.failure.Kind)
	} else {
		_, _ = fmt.Fprintf(&b, "rule=%s\n", m.rule)
	}
	_, _ = fmt.Fprintf(&b, "http: %d\n", v.Status.HTTP)
	_, _ = fmt.Fprintf(&b, "grpc: %s(%d)\n", strings.ToUpper(v.Status.GRPC.String()), int(v.Status.GRPC))
	_, _ = fmt.Fprintf(&b, "message=%q", v.Message)
	return b.String()
}

func isRouteNotFound(err error) bool {
	s, ok := err.(apis.RouteNotFound)
	return ok && s.RouteNotFound()
}

func isBodyDecodeFailure(err error) bool {
	s, ok := err.(apis.BodyDecodeFailure)
	return ok && s.BodyDecodeFailed()
}

func isMethodNotAllowed(err error) bool {
	s, ok := err.(apis.MethodNotAllowed)
	return ok && s.MethodNotAllowed()
}
