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

// Package grpcx adapts the classifier to gRPC servers.
//
// Handler errors are classified exactly like HTTP rejections and returned as
// gRPC statuses carrying the client message and a google.rpc.ErrorInfo
// detail whose Reason is the upper-cased category (e.g. "NOT_FOUND",
// "INTERNAL") and whose "http_status" metadata carries the HTTP status the
// same failure would get.
package grpcx

import (
	"context"
	"strconv"
	"strings"

	"dirpx.dev/rejectx/apis"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
)

// DefaultDomain is used for ErrorInfo.Domain when none is configured.
const DefaultDomain = "rejectx.dirpx.dev"

// grpcStatuser is implemented by errors that already are gRPC statuses.
type grpcStatuser interface {
	GRPCStatus() *gstatus.Status
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that turns
// handler errors into classified gRPC statuses.
//
// Errors that already are gRPC statuses (status.Error and friends) are
// returned as-is: the handler chose the answer explicitly.
func UnaryServerInterceptor(c apis.Classifier, domain string) grpc.UnaryServerInterceptor {
	if domain == "" {
		domain = DefaultDomain
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, toStatusError(c, domain, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(c apis.Classifier, domain string) grpc.StreamServerInterceptor {
	if domain == "" {
		domain = DefaultDomain
	}
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return toStatusError(c, domain, err)
	}
}

func toStatusError(c apis.Classifier, domain string, err error) error {
	if _, ok := err.(grpcStatuser); ok {
		return err
	}

	v := c.Classify(err)
	base := gstatus.New(v.Status.GRPC, v.Message)

	info := &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(string(v.Category)),
		Domain:   domain,
		Metadata: map[string]string{"http_status": strconv.Itoa(v.Status.HTTP)},
	}
	// Try to attach the detail. If it fails, return base.
	if with, err := base.WithDetails(info); err == nil {
		return with.Err()
	}
	return base.Err()
}

// ExtractInfo pulls the google.rpc.ErrorInfo out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			return ei, true
		}
	}
	return nil, false
}
