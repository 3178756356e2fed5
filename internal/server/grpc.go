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

package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"dirpx.dev/rejectx/apis"
	"dirpx.dev/rejectx/grpcx"
)

// GetTitleMethod is the full gRPC method name of the title lookup. It takes
// the document id and returns its title, both as google.protobuf.StringValue.
const GetTitleMethod = "/docserver.v1.Documents/GetTitle"

type documentsServer interface {
	GetTitle(ctx context.Context, id *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

var documentsServiceDesc = grpc.ServiceDesc{
	ServiceName: "docserver.v1.Documents",
	HandlerType: (*documentsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetTitle", Handler: getTitleHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func getTitleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(documentsServer).GetTitle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetTitleMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(documentsServer).GetTitle(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

type grpcDocuments struct {
	store Store
}

func (g grpcDocuments) GetTitle(ctx context.Context, id *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	d, err := lookupDocument(ctx, g.store, id.GetValue())
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(d.Title), nil
}

// NewGRPCServer returns a gRPC server exposing the documents service and the
// standard health service. Handler errors are classified by c and answered
// with statuses whose ErrorInfo carries domain.
func NewGRPCServer(store Store, c apis.Classifier, domain string) (*grpc.Server, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if c == nil {
		return nil, ErrNoClassifier
	}
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcx.UnaryServerInterceptor(c, domain)),
		grpc.ChainStreamInterceptor(grpcx.StreamServerInterceptor(c, domain)),
	)
	srv.RegisterService(&documentsServiceDesc, grpcDocuments{store: store})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, nil
}
