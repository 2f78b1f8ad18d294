package grpc

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/gameauth/internal/server/api"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Handle decodes the envelope carried in req, dispatches it and returns the
// response body as a Struct. Failures become a gRPC status whose message is
// the client-safe error text.
func (s *GRPCServer) Handle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "Invalid request body")
	}

	var env api.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		code, resp := api.Failure(api.InvalidBody())
		return nil, status.Error(codeFor(code), resp.Error)
	}

	httpStatus, resp := s.dispatcher.Handle(ctx, env, userIDFromContext(ctx))
	if !resp.Success {
		return nil, status.Error(codeFor(httpStatus), resp.Error)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error(ctx, "encode response", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(body, out); err != nil {
		s.logger.Error(ctx, "encode response", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

// codeFor maps the transport-neutral HTTP status to a gRPC code.
func codeFor(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusOK:
		return codes.OK
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusMethodNotAllowed:
		return codes.Unimplemented
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
