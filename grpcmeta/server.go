package grpcmeta

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/solcmeta/bytecode"
	"xdao.co/solcmeta/compliance"
	"xdao.co/solcmeta/internal/logging"
	"xdao.co/solcmeta/metadata"
	"xdao.co/solcmeta/model"
)

// Server exposes the metadata decoder over the Metadata gRPC service.
type Server struct {
	UnimplementedMetadataServer

	Mode compliance.ComplianceMode
	// GatewayPrefix is passed to model.FromMetadata; "" disables gateway URLs.
	GatewayPrefix string
	// Logger defaults to the logger carried by the request context.
	Logger *log.Logger
}

func (s *Server) Decode(ctx context.Context, in *wrapperspb.BytesValue) (*structpb.Struct, error) {
	if s == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing server")
	}
	code := in.GetValue()
	md, err := metadata.DecodeWithOptions(code, metadata.Options{Mode: s.Mode})
	if err != nil {
		s.logger(ctx).Debug("decode rejected", "bytes", len(code), "rule", metadata.RuleID(err))
		return nil, mapErr(err)
	}

	view := model.FromMetadata(md, s.GatewayPrefix)
	if h, err := bytecode.StrippedCodeHash(code); err == nil {
		view.StrippedCodeHash = h.Hex()
	}
	st, err := toStruct(view)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response failed")
	}
	s.logger(ctx).Debug("decoded", "bytes", len(code), "digest", md.Digest != nil)
	return st, nil
}

func (s *Server) Digest(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	if s == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing server")
	}
	md, err := metadata.DecodeWithOptions(in.GetValue(), metadata.Options{Mode: s.Mode})
	if err != nil {
		s.logger(ctx).Debug("digest rejected", "bytes", len(in.GetValue()), "rule", metadata.RuleID(err))
		return nil, mapErr(err)
	}
	if md.Digest == nil {
		return wrapperspb.String(""), nil
	}
	return wrapperspb.String(md.Digest.String()), nil
}

func (s *Server) logger(ctx context.Context) *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.FromContext(ctx)
}

// mapErr converts decoder errors into InvalidArgument statuses whose message
// starts with the RuleID, so clients can rebuild the structured error.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var e *metadata.Error
	if errors.As(err, &e) {
		return status.Error(codes.InvalidArgument, e.RuleID+": "+e.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func toStruct(view model.Metadata) (*structpb.Struct, error) {
	b, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func fromStruct(st *structpb.Struct) (model.Metadata, error) {
	var view model.Metadata
	b, err := json.Marshal(st.AsMap())
	if err != nil {
		return view, err
	}
	err = json.Unmarshal(b, &view)
	return view, err
}
