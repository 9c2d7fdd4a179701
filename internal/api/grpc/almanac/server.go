package almanac

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/almanac/internal/codec"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/provider"
	"github.com/oshokin/almanac/internal/table"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	// ProviderName names the provider answering queries.
	ProviderName() string
	ComputeEvent(ctx context.Context, q solar.Query) (solar.Result, error)
	ComputeDay(ctx context.Context, q solar.Query) (table.Row, error)
}

// Server implements the AlmanacService gRPC API.
type Server struct {
	// service provides the business logic for almanac queries.
	service Service
}

var _ AlmanacServiceServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// ComputeEvent answers a single rise or set query.
func (s *Server) ComputeEvent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	q, err := codec.QueryFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if q.Event == "" {
		return nil, status.Error(codes.InvalidArgument, "event is required")
	}

	result, err := s.service.ComputeEvent(ctx, q)
	if err != nil {
		return nil, toStatus(err)
	}

	response := codec.ResultToStruct(result)
	response.Fields[codec.FieldProvider] = structpb.NewStringValue(s.service.ProviderName())

	return response, nil
}

// ComputeDay answers both events of the requested date. The event field of
// the request is ignored.
func (s *Server) ComputeDay(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	q, err := codec.QueryFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	row, err := s.service.ComputeDay(ctx, q)
	if err != nil {
		return nil, toStatus(err)
	}

	response := codec.RowToStruct(row)
	response.Fields[codec.FieldProvider] = structpb.NewStringValue(s.service.ProviderName())

	return response, nil
}

// toStatus maps service errors onto gRPC status codes.
func toStatus(err error) error {
	var (
		apiErr     *provider.APIError
		networkErr *provider.NetworkError
		payloadErr *provider.PayloadError
	)

	switch {
	case errors.Is(err, solar.ErrInvalidDate),
		errors.Is(err, solar.ErrInvalidCoordinate),
		errors.Is(err, solar.ErrInvalidZenithKind),
		errors.Is(err, solar.ErrInvalidEventKind),
		errors.Is(err, solar.ErrInvalidOffset):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &apiErr),
		errors.As(err, &networkErr),
		errors.As(err, &payloadErr),
		errors.Is(err, provider.ErrUnsupportedZenith),
		errors.Is(err, provider.ErrUnsupportedDate),
		errors.Is(err, provider.ErrMissingCredentials):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
