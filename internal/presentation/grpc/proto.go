package grpc

// proto.go defines the gRPC service for tradercheck/v1/tradercheck.proto by
// hand. Messages travel with the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName        = "tradercheck.v1.TraderCheckService"
	searchFullMethod   = "/" + ServiceName + "/Search"
	classifyFullMethod = "/" + ServiceName + "/Classify"
)

// SearchRequest represents the proto SearchRequest message.
type SearchRequest struct {
	Value      string `json:"value"`
	Field      string `json:"field,omitempty"`
	Mode       string `json:"mode,omitempty"`
	MatchMode  string `json:"match_mode,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// SearchResponse represents the proto SearchResponse message.
type SearchResponse struct {
	RiskLevel string `json:"risk_level"`
	Score     int32  `json:"score"`
	Found     bool   `json:"found"`
}

// ClassifyRequest represents the proto ClassifyRequest message.
type ClassifyRequest struct {
	Score int32 `json:"score"`
}

// ClassifyResponse represents the proto ClassifyResponse message.
type ClassifyResponse struct {
	RiskLevel string `json:"risk_level"`
	Score     int32  `json:"score"`
}

// TraderCheckServiceServer is the server API for TraderCheckService.
type TraderCheckServiceServer interface {
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
	Classify(context.Context, *ClassifyRequest) (*ClassifyResponse, error)
	mustEmbedUnimplementedTraderCheckServiceServer()
}

// UnimplementedTraderCheckServiceServer provides forward-compatible default implementations.
type UnimplementedTraderCheckServiceServer struct{}

func (UnimplementedTraderCheckServiceServer) Search(context.Context, *SearchRequest) (*SearchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Search not implemented")
}
func (UnimplementedTraderCheckServiceServer) Classify(context.Context, *ClassifyRequest) (*ClassifyResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Classify not implemented")
}
func (UnimplementedTraderCheckServiceServer) mustEmbedUnimplementedTraderCheckServiceServer() {}

// RegisterTraderCheckServiceServer registers the TraderCheckServiceServer with the gRPC server.
func RegisterTraderCheckServiceServer(s grpclib.ServiceRegistrar, srv TraderCheckServiceServer) {
	s.RegisterService(&_TraderCheckService_serviceDesc, srv)
}

var _TraderCheckService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TraderCheckServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Search", Handler: _TraderCheckService_Search_Handler},
		{MethodName: "Classify", Handler: _TraderCheckService_Classify_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "tradercheck/v1/tradercheck.proto",
}

func _TraderCheckService_Search_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(SearchRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TraderCheckServiceServer).Search(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: searchFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TraderCheckServiceServer).Search(ctx, req.(*SearchRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _TraderCheckService_Classify_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(ClassifyRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TraderCheckServiceServer).Classify(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: classifyFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TraderCheckServiceServer).Classify(ctx, req.(*ClassifyRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// TraderCheckServiceClient is the client API for TraderCheckService.
type TraderCheckServiceClient interface {
	Search(ctx context.Context, in *SearchRequest, opts ...grpclib.CallOption) (*SearchResponse, error)
	Classify(ctx context.Context, in *ClassifyRequest, opts ...grpclib.CallOption) (*ClassifyResponse, error)
}

type traderCheckServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewTraderCheckServiceClient returns a client that always uses the JSON codec.
func NewTraderCheckServiceClient(cc grpclib.ClientConnInterface) TraderCheckServiceClient {
	return &traderCheckServiceClient{cc: cc}
}

func (c *traderCheckServiceClient) Search(ctx context.Context, in *SearchRequest, opts ...grpclib.CallOption) (*SearchResponse, error) {
	out := new(SearchResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, searchFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *traderCheckServiceClient) Classify(ctx context.Context, in *ClassifyRequest, opts ...grpclib.CallOption) (*ClassifyResponse, error) {
	out := new(ClassifyResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, classifyFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
