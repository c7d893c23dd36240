// Package mortgagecalcv1 holds the MortgageService wire contract: its
// messages, the service descriptor and a typed client.
package mortgagecalcv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "mortgagecalc.v1.MortgageService"

const (
	MortgageService_CalculatePayment_FullMethodName    = "/" + ServiceName + "/CalculatePayment"
	MortgageService_GetProperty_FullMethodName         = "/" + ServiceName + "/GetProperty"
	MortgageService_GetMortgage_FullMethodName         = "/" + ServiceName + "/GetMortgage"
	MortgageService_ListMortgages_FullMethodName       = "/" + ServiceName + "/ListMortgages"
	MortgageService_GetPortfolioSummary_FullMethodName = "/" + ServiceName + "/GetPortfolioSummary"
)

// MortgageServiceServer is the server API for MortgageService
type MortgageServiceServer interface {
	CalculatePayment(context.Context, *CalculatePaymentRequest) (*CalculatePaymentResponse, error)
	GetProperty(context.Context, *GetPropertyRequest) (*Property, error)
	GetMortgage(context.Context, *GetMortgageRequest) (*Mortgage, error)
	ListMortgages(context.Context, *ListMortgagesRequest) (*ListMortgagesResponse, error)
	GetPortfolioSummary(context.Context, *GetPortfolioSummaryRequest) (*PortfolioSummary, error)
}

// UnimplementedMortgageServiceServer can be embedded to stay forward compatible
type UnimplementedMortgageServiceServer struct{}

func (UnimplementedMortgageServiceServer) CalculatePayment(context.Context, *CalculatePaymentRequest) (*CalculatePaymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CalculatePayment not implemented")
}

func (UnimplementedMortgageServiceServer) GetProperty(context.Context, *GetPropertyRequest) (*Property, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProperty not implemented")
}

func (UnimplementedMortgageServiceServer) GetMortgage(context.Context, *GetMortgageRequest) (*Mortgage, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMortgage not implemented")
}

func (UnimplementedMortgageServiceServer) ListMortgages(context.Context, *ListMortgagesRequest) (*ListMortgagesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMortgages not implemented")
}

func (UnimplementedMortgageServiceServer) GetPortfolioSummary(context.Context, *GetPortfolioSummaryRequest) (*PortfolioSummary, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPortfolioSummary not implemented")
}

// RegisterMortgageServiceServer attaches srv to the gRPC server
func RegisterMortgageServiceServer(s grpc.ServiceRegistrar, srv MortgageServiceServer) {
	s.RegisterService(&MortgageService_ServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodHandler
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(MortgageServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MortgageServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MortgageServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MortgageService_ServiceDesc describes MortgageService for grpc.ServiceRegistrar
var MortgageService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MortgageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CalculatePayment",
			Handler: unaryHandler(MortgageService_CalculatePayment_FullMethodName,
				MortgageServiceServer.CalculatePayment),
		},
		{
			MethodName: "GetProperty",
			Handler: unaryHandler(MortgageService_GetProperty_FullMethodName,
				MortgageServiceServer.GetProperty),
		},
		{
			MethodName: "GetMortgage",
			Handler: unaryHandler(MortgageService_GetMortgage_FullMethodName,
				MortgageServiceServer.GetMortgage),
		},
		{
			MethodName: "ListMortgages",
			Handler: unaryHandler(MortgageService_ListMortgages_FullMethodName,
				MortgageServiceServer.ListMortgages),
		},
		{
			MethodName: "GetPortfolioSummary",
			Handler: unaryHandler(MortgageService_GetPortfolioSummary_FullMethodName,
				MortgageServiceServer.GetPortfolioSummary),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mortgagecalc/v1/mortgage_service.json",
}

// MortgageServiceClient is the client API for MortgageService
type MortgageServiceClient interface {
	CalculatePayment(ctx context.Context, in *CalculatePaymentRequest, opts ...grpc.CallOption) (*CalculatePaymentResponse, error)
	GetProperty(ctx context.Context, in *GetPropertyRequest, opts ...grpc.CallOption) (*Property, error)
	GetMortgage(ctx context.Context, in *GetMortgageRequest, opts ...grpc.CallOption) (*Mortgage, error)
	ListMortgages(ctx context.Context, in *ListMortgagesRequest, opts ...grpc.CallOption) (*ListMortgagesResponse, error)
	GetPortfolioSummary(ctx context.Context, in *GetPortfolioSummaryRequest, opts ...grpc.CallOption) (*PortfolioSummary, error)
}

type mortgageServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMortgageServiceClient wraps cc. Every call negotiates the JSON codec.
func NewMortgageServiceClient(cc grpc.ClientConnInterface) MortgageServiceClient {
	return &mortgageServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mortgageServiceClient) CalculatePayment(ctx context.Context, in *CalculatePaymentRequest, opts ...grpc.CallOption) (*CalculatePaymentResponse, error) {
	return invoke[CalculatePaymentResponse](ctx, c.cc, MortgageService_CalculatePayment_FullMethodName, in, opts)
}

func (c *mortgageServiceClient) GetProperty(ctx context.Context, in *GetPropertyRequest, opts ...grpc.CallOption) (*Property, error) {
	return invoke[Property](ctx, c.cc, MortgageService_GetProperty_FullMethodName, in, opts)
}

func (c *mortgageServiceClient) GetMortgage(ctx context.Context, in *GetMortgageRequest, opts ...grpc.CallOption) (*Mortgage, error) {
	return invoke[Mortgage](ctx, c.cc, MortgageService_GetMortgage_FullMethodName, in, opts)
}

func (c *mortgageServiceClient) ListMortgages(ctx context.Context, in *ListMortgagesRequest, opts ...grpc.CallOption) (*ListMortgagesResponse, error) {
	return invoke[ListMortgagesResponse](ctx, c.cc, MortgageService_ListMortgages_FullMethodName, in, opts)
}

func (c *mortgageServiceClient) GetPortfolioSummary(ctx context.Context, in *GetPortfolioSummaryRequest, opts ...grpc.CallOption) (*PortfolioSummary, error) {
	return invoke[PortfolioSummary](ctx, c.cc, MortgageService_GetPortfolioSummary_FullMethodName, in, opts)
}
