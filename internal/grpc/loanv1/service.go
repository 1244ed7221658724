package loanv1

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "loan.v1.LoanApproval"

const (
	predictMethod     = "/" + ServiceName + "/Predict"
	getModeMethod     = "/" + ServiceName + "/GetMode"
	setModeMethod     = "/" + ServiceName + "/SetMode"
	healthCheckMethod = "/" + ServiceName + "/HealthCheck"
)

// LoanApprovalServer is the server API for the LoanApproval service.
type LoanApprovalServer interface {
	Predict(context.Context, *PredictRequest) (*PredictResponse, error)
	GetMode(context.Context, *GetModeRequest) (*ModeResponse, error)
	SetMode(context.Context, *SetModeRequest) (*ModeResponse, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
	mustEmbedUnimplementedLoanApprovalServer()
}

// UnimplementedLoanApprovalServer provides forward-compatible default implementations.
type UnimplementedLoanApprovalServer struct{}

func (UnimplementedLoanApprovalServer) Predict(context.Context, *PredictRequest) (*PredictResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Predict not implemented")
}
func (UnimplementedLoanApprovalServer) GetMode(context.Context, *GetModeRequest) (*ModeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMode not implemented")
}
func (UnimplementedLoanApprovalServer) SetMode(context.Context, *SetModeRequest) (*ModeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetMode not implemented")
}
func (UnimplementedLoanApprovalServer) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method HealthCheck not implemented")
}
func (UnimplementedLoanApprovalServer) mustEmbedUnimplementedLoanApprovalServer() {}

// RegisterLoanApprovalServer registers srv with the gRPC server.
func RegisterLoanApprovalServer(s grpclib.ServiceRegistrar, srv LoanApprovalServer) {
	s.RegisterService(&LoanApproval_ServiceDesc, srv)
}

// LoanApproval_ServiceDesc is the grpc.ServiceDesc for the LoanApproval service.
//
//nolint:revive,stylecheck // mirrors generated naming
var LoanApproval_ServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LoanApprovalServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Predict", Handler: _LoanApproval_Predict_Handler},
		{MethodName: "GetMode", Handler: _LoanApproval_GetMode_Handler},
		{MethodName: "SetMode", Handler: _LoanApproval_SetMode_Handler},
		{MethodName: "HealthCheck", Handler: _LoanApproval_HealthCheck_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "loan/v1/loan_approval.proto",
}

//nolint:revive // gRPC handler registration
func _LoanApproval_Predict_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(PredictRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanApprovalServer).Predict(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: predictMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LoanApprovalServer).Predict(ctx, req.(*PredictRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive // gRPC handler registration
func _LoanApproval_GetMode_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(GetModeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanApprovalServer).GetMode(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: getModeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LoanApprovalServer).GetMode(ctx, req.(*GetModeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive // gRPC handler registration
func _LoanApproval_SetMode_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(SetModeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanApprovalServer).SetMode(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: setModeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LoanApprovalServer).SetMode(ctx, req.(*SetModeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive // gRPC handler registration
func _LoanApproval_HealthCheck_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(HealthCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanApprovalServer).HealthCheck(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: healthCheckMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LoanApprovalServer).HealthCheck(ctx, req.(*HealthCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// LoanApprovalClient is the client API for the LoanApproval service.
type LoanApprovalClient interface {
	Predict(ctx context.Context, in *PredictRequest, opts ...grpclib.CallOption) (*PredictResponse, error)
	GetMode(ctx context.Context, in *GetModeRequest, opts ...grpclib.CallOption) (*ModeResponse, error)
	SetMode(ctx context.Context, in *SetModeRequest, opts ...grpclib.CallOption) (*ModeResponse, error)
	HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpclib.CallOption) (*HealthCheckResponse, error)
}

type loanApprovalClient struct {
	cc grpclib.ClientConnInterface
}

// NewLoanApprovalClient returns a client that always requests the JSON codec.
func NewLoanApprovalClient(cc grpclib.ClientConnInterface) LoanApprovalClient {
	return &loanApprovalClient{cc: cc}
}

func (c *loanApprovalClient) invoke(ctx context.Context, method string, in, out any, opts []grpclib.CallOption) error {
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *loanApprovalClient) Predict(ctx context.Context, in *PredictRequest, opts ...grpclib.CallOption) (*PredictResponse, error) {
	out := new(PredictResponse)
	if err := c.invoke(ctx, predictMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *loanApprovalClient) GetMode(ctx context.Context, in *GetModeRequest, opts ...grpclib.CallOption) (*ModeResponse, error) {
	out := new(ModeResponse)
	if err := c.invoke(ctx, getModeMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *loanApprovalClient) SetMode(ctx context.Context, in *SetModeRequest, opts ...grpclib.CallOption) (*ModeResponse, error) {
	out := new(ModeResponse)
	if err := c.invoke(ctx, setModeMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *loanApprovalClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpclib.CallOption) (*HealthCheckResponse, error) {
	out := new(HealthCheckResponse)
	if err := c.invoke(ctx, healthCheckMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
