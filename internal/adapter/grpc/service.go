package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "cashflow.v1.LedgerService"

// LedgerServiceServer is the server API for the ledger service
// Payloads are google.protobuf.Struct documents; list and balance
// calls take google.protobuf.Empty
type LedgerServiceServer interface {
	AddDeposit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateDeposit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteDeposit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDeposit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListDeposits(context.Context, *emptypb.Empty) (*structpb.Struct, error)

	AddExpense(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateExpense(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteExpense(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetExpense(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListExpenses(context.Context, *emptypb.Empty) (*structpb.Struct, error)

	GetBalance(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	VerifyBalance(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterLedgerServiceServer registers srv on s
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

// LedgerServiceDesc describes the ledger service for grpc.Server
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		structMethod("AddDeposit", LedgerServiceServer.AddDeposit),
		structMethod("UpdateDeposit", LedgerServiceServer.UpdateDeposit),
		structMethod("DeleteDeposit", LedgerServiceServer.DeleteDeposit),
		structMethod("GetDeposit", LedgerServiceServer.GetDeposit),
		emptyMethod("ListDeposits", LedgerServiceServer.ListDeposits),
		structMethod("AddExpense", LedgerServiceServer.AddExpense),
		structMethod("UpdateExpense", LedgerServiceServer.UpdateExpense),
		structMethod("DeleteExpense", LedgerServiceServer.DeleteExpense),
		structMethod("GetExpense", LedgerServiceServer.GetExpense),
		emptyMethod("ListExpenses", LedgerServiceServer.ListExpenses),
		emptyMethod("GetBalance", LedgerServiceServer.GetBalance),
		emptyMethod("VerifyBalance", LedgerServiceServer.VerifyBalance),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cashflow/v1/ledger.proto",
}

// FullMethod returns the wire name of a ledger service method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type structCall func(LedgerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)
type emptyCall func(LedgerServiceServer, context.Context, *emptypb.Empty) (*structpb.Struct, error)

func structMethod(name string, call structCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(LedgerServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func emptyMethod(name string, call emptyCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(emptypb.Empty)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(LedgerServiceServer), ctx, req.(*emptypb.Empty))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
