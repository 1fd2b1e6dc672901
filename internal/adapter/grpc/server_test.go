package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/cashflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/cashflow-backend/internal/domain"
	"github.com/simaogato/cashflow-backend/internal/usecase/dashboard"
	"github.com/simaogato/cashflow-backend/internal/usecase/reconcile"
)

const testToken = "test-token-123"

// startServer serves the ledger service over an in-memory listener
func startServer(t *testing.T) *grpclib.ClientConn {
	t.Helper()

	store := memory.NewStore()
	srv := NewServer(reconcile.NewEngine(store), dashboard.NewDashboardService(store))

	grpcServer := grpclib.NewServer(grpclib.ChainUnaryInterceptor(
		LoggingInterceptor(slog.New(slog.NewTextHandler(io.Discard, nil))),
		AuthInterceptor(testToken),
	))
	RegisterLedgerServiceServer(grpcServer, srv)

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func authCtx() context.Context {
	return metadata.NewOutgoingContext(context.Background(), metadata.Pairs("authorization", testToken))
}

func call(t *testing.T, conn *grpclib.ClientConn, method string, req proto.Message) (*structpb.Struct, error) {
	t.Helper()
	resp := new(structpb.Struct)
	err := conn.Invoke(authCtx(), FullMethod(method), req, resp)
	return resp, err
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func field(resp *structpb.Struct, key string) string {
	return resp.GetFields()[key].GetStringValue()
}

func TestServer_DepositAndExpenseFlow(t *testing.T) {
	conn := startServer(t)

	deposit, err := call(t, conn, "AddDeposit", mustStruct(t, map[string]interface{}{
		"name":   "Alice",
		"amount": 100,
	}))
	require.NoError(t, err)
	assert.Equal(t, "Alice", field(deposit, "name"))
	assert.Equal(t, "100", field(deposit, "amount"))
	_, err = uuid.Parse(field(deposit, "id"))
	assert.NoError(t, err)

	_, err = call(t, conn, "AddExpense", mustStruct(t, map[string]interface{}{
		"description": "Lunch",
		"amount":      "40",
		"paidBy":      "Alice",
		"date":        "2024-05-17",
	}))
	require.NoError(t, err)

	balance, err := call(t, conn, "GetBalance", &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "100", field(balance, "capitalAmount"))
	assert.Equal(t, "60", field(balance, "currentAmount"))
	assert.True(t, balance.GetFields()["exists"].GetBoolValue())

	deposits, err := call(t, conn, "ListDeposits", &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "100", field(deposits, "totalAmount"))
	assert.Len(t, deposits.GetFields()["deposits"].GetListValue().GetValues(), 1)

	updated, err := call(t, conn, "UpdateDeposit", mustStruct(t, map[string]interface{}{
		"id":     field(deposit, "id"),
		"amount": "150",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Alice", field(updated, "name"))
	assert.Equal(t, "150", field(updated, "amount"))

	report, err := call(t, conn, "VerifyBalance", &emptypb.Empty{})
	require.NoError(t, err)
	assert.True(t, report.GetFields()["consistent"].GetBoolValue())
	expected := report.GetFields()["expected"].GetStructValue()
	assert.Equal(t, "150", field(expected, "capitalAmount"))
	assert.Equal(t, "110", field(expected, "currentAmount"))

	_, err = call(t, conn, "DeleteDeposit", mustStruct(t, map[string]interface{}{"id": field(deposit, "id")}))
	require.NoError(t, err)
	_, err = call(t, conn, "GetDeposit", mustStruct(t, map[string]interface{}{"id": field(deposit, "id")}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_ErrorCodes(t *testing.T) {
	conn := startServer(t)

	_, err := call(t, conn, "AddDeposit", mustStruct(t, map[string]interface{}{"name": "Alice", "amount": 100}))
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		req    map[string]interface{}
		code   codes.Code
	}{
		{
			name:   "expense larger than current amount",
			method: "AddExpense",
			req:    map[string]interface{}{"description": "TV", "amount": 500, "paidBy": "Bob"},
			code:   codes.FailedPrecondition,
		},
		{
			name:   "negative amount",
			method: "AddDeposit",
			req:    map[string]interface{}{"name": "Refund", "amount": "-5"},
			code:   codes.InvalidArgument,
		},
		{
			name:   "non numeric amount",
			method: "AddDeposit",
			req:    map[string]interface{}{"name": "Refund", "amount": "abc"},
			code:   codes.InvalidArgument,
		},
		{
			name:   "amount beyond column range",
			method: "AddDeposit",
			req:    map[string]interface{}{"name": "Lottery", "amount": 1e30},
			code:   codes.InvalidArgument,
		},
		{
			name:   "amount with five decimals",
			method: "AddDeposit",
			req:    map[string]interface{}{"name": "Interest", "amount": "0.00001"},
			code:   codes.InvalidArgument,
		},
		{
			name:   "missing amount",
			method: "AddExpense",
			req:    map[string]interface{}{"description": "TV", "paidBy": "Bob"},
			code:   codes.InvalidArgument,
		},
		{
			name:   "missing name",
			method: "AddDeposit",
			req:    map[string]interface{}{"amount": 5},
			code:   codes.InvalidArgument,
		},
		{
			name:   "malformed id",
			method: "GetExpense",
			req:    map[string]interface{}{"id": "not-a-uuid"},
			code:   codes.NotFound,
		},
		{
			name:   "unknown id",
			method: "DeleteExpense",
			req:    map[string]interface{}{"id": uuid.NewString()},
			code:   codes.NotFound,
		},
		{
			name:   "name of the wrong type",
			method: "AddDeposit",
			req:    map[string]interface{}{"name": 12, "amount": 5},
			code:   codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(t, conn, tt.method, mustStruct(t, tt.req))
			assert.Equal(t, tt.code, status.Code(err), "error: %v", err)
		})
	}

	balance, err := call(t, conn, "GetBalance", &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "100", field(balance, "currentAmount"))
}

func TestServer_RequiresToken(t *testing.T) {
	conn := startServer(t)

	resp := new(structpb.Struct)
	err := conn.Invoke(context.Background(), FullMethod("GetBalance"), &emptypb.Empty{}, resp)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestMapError(t *testing.T) {
	storeErr := fmt.Errorf("op: %w: %w", domain.ErrStoreUnavailable, errors.New("connection refused"))

	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"invalid amount", domain.ErrInvalidAmount, codes.InvalidArgument},
		{"invalid entry", fmt.Errorf("wrapped: %w", domain.ErrInvalidEntry), codes.InvalidArgument},
		{"not found", domain.ErrNotFound, codes.NotFound},
		{"insufficient balance", domain.ErrInsufficientBalance, codes.FailedPrecondition},
		{"store unavailable", storeErr, codes.Unavailable},
		{"partial apply", &domain.PartialApplyError{Op: domain.OpAddExpense, EntryID: uuid.New(), Err: storeErr}, codes.DataLoss},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"unknown", errors.New("boom"), codes.Internal},
		{"status passes through", status.Error(codes.Unauthenticated, "no"), codes.Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(mapError(tt.err)))
		})
	}
	assert.NoError(t, mapError(nil))
}
