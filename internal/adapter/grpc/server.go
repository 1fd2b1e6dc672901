package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/cashflow-backend/internal/domain"
	"github.com/simaogato/cashflow-backend/internal/usecase/dashboard"
	"github.com/simaogato/cashflow-backend/internal/usecase/reconcile"
)

// Server implements the LedgerService gRPC server
type Server struct {
	Engine           *reconcile.Engine
	DashboardService *dashboard.DashboardService
}

// NewServer creates a new gRPC server instance
func NewServer(engine *reconcile.Engine, dashboardService *dashboard.DashboardService) *Server {
	return &Server{
		Engine:           engine,
		DashboardService: dashboardService,
	}
}

var _ LedgerServiceServer = (*Server)(nil)

// AddDeposit handles the AddDeposit RPC
func (s *Server) AddDeposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := stringField(req, "name")
	if err != nil {
		return nil, err
	}
	amount, err := amountField(req)
	if err != nil {
		return nil, mapError(err)
	}
	date, err := dateField(req)
	if err != nil {
		return nil, mapError(err)
	}

	deposit, err := s.Engine.AddDeposit(ctx, reconcile.AddDepositInput{
		Name:   name,
		Amount: amount,
		Date:   date,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(depositMap(deposit))
}

// UpdateDeposit handles the UpdateDeposit RPC
func (s *Server) UpdateDeposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(req, "deposit")
	if err != nil {
		return nil, mapError(err)
	}
	name, err := stringField(req, "name")
	if err != nil {
		return nil, err
	}
	amount, err := amountField(req)
	if err != nil {
		return nil, mapError(err)
	}
	date, err := dateField(req)
	if err != nil {
		return nil, mapError(err)
	}

	deposit, err := s.Engine.UpdateDeposit(ctx, reconcile.UpdateDepositInput{
		ID:     id,
		Name:   name,
		Amount: amount,
		Date:   date,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(depositMap(deposit))
}

// DeleteDeposit handles the DeleteDeposit RPC
func (s *Server) DeleteDeposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(req, "deposit")
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.Engine.DeleteDeposit(ctx, id); err != nil {
		return nil, mapError(err)
	}

	return toStruct(map[string]interface{}{"id": id.String(), "message": "Deposit deleted"})
}

// GetDeposit handles the GetDeposit RPC
func (s *Server) GetDeposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(req, "deposit")
	if err != nil {
		return nil, mapError(err)
	}

	deposit, err := s.DashboardService.GetDeposit(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(depositMap(deposit))
}

// ListDeposits handles the ListDeposits RPC
func (s *Server) ListDeposits(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	list, err := s.DashboardService.ListDeposits(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(depositListMap(list))
}

// AddExpense handles the AddExpense RPC
func (s *Server) AddExpense(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	description, err := stringField(req, "description")
	if err != nil {
		return nil, err
	}
	paidBy, err := stringField(req, "paidBy")
	if err != nil {
		return nil, err
	}
	amount, err := amountField(req)
	if err != nil {
		return nil, mapError(err)
	}
	date, err := dateField(req)
	if err != nil {
		return nil, mapError(err)
	}

	expense, err := s.Engine.AddExpense(ctx, reconcile.AddExpenseInput{
		Description: description,
		Amount:      amount,
		PaidBy:      paidBy,
		Date:        date,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(expenseMap(expense))
}

// UpdateExpense handles the UpdateExpense RPC
func (s *Server) UpdateExpense(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(req, "expense")
	if err != nil {
		return nil, mapError(err)
	}
	description, err := stringField(req, "description")
	if err != nil {
		return nil, err
	}
	paidBy, err := stringField(req, "paidBy")
	if err != nil {
		return nil, err
	}
	amount, err := amountField(req)
	if err != nil {
		return nil, mapError(err)
	}
	date, err := dateField(req)
	if err != nil {
		return nil, mapError(err)
	}

	expense, err := s.Engine.UpdateExpense(ctx, reconcile.UpdateExpenseInput{
		ID:          id,
		Description: description,
		Amount:      amount,
		PaidBy:      paidBy,
		Date:        date,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(expenseMap(expense))
}

// DeleteExpense handles the DeleteExpense RPC
func (s *Server) DeleteExpense(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(req, "expense")
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.Engine.DeleteExpense(ctx, id); err != nil {
		return nil, mapError(err)
	}

	return toStruct(map[string]interface{}{"id": id.String(), "message": "Expense deleted"})
}

// GetExpense handles the GetExpense RPC
func (s *Server) GetExpense(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(req, "expense")
	if err != nil {
		return nil, mapError(err)
	}

	expense, err := s.DashboardService.GetExpense(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(expenseMap(expense))
}

// ListExpenses handles the ListExpenses RPC
func (s *Server) ListExpenses(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	list, err := s.DashboardService.ListExpenses(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(expenseListMap(list))
}

// GetBalance handles the GetBalance RPC
func (s *Server) GetBalance(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	view, err := s.DashboardService.GetBalance(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	m := balanceMap(view.Balance)
	m["exists"] = view.Exists
	return toStruct(m)
}

// VerifyBalance handles the VerifyBalance RPC
func (s *Server) VerifyBalance(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	report, err := s.Engine.Verify(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return toStruct(reportMap(report))
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	errorMsg := err.Error()

	switch {
	// checked first: a partial apply also wraps the store failure behind it
	case errors.Is(err, domain.ErrPartialApply):
		return status.Errorf(codes.DataLoss, "%s", errorMsg)
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidEntry):
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	case errors.Is(err, domain.ErrInsufficientBalance):
		return status.Errorf(codes.FailedPrecondition, "%s", errorMsg)
	case errors.Is(err, domain.ErrStoreUnavailable):
		return status.Errorf(codes.Unavailable, "%s", errorMsg)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", errorMsg)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
