package grpc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/cashflow-backend/internal/domain"
	"github.com/simaogato/cashflow-backend/internal/usecase/dashboard"
	"github.com/simaogato/cashflow-backend/internal/usecase/reconcile"
)

// stringField returns a string field, or "" when absent
func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return v.GetStringValue(), nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", key)
	}
}

// amountField accepts the amount as a decimal string or a JSON number
func amountField(req *structpb.Struct) (decimal.Decimal, error) {
	v, ok := req.GetFields()["amount"]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: amount is required", domain.ErrInvalidAmount)
	}
	switch v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return domain.ParseAmount(v.GetStringValue())
	case *structpb.Value_NumberValue:
		return domain.AmountFromFloat(v.GetNumberValue())
	default:
		return decimal.Zero, fmt.Errorf("%w: amount must be a number", domain.ErrInvalidAmount)
	}
}

func dateField(req *structpb.Struct) (time.Time, error) {
	s, err := stringField(req, "date")
	if err != nil {
		return time.Time{}, err
	}
	return domain.ParseDate(s)
}

// idField parses the entry id; a malformed id is reported as not found
func idField(req *structpb.Struct, kind string) (uuid.UUID, error) {
	s, err := stringField(req, "id")
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", kind, s, domain.ErrNotFound)
	}
	return id, nil
}

func depositMap(d *domain.Deposit) map[string]interface{} {
	return map[string]interface{}{
		"id":     d.ID.String(),
		"name":   d.Name,
		"amount": d.Amount.String(),
		"date":   d.Date.UTC().Format(time.RFC3339Nano),
	}
}

func expenseMap(e *domain.Expense) map[string]interface{} {
	return map[string]interface{}{
		"id":          e.ID.String(),
		"description": e.Description,
		"amount":      e.Amount.String(),
		"paidBy":      e.PaidBy,
		"date":        e.Date.UTC().Format(time.RFC3339Nano),
	}
}

func balanceMap(b domain.Balance) map[string]interface{} {
	return map[string]interface{}{
		"capitalAmount": b.CapitalAmount.String(),
		"currentAmount": b.CurrentAmount.String(),
	}
}

func depositListMap(list *dashboard.DepositList) map[string]interface{} {
	deposits := make([]interface{}, 0, len(list.Deposits))
	for _, d := range list.Deposits {
		deposits = append(deposits, depositMap(d))
	}
	return map[string]interface{}{
		"deposits":    deposits,
		"totalAmount": list.TotalAmount.String(),
	}
}

func expenseListMap(list *dashboard.ExpenseList) map[string]interface{} {
	expenses := make([]interface{}, 0, len(list.Expenses))
	for _, e := range list.Expenses {
		expenses = append(expenses, expenseMap(e))
	}
	return map[string]interface{}{
		"expenses":     expenses,
		"totalExpense": list.TotalExpense.String(),
	}
}

func reportMap(r *reconcile.Report) map[string]interface{} {
	m := map[string]interface{}{
		"consistent": r.Consistent,
		"expected":   balanceMap(r.Expected),
		"deposits":   r.Deposits,
		"expenses":   r.Expenses,
		"stored":     nil,
	}
	if r.Stored != nil {
		m["stored"] = balanceMap(*r.Stored)
	}
	return m
}

// toStruct wraps structpb.NewStruct; a failure here is a programming error
func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return s, nil
}
