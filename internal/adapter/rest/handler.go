package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/cashflow-backend/internal/domain"
	"github.com/simaogato/cashflow-backend/internal/usecase/reconcile"
)

const maxBodyBytes = 1 << 20

type depositRequest struct {
	Name   string          `json:"name"`
	Amount json.RawMessage `json:"amount"`
	Date   string          `json:"date"`
}

type expenseRequest struct {
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	PaidBy      string          `json:"paidBy"`
	Date        string          `json:"date"`
}

type depositResponse struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
	Date   time.Time   `json:"date"`
}

type expenseResponse struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	PaidBy      string      `json:"paidBy"`
	Date        time.Time   `json:"date"`
}

type balanceResponse struct {
	CapitalAmount json.Number `json:"capitalAmount"`
	CurrentAmount json.Number `json:"currentAmount"`
}

func toDepositResponse(d *domain.Deposit) depositResponse {
	return depositResponse{ID: d.ID.String(), Name: d.Name, Amount: number(d.Amount), Date: d.Date}
}

func toExpenseResponse(e *domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      number(e.Amount),
		PaidBy:      e.PaidBy,
		Date:        e.Date,
	}
}

func toBalanceResponse(b domain.Balance) balanceResponse {
	return balanceResponse{CapitalAmount: number(b.CapitalAmount), CurrentAmount: number(b.CurrentAmount)}
}

// number renders a decimal as a JSON number without going through float64
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// parseAmount accepts the amount as a JSON number or a numeric string
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", domain.ErrInvalidAmount)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
		}
		return domain.ParseAmount(s)
	}
	return domain.ParseAmount(string(raw))
}

// pathID parses the {id} segment; malformed ids are reported as not found
func pathID(r *http.Request, kind string) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", kind, raw, domain.ErrNotFound)
	}
	return id, nil
}

// decode reads a JSON body; a failure has already been written when ok is false
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// health reports liveness
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":     "Cashflow API is running!",
		"status":      "success",
		"timestamp":   s.Now().UTC().Format(time.RFC3339),
		"environment": s.Environment,
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusNotFound, codeNotFound, "route not found")
}

// listDeposits handles GET /api/deposits
func (s *Server) listDeposits(w http.ResponseWriter, r *http.Request) {
	list, err := s.DashboardService.ListDeposits(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	deposits := make([]depositResponse, 0, len(list.Deposits))
	for _, d := range list.Deposits {
		deposits = append(deposits, toDepositResponse(d))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deposits":    deposits,
		"totalAmount": number(list.TotalAmount),
	})
}

// getDeposit handles GET /api/deposits/{id}
func (s *Server) getDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "deposit")
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	deposit, err := s.DashboardService.GetDeposit(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDepositResponse(deposit))
}

// createDeposit handles POST /api/deposits
func (s *Server) createDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	deposit, err := s.Engine.AddDeposit(r.Context(), reconcile.AddDepositInput{
		Name:   req.Name,
		Amount: amount,
		Date:   date,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDepositResponse(deposit))
}

// updateDeposit handles PUT /api/deposits/{id}
func (s *Server) updateDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "deposit")
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var req depositRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	deposit, err := s.Engine.UpdateDeposit(r.Context(), reconcile.UpdateDepositInput{
		ID:     id,
		Name:   req.Name,
		Amount: amount,
		Date:   date,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDepositResponse(deposit))
}

// deleteDeposit handles DELETE /api/deposits/{id}
func (s *Server) deleteDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "deposit")
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	if err := s.Engine.DeleteDeposit(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deposit deleted"})
}

// listExpenses handles GET /api/expenses
func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	list, err := s.DashboardService.ListExpenses(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	expenses := make([]expenseResponse, 0, len(list.Expenses))
	for _, e := range list.Expenses {
		expenses = append(expenses, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"expenses":     expenses,
		"totalExpense": number(list.TotalExpense),
	})
}

// getExpense handles GET /api/expenses/{id}
func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "expense")
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	expense, err := s.DashboardService.GetExpense(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

// createExpense handles POST /api/expenses
func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	expense, err := s.Engine.AddExpense(r.Context(), reconcile.AddExpenseInput{
		Description: req.Description,
		Amount:      amount,
		PaidBy:      req.PaidBy,
		Date:        date,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

// updateExpense handles PUT /api/expenses/{id}
func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "expense")
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var req expenseRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	expense, err := s.Engine.UpdateExpense(r.Context(), reconcile.UpdateExpenseInput{
		ID:          id,
		Description: req.Description,
		Amount:      amount,
		PaidBy:      req.PaidBy,
		Date:        date,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

// deleteExpense handles DELETE /api/expenses/{id}
func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "expense")
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	if err := s.Engine.DeleteExpense(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

// getBalance handles GET /api/balance
func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	view, err := s.DashboardService.GetBalance(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"capitalAmount": number(view.CapitalAmount),
		"currentAmount": number(view.CurrentAmount),
		"exists":        view.Exists,
	})
}

// verifyBalance handles GET /api/balance/verify
func (s *Server) verifyBalance(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.Verify(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	var stored *balanceResponse
	if report.Stored != nil {
		b := toBalanceResponse(*report.Stored)
		stored = &b
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"consistent": report.Consistent,
		"stored":     stored,
		"expected":   toBalanceResponse(report.Expected),
		"deposits":   report.Deposits,
		"expenses":   report.Expenses,
	})
}
