package rest

import "net/http"

// Router builds the HTTP handler chain
//
//	GET    /                      health
//	GET    /api/deposits          list with totalAmount
//	POST   /api/deposits
//	GET    /api/deposits/{id}
//	PUT    /api/deposits/{id}
//	DELETE /api/deposits/{id}
//	(same five routes under /api/expenses, list carries totalExpense)
//	GET    /api/balance
//	GET    /api/balance/verify
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.health)

	mux.HandleFunc("GET /api/deposits", s.listDeposits)
	mux.HandleFunc("POST /api/deposits", s.createDeposit)
	mux.HandleFunc("GET /api/deposits/{id}", s.getDeposit)
	mux.HandleFunc("PUT /api/deposits/{id}", s.updateDeposit)
	mux.HandleFunc("DELETE /api/deposits/{id}", s.deleteDeposit)

	mux.HandleFunc("GET /api/expenses", s.listExpenses)
	mux.HandleFunc("POST /api/expenses", s.createExpense)
	mux.HandleFunc("GET /api/expenses/{id}", s.getExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.updateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.deleteExpense)

	mux.HandleFunc("GET /api/balance", s.getBalance)
	mux.HandleFunc("GET /api/balance/verify", s.verifyBalance)

	mux.HandleFunc("/", s.notFound)

	return s.logRequests(s.cors(mux))
}
