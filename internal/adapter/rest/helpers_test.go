package rest

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/cashflow-backend/internal/domain"
)

func balanceOf(capital, current int64) domain.Balance {
	return domain.Balance{
		CapitalAmount: decimal.NewFromInt(capital),
		CurrentAmount: decimal.NewFromInt(current),
	}
}
