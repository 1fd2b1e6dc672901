package mysql

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cashflow-backend/internal/domain"
)

// Amount columns are decimal(domain.AmountPrecision, domain.AmountScale);
// struct tags cannot reference the constants, TestModels_AmountColumnType keeps them in step.

// balanceRowID pins the balance table to one row
const balanceRowID = 1

// sqlDeposit maps the deposits table
type sqlDeposit struct {
	ID        string          `gorm:"primaryKey;type:char(36)"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Date      time.Time       `gorm:"index;not null"`
	CreatedAt int64           `gorm:"autoCreateTime:milli"`
}

func (*sqlDeposit) TableName() string {
	return "deposits"
}

// sqlExpense maps the expenses table
type sqlExpense struct {
	ID          string          `gorm:"primaryKey;type:char(36)"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PaidBy      string          `gorm:"column:paid_by;type:varchar(255);not null"`
	Date        time.Time       `gorm:"index;not null"`
	CreatedAt   int64           `gorm:"autoCreateTime:milli"`
}

func (*sqlExpense) TableName() string {
	return "expenses"
}

// sqlBalance maps the balance table
type sqlBalance struct {
	ID            uint8           `gorm:"primaryKey;autoIncrement:false"`
	CapitalAmount decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	UpdatedAt     int64           `gorm:"autoUpdateTime:milli"`
}

func (*sqlBalance) TableName() string {
	return "balance"
}

func fromDeposit(d *domain.Deposit) *sqlDeposit {
	return &sqlDeposit{
		ID:     d.ID.String(),
		Name:   d.Name,
		Amount: d.Amount,
		Date:   d.Date.UTC(),
	}
}

func (m *sqlDeposit) toDomain() (*domain.Deposit, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid deposit id %q: %w", m.ID, err)
	}
	return &domain.Deposit{
		ID:     id,
		Name:   m.Name,
		Amount: m.Amount,
		Date:   m.Date,
	}, nil
}

func fromExpense(e *domain.Expense) *sqlExpense {
	return &sqlExpense{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Date:        e.Date.UTC(),
	}
}

func (m *sqlExpense) toDomain() (*domain.Expense, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid expense id %q: %w", m.ID, err)
	}
	return &domain.Expense{
		ID:          id,
		Description: m.Description,
		Amount:      m.Amount,
		PaidBy:      m.PaidBy,
		Date:        m.Date,
	}, nil
}

func fromBalance(b domain.Balance) *sqlBalance {
	return &sqlBalance{
		ID:            balanceRowID,
		CapitalAmount: b.CapitalAmount,
		CurrentAmount: b.CurrentAmount,
	}
}

func (m *sqlBalance) toDomain() *domain.Balance {
	return &domain.Balance{
		CapitalAmount: m.CapitalAmount,
		CurrentAmount: m.CurrentAmount,
	}
}
