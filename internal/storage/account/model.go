package account

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "accounts"

// Account represents an account record.
type Account struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Name          string          `db:"name"`
	Type          string          `db:"type"`
	BankName      sql.NullString  `db:"bank_name"`
	AccountNumber sql.NullString  `db:"account_number"`
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID         uuid.UUID
	Name           string
	Type           string
	BankName       string
	AccountNumber  string
	OpeningBalance decimal.Decimal
}

// IAccountTable defines the read side of account storage. Every call is scoped to one owner.
type IAccountTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]*Account, error)
	TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// IAccountWriter defines account operations that must run inside a transaction.
type IAccountWriter interface {
	IAccountTable
	FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

var columns = []any{
	"id", "user_id", "name", "type", "bank_name", "account_number", "balance", "is_active", "created_at",
}
