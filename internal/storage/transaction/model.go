package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const (
	tableName = "transactions"

	// DateLayout is the wire format of the transaction_date column.
	DateLayout = "2006-01-02"
)

// Transaction is a transaction row joined with the names of the rows it references.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	AccountID       uuid.UUID       `db:"account_id"`
	AccountName     sql.NullString  `db:"account_name"`
	AccountType     sql.NullString  `db:"account_type"`
	CategoryID      uuid.NullUUID   `db:"category_id"`
	CategoryName    sql.NullString  `db:"category_name"`
	SubcategoryID   uuid.NullUUID   `db:"subcategory_id"`
	SubcategoryName sql.NullString  `db:"subcategory_name"`
	Type            string          `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	Description     sql.NullString  `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionFilter specifies filters for listing transactions. Nil fields impose no constraint.
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// TransactionFields are the mutable columns of a transaction row.
type TransactionFields struct {
	AccountID       uuid.UUID
	CategoryID      uuid.NullUUID
	SubcategoryID   uuid.NullUUID
	Type            string
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
}

// ITransactionTable defines the read side of transaction storage. Every call is scoped to one owner.
type ITransactionTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error)
}

// ITransactionWriter defines transaction operations that run inside a transaction.
type ITransactionWriter interface {
	ITransactionTable
	FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, userID uuid.UUID, fields *TransactionFields) (uuid.UUID, error)
	Update(ctx context.Context, userID, id uuid.UUID, fields *TransactionFields) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
