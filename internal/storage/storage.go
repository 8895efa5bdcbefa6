package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type Storage struct {
	DB           *sql.DB
	bobDB        bob.DB
	Accounts     account.IAccountTable
	Categories   category.ICategoryTable
	Transactions transaction.ITransactionTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	return Open(env.PostgresDSN())
}

// Open connects to Postgres at dsn and wires the table readers onto the pool.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	bobDB := bob.NewDB(db)
	reader := NewReader(bobDB)

	return &Storage{
		DB:           db,
		bobDB:        bobDB,
		Accounts:     reader.Accounts,
		Categories:   reader.Categories,
		Transactions: reader.Transactions,
	}, nil
}

// Write begins a database transaction. The caller must Commit or Rollback the returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
