package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/config"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables and the outbox NOTIFY trigger. It is safe to
// run repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SQLRepository implements the vendor, parent, account and transaction
// ports on PostgreSQL. Every call goes through one circuit breaker.
type SQLRepository struct {
	db *sql.DB
	cb *gobreaker.CircuitBreaker
}

var (
	_ ports.VendorRepository  = (*SQLRepository)(nil)
	_ ports.ParentRepository  = (*SQLRepository)(nil)
	_ ports.AccountRepository = (*SQLRepository)(nil)
	_ ports.TransactionSource = (*SQLRepository)(nil)
)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{
		db: db,
		cb: config.NewCircuitBreaker(config.BreakerPostgres),
	}
}

// execute runs fn inside the breaker. Missing rows are reported through the
// found flag so lookups of unknown ids do not count as failures.
func (r *SQLRepository) execute(fn func() (found bool, err error)) (bool, error) {
	res, err := r.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// inTx runs fn in a transaction and commits when it returns found=true.
func (r *SQLRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) (bool, error)) (bool, error) {
	return r.execute(func() (bool, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return false, err
		}
		defer tx.Rollback()

		found, err := fn(tx)
		if err != nil || !found {
			return found, err
		}
		return true, tx.Commit()
	})
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func insertOutboxEvent(ctx context.Context, tx *sql.Tx, event ports.OutboxEvent) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4)`,
		event.ID, event.Type, []byte(event.Payload), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}
