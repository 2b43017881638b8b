package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

// Transactions returns a dataset in the order it was seeded.
func (r *SQLRepository) Transactions(ctx context.Context, dataset domain.Dataset) ([]domain.Transaction, error) {
	txs := []domain.Transaction{}
	_, err := r.execute(func() (bool, error) {
		rows, err := r.db.QueryContext(ctx, `
			SELECT student_id, category, item, quantity, price_per_unit, total_amount, transaction_date
			FROM campus_transactions WHERE dataset = $1 ORDER BY seq`, dataset)
		if err != nil {
			return false, err
		}
		defer rows.Close()

		txs = txs[:0]
		for rows.Next() {
			var t domain.Transaction
			if err := rows.Scan(&t.StudentID, &t.Category, &t.Item, &t.Quantity, &t.PricePerUnit, &t.TotalAmount, &t.TransactionDate); err != nil {
				return false, err
			}
			txs = append(txs, t)
		}
		return true, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("load %s transactions: %w", dataset, err)
	}
	return txs, nil
}

// SeedTransactions replaces a dataset with txs using COPY.
func (r *SQLRepository) SeedTransactions(ctx context.Context, dataset domain.Dataset, txs []domain.Transaction) error {
	_, err := r.inTx(ctx, func(tx *sql.Tx) (bool, error) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM campus_transactions WHERE dataset = $1`, dataset); err != nil {
			return false, err
		}

		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("campus_transactions",
			"dataset", "student_id", "category", "item", "quantity", "price_per_unit", "total_amount", "transaction_date"))
		if err != nil {
			return false, err
		}
		for _, t := range txs {
			if _, err := stmt.ExecContext(ctx, string(dataset), t.StudentID, t.Category, t.Item, t.Quantity, t.PricePerUnit, t.TotalAmount, t.TransactionDate); err != nil {
				stmt.Close()
				return false, err
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			stmt.Close()
			return false, err
		}
		return true, stmt.Close()
	})
	if err != nil {
		return fmt.Errorf("seed %s transactions: %w", dataset, err)
	}
	return nil
}
