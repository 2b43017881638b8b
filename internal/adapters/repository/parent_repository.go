package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

func (r *SQLRepository) CreateParent(ctx context.Context, p domain.Parent) error {
	var taken bool
	_, err := r.execute(func() (bool, error) {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO parents (id, email, password_hash, parent_name, student_name, student_id,
				student_roll_no, parent_phone, wallet_balance, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.Email, p.PasswordHash, p.ParentName, p.StudentName, p.StudentID,
			p.StudentRollNo, p.ParentPhone, p.WalletBalance, p.CreatedAt,
		)
		if isUniqueViolation(err) {
			taken = true
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return fmt.Errorf("create parent: %w", err)
	}
	if taken {
		return domain.ErrEmailTaken
	}
	return nil
}

const parentColumns = `id, email, password_hash, parent_name, student_name, student_id, student_roll_no,
	parent_phone, wallet_balance, created_at`

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanParent(row rowScanner, p *domain.Parent) error {
	return row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.ParentName, &p.StudentName,
		&p.StudentID, &p.StudentRollNo, &p.ParentPhone, &p.WalletBalance, &p.CreatedAt)
}

func loadWalletTransactions(ctx context.Context, q queryer, parentID string) ([]domain.WalletTransaction, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, amount, type, date, description, category, status
		FROM wallet_transactions WHERE parent_id = $1 ORDER BY date, id`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []domain.WalletTransaction{}
	for rows.Next() {
		var tx domain.WalletTransaction
		if err := rows.Scan(&tx.ID, &tx.Amount, &tx.Type, &tx.Date, &tx.Description, &tx.Category, &tx.Status); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetParent returns the parent with its wallet transactions ordered by date.
func (r *SQLRepository) GetParent(ctx context.Context, id string) (*domain.Parent, error) {
	var parent domain.Parent
	found, err := r.execute(func() (bool, error) {
		err := scanParent(r.db.QueryRowContext(ctx, `SELECT `+parentColumns+` FROM parents WHERE id = $1`, id), &parent)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		parent.Transactions, err = loadWalletTransactions(ctx, r.db, id)
		return err == nil, err
	})
	if err != nil {
		return nil, fmt.Errorf("get parent: %w", err)
	}
	if !found {
		return nil, domain.ErrParentNotFound
	}
	return &parent, nil
}

// ApplyRecharge increments the balance in SQL so concurrent recharges add
// up. The ledger row and outbox event share the transaction, and the
// returned parent is read inside it, so a committed recharge always comes
// back with its state.
func (r *SQLRepository) ApplyRecharge(ctx context.Context, parentID string, wt domain.WalletTransaction, event ports.OutboxEvent) (*domain.Parent, error) {
	var parent domain.Parent
	found, err := r.inTx(ctx, func(tx *sql.Tx) (bool, error) {
		err := scanParent(tx.QueryRowContext(ctx,
			`UPDATE parents SET wallet_balance = wallet_balance + $1 WHERE id = $2 RETURNING `+parentColumns,
			wt.Amount, parentID,
		), &parent)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO wallet_transactions (id, parent_id, amount, type, date, description, category, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			wt.ID, parentID, wt.Amount, wt.Type, wt.Date, wt.Description, wt.Category, wt.Status,
		)
		if err != nil {
			return false, err
		}
		if err := insertOutboxEvent(ctx, tx, event); err != nil {
			return false, err
		}

		parent.Transactions, err = loadWalletTransactions(ctx, tx, parentID)
		return err == nil, err
	})
	if err != nil {
		return nil, fmt.Errorf("apply recharge: %w", err)
	}
	if !found {
		return nil, domain.ErrParentNotFound
	}
	return &parent, nil
}
