package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

const vendorColumns = `id, business_name, business_id, gov_id, email, phone, address, upi_id, category,
	status, doc_business_id, doc_gov_id, rejection_reason, submitted_at, approved_at, rejected_at,
	version, password_hash`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVendor(row rowScanner) (*domain.Vendor, error) {
	var v domain.Vendor
	var approvedAt, rejectedAt sql.NullTime
	err := row.Scan(
		&v.ID, &v.BusinessName, &v.BusinessID, &v.GovID, &v.Email, &v.Phone, &v.Address, &v.UPIID,
		&v.Category, &v.Status, &v.Documents.BusinessID, &v.Documents.GovID, &v.RejectionReason,
		&v.SubmittedAt, &approvedAt, &rejectedAt, &v.Version, &v.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		v.ApprovedAt = &approvedAt.Time
	}
	if rejectedAt.Valid {
		v.RejectedAt = &rejectedAt.Time
	}
	return &v, nil
}

// ListVendors returns every vendor in submission order.
func (r *SQLRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	_, err := r.execute(func() (bool, error) {
		rows, err := r.db.QueryContext(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY submitted_at, id`)
		if err != nil {
			return false, err
		}
		defer rows.Close()

		vendors = vendors[:0]
		for rows.Next() {
			v, err := scanVendor(rows)
			if err != nil {
				return false, err
			}
			vendors = append(vendors, *v)
		}
		return true, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}

func (r *SQLRepository) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	var vendor *domain.Vendor
	found, err := r.execute(func() (bool, error) {
		v, err := scanVendor(r.db.QueryRowContext(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		vendor = v
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	if !found {
		return nil, domain.ErrVendorNotFound
	}
	return vendor, nil
}

// CreateVendor inserts the vendor with its outbox event. A second vendor
// with a password and the same email gives domain.ErrEmailTaken.
func (r *SQLRepository) CreateVendor(ctx context.Context, v domain.Vendor, event ports.OutboxEvent) error {
	var taken bool
	_, err := r.inTx(ctx, func(tx *sql.Tx) (bool, error) {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vendors (id, business_name, business_id, gov_id, email, phone, address, upi_id,
				category, status, doc_business_id, doc_gov_id, submitted_at, version, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			v.ID, v.BusinessName, v.BusinessID, v.GovID, v.Email, v.Phone, v.Address, v.UPIID,
			v.Category, v.Status, v.Documents.BusinessID, v.Documents.GovID, v.SubmittedAt, v.Version,
			v.PasswordHash,
		)
		if isUniqueViolation(err) {
			taken = true
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, insertOutboxEvent(ctx, tx, event)
	})
	if err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}
	if taken {
		return domain.ErrEmailTaken
	}
	return nil
}

// UpdateVendorStatus locks the row, checks expectedVersion when it is set and
// writes the new status with its timestamp.
func (r *SQLRepository) UpdateVendorStatus(ctx context.Context, update ports.VendorStatusUpdate, expectedVersion int64, event ports.OutboxEvent) (*domain.Vendor, error) {
	var vendor *domain.Vendor
	conflict := false

	found, err := r.inTx(ctx, func(tx *sql.Tx) (bool, error) {
		var current int64
		err := tx.QueryRowContext(ctx, `SELECT version FROM vendors WHERE id = $1 FOR UPDATE`, update.VendorID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if expectedVersion > 0 && current != expectedVersion {
			conflict = true
			return false, nil
		}

		var query string
		args := []any{update.VendorID, update.Status, update.At}
		switch update.Status {
		case domain.VendorRejected:
			query = `UPDATE vendors SET status = $2, rejected_at = $3, rejection_reason = $4, version = version + 1
				WHERE id = $1 RETURNING ` + vendorColumns
			args = append(args, update.RejectionReason)
		default:
			query = `UPDATE vendors SET status = $2, approved_at = $3, version = version + 1
				WHERE id = $1 RETURNING ` + vendorColumns
		}

		v, err := scanVendor(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return false, err
		}
		if err := insertOutboxEvent(ctx, tx, event); err != nil {
			return false, err
		}
		vendor = v
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update vendor status: %w", err)
	}
	if conflict {
		return nil, domain.ErrVersionConflict
	}
	if !found {
		return nil, domain.ErrVendorNotFound
	}
	return vendor, nil
}
