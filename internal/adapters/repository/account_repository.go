package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

var accountQueries = map[domain.Role]string{
	domain.RoleAdmin:  `SELECT id, email, name, password_hash FROM admins WHERE lower(email) = $1`,
	domain.RoleParent: `SELECT id, email, parent_name, password_hash FROM parents WHERE lower(email) = $1`,
	// Vendors added by an admin have no password and cannot log in.
	domain.RoleVendor: `SELECT id, email, business_name, password_hash FROM vendors
		WHERE lower(email) = $1 AND password_hash <> ''`,
}

// FindAccount looks the email up in the table of the requested user type.
func (r *SQLRepository) FindAccount(ctx context.Context, role domain.Role, email string) (*domain.Account, error) {
	query, ok := accountQueries[role]
	if !ok {
		return nil, domain.ErrUnsupportedRole
	}

	account := domain.Account{Role: role}
	found, err := r.execute(func() (bool, error) {
		err := r.db.QueryRowContext(ctx, query, email).
			Scan(&account.ID, &account.Email, &account.DisplayName, &account.PasswordHash)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if !found {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (r *SQLRepository) CreateAdmin(ctx context.Context, admin domain.Admin) error {
	var taken bool
	_, err := r.execute(func() (bool, error) {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO admins (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
			admin.ID, admin.Email, admin.Name, admin.PasswordHash, admin.CreatedAt,
		)
		if isUniqueViolation(err) {
			taken = true
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	if taken {
		return domain.ErrEmailTaken
	}
	return nil
}
