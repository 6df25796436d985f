package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"fitdesk/internal/domain/account"

	"github.com/google/uuid"
)

// AdminSeedDeps holds stores needed for admin seeding.
type AdminSeedDeps struct {
	AccountStore interface {
		Count(ctx context.Context) (int, error)
		Save(ctx context.Context, a account.Account) error
	}
}

// ExecuteSeedAdmin creates the initial admin account when the account table is empty.
// Idempotent: any existing account skips the seed.
// PRE: Database schema exists
// POST: At least one admin account exists
func ExecuteSeedAdmin(ctx context.Context, email, password string, deps AdminSeedDeps) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      account.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(password); err != nil {
		return err
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("seeded_admin_account", "email", email)
	return nil
}
