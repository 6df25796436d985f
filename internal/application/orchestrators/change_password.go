package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"fitdesk/internal/domain/account"
)

// AccountStoreForPasswordChange defines the store interface needed by ChangePassword.
type AccountStoreForPasswordChange interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// ChangePasswordInput carries input for the change password orchestrator.
type ChangePasswordInput struct {
	AccountID       string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	AccountStore AccountStoreForPasswordChange
}

var ErrWrongCurrentPassword = errors.New("current password is incorrect")

// ExecuteChangePassword verifies the current password and sets a new one.
// PRE: AccountID identifies an existing account
// POST: PasswordHash is replaced; failed login counter is reset
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return err
	}

	if err := acct.CheckPassword(input.CurrentPassword); err != nil {
		return ErrWrongCurrentPassword
	}

	if err := acct.SetPassword(input.NewPassword); err != nil {
		return err
	}
	acct.ResetFailedLogins()

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_changed", "account_id", acct.ID)
	return nil
}
