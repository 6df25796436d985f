package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitdesk/internal/domain/account"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// CreateAccountInput carries input for the create account orchestrator.
type CreateAccountInput struct {
	Email      string
	Password   string
	Role       string
	EmployeeID string // optional link to an employee record
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
	GenerateID   func() string
	Now          func() time.Time
}

var ErrEmailTaken = errors.New("an account with this email already exists")

// ExecuteCreateAccount creates a login account for a staff member.
// PRE: Email is unique; Password meets the length requirement
// POST: Account is persisted with a bcrypt password hash
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (account.Account, error) {
	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return account.Account{}, ErrEmailTaken
	}

	acct := account.Account{
		ID:         deps.GenerateID(),
		Email:      input.Email,
		Role:       input.Role,
		EmployeeID: input.EmployeeID,
		CreatedAt:  deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("account_created", "account_id", acct.ID, "role", acct.Role)
	return acct, nil
}
