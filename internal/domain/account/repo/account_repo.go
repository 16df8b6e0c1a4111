package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/platemate/auth-gateway/internal/domain/account/model"
)

// AccountRepo is the contract over the durable account store. The store is
// the ultimate authority on email/mobile uniqueness: Create must surface a
// unique-index violation as ErrAlreadyExists even after a clean pre-check.
type AccountRepo interface {
	// FindByEmailOrMobile returns id-only refs for any account matching
	// either field. Used as the pre-insert uniqueness check.
	FindByEmailOrMobile(ctx context.Context, email, mobile string) ([]model.AccountRef, error)

	Create(ctx context.Context, a model.Account) (model.Account, error)

	GetByEmail(ctx context.Context, email string) (model.Account, error)

	GetByID(ctx context.Context, id uuid.UUID) (model.Account, error)
}
