package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/platemate/auth-gateway/internal/adapters/transport/http/dto"
	"github.com/platemate/auth-gateway/internal/app/auth/hash"
	"github.com/platemate/auth-gateway/internal/app/auth/token"
	customErrors "github.com/platemate/auth-gateway/internal/domain/account/errors"
	"github.com/platemate/auth-gateway/internal/domain/account/model"
	"github.com/platemate/auth-gateway/internal/domain/account/notify"
	"github.com/platemate/auth-gateway/internal/domain/account/repo"
)

type Service interface {
	Register(context.Context, dto.RegisterDTO) (string, error)
	Login(context.Context, dto.LoginDTO) (string, error)
	RequestPasswordReset(context.Context, dto.ForgotPasswordDTO) error
	VerifyToken(context.Context, string) error
}

type authService struct {
	accounts repo.AccountRepo
	hasher   *hash.Hasher
	codec    *token.Codec
	notifier notify.ResetNotifier
	v        *validator.Validate
}

func New(
	ar repo.AccountRepo,
	h *hash.Hasher,
	c *token.Codec,
	n notify.ResetNotifier,
	v *validator.Validate,
) Service {
	return &authService{
		accounts: ar, hasher: h, codec: c, notifier: n, v: v,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (string, error) {
	if err := a.v.Struct(in); err != nil {
		return "", customErrors.NewInvalidArgument(err.Error())
	}

	// Pre-check is an optimization only; the store's unique indexes are
	// the real enforcer, so Create below may still report a conflict.
	existing, err := a.accounts.FindByEmailOrMobile(ctx, in.Email, in.Mobile)
	if err != nil {
		return "", customErrors.WrapInternal(err, "Register")
	}
	if len(existing) > 0 {
		return "", customErrors.ErrAlreadyExists
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return "", customErrors.WrapInternal(err, "Register")
	}

	account, err := a.accounts.Create(ctx, model.Account{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		Mobile:       in.Mobile,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return "", customErrors.ErrAlreadyExists
		}
		return "", customErrors.WrapInternal(err, "Register")
	}

	signed, err := a.codec.IssueSession(account.ID, account.Email, account.Name)
	if err != nil {
		return "", customErrors.WrapInternal(err, "IssueSession")
	}
	return signed, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (string, error) {
	if err := a.v.Struct(in); err != nil {
		return "", customErrors.NewInvalidArgument(err.Error())
	}

	account, err := a.accounts.GetByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// Indistinguishable from a wrong password below.
		return "", customErrors.ErrInvalidCredentials
	case err != nil:
		return "", customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, account.PasswordHash) {
		return "", customErrors.ErrInvalidCredentials
	}

	signed, err := a.codec.IssueSession(account.ID, account.Email, account.Name)
	if err != nil {
		return "", customErrors.WrapInternal(err, "IssueSession")
	}
	return signed, nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, in dto.ForgotPasswordDTO) error {
	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	account, err := a.accounts.GetByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// Never reveal absence: the caller sees the same success either way.
		return nil
	case err != nil:
		return customErrors.WrapInternal(err, "RequestPasswordReset")
	}

	reset, err := a.codec.IssueReset(account.ID, account.Email)
	if err != nil {
		return customErrors.WrapInternal(err, "IssueReset")
	}

	if err := a.notifier.SendResetToken(ctx, account.Email, reset); err != nil {
		return customErrors.WrapInternal(err, "SendResetToken")
	}
	return nil
}

func (a *authService) VerifyToken(_ context.Context, raw string) error {
	if raw == "" {
		return customErrors.NewInvalidArgument("token is required")
	}
	if _, err := a.codec.Verify(raw); err != nil {
		return customErrors.ErrInvalidToken
	}
	return nil
}
