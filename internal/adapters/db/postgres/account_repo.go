package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	customErrors "github.com/platemate/auth-gateway/internal/domain/account/errors"
	"github.com/platemate/auth-gateway/internal/domain/account/model"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (p *AccountRepo) FindByEmailOrMobile(ctx context.Context, email, mobile string) ([]model.AccountRef, error) {
	var refs []model.AccountRef
	res := p.db.WithContext(ctx).
		Model(&model.Account{}).
		Select("id").
		Where("email = ? OR mobile = ?", email, mobile).
		Find(&refs)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "FindByEmailOrMobile")
	}
	return refs, nil
}

func (p *AccountRepo) Create(ctx context.Context, a model.Account) (model.Account, error) {
	res := p.db.WithContext(ctx).Create(&a)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.Account{}, customErrors.ErrAlreadyExists
		}
		return model.Account{}, customErrors.WrapInternal(err, "Create")
	}
	return a, nil
}

func (p *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	var a model.Account
	res := p.db.WithContext(ctx).Where("email = ?", email).First(&a)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Account{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Account{}, customErrors.WrapInternal(err, "GetByEmail")
	}

	return a, nil
}

func (p *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	var a model.Account
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&a)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Account{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Account{}, customErrors.WrapInternal(err, "GetByID")
	}

	return a, nil
}
