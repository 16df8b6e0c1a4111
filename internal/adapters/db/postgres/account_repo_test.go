package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platemate/auth-gateway/internal/domain/account/errors"
	"github.com/platemate/auth-gateway/internal/domain/account/model"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Account{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAccountRepo_CreateAndGet(t *testing.T) {
	repo := NewAccountRepo(setupDB(t))
	ctx := context.Background()
	acc := model.Account{
		ID: uuid.New(), Name: "Ann", Email: "ann@x.com", Mobile: "555-0100",
		PasswordHash: "h", CreatedAt: time.Now(),
	}

	created, err := repo.Create(ctx, acc)
	if err != nil || created.ID != acc.ID {
		t.Fatalf("create %v", err)
	}

	got, err := repo.GetByEmail(ctx, acc.Email)
	if err != nil || got.ID != acc.ID {
		t.Fatalf("get by email %v", err)
	}
	got2, err := repo.GetByID(ctx, acc.ID)
	if err != nil || got2.Email != acc.Email {
		t.Fatalf("get by id %v", err)
	}
}

func TestAccountRepo_FindByEmailOrMobile(t *testing.T) {
	repo := NewAccountRepo(setupDB(t))
	ctx := context.Background()
	acc := model.Account{ID: uuid.New(), Name: "Ann", Email: "ann@x.com", Mobile: "555-0100", PasswordHash: "h"}
	if _, err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("create %v", err)
	}

	// match on either field alone
	refs, err := repo.FindByEmailOrMobile(ctx, "ann@x.com", "other")
	if err != nil || len(refs) != 1 || refs[0].ID != acc.ID {
		t.Fatalf("email match: %v %v", refs, err)
	}
	refs, err = repo.FindByEmailOrMobile(ctx, "other@x.com", "555-0100")
	if err != nil || len(refs) != 1 {
		t.Fatalf("mobile match: %v %v", refs, err)
	}
	refs, err = repo.FindByEmailOrMobile(ctx, "other@x.com", "other")
	if err != nil || len(refs) != 0 {
		t.Fatalf("no match expected: %v %v", refs, err)
	}
}

func TestAccountRepo_NotFound(t *testing.T) {
	repo := NewAccountRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "ghost@x.com"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
