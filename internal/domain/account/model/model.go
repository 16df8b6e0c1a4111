package model

import (
	"github.com/google/uuid"
	"time"
)

type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Mobile       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountRef is the id-only projection returned by uniqueness pre-checks.
type AccountRef struct {
	ID uuid.UUID
}
