// Package repository holds the record store for cash cards and the
// credential provider used by the authenticator.
package repository

import (
	"context"
	"errors"

	"github.com/ruralpay/cashcard/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// CashCardStore is durable keyed storage for cash cards.
//
// UpdateOwned and DeleteOwned perform the ownership check and the mutation
// as one atomic step: a concurrent delete can never land between them.
type CashCardStore interface {
	FindByIDAndOwner(ctx context.Context, id int64, owner string) (*models.CashCard, error)
	FindByOwner(ctx context.Context, owner string, page models.PageRequest) ([]models.CashCard, error)
	Create(ctx context.Context, card models.CashCard) (*models.CashCard, error)
	UpdateOwned(ctx context.Context, card models.CashCard) error
	DeleteOwned(ctx context.Context, id int64, owner string) error
	Ping(ctx context.Context) error
}

// CredentialStore resolves a username to its stored credential.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Credential, error)
}

// CredentialWriter adds logins. Create returns ErrConflict for a taken username.
type CredentialWriter interface {
	Create(ctx context.Context, c models.Credential) error
}
