package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruralpay/cashcard/internal/audit"
	"github.com/ruralpay/cashcard/internal/models"
	"github.com/ruralpay/cashcard/internal/repository"
)

// ErrCashCardNotFound covers both a missing id and an id owned by someone
// else. Callers must not be able to tell the two apart.
var ErrCashCardNotFound = errors.New("cash card not found")

// CashCardService applies owner scoping to every record store call.
type CashCardService struct {
	store repository.CashCardStore
	audit audit.Logger
}

func NewCashCardService(store repository.CashCardStore, auditLogger audit.Logger) *CashCardService {
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &CashCardService{
		store: store,
		audit: auditLogger,
	}
}

// FindByID returns the caller's card with the given id.
func (s *CashCardService) FindByID(ctx context.Context, caller models.Identity, id int64) (*models.CashCard, error) {
	card, err := s.store.FindByIDAndOwner(ctx, id, caller.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCashCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cash card %d: %w", id, err)
	}
	return card, nil
}

// FindAll returns one page of the caller's cards. An out of range page is
// an empty slice, never an error.
func (s *CashCardService) FindAll(ctx context.Context, caller models.Identity, page models.PageRequest) ([]models.CashCard, error) {
	if len(page.Sort) == 0 {
		page.Sort = DefaultSort
	}
	cards, err := s.store.FindByOwner(ctx, caller.Username, page)
	if err != nil {
		return nil, fmt.Errorf("list cash cards: %w", err)
	}
	if cards == nil {
		cards = []models.CashCard{}
	}
	return cards, nil
}

// Create stores a new card owned by the caller. Any id or owner in req is
// ignored; the store assigns the id.
func (s *CashCardService) Create(ctx context.Context, caller models.Identity, req models.CashCardRequest) (*models.CashCard, error) {
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidBody)
	}
	created, err := s.store.Create(ctx, models.ForOwner(caller.Username, *req.Amount))
	if err != nil {
		return nil, fmt.Errorf("create cash card: %w", err)
	}
	s.audit.LogCard(audit.EventCardCreated, caller.Username, created.ID)
	return created, nil
}

// Update replaces the amount of the caller's card id.
func (s *CashCardService) Update(ctx context.Context, caller models.Identity, id int64, req models.CashCardRequest) error {
	if req.Amount == nil {
		return fmt.Errorf("%w: amount is required", ErrInvalidBody)
	}
	err := s.store.UpdateOwned(ctx, models.ApplyUpdate(id, caller.Username, *req.Amount))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCashCardNotFound
	}
	if err != nil {
		return fmt.Errorf("update cash card %d: %w", id, err)
	}
	s.audit.LogCard(audit.EventCardUpdated, caller.Username, id)
	return nil
}

// Delete removes the caller's card id.
func (s *CashCardService) Delete(ctx context.Context, caller models.Identity, id int64) error {
	err := s.store.DeleteOwned(ctx, id, caller.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCashCardNotFound
	}
	if err != nil {
		return fmt.Errorf("delete cash card %d: %w", id, err)
	}
	s.audit.LogCard(audit.EventCardDeleted, caller.Username, id)
	return nil
}

// Ready reports whether the record store is reachable.
func (s *CashCardService) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}
