package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ruralpay/cashcard/internal/models"
)

// MemoryStore keeps cash cards in process memory. It is meant for local
// development and tests; a restart loses everything.
type MemoryStore struct {
	mu     sync.RWMutex
	cards  map[int64]models.CashCard
	nextID int64
}

func NewMemoryStore(seed ...models.CashCard) *MemoryStore {
	s := &MemoryStore{
		cards:  make(map[int64]models.CashCard),
		nextID: 1,
	}
	for _, c := range seed {
		s.cards[c.ID] = c
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return s
}

func (s *MemoryStore) FindByIDAndOwner(ctx context.Context, id int64, owner string) (*models.CashCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	if !ok || c.Owner != owner {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) FindByOwner(ctx context.Context, owner string, page models.PageRequest) ([]models.CashCard, error) {
	s.mu.RLock()
	owned := make([]models.CashCard, 0)
	for _, c := range s.cards {
		if c.Owner == owner {
			owned = append(owned, c)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(owned, func(i, j int) bool {
		return less(owned[i], owned[j], page.Sort)
	})

	start := page.Offset()
	if page.Size <= 0 || start < 0 || start >= len(owned) {
		return []models.CashCard{}, nil
	}
	end := start + page.Size
	if end > len(owned) || end < start {
		end = len(owned)
	}
	return owned[start:end], nil
}

func (s *MemoryStore) Create(ctx context.Context, card models.CashCard) (*models.CashCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card.ID = s.nextID
	s.nextID++
	s.cards[card.ID] = card
	return &card, nil
}

func (s *MemoryStore) UpdateOwned(ctx context.Context, card models.CashCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownedLocked(card.ID, card.Owner) {
		return ErrNotFound
	}
	s.cards[card.ID] = card
	return nil
}

func (s *MemoryStore) DeleteOwned(ctx context.Context, id int64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownedLocked(id, owner) {
		return ErrNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) ownedLocked(id int64, owner string) bool {
	c, ok := s.cards[id]
	return ok && c.Owner == owner
}

// less orders a before b by the requested sort, falling back to id ascending.
func less(a, b models.CashCard, orders []models.SortOrder) bool {
	for _, o := range orders {
		var cmp int
		switch o.Field {
		case models.SortByAmount:
			cmp = a.Amount.Cmp(b.Amount)
		case models.SortByOwner:
			cmp = strings.Compare(a.Owner, b.Owner)
		case models.SortByID:
			cmp = compareInt64(a.ID, b.ID)
		}
		if cmp == 0 {
			continue
		}
		if o.Descending {
			return cmp > 0
		}
		return cmp < 0
	}
	return a.ID < b.ID
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MemoryCredentialStore is a fixed set of credentials held in memory.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	users map[string]models.Credential
}

func NewMemoryCredentialStore(creds ...models.Credential) *MemoryCredentialStore {
	s := &MemoryCredentialStore{users: make(map[string]models.Credential)}
	for _, c := range creds {
		s.users[c.Username] = c
	}
	return s
}

// Create stores c unless the username is already taken.
func (s *MemoryCredentialStore) Create(ctx context.Context, c models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[c.Username]; ok {
		return ErrConflict
	}
	s.users[c.Username] = c
	return nil
}

func (s *MemoryCredentialStore) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}
