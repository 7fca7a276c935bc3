package services

import (
	"context"

	"github.com/ruralpay/cashcard/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockCashCardStore struct {
	mock.Mock
}

func (m *MockCashCardStore) FindByIDAndOwner(ctx context.Context, id int64, owner string) (*models.CashCard, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CashCard), args.Error(1)
}

func (m *MockCashCardStore) FindByOwner(ctx context.Context, owner string, page models.PageRequest) ([]models.CashCard, error) {
	args := m.Called(ctx, owner, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CashCard), args.Error(1)
}

func (m *MockCashCardStore) Create(ctx context.Context, card models.CashCard) (*models.CashCard, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CashCard), args.Error(1)
}

func (m *MockCashCardStore) UpdateOwned(ctx context.Context, card models.CashCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCashCardStore) DeleteOwned(ctx context.Context, id int64, owner string) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *MockCashCardStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) LogCard(eventType, username string, cardID int64) {
	m.Called(eventType, username, cardID)
}

func (m *MockAuditLogger) LogDenied(username, path, reason string) {
	m.Called(username, path, reason)
}

func (m *MockAuditLogger) LogOperation(eventType, username, details string) {
	m.Called(eventType, username, details)
}
