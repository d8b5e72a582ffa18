package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ricci/insurance-api/internal/model"
	"github.com/ricci/insurance-api/internal/repository"
)

type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientStore) FindAll(ctx context.Context, page repository.PageSpec) ([]model.Client, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockClientStore) FindAllByKind(ctx context.Context, kind model.ClientKind, page repository.PageSpec) ([]model.Client, error) {
	args := m.Called(ctx, kind, page)
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockClientStore) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientStore) Save(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientStore) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientStore) ExistsByCompanyIdentifier(ctx context.Context, identifier string) (bool, error) {
	args := m.Called(ctx, identifier)
	return args.Bool(0), args.Error(1)
}

type MockContractStore struct {
	mock.Mock
}

func (m *MockContractStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractStore) FindAll(ctx context.Context, page repository.PageSpec) ([]model.Contract, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]model.Contract), args.Error(1)
}

func (m *MockContractStore) Create(ctx context.Context, contract *model.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractStore) Save(ctx context.Context, contract *model.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractStore) FindActiveByClient(ctx context.Context, clientID uuid.UUID, now time.Time) ([]model.Contract, error) {
	args := m.Called(ctx, clientID, now)
	return args.Get(0).([]model.Contract), args.Error(1)
}

func (m *MockContractStore) FindActiveByClientUpdatedAfter(ctx context.Context, clientID uuid.UUID, now, updatedAfter time.Time) ([]model.Contract, error) {
	args := m.Called(ctx, clientID, now, updatedAfter)
	return args.Get(0).([]model.Contract), args.Error(1)
}

func (m *MockContractStore) SumActiveCostByClient(ctx context.Context, clientID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, clientID, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// nopTx runs the function without a real transaction.
type nopTx struct{}

func (nopTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
