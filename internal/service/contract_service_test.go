package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/ricci/insurance-api/internal/dto"
	"github.com/ricci/insurance-api/internal/model"
)

func contractFixture(id, clientID uuid.UUID) *model.Contract {
	return &model.Contract{
		ContractID: id,
		ClientID:   clientID,
		StartDate:  time.Now().Add(-30 * 24 * time.Hour),
		UpdateDate: time.Now().Add(-30 * 24 * time.Hour),
		CostAmount: decimal.RequireFromString("400.00"),
	}
}

func TestGetContract_NotFound(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	id := uuid.New()
	contracts.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrContractNotFound)
}

func TestCreateContract_DefaultsStartDate(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	contracts.On("Create", mock.Anything, mock.AnythingOfType("*model.Contract")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Contract).ContractID = uuid.New()
		}).
		Return(nil)

	client := personFixture(uuid.New())
	created, err := svc.Create(context.Background(), dto.ContractCreate{
		ClientID:   client.ClientID,
		CostAmount: decimal.RequireFromString("150.50"),
	}, client)

	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created.StartDate, 2*time.Second)
	assert.WithinDuration(t, time.Now(), created.UpdateDate, 2*time.Second)
	assert.Nil(t, created.EndDate)
	assert.Equal(t, client.ClientID, created.ClientID)
}

func TestCreateContract_KeepsSuppliedStartDate(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	contracts.On("Create", mock.Anything, mock.AnythingOfType("*model.Contract")).Return(nil)

	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	client := personFixture(uuid.New())
	created, err := svc.Create(context.Background(), dto.ContractCreate{
		ClientID:   client.ClientID,
		StartDate:  &start,
		CostAmount: decimal.NewFromInt(100),
	}, client)

	assert.NoError(t, err)
	assert.Equal(t, start, created.StartDate)
}

func TestCreateContract_NegativeCost(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	client := personFixture(uuid.New())
	_, err := svc.Create(context.Background(), dto.ContractCreate{
		ClientID:   client.ClientID,
		CostAmount: decimal.RequireFromString("-1"),
	}, client)

	assert.ErrorIs(t, err, ErrInvalidData)
	contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPartialUpdate_EndDateDoesNotBumpUpdateDate(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	id := uuid.New()
	existing := contractFixture(id, uuid.New())
	previousUpdate := existing.UpdateDate
	contracts.On("FindByID", mock.Anything, id).Return(existing, nil)
	contracts.On("Save", mock.Anything, mock.AnythingOfType("*model.Contract")).Return(nil)

	end := time.Now().Add(24 * time.Hour)
	updated, err := svc.PartialUpdate(context.Background(), id, dto.ContractPatch{EndDate: &end})

	assert.NoError(t, err)
	assert.Equal(t, end, *updated.EndDate)
	assert.Equal(t, previousUpdate, updated.UpdateDate)
}

func TestPartialUpdate_CostChangeBumpsUpdateDate(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	id := uuid.New()
	existing := contractFixture(id, uuid.New())
	contracts.On("FindByID", mock.Anything, id).Return(existing, nil)
	contracts.On("Save", mock.Anything, mock.AnythingOfType("*model.Contract")).Return(nil)

	cost := decimal.RequireFromString("500.00")
	updated, err := svc.PartialUpdate(context.Background(), id, dto.ContractPatch{CostAmount: &cost})

	assert.NoError(t, err)
	assert.True(t, updated.CostAmount.Equal(cost))
	assert.WithinDuration(t, time.Now(), updated.UpdateDate, 2*time.Second)
}

func TestPartialUpdate_SameCostKeepsUpdateDate(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	id := uuid.New()
	existing := contractFixture(id, uuid.New())
	previousUpdate := existing.UpdateDate
	contracts.On("FindByID", mock.Anything, id).Return(existing, nil)
	contracts.On("Save", mock.Anything, mock.AnythingOfType("*model.Contract")).Return(nil)

	same := decimal.RequireFromString("400.000")
	updated, err := svc.PartialUpdate(context.Background(), id, dto.ContractPatch{CostAmount: &same})

	assert.NoError(t, err)
	assert.Equal(t, previousUpdate, updated.UpdateDate)
}

func TestPartialUpdate_NegativeCost(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	id := uuid.New()
	contracts.On("FindByID", mock.Anything, id).Return(contractFixture(id, uuid.New()), nil)

	cost := decimal.RequireFromString("-10")
	_, err := svc.PartialUpdate(context.Background(), id, dto.ContractPatch{CostAmount: &cost})
	assert.ErrorIs(t, err, ErrInvalidData)
	contracts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSoftDelete_ClosesOpenContract(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	id := uuid.New()
	contracts.On("FindByID", mock.Anything, id).Return(contractFixture(id, uuid.New()), nil)
	contracts.On("Save", mock.Anything, mock.AnythingOfType("*model.Contract")).Return(nil)

	deleted, err := svc.SoftDelete(context.Background(), id)
	assert.NoError(t, err)
	assert.NotNil(t, deleted.EndDate)
	assert.WithinDuration(t, time.Now(), *deleted.EndDate, 2*time.Second)
}

func TestSoftDelete_NoOpWhenAlreadyClosed(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	id := uuid.New()
	closedAt := time.Now().Add(-time.Hour)
	existing := contractFixture(id, uuid.New())
	existing.EndDate = &closedAt
	contracts.On("FindByID", mock.Anything, id).Return(existing, nil)

	deleted, err := svc.SoftDelete(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, closedAt, *deleted.EndDate)
	contracts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestForceClose_OverridesFutureEndDate(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	id := uuid.New()
	future := time.Now().Add(365 * 24 * time.Hour)
	existing := contractFixture(id, uuid.New())
	existing.EndDate = &future
	contracts.On("FindByID", mock.Anything, id).Return(existing, nil)
	contracts.On("Save", mock.Anything, mock.AnythingOfType("*model.Contract")).Return(nil)

	closed, err := svc.ForceClose(context.Background(), id)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), *closed.EndDate, 2*time.Second)
}

func TestSumOfActiveContractsCost_ZeroForUnknownClient(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	clientID := uuid.New()
	contracts.On("SumActiveCostByClient", mock.Anything, clientID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, nil)

	total, err := svc.GetSumOfActiveContractsCost(context.Background(), clientID)
	assert.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestGetActiveContractsUpdatedAfter_PassesThreshold(t *testing.T) {
	contracts := new(MockContractStore)
	svc := NewContractService(contracts)

	clientID := uuid.New()
	threshold := time.Now().Add(-7 * 24 * time.Hour)
	expected := []model.Contract{*contractFixture(uuid.New(), clientID)}
	contracts.On("FindActiveByClientUpdatedAfter", mock.Anything, clientID, mock.AnythingOfType("time.Time"), threshold).
		Return(expected, nil)

	got, err := svc.GetActiveContractsUpdatedAfter(context.Background(), clientID, threshold)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
}
