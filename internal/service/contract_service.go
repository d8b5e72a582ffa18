package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ricci/insurance-api/internal/dto"
	"github.com/ricci/insurance-api/internal/model"
	"github.com/ricci/insurance-api/internal/repository"
)

type ContractService struct {
	contracts ContractStore
}

func NewContractService(contracts ContractStore) *ContractService {
	return &ContractService{contracts: contracts}
}

func (s *ContractService) List(ctx context.Context, page repository.PageSpec) ([]model.Contract, error) {
	return s.contracts.FindAll(ctx, page)
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return contract, nil
}

// Create persists a contract for an already-resolved client; the caller
// looks the client up, this service does not. startDate defaults to the
// creation instant when absent.
func (s *ContractService) Create(ctx context.Context, in dto.ContractCreate, client *model.Client) (*model.Contract, error) {
	if in.CostAmount.IsNegative() {
		return nil, fmt.Errorf("%w: costAmount must not be negative", ErrInvalidData)
	}

	now := time.Now()
	contract := &model.Contract{
		ClientID:   client.ClientID,
		StartDate:  now,
		EndDate:    in.EndDate,
		UpdateDate: now,
		CostAmount: in.CostAmount,
		Client:     client,
	}
	if in.StartDate != nil {
		contract.StartDate = *in.StartDate
	}

	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// PartialUpdate mutates costAmount and endDate only. updateDate is
// bumped when and only when costAmount actually changed; closing or
// extending endDate alone leaves it alone.
func (s *ContractService) PartialUpdate(ctx context.Context, id uuid.UUID, patch dto.ContractPatch) (*model.Contract, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.CostAmount != nil {
		if patch.CostAmount.IsNegative() {
			return nil, fmt.Errorf("%w: costAmount must not be negative", ErrInvalidData)
		}
		if !existing.CostAmount.Equal(*patch.CostAmount) {
			existing.CostAmount = *patch.CostAmount
			existing.UpdateDate = time.Now()
		}
	}
	if patch.EndDate != nil {
		existing.EndDate = patch.EndDate
	}

	if err := s.contracts.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// SoftDelete closes an open contract; an already-closed contract is
// returned unchanged, never re-closed.
func (s *ContractService) SoftDelete(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.Close(time.Now()) {
		return existing, nil
	}
	if err := s.contracts.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ForceClose unconditionally ends the contract, overriding any previous
// end date. Only the client soft-delete cascade uses it.
func (s *ContractService) ForceClose(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.ForceClose(time.Now())
	if err := s.contracts.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ContractService) GetActiveContracts(ctx context.Context, clientID uuid.UUID) ([]model.Contract, error) {
	return s.activeContractsAt(ctx, clientID, time.Now())
}

func (s *ContractService) GetActiveContractsUpdatedAfter(ctx context.Context, clientID uuid.UUID, updatedAfter time.Time) ([]model.Contract, error) {
	return s.contracts.FindActiveByClientUpdatedAfter(ctx, clientID, time.Now(), updatedAfter)
}

// GetSumOfActiveContractsCost returns exactly zero for a client with no
// active contracts or an unknown client id.
func (s *ContractService) GetSumOfActiveContractsCost(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	return s.sumActiveCostAt(ctx, clientID, time.Now())
}

// activeContractsAt and sumActiveCostAt take the evaluation instant so
// a caller composing both sees one consistent snapshot.
func (s *ContractService) activeContractsAt(ctx context.Context, clientID uuid.UUID, now time.Time) ([]model.Contract, error) {
	return s.contracts.FindActiveByClient(ctx, clientID, now)
}

func (s *ContractService) sumActiveCostAt(ctx context.Context, clientID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	return s.contracts.SumActiveCostByClient(ctx, clientID, now)
}
