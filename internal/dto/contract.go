package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricci/insurance-api/internal/model"
)

// ContractDto is the simple external shape: it carries only the owning
// client's identifier. On creation, startDate defaults to "now" when
// absent and endDate is normally left null (open-ended).
type ContractDto struct {
	ContractID uuid.UUID       `json:"contractId"`
	ClientID   uuid.UUID       `json:"clientId"`
	StartDate  *time.Time      `json:"startDate,omitempty"`
	EndDate    *time.Time      `json:"endDate,omitempty"`
	CostAmount decimal.Decimal `json:"costAmount"`
}

// ContractCreate is the creation payload. update_date is never exposed
// or accepted; the service maintains it.
type ContractCreate struct {
	ClientID   uuid.UUID       `json:"clientId" binding:"required"`
	StartDate  *time.Time      `json:"startDate"`
	EndDate    *time.Time      `json:"endDate"`
	CostAmount decimal.Decimal `json:"costAmount"`
}

// ContractPatch carries a partial update. The owning client reference
// is immutable through this path, so no clientId field is applied.
type ContractPatch struct {
	EndDate    *time.Time       `json:"endDate"`
	CostAmount *decimal.Decimal `json:"costAmount"`
}

// ContractExpandedDto embeds the full mapped client instead of its id.
type ContractExpandedDto struct {
	ContractID uuid.UUID       `json:"contractId"`
	Client     ClientDto       `json:"client"`
	StartDate  *time.Time      `json:"startDate,omitempty"`
	EndDate    *time.Time      `json:"endDate,omitempty"`
	CostAmount decimal.Decimal `json:"costAmount"`
}

func ToContractDto(contract *model.Contract) ContractDto {
	startDate := contract.StartDate
	return ContractDto{
		ContractID: contract.ContractID,
		ClientID:   contract.ClientID,
		StartDate:  &startDate,
		EndDate:    contract.EndDate,
		CostAmount: contract.CostAmount,
	}
}

func ToContractDtos(contracts []model.Contract) []ContractDto {
	out := make([]ContractDto, 0, len(contracts))
	for i := range contracts {
		out = append(out, ToContractDto(&contracts[i]))
	}
	return out
}

// ToContractExpandedDto requires the owning client to be loaded.
func ToContractExpandedDto(contract *model.Contract) ContractExpandedDto {
	if contract.Client == nil {
		panic("dto: expanded contract mapping requires a loaded client")
	}
	startDate := contract.StartDate
	return ContractExpandedDto{
		ContractID: contract.ContractID,
		Client:     ToClientDto(contract.Client),
		StartDate:  &startDate,
		EndDate:    contract.EndDate,
		CostAmount: contract.CostAmount,
	}
}

func ToContractExpandedDtos(contracts []model.Contract) []ContractExpandedDto {
	out := make([]ContractExpandedDto, 0, len(contracts))
	for i := range contracts {
		out = append(out, ToContractExpandedDto(&contracts[i]))
	}
	return out
}
