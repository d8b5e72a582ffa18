package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractBook is the exportable snapshot of a client's active
// contracts, evaluated against a single instant.
type ContractBook struct {
	Client          Client
	ActiveContracts []Contract
	TotalActiveCost decimal.Decimal
	GeneratedAt     time.Time
}
