package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract references exactly one client. The client's lifetime is
// independent: closing or deleting a contract never touches the client.
type Contract struct {
	ContractID uuid.UUID
	ClientID   uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
	UpdateDate time.Time
	CostAmount decimal.Decimal

	// Loaded by the store when the caller asks for the expanded shape.
	Client *Client
}

// IsActive reports whether the contract is open at instant now.
// The caller captures now once per logical request so that every
// contract in a batch is judged against the same instant.
func (c *Contract) IsActive(now time.Time) bool {
	return c.EndDate == nil || now.Before(*c.EndDate)
}

// Close sets the end date if the contract is still open. Returns true
// when the state changed.
func (c *Contract) Close(now time.Time) bool {
	if c.EndDate != nil {
		return false
	}
	c.EndDate = &now
	return true
}

// ForceClose overrides any previous end date, including one in the
// future. Used only by the client soft-delete cascade.
func (c *Contract) ForceClose(now time.Time) {
	c.EndDate = &now
}
