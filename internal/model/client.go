package model

import (
	"time"

	"github.com/google/uuid"
)

type ClientKind string

const (
	KindPerson  ClientKind = "PERSON"
	KindCompany ClientKind = "COMPANY"
)

// Client is the polymorphic client record. Kind selects which of the
// variant fields is meaningful: Birthdate for PERSON, CompanyIdentifier
// for COMPANY. The closed set of kinds is dispatched exhaustively at
// every mapping site; an unknown kind is a programming error.
type Client struct {
	ClientID     uuid.UUID
	Kind         ClientKind
	Phone        *string
	Email        *string
	Name         string
	IsDeleted    bool
	DeletionDate *time.Time

	// PERSON only, immutable after creation.
	Birthdate *time.Time

	// COMPANY only, unique, immutable after creation.
	CompanyIdentifier *string
}

func (c *Client) IsPerson() bool {
	return c.Kind == KindPerson
}

func (c *Client) IsCompany() bool {
	return c.Kind == KindCompany
}

// MarkDeleted flips the soft-delete flag and stamps the deletion date.
// Idempotent: a second call keeps the original date.
func (c *Client) MarkDeleted(now time.Time) {
	if c.IsDeleted {
		return
	}
	c.IsDeleted = true
	c.DeletionDate = &now
}
