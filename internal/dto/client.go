package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ricci/insurance-api/internal/model"
)

// ClientDto is the external shape shared by both client variants.
// Exactly one of Birthdate / CompanyIdentifier is set, depending on the
// variant; omitempty keeps the other off the wire.
type ClientDto struct {
	ClientID     uuid.UUID  `json:"clientId"`
	Phone        *string    `json:"phone,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Name         string     `json:"name"`
	IsDeleted    bool       `json:"isDeleted"`
	DeletionDate *time.Time `json:"deletionDate,omitempty"`

	Birthdate         *Date   `json:"birthdate,omitempty"`
	CompanyIdentifier *string `json:"companyIdentifier,omitempty"`
}

// PersonCreate is the creation payload for the person variant.
// ClientID, isDeleted and deletionDate are never accepted from the
// caller; they are computed on creation.
type PersonCreate struct {
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Name      string  `json:"name"`
	Birthdate Date    `json:"birthdate" binding:"required"`
}

// CompanyCreate is the creation payload for the company variant.
type CompanyCreate struct {
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	Name              string  `json:"name"`
	CompanyIdentifier string  `json:"companyIdentifier" binding:"required"`
}

// ClientPatch carries a partial update. An absent field is left
// untouched; an explicit null clears the nullable fields (phone, email,
// deletionDate). Birthdate and CompanyIdentifier are accepted here so a
// payload naming them is not a binding error, but the client service
// never applies them: variant identity fields are immutable after
// creation.
type ClientPatch struct {
	Phone        Optional[string]    `json:"phone"`
	Email        Optional[string]    `json:"email"`
	Name         *string             `json:"name"`
	IsDeleted    *bool               `json:"isDeleted"`
	DeletionDate Optional[time.Time] `json:"deletionDate"`

	Birthdate         *Date   `json:"birthdate"`
	CompanyIdentifier *string `json:"companyIdentifier"`
}

// ToClientDto dispatches on the closed variant set. An unknown kind is
// a programming error, not a recoverable condition.
func ToClientDto(client *model.Client) ClientDto {
	out := ClientDto{
		ClientID:     client.ClientID,
		Phone:        client.Phone,
		Email:        client.Email,
		Name:         client.Name,
		IsDeleted:    client.IsDeleted,
		DeletionDate: client.DeletionDate,
	}
	switch client.Kind {
	case model.KindPerson:
		if client.Birthdate != nil {
			birthdate := Date{Time: *client.Birthdate}
			out.Birthdate = &birthdate
		}
	case model.KindCompany:
		out.CompanyIdentifier = client.CompanyIdentifier
	default:
		panic(fmt.Sprintf("dto: unknown client kind %q", client.Kind))
	}
	return out
}

func ToClientDtos(clients []model.Client) []ClientDto {
	out := make([]ClientDto, 0, len(clients))
	for i := range clients {
		out = append(out, ToClientDto(&clients[i]))
	}
	return out
}

// NewPerson builds the person variant from its creation payload.
func NewPerson(in PersonCreate) *model.Client {
	birthdate := in.Birthdate.Time
	return &model.Client{
		Kind:      model.KindPerson,
		Phone:     in.Phone,
		Email:     in.Email,
		Name:      in.Name,
		Birthdate: &birthdate,
	}
}

// NewCompany builds the company variant from its creation payload.
func NewCompany(in CompanyCreate) *model.Client {
	identifier := in.CompanyIdentifier
	return &model.Client{
		Kind:              model.KindCompany,
		Phone:             in.Phone,
		Email:             in.Email,
		Name:              in.Name,
		CompanyIdentifier: &identifier,
	}
}
