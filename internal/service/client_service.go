package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ricci/insurance-api/internal/dto"
	"github.com/ricci/insurance-api/internal/model"
	"github.com/ricci/insurance-api/internal/repository"
)

type ClientService struct {
	clients   ClientStore
	contracts *ContractService
	tx        TxRunner
}

func NewClientService(clients ClientStore, contracts *ContractService, tx TxRunner) *ClientService {
	return &ClientService{
		clients:   clients,
		contracts: contracts,
		tx:        tx,
	}
}

func (s *ClientService) List(ctx context.Context, page repository.PageSpec) ([]model.Client, error) {
	return s.clients.FindAll(ctx, page)
}

func (s *ClientService) ListPersons(ctx context.Context, page repository.PageSpec) ([]model.Client, error) {
	return s.clients.FindAllByKind(ctx, model.KindPerson, page)
}

func (s *ClientService) ListCompanies(ctx context.Context, page repository.PageSpec) ([]model.Client, error) {
	return s.clients.FindAllByKind(ctx, model.KindCompany, page)
}

// Get returns the client even when soft-deleted; deletion never hides
// records.
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) CreatePerson(ctx context.Context, in dto.PersonCreate) (*model.Client, error) {
	person := dto.NewPerson(in)
	if err := s.ValidateUniquePhoneOrEmail(ctx, person.Phone, person.Email); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *ClientService) CreateCompany(ctx context.Context, in dto.CompanyCreate) (*model.Client, error) {
	company := dto.NewCompany(in)
	exists, err := s.clients.ExistsByCompanyIdentifier(ctx, in.CompanyIdentifier)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: company identifier already exists", ErrInvalidData)
	}
	if err := s.ValidateUniquePhoneOrEmail(ctx, company.Phone, company.Email); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// PartialUpdate applies only the fields present in the patch; an
// explicit null clears a nullable field. Birthdate and
// companyIdentifier are silently ignored even when present: variant
// identity fields are immutable after creation.
func (s *ClientService) PartialUpdate(ctx context.Context, id uuid.UUID, patch dto.ClientPatch) (*model.Client, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Email.Set {
		existing.Email = patch.Email.Ptr()
	}
	if patch.Phone.Set {
		existing.Phone = patch.Phone.Ptr()
	}
	if patch.IsDeleted != nil {
		existing.IsDeleted = *patch.IsDeleted
	}
	if patch.DeletionDate.Set {
		existing.DeletionDate = patch.DeletionDate.Ptr()
	}

	if existing.IsDeleted != (existing.DeletionDate != nil) {
		return nil, fmt.Errorf("%w: isDeleted and deletionDate must be set together", ErrInvalidData)
	}

	if err := s.clients.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// SoftDelete marks the client deleted and force-closes every active
// contract in the same unit of work. Deleting an already-deleted client
// is a no-op returning the unchanged record.
func (s *ClientService) SoftDelete(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsDeleted {
		return existing, nil
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		existing.MarkDeleted(time.Now())
		if err := s.clients.Save(ctx, existing); err != nil {
			return err
		}
		active, err := s.contracts.GetActiveContracts(ctx, id)
		if err != nil {
			return err
		}
		for i := range active {
			if _, err := s.contracts.ForceClose(ctx, active[i].ContractID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// ValidateUniquePhoneOrEmail rejects a candidate whose non-null phone
// or email is already taken by another client.
func (s *ClientService) ValidateUniquePhoneOrEmail(ctx context.Context, phone, email *string) error {
	if phone != nil && *phone != "" {
		exists, err := s.clients.ExistsByPhone(ctx, *phone)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: phone already exists", ErrInvalidData)
		}
	}
	if email != nil && *email != "" {
		exists, err := s.clients.ExistsByEmail(ctx, *email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: email already exists", ErrInvalidData)
		}
	}
	return nil
}
