package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricci/insurance-api/internal/model"
	"github.com/ricci/insurance-api/internal/repository"
)

// ClientStore is the persistence boundary for client records. Missing
// records surface as gorm.ErrRecordNotFound from the postgres
// implementation; the services translate that into the domain taxonomy.
type ClientStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	FindAll(ctx context.Context, page repository.PageSpec) ([]model.Client, error)
	FindAllByKind(ctx context.Context, kind model.ClientKind, page repository.PageSpec) ([]model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Save(ctx context.Context, client *model.Client) error
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCompanyIdentifier(ctx context.Context, identifier string) (bool, error)
}

// ContractStore is the persistence boundary for contract records.
// The three active-contract queries take the evaluation instant as a
// parameter so one consistent "now" covers the whole request.
type ContractStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	FindAll(ctx context.Context, page repository.PageSpec) ([]model.Contract, error)
	Create(ctx context.Context, contract *model.Contract) error
	Save(ctx context.Context, contract *model.Contract) error
	FindActiveByClient(ctx context.Context, clientID uuid.UUID, now time.Time) ([]model.Contract, error)
	FindActiveByClientUpdatedAfter(ctx context.Context, clientID uuid.UUID, now, updatedAfter time.Time) ([]model.Contract, error)
	SumActiveCostByClient(ctx context.Context, clientID uuid.UUID, now time.Time) (decimal.Decimal, error)
}

// TxRunner runs fn inside a single unit of work. Store calls made with
// the context passed to fn join that unit of work, so the client
// soft-delete write and its contract cascade commit or roll back
// together.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
