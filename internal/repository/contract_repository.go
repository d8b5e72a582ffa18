package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ricci/insurance-api/internal/model"
)

var contractSortColumns = map[string]string{
	"contractId": "contract_id",
	"startDate":  "start_date",
	"endDate":    "end_date",
	"updateDate": "update_date",
	"costAmount": "cost_amount",
}

const contractColumns = `
	contract_id,
	client_id,
	start_date,
	end_date,
	update_date,
	cost_amount
`

type contractRow struct {
	ContractID uuid.UUID
	ClientID   uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
	UpdateDate time.Time
	CostAmount decimal.Decimal
}

func (row contractRow) toModel() model.Contract {
	return model.Contract{
		ContractID: row.ContractID,
		ClientID:   row.ClientID,
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		UpdateDate: row.UpdateDate,
		CostAmount: row.CostAmount,
	}
}

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// FindByID loads the contract together with its owning client, so the
// caller can produce the expanded representation without a second
// round trip.
func (r *ContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var row struct {
		contractRow
		OwnerID           uuid.UUID
		OwnerKind         string
		OwnerPhone        *string
		OwnerEmail        *string
		OwnerName         string
		OwnerIsDeleted    bool
		OwnerDeletionDate *time.Time
		OwnerBirthdate    *time.Time
		OwnerIdentifier   *string
	}
	err := conn(ctx, r.db).Raw(`
		SELECT
			ct.contract_id,
			ct.client_id,
			ct.start_date,
			ct.end_date,
			ct.update_date,
			ct.cost_amount,
			cl.client_id AS owner_id,
			cl.kind AS owner_kind,
			cl.phone AS owner_phone,
			cl.email AS owner_email,
			cl.name AS owner_name,
			cl.is_deleted AS owner_is_deleted,
			cl.deletion_date AS owner_deletion_date,
			cl.birthdate AS owner_birthdate,
			cl.company_identifier AS owner_identifier
		FROM contract ct
		JOIN client cl ON cl.client_id = ct.client_id
		WHERE ct.contract_id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ContractID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	contract := row.contractRow.toModel()
	contract.Client = &model.Client{
		ClientID:          row.OwnerID,
		Kind:              model.ClientKind(row.OwnerKind),
		Phone:             row.OwnerPhone,
		Email:             row.OwnerEmail,
		Name:              row.OwnerName,
		IsDeleted:         row.OwnerIsDeleted,
		DeletionDate:      row.OwnerDeletionDate,
		Birthdate:         row.OwnerBirthdate,
		CompanyIdentifier: row.OwnerIdentifier,
	}
	return &contract, nil
}

func (r *ContractRepository) FindAll(ctx context.Context, page PageSpec) ([]model.Contract, error) {
	page = page.normalized()
	query := `
		SELECT ` + contractColumns + `
		FROM contract
		ORDER BY ` + page.orderClause(contractSortColumns, "update_date") + `
		LIMIT ? OFFSET ?`

	var rows []contractRow
	if err := conn(ctx, r.db).Raw(query, page.Size, page.offset()).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rowsToModels(rows), nil
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	var row contractRow
	err := conn(ctx, r.db).Raw(`
		INSERT INTO contract (
			client_id,
			start_date,
			end_date,
			update_date,
			cost_amount
		) VALUES (?, ?, ?, ?, ?)
		RETURNING `+contractColumns,
		contract.ClientID,
		contract.StartDate,
		contract.EndDate,
		contract.UpdateDate,
		contract.CostAmount,
	).Scan(&row).Error
	if err != nil {
		return err
	}
	client := contract.Client
	*contract = row.toModel()
	contract.Client = client
	return nil
}

// Save never reassigns the owning client.
func (r *ContractRepository) Save(ctx context.Context, contract *model.Contract) error {
	return conn(ctx, r.db).Exec(`
		UPDATE contract
		SET
			end_date = ?,
			update_date = ?,
			cost_amount = ?
		WHERE contract_id = ?
	`,
		contract.EndDate,
		contract.UpdateDate,
		contract.CostAmount,
		contract.ContractID,
	).Error
}

func (r *ContractRepository) FindActiveByClient(ctx context.Context, clientID uuid.UUID, now time.Time) ([]model.Contract, error) {
	var rows []contractRow
	err := conn(ctx, r.db).Raw(`
		SELECT `+contractColumns+`
		FROM contract
		WHERE client_id = ?
			AND (end_date IS NULL OR ? < end_date)
		ORDER BY start_date ASC
	`, clientID, now).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToModels(rows), nil
}

// FindActiveByClientUpdatedAfter treats the threshold as inclusive: a
// contract updated exactly at updatedAfter is returned.
func (r *ContractRepository) FindActiveByClientUpdatedAfter(ctx context.Context, clientID uuid.UUID, now, updatedAfter time.Time) ([]model.Contract, error) {
	var rows []contractRow
	err := conn(ctx, r.db).Raw(`
		SELECT `+contractColumns+`
		FROM contract
		WHERE client_id = ?
			AND (end_date IS NULL OR ? < end_date)
			AND update_date >= ?
		ORDER BY start_date ASC
	`, clientID, now, updatedAfter).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToModels(rows), nil
}

func (r *ContractRepository) SumActiveCostByClient(ctx context.Context, clientID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := conn(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(cost_amount), 0)
		FROM contract
		WHERE client_id = ?
			AND (end_date IS NULL OR ? < end_date)
	`, clientID, now).Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func rowsToModels(rows []contractRow) []model.Contract {
	contracts := make([]model.Contract, 0, len(rows))
	for _, row := range rows {
		contracts = append(contracts, row.toModel())
	}
	return contracts
}
