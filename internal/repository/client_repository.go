package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ricci/insurance-api/internal/model"
)

var clientSortColumns = map[string]string{
	"clientId":     "client_id",
	"name":         "name",
	"email":        "email",
	"phone":        "phone",
	"deletionDate": "deletion_date",
}

const clientColumns = `
	client_id,
	kind,
	phone,
	email,
	name,
	is_deleted,
	deletion_date,
	birthdate,
	company_identifier
`

type clientRow struct {
	ClientID          uuid.UUID
	Kind              string
	Phone             *string
	Email             *string
	Name              string
	IsDeleted         bool
	DeletionDate      *time.Time
	Birthdate         *time.Time
	CompanyIdentifier *string
}

func (row clientRow) toModel() model.Client {
	return model.Client{
		ClientID:          row.ClientID,
		Kind:              model.ClientKind(row.Kind),
		Phone:             row.Phone,
		Email:             row.Email,
		Name:              row.Name,
		IsDeleted:         row.IsDeleted,
		DeletionDate:      row.DeletionDate,
		Birthdate:         row.Birthdate,
		CompanyIdentifier: row.CompanyIdentifier,
	}
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var row clientRow
	err := conn(ctx, r.db).Raw(`
		SELECT `+clientColumns+`
		FROM client
		WHERE client_id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ClientID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	client := row.toModel()
	return &client, nil
}

func (r *ClientRepository) FindAll(ctx context.Context, page PageSpec) ([]model.Client, error) {
	return r.list(ctx, page, "", nil)
}

func (r *ClientRepository) FindAllByKind(ctx context.Context, kind model.ClientKind, page PageSpec) ([]model.Client, error) {
	return r.list(ctx, page, "WHERE kind = ?", []interface{}{string(kind)})
}

func (r *ClientRepository) list(ctx context.Context, page PageSpec, where string, args []interface{}) ([]model.Client, error) {
	page = page.normalized()
	query := `
		SELECT ` + clientColumns + `
		FROM client
		` + where + `
		ORDER BY ` + page.orderClause(clientSortColumns, "name") + `
		LIMIT ? OFFSET ?`
	args = append(args, page.Size, page.offset())

	var rows []clientRow
	if err := conn(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	clients := make([]model.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, row.toModel())
	}
	return clients, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	var row clientRow
	err := conn(ctx, r.db).Raw(`
		INSERT INTO client (
			kind,
			phone,
			email,
			name,
			is_deleted,
			deletion_date,
			birthdate,
			company_identifier
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+clientColumns,
		string(client.Kind),
		client.Phone,
		client.Email,
		client.Name,
		client.IsDeleted,
		client.DeletionDate,
		client.Birthdate,
		client.CompanyIdentifier,
	).Scan(&row).Error
	if err != nil {
		return err
	}
	*client = row.toModel()
	return nil
}

// Save never touches kind, birthdate or company_identifier: the variant
// and its identity field are fixed at creation.
func (r *ClientRepository) Save(ctx context.Context, client *model.Client) error {
	return conn(ctx, r.db).Exec(`
		UPDATE client
		SET
			phone = ?,
			email = ?,
			name = ?,
			is_deleted = ?,
			deletion_date = ?
		WHERE client_id = ?
	`,
		client.Phone,
		client.Email,
		client.Name,
		client.IsDeleted,
		client.DeletionDate,
		client.ClientID,
	).Error
}

func (r *ClientRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM client WHERE phone = ?)`, phone)
}

func (r *ClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM client WHERE email = ?)`, email)
}

func (r *ClientRepository) ExistsByCompanyIdentifier(ctx context.Context, identifier string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM client WHERE company_identifier = ?)`, identifier)
}

func (r *ClientRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var found bool
	if err := conn(ctx, r.db).Raw(query, arg).Scan(&found).Error; err != nil {
		return false, err
	}
	return found, nil
}
