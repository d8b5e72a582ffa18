package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS client (
		client_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		kind VARCHAR(16) NOT NULL CHECK (kind IN ('PERSON', 'COMPANY')),
		phone VARCHAR(16),
		email VARCHAR(128),
		name VARCHAR(64) NOT NULL DEFAULT '',
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		deletion_date TIMESTAMPTZ,
		birthdate DATE,
		company_identifier VARCHAR(32),
		CONSTRAINT chk_client_deletion CHECK (is_deleted = (deletion_date IS NOT NULL)),
		CONSTRAINT chk_client_variant CHECK (
			(kind = 'PERSON' AND birthdate IS NOT NULL AND company_identifier IS NULL)
			OR (kind = 'COMPANY' AND birthdate IS NULL AND company_identifier IS NOT NULL)
		)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_client_phone ON client (phone) WHERE phone IS NOT NULL;`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_client_email ON client (email) WHERE email IS NOT NULL;`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_client_company_identifier ON client (company_identifier) WHERE company_identifier IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS contract (
		contract_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES client(client_id),
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		update_date TIMESTAMPTZ NOT NULL,
		cost_amount NUMERIC(18,2) NOT NULL CHECK (cost_amount >= 0)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_client_id ON contract (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_end_date ON contract (end_date) WHERE end_date IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_contract_update_date ON contract (update_date);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
