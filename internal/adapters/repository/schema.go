package repository

import (
	"context"
	"database/sql"
)

// Constraint names are load-bearing: translateUniqueViolation maps them back
// onto the colliding field when a concurrent insert slips past the
// application-level duplicate check.
const schema = `
CREATE TABLE IF NOT EXISTS players (
	id UUID PRIMARY KEY,
	full_name TEXT NOT NULL,
	father_name TEXT NOT NULL,
	mother_name TEXT NOT NULL,
	dob TEXT NOT NULL,
	gender TEXT NOT NULL,
	phone TEXT NOT NULL,
	national_id TEXT NOT NULL,
	email TEXT NOT NULL,
	profile_image TEXT NOT NULL,
	id_document_image TEXT NOT NULL,
	region TEXT NOT NULL,
	state TEXT NOT NULL,
	district TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT players_national_id_key UNIQUE (national_id),
	CONSTRAINT players_email_key UNIQUE (email),
	CONSTRAINT players_status_check CHECK (status IN ('pending', 'approved', 'rejected'))
);

CREATE TABLE IF NOT EXISTS staff_accounts (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'admin',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT staff_accounts_username_key UNIQUE (username),
	CONSTRAINT staff_accounts_email_key UNIQUE (email),
	CONSTRAINT staff_accounts_role_check CHECK (role IN ('admin', 'super_admin'))
);
`

// EnsureSchema creates the two collections and their unique indexes if they
// do not exist yet. Called once from the process entry point.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
