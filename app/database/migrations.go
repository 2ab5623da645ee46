package database

import (
	"database/sql"
	"log"
)

// RunMigrations bootstraps the schema. Every statement is idempotent so the
// server can run it on every start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`); err != nil {
		log.Printf("Failed to ensure pgcrypto extension: %v", err)
		return err
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS institutions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS programs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			institution_id UUID NOT NULL REFERENCES institutions(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			level TEXT NOT NULL DEFAULT '',
			tuition_fee DECIMAL(12,2) NOT NULL DEFAULT 0,
			duration_years INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			matricule TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			gender TEXT NOT NULL DEFAULT '',
			birth_date DATE,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			institution_id UUID NOT NULL REFERENCES institutions(id),
			program_id UUID REFERENCES programs(id),
			academic_year TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			amount DECIMAL(12,2) NOT NULL,
			currency TEXT NOT NULL DEFAULT 'XOF',
			valid_from TIMESTAMPTZ NOT NULL,
			valid_until TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			reference TEXT NOT NULL DEFAULT '',
			details TEXT NOT NULL DEFAULT '',
			recorded_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student_status ON payments (student_id, status)`,
		`CREATE TABLE IF NOT EXISTS access_cards (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			payment_id UUID NOT NULL REFERENCES payments(id),
			qr_data TEXT NOT NULL,
			qr_image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// One card per student; issuance upserts against this index.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_access_cards_student ON access_cards (student_id)`,
		`CREATE TABLE IF NOT EXISTS scan_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			card_id UUID NOT NULL REFERENCES access_cards(id) ON DELETE CASCADE,
			guardian_id UUID NOT NULL REFERENCES users(id),
			scanned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			scanned_on DATE NOT NULL DEFAULT CURRENT_DATE
		)`,
		// One accepted scan per card per calendar day, even under
		// concurrent requests.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_scan_logs_card_day ON scan_logs (card_id, scanned_on)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func seedRoles(db *sql.DB) error {
	for _, name := range []string{"admin", "secretary", "accountant", "guard"} {
		if _, err := db.Exec(`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			log.Printf("Failed to seed role %s: %v", name, err)
			return err
		}
	}
	return nil
}
