package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT,
		role TEXT NOT NULL,
		email_verified BOOLEAN NOT NULL,
		phone_verified BOOLEAN NOT NULL,
		is_active BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProfileTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE investor_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		investor_type TEXT,
		kyc_status TEXT NOT NULL,
		max_investment_amount REAL,
		terms_accepted BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE company_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		company_name TEXT NOT NULL,
		legal_status TEXT,
		registration_number TEXT,
		tax_id TEXT,
		industry_sector TEXT,
		website TEXT,
		description TEXT,
		employee_count INTEGER,
		founding_date DATETIME,
		address TEXT,
		city TEXT,
		kyc_status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProjectTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE projects (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		title TEXT NOT NULL,
		short_description TEXT,
		description TEXT,
		funding_goal REAL,
		min_investment REAL,
		funding_type TEXT NOT NULL,
		industry_sector TEXT,
		impact_type TEXT,
		duration_months INTEGER,
		expected_return_rate REAL,
		video_url TEXT,
		start_date DATETIME,
		end_date DATETIME,
		status TEXT NOT NULL,
		reviewer_id TEXT,
		risk_rating INTEGER,
		review_notes TEXT,
		submitted_at DATETIME,
		reviewed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE project_team_members (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		position TEXT NOT NULL,
		bio TEXT,
		linkedin_url TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE project_faqs (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE documents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		project_id TEXT,
		doc_type TEXT NOT NULL,
		storage_key TEXT NOT NULL,
		original_filename TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		verified BOOLEAN NOT NULL,
		verification_notes TEXT,
		verified_by TEXT,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		backer_id TEXT,
		amount REAL NOT NULL,
		status TEXT NOT NULL,
		payment_method TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
