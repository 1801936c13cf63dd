package repositories

import (
	"context"
	"errors"
	"testing"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func insertUserRow(ctx context.Context, db *gorm.DB, email string) error {
	return GetDB(ctx, db).Exec(
		"INSERT INTO users(id,email,password_hash,first_name,last_name,role,email_verified,phone_verified,is_active) VALUES (?,?,?,?,?,?,?,?,?)",
		uuid.New().String(), email, "hash", "A", "B", "investor", false, false, true,
	).Error
}

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	err := u.Do(context.Background(), func(ctx context.Context) error {
		return insertUserRow(ctx, db, "a@crowdfund.io")
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("users").Count(&count).Error)
	require.Equal(t, int64(1), count)

	err = u.Do(context.Background(), func(ctx context.Context) error {
		if err := insertUserRow(ctx, db, "b@crowdfund.io"); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.Error(t, err)

	require.NoError(t, db.Table("users").Count(&count).Error)
	require.Equal(t, int64(1), count, "second insert must be rolled back")
}

func TestUnitOfWork_NestedDoJoinsOuterTransaction(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	err := u.Do(context.Background(), func(ctx context.Context) error {
		if err := u.Do(ctx, func(inner context.Context) error {
			require.Equal(t, GetDB(ctx, db), GetDB(inner, db))
			return insertUserRow(inner, db, "nested@crowdfund.io")
		}); err != nil {
			return err
		}
		return errors.New("outer fails")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Table("users").Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestUnitOfWork_GetDB(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}

	require.NotNil(t, u.GetDB(context.Background()))

	tx := db.Begin()
	txCtx := context.WithValue(context.Background(), txKey, tx)
	require.Equal(t, tx, u.GetDB(txCtx))
	tx.Rollback()
}

func TestUnitOfWork_DoBeginFailure(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = u.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to begin transaction")
}

func TestUnitOfWork_DoCommitFailure_WithHook(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	origCommit := commitTx
	t.Cleanup(func() { commitTx = origCommit })
	commitTx = func(tx *gorm.DB) error {
		return errors.New("forced commit fail")
	}

	err := u.Do(context.Background(), func(ctx context.Context) error {
		return insertUserRow(ctx, db, "c@crowdfund.io")
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to commit transaction")
}

func TestUnitOfWork_ProfileFailureRollsBackUser(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	// company_profiles is missing so the profile insert fails
	u := NewUnitOfWork(db)
	users := NewUserRepository(db)
	companies := NewCompanyProfileRepository(db)

	user := &entities.User{Email: "founder@crowdfund.io", PasswordHash: "hash", FirstName: "Ada", LastName: "O", Role: entities.UserRoleCompany, IsActive: true}
	err := u.Do(context.Background(), func(ctx context.Context) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return companies.Create(ctx, &entities.CompanyProfile{UserID: user.ID, CompanyName: "Ada Co"})
	})
	require.Error(t, err)

	_, err = users.GetByEmail(context.Background(), "founder@crowdfund.io")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
