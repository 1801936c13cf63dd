package repositories

import (
	"context"
	"testing"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{
		Email:        "  Alice@Crowdfund.io ",
		PasswordHash: "hash",
		FirstName:    "Alice",
		LastName:     "Doe",
		Role:         entities.UserRoleCompany,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEqual(t, uuid.Nil, u.ID)
	require.Equal(t, "alice@crowdfund.io", u.Email)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, entities.UserRoleCompany, byID.Role)
	require.False(t, byID.EmailVerified)

	byEmail, err := repo.GetByEmail(ctx, "ALICE@crowdfund.io")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	u.Phone = "+33600000000"
	u.IsActive = false
	require.NoError(t, repo.Update(ctx, u))

	require.NoError(t, repo.MarkEmailVerified(ctx, u.ID))
	reloaded, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, reloaded.EmailVerified)
	require.False(t, reloaded.IsActive)
	require.Equal(t, "+33600000000", reloaded.Phone)
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@crowdfund.io")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.User{ID: id, FirstName: "x"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.MarkEmailVerified(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &entities.User{Email: "dup@crowdfund.io", PasswordHash: "h", FirstName: "a", LastName: "b", Role: entities.UserRoleInvestor}
	require.NoError(t, repo.Create(ctx, first))

	second := &entities.User{Email: "dup@crowdfund.io", PasswordHash: "h", FirstName: "c", LastName: "d", Role: entities.UserRoleInvestor}
	require.Error(t, repo.Create(ctx, second))
}
