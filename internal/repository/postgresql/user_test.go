package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendly-backend/internal/domain/auth"
	"github.com/attendly/attendly-backend/internal/domain/user"
	"github.com/attendly/attendly-backend/internal/repository/postgresql"
	"github.com/attendly/attendly-backend/internal/repository/postgresql/pgtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUser(t *testing.T, email string) user.User {
	id, err := uuid.NewV7()
	require.NoError(t, err)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	return user.User{
		ID:           id.String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
}

func TestUserRepository_Create(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	created, err := repo.Create(ctx, newTestUser(t, "test@example.com"))

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	_, err := repo.Create(ctx, newTestUser(t, "dup@example.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTestUser(t, "dup@example.com"))
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	created, err := repo.Create(ctx, newTestUser(t, "find@example.com"))
	require.NoError(t, err)

	found, err := repo.GetByEmail(ctx, "find@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte("password123")))
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	_, err := repo.GetByEmail(ctx, "nonexistent@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_GetByID(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	created, err := repo.Create(ctx, newTestUser(t, "byid@example.com"))
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "byid@example.com", found.Email)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	_, err := repo.Create(ctx, newTestUser(t, "exists@example.com"))
	require.NoError(t, err)

	exists, err := repo.ExistsByEmail(ctx, "exists@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestJWTRepository_DeleteStaleRefreshTokens(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewJWTRepository(setup.DB)

	userID, err := setup.CreateUser(ctx, "tokens@example.com")
	require.NoError(t, err)

	session := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "test"}
	require.NoError(t, repo.CreateRefreshToken(ctx, userID, "expired", time.Now().Add(-48*time.Hour).Unix(), session))
	require.NoError(t, repo.CreateRefreshToken(ctx, userID, "live", time.Now().Add(48*time.Hour).Unix(), session))

	deleted, err := repo.DeleteStaleRefreshTokens(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, revoked, err := repo.IsRefreshTokenRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)
}
