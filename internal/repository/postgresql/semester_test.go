package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendly-backend/internal/domain/semester"
	"github.com/attendly/attendly-backend/internal/repository/postgresql"
	"github.com/attendly/attendly-backend/internal/repository/postgresql/pgtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemesterRepository_CRUD(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewSemesterRepository(setup.DB)

	userID, err := setup.CreateUser(ctx, "semesters@example.com")
	require.NoError(t, err)

	id, err := uuid.NewV7()
	require.NoError(t, err)
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, semester.Semester{
		ID: id.String(), UserID: userID, Name: "Fall 2025", StartDate: start, EndDate: end,
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.GetByID(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Fall 2025", found.Name)
	assert.True(t, start.Equal(found.StartDate))

	found.Name = "Autumn 2025"
	updated, err := repo.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Autumn 2025", updated.Name)

	list, err := repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID, userID))
	_, err = repo.GetByID(ctx, created.ID, userID)
	assert.ErrorIs(t, err, semester.ErrSemesterNotFound)
}

func TestSemesterRepository_ScopedToUser(t *testing.T) {
	setup := pgtest.Require(t)
	ctx := context.Background()
	repo := postgresql.NewSemesterRepository(setup.DB)

	ownerID, err := setup.CreateUser(ctx, "owner@example.com")
	require.NoError(t, err)
	strangerID, err := setup.CreateUser(ctx, "stranger@example.com")
	require.NoError(t, err)

	semesterID, err := setup.CreateSemester(ctx, ownerID, "Mine")
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, semesterID, strangerID)
	assert.ErrorIs(t, err, semester.ErrSemesterNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, semesterID, strangerID), semester.ErrSemesterNotFound)

	list, err := repo.List(ctx, strangerID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
