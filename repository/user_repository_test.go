package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivorpool/repository/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user, err := repo.Create(ctx, "alice", "alice@example.com", 2)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, 2, user.LivesRemaining)
		assert.False(t, user.IsEliminated)
		assert.Equal(t, 0.0, user.CumulativeSpread)
		assert.False(t, user.HasPaid)
		assert.NotZero(t, user.ID)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, "alice", "other@example.com", 2)
		require.Error(t, err)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, "alice2", "alice@example.com", 2)
		require.Error(t, err)
	})
}

func TestUserRepository_GetActive_StandingsOrder(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	xavier, err := repo.Create(ctx, "xavier", "x@example.com", 2)
	require.NoError(t, err)
	yolanda, err := repo.Create(ctx, "yolanda", "y@example.com", 2)
	require.NoError(t, err)
	zach, err := repo.Create(ctx, "zach", "z@example.com", 2)
	require.NoError(t, err)
	walt, err := repo.Create(ctx, "walt", "w@example.com", 2)
	require.NoError(t, err)

	// Two lives beats one regardless of spread; within equal lives the
	// smaller cumulative spread ranks higher
	require.NoError(t, repo.UpdateCumulativeSpread(ctx, xavier.ID, -14))
	require.NoError(t, repo.UpdateCumulativeSpread(ctx, yolanda.ID, -3))
	require.NoError(t, repo.UpdateLives(ctx, zach.ID, 1, false))
	require.NoError(t, repo.UpdateCumulativeSpread(ctx, zach.ID, -50))
	require.NoError(t, repo.UpdateLives(ctx, walt.ID, 0, true))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "xavier", active[0].Username)
	assert.Equal(t, "yolanda", active[1].Username)
	assert.Equal(t, "zach", active[2].Username)

	eliminated, err := repo.GetEliminated(ctx)
	require.NoError(t, err)
	require.Len(t, eliminated, 1)
	assert.Equal(t, "walt", eliminated[0].Username)
}

func TestUserRepository_UpdateLives(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := repo.Create(ctx, "alice", "alice@example.com", 2)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateLives(ctx, user.ID, 0, true))

	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.LivesRemaining)
	assert.True(t, updated.IsEliminated)

	// Unknown user surfaces as an error, not a silent no-op
	err = repo.UpdateLives(ctx, 999999, 1, false)
	require.Error(t, err)
}

func TestUserRepository_SetPaid(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := repo.Create(ctx, "alice", "alice@example.com", 2)
	require.NoError(t, err)

	require.NoError(t, repo.SetPaid(ctx, user.ID, true))

	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, updated.HasPaid)
}
