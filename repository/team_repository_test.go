package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivorpool/repository/testutil"
)

func TestTeamRepository_CreateAndLookup(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTeamRepository(testDB.DB)
	ctx := context.Background()

	alabama, err := repo.Create(ctx, "Alabama", "SEC")
	require.NoError(t, err)
	require.NotZero(t, alabama.ID)
	assert.Equal(t, "SEC", alabama.Conference)

	byName, err := repo.GetByName(ctx, "Alabama")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, alabama.ID, byName.ID)

	missing, err := repo.GetByName(ctx, "Slippery Rock")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTeamRepository_GetByIDs(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTeamRepository(testDB.DB)
	ctx := context.Background()

	alabama, err := repo.Create(ctx, "Alabama", "SEC")
	require.NoError(t, err)
	buffalo, err := repo.Create(ctx, "Buffalo", "MAC")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Colgate", "Patriot")
	require.NoError(t, err)

	teams, err := repo.GetByIDs(ctx, []int64{alabama.ID, buffalo.ID, 99999})
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Alabama", teams[alabama.ID].Name)
	assert.Equal(t, "Buffalo", teams[buffalo.ID].Name)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTeamRepository_GetAll_OrderedByName(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTeamRepository(testDB.DB)
	ctx := context.Background()

	for _, seed := range [][2]string{
		{"Drake", "Pioneer"},
		{"Alabama", "SEC"},
		{"Colgate", "Patriot"},
	} {
		_, err := repo.Create(ctx, seed[0], seed[1])
		require.NoError(t, err)
	}

	teams, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, "Alabama", teams[0].Name)
	assert.Equal(t, "Colgate", teams[1].Name)
	assert.Equal(t, "Drake", teams[2].Name)
}
