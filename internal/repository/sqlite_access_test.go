package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessRepo_CreateAndLookup(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Shared")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	repo := NewSQLiteAccessRepo(db)

	g := &domain.AccessGrant{
		Code:      "ABCD2345",
		Token:     "tok_0123456789ab",
		OwnerID:   proj.OwnerID,
		ProjectID: proj.ID,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, g))

	byCode, err := repo.GetByCode(ctx, "ABCD2345")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, byCode.ProjectID)
	assert.Nil(t, byCode.LastAccessed)

	byToken, err := repo.GetByToken(ctx, g.Token)
	require.NoError(t, err)
	assert.Equal(t, g.Code, byToken.Code)

	list, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByCode(ctx, "ZZZZZZZZ")
	assert.ErrorIs(t, err, domain.ErrAccessNotFound)
}

func TestAccessRepo_RecordView(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Viewed")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	repo := NewSQLiteAccessRepo(db)

	g := &domain.AccessGrant{Code: "QWERTY23", Token: "t1", ProjectID: proj.ID, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, g))

	require.NoError(t, repo.RecordView(ctx, g.Code, time.Now()))
	require.NoError(t, repo.RecordView(ctx, g.Code, time.Now()))

	got, err := repo.GetByCode(ctx, g.Code)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)
	assert.NotNil(t, got.LastAccessed)

	assert.ErrorIs(t, repo.RecordView(ctx, "MISSING1", time.Now()), domain.ErrAccessNotFound)
}

func TestAccessRepo_DeleteByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Revoked")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	repo := NewSQLiteAccessRepo(db)

	require.NoError(t, repo.Create(ctx, &domain.AccessGrant{Code: "AAAA2222", Token: "t-a", ProjectID: proj.ID, CreatedAt: time.Now().UTC()}))
	require.NoError(t, repo.Create(ctx, &domain.AccessGrant{Code: "BBBB3333", Token: "t-b", ProjectID: proj.ID, CreatedAt: time.Now().UTC()}))

	n, err := repo.DeleteByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
