package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessService_ShareAndResolve(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)

	g, err := s.access.Share(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, g.Code, codeLength)
	assert.Len(t, g.Token, tokenLength)
	assert.Equal(t, p.OwnerID, g.OwnerID)
	for _, c := range g.Code {
		assert.True(t, strings.ContainsRune(codeAlphabet, c), "unexpected code character %q", c)
	}
	assert.NotContains(t, g.Code, "O")
	assert.NotContains(t, g.Code, "0")

	byCode, err := s.access.Resolve(ctx, strings.ToLower(g.Code))
	require.NoError(t, err)
	assert.Equal(t, p.ID, byCode.ProjectID)
	assert.Equal(t, 1, byCode.ViewCount)

	byToken, err := s.access.Resolve(ctx, " "+g.Token+" ")
	require.NoError(t, err)
	assert.Equal(t, g.Code, byToken.Code)
	assert.Equal(t, 2, byToken.ViewCount)
	require.NotNil(t, byToken.LastAccessed)
}

func TestAccessService_ResolveUnknown(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.access.Resolve(ctx, "NOPE2345")
	assert.ErrorIs(t, err, domain.ErrAccessNotFound)
	_, err = s.access.Resolve(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccessService_ShareUnknownProject(t *testing.T) {
	s := setupServices(t)
	_, err := s.access.Share(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestAccessService_ListAndRevoke(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)

	first, err := s.access.Share(ctx, p.ID)
	require.NoError(t, err)
	second, err := s.access.Share(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.Code, second.Code)

	grants, err := s.access.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, grants, 2)

	n, err := s.access.Revoke(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.access.Resolve(ctx, first.Code)
	assert.ErrorIs(t, err, domain.ErrAccessNotFound)
}

func TestRandomString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s, err := randomString(tokenAlphabet, tokenLength)
		require.NoError(t, err)
		assert.Len(t, s, tokenLength)
		assert.False(t, seen[s])
		seen[s] = true
	}
}
