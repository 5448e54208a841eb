package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_Revoke(t *testing.T) {
	repo := NewSessionRepository(docstore.NewMemory())
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", "u1", testBase))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, repo.Revoke(ctx, "", "u1", testBase), ErrPreconditionFailed)
}
