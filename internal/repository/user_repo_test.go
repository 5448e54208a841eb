package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(docstore.NewMemory(), stepClock(testBase))
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{DisplayName: "Jo", Email: " Jo@Example.com ", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	byEmail, err := repo.GetByEmail(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "jo@example.com", byEmail.Email)
	assert.Equal(t, "Jo", byEmail.DisplayName)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, byEmail, byID)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(docstore.NewMemory(), nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Email: "a@b.co", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Email: "A@B.co", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserRepo_NotFound(t *testing.T) {
	repo := NewUserRepository(docstore.NewMemory(), nil)

	_, err := repo.GetByEmail(context.Background(), "missing@b.co")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
