package repository

import (
	"alcyxob/gympumped/internal/docstore"
	"alcyxob/gympumped/internal/domain"
	"context"
	"errors"
	"fmt"
	"strings"
)

const userCollectionName = "users"

// userRepository implements UserRepository on a docstore.Store.
type userRepository struct {
	store docstore.Store
	clock Clock
}

// NewUserRepository creates a user repository. A nil clock uses time.Now.
func NewUserRepository(store docstore.Store, clock Clock) UserRepository {
	return &userRepository{store: store, clock: clock}
}

// Create inserts a new account. Emails are compared lowercase.
func (r *userRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return "", fmt.Errorf("%w: user email and password hash are required", ErrPreconditionFailed)
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	_, err := r.GetByEmail(ctx, user.Email)
	if err == nil {
		return "", fmt.Errorf("user %s: %w", user.Email, ErrConflict)
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	user.ID = r.store.NewID()
	now := r.clock.stamp()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.store.Set(ctx, userCollectionName, user.ID, user); err != nil {
		return "", storeError("create user", err)
	}
	return user.ID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := docstore.Query{}.Where("email", strings.ToLower(strings.TrimSpace(email))).WithLimit(1)
	docs, err := r.store.Query(ctx, userCollectionName, q)
	if err != nil {
		return nil, storeError("find user", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return decodeUser(docs[0])
}

// GetByID retrieves a user by document key.
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, userCollectionName, id)
	if err != nil {
		return nil, storeError("get user", err)
	}
	return decodeUser(doc)
}

func decodeUser(doc docstore.Document) (*domain.User, error) {
	var user domain.User
	if err := doc.Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	user.ID = doc.ID
	return &user, nil
}
