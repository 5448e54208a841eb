// Package session tracks who is signed in. It issues and revokes session
// tokens on top of the auth service and tells subscribers when a user signs
// in or out.
package session

import (
	"alcyxob/gympumped/internal/domain"
	"context"
	"time"
)

// EventKind says what happened to a session.
type EventKind int

const (
	SignedIn EventKind = iota
	SignedOut
)

func (k EventKind) String() string {
	if k == SignedOut {
		return "signed_out"
	}
	return "signed_in"
}

// Event is delivered to subscribers on sign-in and sign-out.
type Event struct {
	Kind     EventKind
	Identity domain.Identity
}

// Session is an issued bearer token and the identity it stands for.
type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Identity  domain.Identity `json:"user"`
}

// AuthError is a credential or account failure whose Message is meant for
// the user as-is.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// Provider is the session contract the HTTP layer depends on.
type Provider interface {
	CurrentIdentity(ctx context.Context) (*domain.Identity, bool)
	Subscribe(fn func(Event)) (unsubscribe func())
	CreateAccount(ctx context.Context, email, password, displayName string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

type identityKey struct{}

// WithIdentity returns a context carrying the signed-in identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// CurrentIdentity returns the identity bound to ctx, if any.
func CurrentIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	if !ok || identity.UID == "" {
		return nil, false
	}
	return &identity, true
}
