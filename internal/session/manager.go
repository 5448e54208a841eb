package session

import (
	"alcyxob/gympumped/internal/domain"
	"alcyxob/gympumped/internal/repository"
	"alcyxob/gympumped/internal/service"
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrSignedOut is returned by Authenticate for a revoked token.
var ErrSignedOut = errors.New("session has been signed out")

// userFacing are the auth service errors whose messages go straight to the user.
var userFacing = []error{
	service.ErrUserAlreadyExists,
	service.ErrAuthenticationFailed,
	service.ErrInvalidEmail,
	service.ErrWeakPassword,
	service.ErrMissingDisplayName,
	service.ErrInvalidToken,
	ErrSignedOut,
}

// Manager implements Provider with signed tokens and a revocation list.
type Manager struct {
	auth     service.AuthService
	sessions repository.SessionRepository

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

var _ Provider = (*Manager)(nil)

// NewManager creates a session manager.
func NewManager(auth service.AuthService, sessions repository.SessionRepository) *Manager {
	return &Manager{auth: auth, sessions: sessions, subs: make(map[int]func(Event))}
}

func (m *Manager) CurrentIdentity(ctx context.Context) (*domain.Identity, bool) {
	return CurrentIdentity(ctx)
}

// Subscribe registers fn for session events. Events are delivered
// synchronously on the goroutine that caused them.
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) emit(ev Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// CreateAccount registers the user and signs them in.
func (m *Manager) CreateAccount(ctx context.Context, email, password, displayName string) (Session, error) {
	user, err := m.auth.Register(ctx, displayName, email, password)
	if err != nil {
		return Session{}, authError(err)
	}
	log.Printf("INFO: Created account for user %s", user.ID)
	return m.issue(user)
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return Session{}, authError(err)
	}
	return m.issue(user)
}

func (m *Manager) issue(user *domain.User) (Session, error) {
	token, claims, err := m.auth.GenerateToken(user)
	if err != nil {
		return Session{}, err
	}
	s := Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, Identity: claims.Identity()}
	m.emit(Event{Kind: SignedIn, Identity: s.Identity})
	return s, nil
}

// SignOut revokes the token. Signing out twice is not an error.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	claims, err := m.auth.ParseToken(token)
	if err != nil {
		return authError(err)
	}

	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := m.sessions.Revoke(ctx, claims.ID, claims.UserID, expiresAt); err != nil {
		log.Printf("ERROR: Failed to revoke session %s for user %s: %v", claims.ID, claims.UserID, err)
		return err
	}

	m.emit(Event{Kind: SignedOut, Identity: claims.Identity()})
	return nil
}

// Authenticate checks signature, expiry and revocation.
func (m *Manager) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := m.auth.ParseToken(token)
	if err != nil {
		return nil, authError(err)
	}
	revoked, err := m.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, authError(ErrSignedOut)
	}
	identity := claims.Identity()
	return &identity, nil
}

// authError wraps user-facing failures in *AuthError and passes the rest through.
func authError(err error) error {
	for _, known := range userFacing {
		if errors.Is(err, known) {
			return &AuthError{Message: known.Error(), Err: err}
		}
	}
	return err
}
