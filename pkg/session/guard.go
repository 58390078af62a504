package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/storelens/storelens/pkg/backend"
)

// ErrNotAuthenticated reports that the viewer holds no valid session and must
// be redirected to the entry surface.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Guard owns the bearer credential lifecycle: it decides whether the viewer
// may enter the dashboard and evicts the credential on any authentication
// failure. It is the only component that mutates the credential; everything
// else reads it through the Store.
type Guard struct {
	store  Store
	client backend.AuthClient
	logger *zap.Logger
}

// NewGuard wires a credential store and auth client into a guard.
func NewGuard(store Store, client backend.AuthClient, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{store: store, client: client, logger: logger}
}

// Resolve validates the persisted credential by resolving the viewer identity.
// Absent credential: ErrNotAuthenticated without any network call. Identity
// lookup failure of any kind evicts the credential and fails closed; ambiguity
// about session validity is treated as "not authenticated", never retried.
func (g *Guard) Resolve(ctx context.Context) (backend.Identity, error) {
	if _, err := g.store.Load(); err != nil {
		if errors.Is(err, ErrNoCredential) {
			return backend.Identity{}, ErrNotAuthenticated
		}
		return backend.Identity{}, err
	}
	identity, err := g.client.Me(ctx)
	if err != nil {
		g.logger.Warn("identity check failed, evicting credential", zap.Error(err))
		if clearErr := g.store.Clear(); clearErr != nil {
			g.logger.Error("credential eviction failed", zap.Error(clearErr))
		}
		return backend.Identity{}, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return identity, nil
}

// Login authenticates and persists the returned credential. On failure the
// existing credential, if any, is left untouched.
func (g *Guard) Login(ctx context.Context, creds backend.Credentials) (backend.Session, error) {
	session, err := g.client.Login(ctx, creds)
	if err != nil {
		return backend.Session{}, err
	}
	if err := g.store.Save(session.Token); err != nil {
		return backend.Session{}, err
	}
	g.logger.Info("session established", zap.String("shop", session.Tenant.ShopDomain))
	return session, nil
}

// Register provisions a tenant and persists the returned credential.
func (g *Guard) Register(ctx context.Context, reg backend.Registration) (backend.Session, error) {
	session, err := g.client.Register(ctx, reg)
	if err != nil {
		return backend.Session{}, err
	}
	if err := g.store.Save(session.Token); err != nil {
		return backend.Session{}, err
	}
	g.logger.Info("tenant registered", zap.String("shop", reg.ShopDomain))
	return session, nil
}

// Logout evicts the credential unconditionally; no server round trip is
// required for the locally observable transition.
func (g *Guard) Logout() error {
	return g.store.Clear()
}
