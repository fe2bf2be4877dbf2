package access

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// AuthEventType enumerates the auth provider's state-change events.
type AuthEventType string

const (
	AuthEventSignedIn       AuthEventType = "SIGNED_IN"
	AuthEventSignedOut      AuthEventType = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEventType = "TOKEN_REFRESHED"
	AuthEventUserUpdated    AuthEventType = "USER_UPDATED"
	AuthEventInitialSession AuthEventType = "INITIAL_SESSION"
)

// AuthEvent is one entry on the auth state-change stream.
type AuthEvent struct {
	Type   AuthEventType
	UserID string
}

const backgroundFetchTimeout = 10 * time.Second

// Provider maintains the cached view of subscription profiles. Reads are
// cache-first so callers render instantly; every cache hit still kicks off a
// background refresh to keep the data fresh. Fetch failures are logged and
// swallowed, leaving callers with whatever profile state they already have.
type Provider struct {
	store  ProfileStore
	cache  *profileCache
	logger zerolog.Logger
}

// NewProvider builds a Provider with the given cache TTL.
func NewProvider(store ProfileStore, ttl time.Duration, logger zerolog.Logger) *Provider {
	return &Provider{
		store:  store,
		cache:  newProfileCache(ttl),
		logger: logger,
	}
}

// Profile returns the profile for userID. A valid cache entry is returned
// immediately and refreshed in the background; otherwise the store is hit
// synchronously.
func (p *Provider) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	if cached, ok := p.cache.get(userID); ok {
		go p.refreshInBackground(userID)
		return cached, nil
	}
	return p.Refresh(ctx, userID)
}

// Refresh fetches the authoritative profile and replaces the cache entry
// with a fresh timestamp.
func (p *Provider) Refresh(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := p.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.cache.put(userID, *profile)
	return profile, nil
}

// Store exposes the underlying profile backend for collaborators that need
// authoritative operations (the gate's credit consume).
func (p *Provider) Store() ProfileStore {
	return p.store
}

// Prime seeds the cache with a profile obtained elsewhere (signup upsert).
func (p *Provider) Prime(profile domain.Profile) {
	p.cache.put(profile.ID, profile)
}

// SignOut drops all cached state for the user.
func (p *Provider) SignOut(userID string) {
	p.cache.invalidate(userID)
}

// HandleAuthEvent applies one auth state-change event to provider state.
func (p *Provider) HandleAuthEvent(ctx context.Context, evt AuthEvent) {
	switch evt.Type {
	case AuthEventSignedIn, AuthEventInitialSession:
		// Cached profile keeps serving reads; refresh runs behind it.
		go p.refreshInBackground(evt.UserID)
	case AuthEventSignedOut:
		p.cache.invalidate(evt.UserID)
	case AuthEventTokenRefreshed:
		// Session-only change, profile untouched.
	case AuthEventUserUpdated:
		if _, err := p.Refresh(ctx, evt.UserID); err != nil {
			p.logger.Error().Err(err).Str("user_id", evt.UserID).Msg("profile refresh after user update failed")
		}
	}
}

func (p *Provider) refreshInBackground(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundFetchTimeout)
	defer cancel()
	if _, err := p.Refresh(ctx, userID); err != nil {
		p.logger.Error().Err(err).Str("user_id", userID).Msg("background profile refresh failed")
	}
}
