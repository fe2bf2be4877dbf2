package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

func TestProvider_PrimedProfileServedWithoutStore(t *testing.T) {
	store := &fakeStore{getErr: errors.New("store down")}
	p := NewProvider(store, time.Minute, zerolog.Nop())

	p.Prime(domain.Profile{ID: "user-1", Plan: domain.PlanPro, CreditsRemaining: 9})

	got, err := p.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.CreditsRemaining != 9 || got.Plan != domain.PlanPro {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestProvider_MissWithFailingStoreReturnsError(t *testing.T) {
	store := &fakeStore{getErr: errors.New("store down")}
	p := NewProvider(store, time.Minute, zerolog.Nop())

	if _, err := p.Profile(context.Background(), "user-1"); err == nil {
		t.Fatal("expected the store error on a cache miss")
	}
}

func TestProvider_SignOutDropsCachedState(t *testing.T) {
	store := &fakeStore{getErr: errors.New("store down")}
	p := NewProvider(store, time.Minute, zerolog.Nop())

	p.Prime(domain.Profile{ID: "user-1"})
	p.SignOut("user-1")

	if _, err := p.Profile(context.Background(), "user-1"); err == nil {
		t.Fatal("expected a store hit (and its failure) after sign-out")
	}
}

func TestProvider_AuthEventSignedOutInvalidates(t *testing.T) {
	store := &fakeStore{getErr: errors.New("store down")}
	p := NewProvider(store, time.Minute, zerolog.Nop())

	p.Prime(domain.Profile{ID: "user-1"})
	p.HandleAuthEvent(context.Background(), AuthEvent{Type: AuthEventSignedOut, UserID: "user-1"})

	if _, err := p.Profile(context.Background(), "user-1"); err == nil {
		t.Fatal("expected cache to be empty after SIGNED_OUT")
	}
}

func TestProvider_AuthEventUserUpdatedRefreshes(t *testing.T) {
	store := &fakeStore{profile: freeProfile(3)}
	p := NewProvider(store, time.Minute, zerolog.Nop())

	p.Prime(domain.Profile{ID: "user-1", CreditsRemaining: 99})
	p.HandleAuthEvent(context.Background(), AuthEvent{Type: AuthEventUserUpdated, UserID: "user-1"})

	// Refresh ran synchronously, so reads must see the store value even if
	// the store fails afterwards.
	store.mu.Lock()
	store.getErr = errors.New("store down")
	store.mu.Unlock()

	got, err := p.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.CreditsRemaining != 3 {
		t.Fatalf("expected refreshed balance 3, got %d", got.CreditsRemaining)
	}
}

func TestProvider_TokenRefreshedLeavesProfileAlone(t *testing.T) {
	store := &fakeStore{getErr: errors.New("store down")}
	p := NewProvider(store, time.Minute, zerolog.Nop())

	p.Prime(domain.Profile{ID: "user-1", CreditsRemaining: 5})
	p.HandleAuthEvent(context.Background(), AuthEvent{Type: AuthEventTokenRefreshed, UserID: "user-1"})

	got, err := p.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.CreditsRemaining != 5 {
		t.Fatalf("TOKEN_REFRESHED must not touch the profile, got %+v", got)
	}
}
