package access

import (
	"context"

	"server/internal/domain"
)

// ProfileStore is the authoritative profile backend.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	// ConsumeCredit performs the atomic conditional decrement and returns the
	// resulting balance. It must return domain.ErrNoCredits when the balance
	// is already exhausted and must never drive it negative.
	ConsumeCredit(ctx context.Context, userID string) (remaining, used int, err error)
}

// UsageRecorder appends usage log entries. Writes are best effort; the gate
// never lets a recorder failure reach the caller.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, entry domain.UsageLog) error
}
