package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// ProfileRepositoryPG implements the profile backend over PostgreSQL.
type ProfileRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewProfileRepository creates a new ProfileRepositoryPG.
func NewProfileRepository(sql infra.SQLExecutor) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{sql: sql}
}

// GetProfile fetches a profile by user id.
func (r *ProfileRepositoryPG) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfileByID, userID)
	return scanProfile(row)
}

// GetProfileByEmail fetches a profile by email.
func (r *ProfileRepositoryPG) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfileByEmail, email)
	return scanProfile(row)
}

// UpsertGoogleProfile creates the profile on first login with the free
// plan's starting credits, or refreshes the display name on return visits.
func (r *ProfileRepositoryPG) UpsertGoogleProfile(ctx context.Context, email, fullName string) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertGoogleProfile, email, fullName, domain.PlanFree.MonthlyCredits())
	return scanProfile(row)
}

// ConsumeCredit atomically deducts one credit and bumps the lifetime
// counter. The conditional update means an exhausted balance yields no row,
// reported as domain.ErrNoCredits, and the stored value can never go
// negative.
func (r *ProfileRepositoryPG) ConsumeCredit(ctx context.Context, userID string) (int, int, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QConsumeCredit, userID)
	var remaining, used int
	if err := row.Scan(&remaining, &used); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrNoCredits
		}
		return 0, 0, err
	}
	return remaining, used, nil
}

// SetPlan assigns a plan and, when credits >= 0, overrides the balance.
func (r *ProfileRepositoryPG) SetPlan(ctx context.Context, userID string, plan domain.Plan, credits int) error {
	row := r.sql.QueryRow(ctx, sqlinline.QSetPlan, userID, string(plan), credits)
	var id, planType string
	var remaining, used int
	if err := row.Scan(&id, &planType, &remaining, &used); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var planType string
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &planType, &p.CreditsRemaining, &p.CreditsUsed, &p.CreditsResetAt, &p.SubscriptionID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Plan = domain.ParsePlan(planType)
	return &p, nil
}
